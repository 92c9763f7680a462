package domain

import (
	"fmt"
	"strconv"
	"strings"

	dErrors "uims/pkg/domain-errors"
)

// Typed IDs keep a space id from being passed where a component id is
// expected. All of them are store-assigned positive integers.
type (
	SpaceID     int64
	ComponentID int64
	FloorID     int64
)

func (id SpaceID) String() string     { return strconv.FormatInt(int64(id), 10) }
func (id ComponentID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id FloorID) String() string     { return strconv.FormatInt(int64(id), 10) }

// ParseSpaceID parses a learning space id from a path or query parameter.
func ParseSpaceID(s string) (SpaceID, error) {
	v, err := parsePositiveID("space", s)
	return SpaceID(v), err
}

// ParseComponentID parses a component id from a path or query parameter.
func ParseComponentID(s string) (ComponentID, error) {
	v, err := parsePositiveID("component", s)
	return ComponentID(v), err
}

// ParseFloorID parses a floor id.
func ParseFloorID(s string) (FloorID, error) {
	v, err := parsePositiveID("floor", s)
	return FloorID(v), err
}

func parsePositiveID(kind, s string) (int64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("missing %s ID", kind))
	}
	if strings.TrimSpace(s) != s || strings.HasPrefix(s, "+") {
		return 0, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("invalid %s ID", kind))
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 1 {
		return 0, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("invalid %s ID", kind))
	}
	return v, nil
}
