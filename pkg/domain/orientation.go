package domain

import (
	"strings"

	dErrors "uims/pkg/domain-errors"
)

// Orientation is the compass direction a component faces.
// Invariant: one of North, South, East, West, exact case, no surrounding
// whitespace.
type Orientation string

const (
	OrientationNorth Orientation = "North"
	OrientationSouth Orientation = "South"
	OrientationEast  Orientation = "East"
	OrientationWest  Orientation = "West"
)

// validOrientations is the single source of truth for allowed orientations.
var validOrientations = map[Orientation]bool{
	OrientationNorth: true,
	OrientationSouth: true,
	OrientationEast:  true,
	OrientationWest:  true,
}

// TryOrientation trims raw and accepts it only on an exact-case match.
func TryOrientation(raw string) (Orientation, bool) {
	o := Orientation(strings.TrimSpace(raw))
	if !validOrientations[o] {
		return "", false
	}
	return o, true
}

// NewOrientation constructs an Orientation from external input.
//
// Errors: CodeValidation with field "orientation" when the value is not an
// allowed direction.
func NewOrientation(raw string) (Orientation, error) {
	o, ok := TryOrientation(raw)
	if !ok {
		return "", dErrors.Field("orientation", "must be one of North, South, East, West")
	}
	return o, nil
}

func (o Orientation) String() string {
	return string(o)
}
