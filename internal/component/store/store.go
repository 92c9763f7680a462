// Package store persists components and their audit log.
//
// Every read path that returns components applies the soft-delete predicate
// itself; callers never filter deleted rows. Stores report missing rows with
// sentinel.ErrNotFound and leave translation to domain errors to the service.
package store

import (
	"strings"

	"uims/pkg/domain"
)

// Filter narrows a component listing. A nil SpaceID lists every space; an
// empty Search matches every display id.
type Filter struct {
	SpaceID *domain.SpaceID
	Search  string
}

func (f Filter) matches(spaceID int64, displayID string) bool {
	if f.SpaceID != nil && int64(*f.SpaceID) != spaceID {
		return false
	}
	if f.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(displayID), strings.ToLower(f.Search))
}

// likePattern builds a case-insensitive substring pattern for LIKE ... ESCAPE
// '\' with the search text's wildcards taken literally.
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(search)) + "%"
}
