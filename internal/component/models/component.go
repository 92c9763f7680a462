package models

import (
	"uims/pkg/domain"
)

// Kind is the variant tag of a component. The set is closed.
type Kind string

const (
	KindProjector  Kind = "Projector"
	KindWhiteboard Kind = "Whiteboard"
)

// Kinds lists every variant. The mapper registry must cover all of them.
func Kinds() []Kind {
	return []Kind{KindProjector, KindWhiteboard}
}

func (k Kind) String() string {
	return string(k)
}

// Component is a learning component as read back from storage.
//
// Invariants:
//   - ID and DisplayID are set by the store and never change
//   - SpaceID is fixed at creation
//   - Details is never nil and its Kind matches the persisted discriminator
type Component struct {
	ID          domain.ComponentID
	SpaceID     domain.SpaceID
	DisplayID   string
	Orientation domain.Orientation
	Dimensions  domain.Dimensions
	Position    domain.Coordinates
	IsDeleted   bool
	Details     Details
}

// Kind returns the variant of the component.
func (c Component) Kind() Kind {
	return c.Details.Kind()
}

// Draft is a validated component that has not been persisted yet. Only the
// mapper builds drafts, so every field already passed validation.
type Draft struct {
	Orientation domain.Orientation
	Dimensions  domain.Dimensions
	Position    domain.Coordinates
	Details     Details
}

// Kind returns the variant of the draft.
func (d Draft) Kind() Kind {
	return d.Details.Kind()
}

// Materialize binds a draft to its store-assigned identity.
func (d Draft) Materialize(id domain.ComponentID, spaceID domain.SpaceID, displayID string) Component {
	return Component{
		ID:          id,
		SpaceID:     spaceID,
		DisplayID:   displayID,
		Orientation: d.Orientation,
		Dimensions:  d.Dimensions,
		Position:    d.Position,
		Details:     d.Details,
	}
}

// ApplyTo replaces every mutable field of c with the draft's values. Identity,
// owning space and display id are kept.
func (d Draft) ApplyTo(c Component) Component {
	c.Orientation = d.Orientation
	c.Dimensions = d.Dimensions
	c.Position = d.Position
	c.Details = d.Details
	return c
}
