package models

import "uims/pkg/domain"

// Details holds the variant-specific fields of a component. Implementations
// are limited to this package.
type Details interface {
	Kind() Kind
	isDetails()
}

// Projector casts an image onto a surface.
type Projector struct {
	ProjectionArea domain.ProjectionArea
	// ProjectedContent is optional; nil means absent and "" is a valid value.
	ProjectedContent *string
}

func (Projector) Kind() Kind { return KindProjector }
func (Projector) isDetails() {}

// Whiteboard is a writable board.
type Whiteboard struct {
	MarkerColor domain.Color
}

func (Whiteboard) Kind() Kind { return KindWhiteboard }
func (Whiteboard) isDetails() {}
