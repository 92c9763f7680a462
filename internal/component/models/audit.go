package models

import (
	"time"

	"github.com/google/uuid"

	"uims/pkg/domain"
)

// Action is the lifecycle transition an audit record describes.
type Action string

const (
	ActionCreated Action = "Created"
	ActionUpdated Action = "Updated"
	ActionDeleted Action = "Deleted"
)

func (a Action) String() string {
	return string(a)
}

// AuditRecord is an immutable point-in-time copy of a component taken when a
// mutation happened. It has no foreign key to the live row, so history
// survives even if the component row is removed administratively.
type AuditRecord struct {
	ID            uuid.UUID
	ComponentID   domain.ComponentID
	ComponentType Kind
	Action        Action
	Snapshot      Snapshot
	RecordedAt    time.Time
}

// Snapshot captures every mutable field. Fields a variant does not have stay
// nil.
type Snapshot struct {
	SpaceID          *int64
	DisplayID        *string
	Orientation      *string
	Width            *float64
	Length           *float64
	Height           *float64
	X                *float64
	Y                *float64
	Z                *float64
	IsDeleted        *bool
	ProjectedHeight  *float64
	ProjectedWidth   *float64
	ProjectedContent *string
	MarkerColor      *string
}
