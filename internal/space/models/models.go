package models

import (
	"time"

	"uims/pkg/domain"
)

// LearningSpace is a room on a floor that owns learning components.
// Deleting a space is logical: the row stays so component history still
// resolves its space id.
type LearningSpace struct {
	ID        domain.SpaceID
	FloorID   domain.FloorID
	Name      string
	Capacity  domain.Capacity
	IsDeleted bool
	CreatedAt time.Time
}
