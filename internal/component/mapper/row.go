package mapper

import "database/sql"

// Row is the single physical shape shared by every component variant:
// shared columns, the component_type discriminator, and each variant's
// columns as nullable values. A row populates only its own variant's columns.
type Row struct {
	ID            int64
	SpaceID       int64
	ComponentType string
	DisplayID     string
	Orientation   string
	Width         float64
	Length        float64
	Height        float64
	X             float64
	Y             float64
	Z             float64
	IsDeleted     bool

	// Projector
	ProjectedHeight  sql.NullFloat64
	ProjectedWidth   sql.NullFloat64
	ProjectedContent sql.NullString

	// Whiteboard
	MarkerColor sql.NullString
}

// Columns lists the component table columns in the order Values and the
// store scanners use.
var Columns = []string{
	"id",
	"space_id",
	"component_type",
	"display_id",
	"orientation",
	"width",
	"length",
	"height",
	"x",
	"y",
	"z",
	"is_deleted",
	"projected_height",
	"projected_width",
	"projected_content",
	"marker_color",
}

// ScanTargets returns pointers to r's fields in Columns order.
func (r *Row) ScanTargets() []any {
	return []any{
		&r.ID,
		&r.SpaceID,
		&r.ComponentType,
		&r.DisplayID,
		&r.Orientation,
		&r.Width,
		&r.Length,
		&r.Height,
		&r.X,
		&r.Y,
		&r.Z,
		&r.IsDeleted,
		&r.ProjectedHeight,
		&r.ProjectedWidth,
		&r.ProjectedContent,
		&r.MarkerColor,
	}
}

// MutableValues maps every column an update replaces to its value. Identity,
// owning space, discriminator, display id and the deleted flag are not
// included: deletion has its own path.
func (r Row) MutableValues() map[string]any {
	return map[string]any{
		"orientation":       r.Orientation,
		"width":             r.Width,
		"length":            r.Length,
		"height":            r.Height,
		"x":                 r.X,
		"y":                 r.Y,
		"z":                 r.Z,
		"projected_height":  r.ProjectedHeight,
		"projected_width":   r.ProjectedWidth,
		"projected_content": r.ProjectedContent,
		"marker_color":      r.MarkerColor,
	}
}
