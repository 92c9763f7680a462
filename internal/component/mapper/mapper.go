// Package mapper translates between typed components and the single row
// shape every variant is stored in. Flattening of owned values (dimensions,
// position, projection area) happens here and nowhere else.
package mapper

import (
	"fmt"

	"uims/internal/component/models"
	"uims/pkg/domain"
	dErrors "uims/pkg/domain-errors"
	"uims/pkg/platform/validation"
)

// Parse validates raw input into a Draft. Every field is checked and all
// failures are returned together as one validation error.
func Parse(in models.ComponentInput) (models.Draft, error) {
	var c validation.Collector

	orientation, err := domain.NewOrientation(in.Orientation)
	c.Add("orientation", err)
	dims, err := domain.NewDimensions(in.Width, in.Length, in.Height)
	c.Merge("dimensions", err)
	pos, err := domain.NewCoordinates(in.X, in.Y, in.Z)
	c.Merge("position", err)

	var details models.Details
	if variant := in.Variant(); variant == nil {
		c.Fail("type", "is required")
	} else {
		details = mustLookup(variant.Kind()).parse(variant, &c)
	}

	if err := c.Err(); err != nil {
		return models.Draft{}, err
	}
	return models.Draft{
		Orientation: orientation,
		Dimensions:  dims,
		Position:    pos,
		Details:     details,
	}, nil
}

// ToRow flattens a component into its storage row.
func ToRow(c models.Component) Row {
	r := Row{
		ID:            int64(c.ID),
		SpaceID:       int64(c.SpaceID),
		ComponentType: string(c.Kind()),
		DisplayID:     c.DisplayID,
		Orientation:   c.Orientation.String(),
		Width:         c.Dimensions.Width.Float64(),
		Length:        c.Dimensions.Length.Float64(),
		Height:        c.Dimensions.Height.Float64(),
		X:             c.Position.X.Float64(),
		Y:             c.Position.Y.Float64(),
		Z:             c.Position.Z.Float64(),
		IsDeleted:     c.IsDeleted,
	}
	mustLookup(c.Kind()).encode(c.Details, &r)
	return r
}

// FromRow rebuilds a component from its storage row. The variant is chosen by
// the discriminator, or inferred from the populated columns when the
// discriminator is empty. A row whose variant columns are missing, ambiguous
// or invalid yields CodeCorruptData: that only happens when data was written
// outside this mapper.
func FromRow(r Row) (models.Component, error) {
	kind, cd, err := resolve(r)
	if err != nil {
		return models.Component{}, err
	}

	orientation, err := domain.NewOrientation(r.Orientation)
	if err != nil {
		return models.Component{}, corrupt(r, err)
	}
	dims, err := domain.NewDimensions(r.Width, r.Length, r.Height)
	if err != nil {
		return models.Component{}, corrupt(r, err)
	}
	pos, err := domain.NewCoordinates(r.X, r.Y, r.Z)
	if err != nil {
		return models.Component{}, corrupt(r, err)
	}
	details, err := cd.decode(r)
	if err != nil {
		return models.Component{}, corrupt(r, err)
	}
	if details.Kind() != kind {
		return models.Component{}, corrupt(r, fmt.Errorf("decoded %s for %s row", details.Kind(), kind))
	}

	return models.Component{
		ID:          domain.ComponentID(r.ID),
		SpaceID:     domain.SpaceID(r.SpaceID),
		DisplayID:   r.DisplayID,
		Orientation: orientation,
		Dimensions:  dims,
		Position:    pos,
		IsDeleted:   r.IsDeleted,
		Details:     details,
	}, nil
}

func resolve(r Row) (models.Kind, codec, error) {
	var owners []models.Kind
	for _, kind := range models.Kinds() {
		if mustLookup(kind).owns(r) {
			owners = append(owners, kind)
		}
	}

	if r.ComponentType == "" {
		if len(owners) != 1 {
			return "", codec{}, corrupt(r, fmt.Errorf("cannot infer variant from %d populated variant column sets", len(owners)))
		}
		return owners[0], mustLookup(owners[0]), nil
	}

	kind := models.Kind(r.ComponentType)
	cd, ok := lookup(kind)
	if !ok {
		return "", codec{}, corrupt(r, fmt.Errorf("unknown component type %q", r.ComponentType))
	}
	for _, owner := range owners {
		if owner != kind {
			return "", codec{}, corrupt(r, fmt.Errorf("%s row also populates %s columns", kind, owner))
		}
	}
	if len(owners) == 0 {
		return "", codec{}, corrupt(r, fmt.Errorf("%s row has no variant columns", kind))
	}
	return kind, cd, nil
}

func corrupt(r Row, err error) error {
	return dErrors.Wrap(err, dErrors.CodeCorruptData, fmt.Sprintf("component %d: corrupt row", r.ID))
}

// DisplayID derives the human-readable id for a component of kind with id.
func DisplayID(kind models.Kind, id domain.ComponentID) string {
	return fmt.Sprintf("%s-%d", Prefix(kind), id)
}

// Snapshot captures every mutable field of c for the audit log, reusing the
// row encoding so variant fields need no special handling.
func Snapshot(c models.Component) models.Snapshot {
	r := ToRow(c)
	s := models.Snapshot{
		SpaceID:     &r.SpaceID,
		DisplayID:   &r.DisplayID,
		Orientation: &r.Orientation,
		Width:       &r.Width,
		Length:      &r.Length,
		Height:      &r.Height,
		X:           &r.X,
		Y:           &r.Y,
		Z:           &r.Z,
		IsDeleted:   &r.IsDeleted,
	}
	if r.ProjectedHeight.Valid {
		s.ProjectedHeight = &r.ProjectedHeight.Float64
	}
	if r.ProjectedWidth.Valid {
		s.ProjectedWidth = &r.ProjectedWidth.Float64
	}
	if r.ProjectedContent.Valid {
		s.ProjectedContent = &r.ProjectedContent.String
	}
	if r.MarkerColor.Valid {
		s.MarkerColor = &r.MarkerColor.String
	}
	return s
}
