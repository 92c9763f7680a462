package mapper

import (
	"database/sql"
	"fmt"

	"uims/internal/component/models"
	"uims/pkg/domain"
	"uims/pkg/platform/validation"
)

// codec is everything the mapper needs to handle one variant. Adding a
// variant means adding a Kind, its Details/DetailsInput types and one entry
// in registry; nothing else switches on kind.
type codec struct {
	prefix string
	// parse validates variant input, recording failures in c.
	parse func(in models.DetailsInput, c *validation.Collector) models.Details
	// encode writes the variant's columns into r.
	encode func(d models.Details, r *Row)
	// decode rebuilds the variant from r, re-validating every value.
	decode func(r Row) (models.Details, error)
	// owns reports whether any of the variant's columns are populated.
	owns func(r Row) bool
}

var registry = map[models.Kind]codec{
	models.KindProjector: {
		prefix: "PROJ",
		parse:  parseProjector,
		encode: encodeProjector,
		decode: decodeProjector,
		owns: func(r Row) bool {
			return r.ProjectedHeight.Valid || r.ProjectedWidth.Valid || r.ProjectedContent.Valid
		},
	},
	models.KindWhiteboard: {
		prefix: "WBD",
		parse:  parseWhiteboard,
		encode: encodeWhiteboard,
		decode: decodeWhiteboard,
		owns: func(r Row) bool {
			return r.MarkerColor.Valid
		},
	},
}

func lookup(kind models.Kind) (codec, bool) {
	c, ok := registry[kind]
	return c, ok
}

// mustLookup resolves a kind produced by code. The variant set is closed, so
// a miss is a programming error.
func mustLookup(kind models.Kind) codec {
	c, ok := registry[kind]
	if !ok {
		panic(fmt.Sprintf("mapper: no codec registered for component kind %q", kind))
	}
	return c
}

// Prefix returns the display id prefix for kind.
func Prefix(kind models.Kind) string {
	return mustLookup(kind).prefix
}

func parseProjector(raw models.DetailsInput, c *validation.Collector) models.Details {
	in, ok := raw.(models.ProjectorInput)
	if !ok {
		panic(fmt.Sprintf("mapper: projector codec given %T", raw))
	}
	area, err := domain.NewProjectionArea(in.ProjectedHeight, in.ProjectedWidth)
	c.Merge("", err)

	var content *string
	if in.ProjectedContent != nil {
		v := *in.ProjectedContent
		content = &v
	}
	return models.Projector{ProjectionArea: area, ProjectedContent: content}
}

func encodeProjector(d models.Details, r *Row) {
	p, ok := d.(models.Projector)
	if !ok {
		panic(fmt.Sprintf("mapper: projector codec given %T", d))
	}
	r.ProjectedHeight = sql.NullFloat64{Float64: p.ProjectionArea.Height.Float64(), Valid: true}
	r.ProjectedWidth = sql.NullFloat64{Float64: p.ProjectionArea.Width.Float64(), Valid: true}
	if p.ProjectedContent != nil {
		r.ProjectedContent = sql.NullString{String: *p.ProjectedContent, Valid: true}
	}
}

func decodeProjector(r Row) (models.Details, error) {
	if !r.ProjectedHeight.Valid || !r.ProjectedWidth.Valid {
		return nil, fmt.Errorf("projector row is missing projection area")
	}
	area, err := domain.NewProjectionArea(r.ProjectedHeight.Float64, r.ProjectedWidth.Float64)
	if err != nil {
		return nil, err
	}
	p := models.Projector{ProjectionArea: area}
	if r.ProjectedContent.Valid {
		content := r.ProjectedContent.String
		p.ProjectedContent = &content
	}
	return p, nil
}

func parseWhiteboard(raw models.DetailsInput, c *validation.Collector) models.Details {
	in, ok := raw.(models.WhiteboardInput)
	if !ok {
		panic(fmt.Sprintf("mapper: whiteboard codec given %T", raw))
	}
	color, err := domain.NewColor(in.MarkerColor)
	c.Add("marker_color", err)
	return models.Whiteboard{MarkerColor: color}
}

func encodeWhiteboard(d models.Details, r *Row) {
	w, ok := d.(models.Whiteboard)
	if !ok {
		panic(fmt.Sprintf("mapper: whiteboard codec given %T", d))
	}
	r.MarkerColor = sql.NullString{String: w.MarkerColor.String(), Valid: true}
}

func decodeWhiteboard(r Row) (models.Details, error) {
	if !r.MarkerColor.Valid {
		return nil, fmt.Errorf("whiteboard row is missing marker color")
	}
	color, err := domain.NewColor(r.MarkerColor.String)
	if err != nil {
		return nil, err
	}
	return models.Whiteboard{MarkerColor: color}, nil
}
