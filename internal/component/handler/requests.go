package handler

import (
	"uims/internal/component/mapper"
	"uims/internal/component/models"
	dErrors "uims/pkg/domain-errors"
	"uims/pkg/platform/validation"
)

// Discriminator values of the "type" field.
const (
	TypeProjector  = "projector"
	TypeWhiteboard = "whiteboard"
)

type DimensionsRequest struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

type PositionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ComponentRequest is the create and update payload. Type selects the variant;
// only that variant's fields may be present.
type ComponentRequest struct {
	Type        string            `json:"type"`
	Orientation string            `json:"orientation"`
	Dimensions  DimensionsRequest `json:"dimensions"`
	Position    PositionRequest   `json:"position"`

	ProjectedHeight  *float64 `json:"projected_height,omitempty"`
	ProjectedWidth   *float64 `json:"projected_width,omitempty"`
	ProjectedContent *string  `json:"projected_content,omitempty"`

	MarkerColor *string `json:"marker_color,omitempty"`
}

// variantRequest converts the variant part of a request and lists the JSON
// fields that belong to the variant, and which of them must be present.
type variantRequest struct {
	fields   []string
	required []string
	input    func(r *ComponentRequest) models.DetailsInput
}

var variantRequests = map[string]variantRequest{
	TypeProjector: {
		fields:   []string{"projected_height", "projected_width", "projected_content"},
		required: []string{"projected_height", "projected_width"},
		input: func(r *ComponentRequest) models.DetailsInput {
			return models.ProjectorInput{
				ProjectedHeight:  deref(r.ProjectedHeight),
				ProjectedWidth:   deref(r.ProjectedWidth),
				ProjectedContent: r.ProjectedContent,
			}
		},
	},
	TypeWhiteboard: {
		fields:   []string{"marker_color"},
		required: []string{"marker_color"},
		input: func(r *ComponentRequest) models.DetailsInput {
			return models.WhiteboardInput{MarkerColor: deref(r.MarkerColor)}
		},
	},
}

var variantFields = []string{"projected_height", "projected_width", "projected_content", "marker_color"}

func (r *ComponentRequest) presentVariantFields() map[string]bool {
	return map[string]bool{
		"projected_height":  r.ProjectedHeight != nil,
		"projected_width":   r.ProjectedWidth != nil,
		"projected_content": r.ProjectedContent != nil,
		"marker_color":      r.MarkerColor != nil,
	}
}

// ToInput converts the request into service input. Shape problems (unknown
// type, fields of another variant, missing variant fields) and value problems
// are reported together in one validation error. A field with a shape problem
// is not reported again for its value.
func (r *ComponentRequest) ToInput() (models.ComponentInput, error) {
	var c validation.Collector

	in := models.ComponentInput{
		Orientation: r.Orientation,
		Width:       r.Dimensions.Width,
		Length:      r.Dimensions.Length,
		Height:      r.Dimensions.Height,
		X:           r.Position.X,
		Y:           r.Position.Y,
		Z:           r.Position.Z,
	}

	present := r.presentVariantFields()
	variant, ok := variantRequests[r.Type]
	switch {
	case r.Type == "":
		c.Fail("type", "is required")
	case !ok:
		c.Fail("type", "must be one of projector, whiteboard")
	default:
		own := make(map[string]bool, len(variant.fields))
		for _, f := range variant.fields {
			own[f] = true
		}
		for _, f := range variantFields {
			if present[f] && !own[f] {
				c.Fail(f, "is not allowed for type "+r.Type)
			}
		}
		for _, f := range variant.required {
			if !present[f] {
				c.Fail(f, "is required")
			}
		}
		in.Details = variant.input(r)
	}

	if !c.HasErrors() {
		return in, nil
	}
	if _, err := mapper.Parse(in); err != nil {
		for _, f := range dErrors.FieldsOf(err) {
			if !c.Has(f.Field) {
				c.Fail(f.Field, f.Message)
			}
		}
	}
	return models.ComponentInput{}, c.Err()
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
