package domain

import (
	"math"

	dErrors "uims/pkg/domain-errors"
	"uims/pkg/platform/validation"
)

// Dimension is a strictly positive, finite length.
type Dimension float64

// TryDimension accepts v when it is finite and greater than zero.
func TryDimension(v float64) (Dimension, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return Dimension(v), true
}

// NewDimension constructs a Dimension.
//
// Errors: CodeValidation with field "dimension" when v is not a positive
// finite number.
func NewDimension(v float64) (Dimension, error) {
	d, ok := TryDimension(v)
	if !ok {
		return 0, dErrors.Field("dimension", "must be greater than zero")
	}
	return d, nil
}

func (d Dimension) Float64() float64 {
	return float64(d)
}

// Dimensions is the bounding box of a component.
type Dimensions struct {
	Width  Dimension
	Length Dimension
	Height Dimension
}

// NewDimensions validates all three sides and reports every failure.
func NewDimensions(width, length, height float64) (Dimensions, error) {
	var c validation.Collector
	w, err := NewDimension(width)
	c.Add("width", err)
	l, err := NewDimension(length)
	c.Add("length", err)
	h, err := NewDimension(height)
	c.Add("height", err)
	if err := c.Err(); err != nil {
		return Dimensions{}, err
	}
	return Dimensions{Width: w, Length: l, Height: h}, nil
}

// ProjectionArea is the size of the image a projector casts.
type ProjectionArea struct {
	Height Dimension
	Width  Dimension
}

// NewProjectionArea validates both sides and reports every failure.
func NewProjectionArea(height, width float64) (ProjectionArea, error) {
	var c validation.Collector
	h, err := NewDimension(height)
	c.Add("projected_height", err)
	w, err := NewDimension(width)
	c.Add("projected_width", err)
	if err := c.Err(); err != nil {
		return ProjectionArea{}, err
	}
	return ProjectionArea{Height: h, Width: w}, nil
}
