package domain

import (
	"math"

	dErrors "uims/pkg/domain-errors"
	"uims/pkg/platform/validation"
)

// Coordinate is one axis of a position. Any finite value is allowed,
// including negatives.
type Coordinate float64

func TryCoordinate(v float64) (Coordinate, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return Coordinate(v), true
}

func NewCoordinate(v float64) (Coordinate, error) {
	c, ok := TryCoordinate(v)
	if !ok {
		return 0, dErrors.Field("coordinate", "must be a finite number")
	}
	return c, nil
}

func (c Coordinate) Float64() float64 {
	return float64(c)
}

// Coordinates locates a component inside its learning space.
type Coordinates struct {
	X Coordinate
	Y Coordinate
	Z Coordinate
}

// NewCoordinates validates all three axes and reports every failure.
func NewCoordinates(x, y, z float64) (Coordinates, error) {
	var c validation.Collector
	cx, err := NewCoordinate(x)
	c.Add("x", err)
	cy, err := NewCoordinate(y)
	c.Add("y", err)
	cz, err := NewCoordinate(z)
	c.Add("z", err)
	if err := c.Err(); err != nil {
		return Coordinates{}, err
	}
	return Coordinates{X: cx, Y: cy, Z: cz}, nil
}
