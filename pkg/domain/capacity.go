package domain

import dErrors "uims/pkg/domain-errors"

// Capacity is the number of occupants a space is rated for. Must be positive.
type Capacity int

func TryCapacity(v int) (Capacity, bool) {
	if v <= 0 {
		return 0, false
	}
	return Capacity(v), true
}

func NewCapacity(v int) (Capacity, error) {
	c, ok := TryCapacity(v)
	if !ok {
		return 0, dErrors.Field("capacity", "must be greater than zero")
	}
	return c, nil
}

func (c Capacity) Int() int {
	return int(c)
}
