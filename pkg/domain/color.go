package domain

import (
	"strings"

	dErrors "uims/pkg/domain-errors"
)

// Color is a marker color from the fixed palette. Input matching is
// case-insensitive; the stored value is always the canonical spelling.
type Color string

const (
	ColorBlack  Color = "Black"
	ColorBlue   Color = "Blue"
	ColorRed    Color = "Red"
	ColorGreen  Color = "Green"
	ColorOrange Color = "Orange"
	ColorPurple Color = "Purple"
	ColorBrown  Color = "Brown"
)

var colorsByKey = map[string]Color{
	"black":  ColorBlack,
	"blue":   ColorBlue,
	"red":    ColorRed,
	"green":  ColorGreen,
	"orange": ColorOrange,
	"purple": ColorPurple,
	"brown":  ColorBrown,
}

func TryColor(raw string) (Color, bool) {
	c, ok := colorsByKey[strings.ToLower(strings.TrimSpace(raw))]
	return c, ok
}

// NewColor constructs a Color from external input.
//
// Errors: CodeValidation with field "color" when the value is not in the
// palette.
func NewColor(raw string) (Color, error) {
	c, ok := TryColor(raw)
	if !ok {
		return "", dErrors.Field("color", "must be one of Black, Blue, Red, Green, Orange, Purple, Brown")
	}
	return c, nil
}

func (c Color) String() string {
	return string(c)
}
