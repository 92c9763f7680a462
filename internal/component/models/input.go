package models

// ComponentInput is raw caller input for creating or replacing a component.
// Nothing in it has been validated.
type ComponentInput struct {
	Orientation string
	Width       float64
	Length      float64
	Height      float64
	X           float64
	Y           float64
	Z           float64
	Details     DetailsInput
}

// Kind returns the variant the input targets, or "" when Details is missing.
func (in ComponentInput) Kind() Kind {
	v := in.Variant()
	if v == nil {
		return ""
	}
	return v.Kind()
}

// Variant returns Details as a value. Pointers to a variant input are
// dereferenced and a nil pointer reads as no variant at all.
func (in ComponentInput) Variant() DetailsInput {
	switch d := in.Details.(type) {
	case *ProjectorInput:
		if d == nil {
			return nil
		}
		return *d
	case *WhiteboardInput:
		if d == nil {
			return nil
		}
		return *d
	default:
		return d
	}
}

// DetailsInput is the raw variant-specific part of a ComponentInput.
type DetailsInput interface {
	Kind() Kind
	isDetailsInput()
}

type ProjectorInput struct {
	ProjectedHeight  float64
	ProjectedWidth   float64
	ProjectedContent *string
}

func (ProjectorInput) Kind() Kind      { return KindProjector }
func (ProjectorInput) isDetailsInput() {}

type WhiteboardInput struct {
	MarkerColor string
}

func (WhiteboardInput) Kind() Kind      { return KindWhiteboard }
func (WhiteboardInput) isDetailsInput() {}
