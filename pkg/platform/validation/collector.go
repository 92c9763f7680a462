// Package validation aggregates field-level failures so composite inputs
// report every problem at once instead of stopping at the first.
package validation

import (
	"errors"

	dErrors "uims/pkg/domain-errors"
)

// Collector accumulates field errors. The zero value is ready to use.
type Collector struct {
	fields []dErrors.FieldError
}

// Add records err under field. A nil err is ignored. Field errors carried by
// a validation error are re-labelled with field so value types do not need to
// know where they were used.
func (c *Collector) Add(field string, err error) {
	if err == nil {
		return
	}
	var de *dErrors.Error
	if errors.As(err, &de) && len(de.Fields) > 0 {
		for _, f := range de.Fields {
			c.fields = append(c.fields, dErrors.FieldError{Field: field, Message: f.Message})
		}
		return
	}
	c.fields = append(c.fields, dErrors.FieldError{Field: field, Message: err.Error()})
}

// Fail records a violation directly.
func (c *Collector) Fail(field, msg string) {
	c.fields = append(c.fields, dErrors.FieldError{Field: field, Message: msg})
}

// Merge copies the field errors of a nested validation error, prefixing
// each field with prefix and a dot.
func (c *Collector) Merge(prefix string, err error) {
	if err == nil {
		return
	}
	var de *dErrors.Error
	if !errors.As(err, &de) || len(de.Fields) == 0 {
		c.Add(prefix, err)
		return
	}
	for _, f := range de.Fields {
		name := f.Field
		if prefix != "" {
			name = prefix + "." + name
		}
		c.fields = append(c.fields, dErrors.FieldError{Field: name, Message: f.Message})
	}
}

// Has reports whether a violation was recorded for field.
func (c *Collector) Has(field string) bool {
	for _, f := range c.fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// HasErrors reports whether any violation was recorded.
func (c *Collector) HasErrors() bool {
	return len(c.fields) > 0
}

// Err returns a single CodeValidation error covering every recorded field,
// or nil.
func (c *Collector) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	fields := make([]dErrors.FieldError, len(c.fields))
	copy(fields, c.fields)
	return dErrors.Validation(fields...)
}
