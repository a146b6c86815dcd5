package keys

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldType is returned when a value has a Go type (or byte length) a field cannot hold.
	ErrFieldType = errors.New("unsupported value for key field")

	// ErrFieldCount is returned when the number of values does not fit the layout.
	ErrFieldCount = errors.New("wrong number of key fields")
)

// EncodingRangeError is returned when a numeric value does not fit the declared width of its field.
// It is raised before any store I/O happens.
type EncodingRangeError struct {
	Layout string
	Field  string
	Width  int
	Value  string
}

// NewEncodingRangeError creates a new EncodingRangeError.
func NewEncodingRangeError(layout string, field Field, value string) *EncodingRangeError {
	return &EncodingRangeError{
		Layout: layout,
		Field:  field.Name,
		Width:  field.Width,
		Value:  value,
	}
}

func (e *EncodingRangeError) Error() string {
	return fmt.Sprintf("key %s: value %s out of range for %d-byte field %q",
		e.Layout, e.Value, e.Width, e.Field)
}

// DecodingFormatError is returned when stored key bytes do not match the fixed shape of a layout.
type DecodingFormatError struct {
	Layout   string
	Expected int
	Actual   int
	Tag      byte
}

// NewDecodingFormatError creates a new DecodingFormatError.
func NewDecodingFormatError(layout *Layout, key []byte) *DecodingFormatError {
	e := &DecodingFormatError{
		Layout:   layout.name,
		Expected: layout.size,
		Actual:   len(key),
	}
	if len(key) > 0 {
		e.Tag = key[0]
	}
	return e
}

func (e *DecodingFormatError) Error() string {
	if e.Expected != e.Actual {
		return fmt.Sprintf("key %s: expected %d bytes, got %d", e.Layout, e.Expected, e.Actual)
	}
	return fmt.Sprintf("key %s: unexpected tag 0x%02x", e.Layout, e.Tag)
}
