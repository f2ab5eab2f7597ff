package stela

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a required field is absent.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidType is returned when a JSON value has the wrong type for its target.
	ErrInvalidType = errors.New("invalid type")
	// ErrUnionShape is returned when a tagged union is neither a bare string nor a
	// single-key object, or names a known variant without its payload.
	ErrUnionShape = errors.New("malformed tagged union")
)

// StructuralError means the root payload is not JSON, or not the object a root
// type needs. Nothing was decoded.
type StructuralError struct {
	Err error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("stela: malformed payload: %v", e.Err)
}

func (e *StructuralError) Unwrap() error { return e.Err }

// FieldError is a required value that was absent or mismatched and that no
// enclosing default or skip policy absorbed. Path is dotted from the root,
// e.g. "sections[0].section.Form.inputs[1].variant".
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("stela: %v", e.Err)
	}
	return fmt.Sprintf("stela: %s: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ElementError records a sequence element that failed to decode and was dropped.
// It only ever appears inside a Report.
type ElementError struct {
	Index int
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d dropped: %v", e.Index, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }
