package domain

import "errors"

var (
	ErrDuplicateField       = errors.New("field already registered")
	ErrInvalidIndex         = errors.New("index out of range")
	ErrInvalidState         = errors.New("operation not valid in current state")
	ErrReadOnly             = errors.New("form is read-only")
	ErrUnknownField         = errors.New("unknown field")
	ErrUnknownRecord        = errors.New("unknown record")
	ErrUnsupportedFieldType = errors.New("unsupported field type")
)
