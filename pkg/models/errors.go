package models

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Use errors.Is to classify.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrInternal   = errors.New("internal error")
)

// ValidationError reports a rejected field value, name or count.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
