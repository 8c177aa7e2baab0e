package common

import "fmt"

// ValidationError reports a missing or malformed input field.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Required is a shorthand for a ValidationError about an empty field.
func Required(field string) error {
	return &ValidationError{Field: field}
}
