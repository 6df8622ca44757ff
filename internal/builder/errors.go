package builder

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("validation failed")

// ValidationError is a client side precondition violation. No request is
// sent when one is returned, and Message is safe to show to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("Please fill in the %s field", field)}
}

func notANumber(field, raw string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%q is not a valid number for %s", raw, field)}
}

func outOfRange(field, raw string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s is out of range for %s", raw, field)}
}
