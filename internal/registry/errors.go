package registry

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that no registration exists with the given id.
var ErrNotFound = errors.New("registration not found")

// ValidationError reports a caller-correctable problem with an input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
