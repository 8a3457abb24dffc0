package booking

import (
	"errors"
	"fmt"
)

// ErrPackageNotFound is returned when a manual booking references an unknown catalog package.
var ErrPackageNotFound = errors.New("package not found")

// ValidationError rejects manual booking input. Message is shown to the operator as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidationError reports whether err rejects the input rather than failing the store.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
