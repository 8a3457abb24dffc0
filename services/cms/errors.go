package cms

import (
	"errors"
)

// ErrNotFound is returned for unknown or unpublished content.
var ErrNotFound = errors.New("content not found")

// ValidationError rejects a content form. The message is shown to the admin as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// IsValidationError reports whether err rejects the input.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
