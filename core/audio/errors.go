package audio

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record is absent or the caller lacks
// visibility. The two cases are deliberately indistinguishable so that
// private records don't leak their existence.
var ErrNotFound = errors.New("audio record not found")

// ValidationError reports a rejected field with detail for the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
