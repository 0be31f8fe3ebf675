package store

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a lookup by id or name matches nothing.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when a create collides on a unique name or code.
var ErrAlreadyExists = errors.New("already exists")

// ValidationError marks recoverable input errors: unknown update fields,
// unparseable numeric values, malformed durations.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
