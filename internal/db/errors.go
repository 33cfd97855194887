package db

import (
	"errors"
	"fmt"
)

var (
	// ErrJobNotFound is returned when no job matches the given reference.
	ErrJobNotFound = errors.New("job not found")
	// ErrSessionNotFound is returned when no session matches the given reference.
	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError reports user input that was rejected before any state changed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// PreconditionError reports an operation refused because of the current state.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsPrecondition reports whether err is or wraps a PreconditionError
func IsPrecondition(err error) bool {
	var p *PreconditionError
	return errors.As(err, &p)
}
