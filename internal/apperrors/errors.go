package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidState indicates an illegal lifecycle transition was attempted.
var ErrInvalidState = errors.New("invalid state transition")

// ErrConflict indicates a concurrent modification was detected.
var ErrConflict = errors.New("concurrent modification conflict")

// ErrMalformedInput indicates input that could not be parsed (e.g. a decimal string).
var ErrMalformedInput = errors.New("malformed input")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ValidationError carries the full list of human-readable validation messages.
// It wraps ErrValidation so callers can match with errors.Is.
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages []string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Messages, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// InvalidStateError reports an illegal transition with current-state context.
type InvalidStateError struct {
	CurrentStatus string
	Attempted     string
}

func NewInvalidStateError(currentStatus, attempted string) *InvalidStateError {
	return &InvalidStateError{CurrentStatus: currentStatus, Attempted: attempted}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s a transaction in status %s", e.Attempted, e.CurrentStatus)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
