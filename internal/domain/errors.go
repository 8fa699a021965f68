package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyTitle is returned when a task title is empty.
	ErrEmptyTitle = errors.New("task title cannot be empty")

	// ErrEmptyUserID is returned when a task has no owning user.
	ErrEmptyUserID = errors.New("task user ID cannot be empty")

	// ErrInvalidPriority is returned when a priority is not one of the known values.
	ErrInvalidPriority = errors.New("invalid task priority")

	// ErrInvalidCategory is returned when a category is not one of the known values.
	ErrInvalidCategory = errors.New("invalid task category")

	// ErrInvalidEstimate is returned when a time estimate is not a positive number of minutes.
	ErrInvalidEstimate = errors.New("estimated time must be a positive number of minutes")
)

// ValidationError describes a single invalid field.
// It wraps one of the sentinel errors above so callers can use errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel error.
func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrValidation
	}
	return e.Err
}

// Is reports ErrValidation for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
