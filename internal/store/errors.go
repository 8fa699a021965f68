package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no row matched the lookup.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity means the database rejected a row through a CHECK,
	// NOT NULL or foreign key constraint. The wrapped error has the details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTaskNotFound is ErrNotFound for the tasks table.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)
)

// IsNotFoundError reports whether err is, or wraps, ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError records which store call failed on which entity.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Entity, e.Operation, e.Message)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the entity and operation it came from.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}
