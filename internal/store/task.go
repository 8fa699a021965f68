package store

import (
	"context"
	"database/sql"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/domain"
)

// Pagination bounds for ListByUser.
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create inserts a new task and sets task.ID to the store-assigned id.
	// Returns ErrInvalidEntity if the task fails validation or a constraint.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its id.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ListByUser returns up to limit tasks owned by userID, skipping the
	// first offset, in ascending id order. Returns an empty slice if none match.
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*domain.Task, error)

	// Update saves every mutable field of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a TaskStore that runs its statements inside tx.
	WithTx(tx *sql.Tx) TaskStore

	// DB returns the underlying connection pool, used to start transactions.
	DB() *sql.DB
}
