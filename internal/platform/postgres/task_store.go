package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/domain"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/logger"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/redact"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/store"
)

const taskColumns = `id, title, description, priority, category, estimated_time_minutes,
	subtasks, user_id, created_at, updated_at`

// PostgresTaskStore implements store.TaskStore on PostgreSQL.
type PostgresTaskStore struct {
	db     store.DBTX
	pool   *sql.DB
	logger *slog.Logger
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

// NewPostgresTaskStore creates a task store on top of db.
// If logger is nil, the default logger is used.
func NewPostgresTaskStore(db *sql.DB, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		pool:   db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// WithTx returns a store that runs its statements inside tx.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx, pool: s.pool, logger: s.logger}
}

// DB returns the connection pool.
func (s *PostgresTaskStore) DB() *sql.DB {
	return s.pool
}

// Create inserts task and assigns its ID.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (title, description, priority, category, estimated_time_minutes,
			subtasks, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Category),
		task.EstimatedTimeMinutes,
		task.Subtasks,
		task.UserID,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", task.UserID))
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	log.Info("task created", slog.Int64("task_id", task.ID), slog.String("user_id", task.UserID))
	return nil
}

// GetByID returns the task with the given id or store.ErrTaskNotFound.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task", slog.Int64("task_id", id), slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "get", "query failed", MapError(err))
	}

	return task, nil
}

// ListByUser returns a page of the user's tasks ordered by id.
func (s *PostgresTaskStore) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY id ASC OFFSET $2 LIMIT $3`
	rows, err := s.db.QueryContext(ctx, query, userID, offset, limit)
	if err != nil {
		log.Error("failed to list tasks", slog.String("user_id", userID), slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "row iteration failed", err)
	}

	log.Debug("listed tasks", slog.String("user_id", userID), slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update writes every mutable column of task.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, priority = $3, category = $4,
			estimated_time_minutes = $5, subtasks = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Category),
		task.EstimatedTimeMinutes,
		task.Subtasks,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task", slog.Int64("task_id", task.ID), slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "update", "update failed", MapError(err))
	}

	return checkRowsAffected(result, store.ErrTaskNotFound)
}

// Delete removes the task with the given id.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task", slog.Int64("task_id", id), slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	if err := checkRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		subtasks    sql.NullString
		estimate    sql.NullInt32
		priority    string
		category    string
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&priority,
		&category,
		&estimate,
		&subtasks,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Priority = domain.Priority(priority)
	task.Category = domain.Category(category)
	if description.Valid {
		task.Description = &description.String
	}
	if subtasks.Valid {
		task.Subtasks = &subtasks.String
	}
	if estimate.Valid {
		v := int(estimate.Int32)
		task.EstimatedTimeMinutes = &v
	}
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()

	return &task, nil
}
