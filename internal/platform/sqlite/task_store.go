package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/domain"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/logger"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/redact"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/store"
)

// taskRecord is the row shape of the tasks table.
type taskRecord struct {
	ID                   int64     `gorm:"primaryKey;autoIncrement"`
	Title                string    `gorm:"not null;check:chk_tasks_title,trim(title) <> ''"`
	Description          *string
	Priority             string    `gorm:"not null;check:chk_tasks_priority,priority IN ('High','Medium','Low')"`
	Category             string    `gorm:"not null;check:chk_tasks_category,category IN ('Work','Personal','Learning','Health','Other')"`
	EstimatedTimeMinutes *int      `gorm:"check:chk_tasks_estimate,estimated_time_minutes > 0"`
	Subtasks             *string
	UserID               string    `gorm:"not null;index:idx_tasks_user_id"`
	CreatedAt            time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt            time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (taskRecord) TableName() string {
	return "tasks"
}

func recordFromTask(t *domain.Task) *taskRecord {
	return &taskRecord{
		ID:                   t.ID,
		Title:                t.Title,
		Description:          t.Description,
		Priority:             string(t.Priority),
		Category:             string(t.Category),
		EstimatedTimeMinutes: t.EstimatedTimeMinutes,
		Subtasks:             t.Subtasks,
		UserID:               t.UserID,
		CreatedAt:            t.CreatedAt.UTC(),
		UpdatedAt:            t.UpdatedAt.UTC(),
	}
}

func (r *taskRecord) toTask() *domain.Task {
	return &domain.Task{
		ID:                   r.ID,
		Title:                r.Title,
		Description:          r.Description,
		Priority:             domain.Priority(r.Priority),
		Category:             domain.Category(r.Category),
		EstimatedTimeMinutes: r.EstimatedTimeMinutes,
		Subtasks:             r.Subtasks,
		UserID:               r.UserID,
		CreatedAt:            r.CreatedAt.UTC(),
		UpdatedAt:            r.UpdatedAt.UTC(),
	}
}

// SQLiteTaskStore implements store.TaskStore with GORM on SQLite.
type SQLiteTaskStore struct {
	db     *gorm.DB
	pool   *sql.DB
	logger *slog.Logger
}

var _ store.TaskStore = (*SQLiteTaskStore)(nil)

// NewSQLiteTaskStore wraps an opened GORM database.
func NewSQLiteTaskStore(db *gorm.DB, logger *slog.Logger) (*SQLiteTaskStore, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	return &SQLiteTaskStore{
		db:     db,
		pool:   pool,
		logger: logger.With(slog.String("component", "task_store")),
	}, nil
}

// WithTx returns a store whose statements run on tx.
func (s *SQLiteTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	db := s.db.Session(&gorm.Session{NewDB: true, SkipDefaultTransaction: true})
	db.Statement.ConnPool = tx
	return &SQLiteTaskStore{db: db, pool: s.pool, logger: s.logger}
}

// DB returns the underlying connection pool.
func (s *SQLiteTaskStore) DB() *sql.DB {
	return s.pool
}

// Create inserts task and assigns its ID.
func (s *SQLiteTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	rec := recordFromTask(task)
	rec.ID = 0
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		log.Error("failed to create task",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", task.UserID))
		return store.NewStoreError("task", "create", "insert failed", mapError(err))
	}

	task.ID = rec.ID
	log.Info("task created", slog.Int64("task_id", task.ID), slog.String("user_id", task.UserID))
	return nil
}

// GetByID returns the task with the given id or store.ErrTaskNotFound.
func (s *SQLiteTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var rec taskRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", "query failed", mapError(err))
	}
	return rec.toTask(), nil
}

// ListByUser returns a page of the user's tasks ordered by id.
func (s *SQLiteTaskStore) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*domain.Task, error) {
	var recs []taskRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, store.NewStoreError("task", "list", "query failed", mapError(err))
	}

	tasks := make([]*domain.Task, 0, len(recs))
	for i := range recs {
		tasks = append(tasks, recs[i].toTask())
	}
	return tasks, nil
}

// Update writes every mutable column of task.
func (s *SQLiteTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	rec := recordFromTask(task)
	result := s.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("id = ?", task.ID).
		Updates(map[string]any{
			"title":                  rec.Title,
			"description":            rec.Description,
			"priority":               rec.Priority,
			"category":               rec.Category,
			"estimated_time_minutes": rec.EstimatedTimeMinutes,
			"subtasks":               rec.Subtasks,
			"updated_at":             rec.UpdatedAt,
		})
	if err := result.Error; err != nil {
		log.Error("failed to update task", slog.Int64("task_id", task.ID), slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "update", "update failed", mapError(err))
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// Delete removes the task with the given id.
func (s *SQLiteTaskStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&taskRecord{}, "id = ?", id)
	if err := result.Error; err != nil {
		return store.NewStoreError("task", "delete", "delete failed", mapError(err))
	}
	if result.RowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// mapError translates SQLite constraint failures into store errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case strings.Contains(msg, "CHECK constraint failed"),
		strings.Contains(msg, "NOT NULL constraint failed"),
		strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return err
}
