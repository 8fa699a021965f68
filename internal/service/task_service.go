package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/domain"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/logger"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/store"
)

// Classifier derives a classification for a task. Implementations never
// fail; they fall back to domain.FallbackClassification instead.
type Classifier interface {
	Classify(ctx context.Context, title, description string, settings config.ProviderSettings) domain.Classification
}

// SettingsSource supplies the current process-wide provider settings.
type SettingsSource interface {
	Get() config.ProviderSettings
}

// CreateTaskInput carries the data for a new task.
type CreateTaskInput struct {
	Title       string
	Description *string
	UserID      string
	// Overrides replace the process-wide provider settings for this call only.
	Overrides config.ProviderOverrides
}

// TaskService provides the task lifecycle operations.
type TaskService interface {
	// CreateTask classifies and stores a new task. The boolean reports
	// whether the classification came from the provider rather than the fallback.
	CreateTask(ctx context.Context, in CreateTaskInput) (*domain.Task, bool, error)

	// GetTask returns a task by id or ErrTaskNotFound.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// ListUserTasks returns a page of a user's tasks in insertion order.
	ListUserTasks(ctx context.Context, userID string, skip, limit int) ([]*domain.Task, error)

	// UpdateTask applies a partial update or returns ErrTaskNotFound.
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask removes a task or returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, id int64) error
}

type taskServiceImpl struct {
	tasks      store.TaskStore
	classifier Classifier
	settings   SettingsSource
	now        func() time.Time
	logger     *slog.Logger
}

// NewTaskService creates a TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	tasks store.TaskStore,
	classifier Classifier,
	settings SettingsSource,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "task store cannot be nil"}
	}
	if classifier == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "classifier cannot be nil"}
	}
	if settings == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "settings cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:      tasks,
		classifier: classifier,
		settings:   settings,
		now:        time.Now,
		logger:     logger.With("component", "task_service"),
	}, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, in CreateTaskInput) (*domain.Task, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(in.Title) == "" {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalidInput,
			domain.NewValidationError("title", "is required", domain.ErrEmptyTitle))
	}
	if strings.TrimSpace(in.UserID) == "" {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalidInput,
			domain.NewValidationError("user_id", "is required", domain.ErrEmptyUserID))
	}

	description := ""
	if in.Description != nil {
		description = *in.Description
	}

	// Snapshot once so a concurrent settings update cannot split this call.
	settings := s.settings.Get().Merge(in.Overrides)
	classification := s.classifier.Classify(ctx, in.Title, description, settings)

	task, err := domain.NewTask(in.Title, in.Description, in.UserID, classification)
	if err != nil {
		log.Warn("classified task failed validation", "error", err, "user_id", in.UserID)
		return nil, false, NewServiceError("create_task", "invalid task", err)
	}

	err = store.RunInTransaction(ctx, s.tasks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		log.Error("failed to save task", "error", err, "user_id", in.UserID)
		return nil, false, NewServiceError("create_task", "failed to save task", err)
	}

	aiProcessed := !classification.UsedFallback
	log.Info("task created",
		"task_id", task.ID,
		"user_id", task.UserID,
		"ai_processed", aiProcessed)

	return task, aiProcessed, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve task",
				"error", err, "task_id", id)
		}
		return nil, NewServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// NormalizePage clamps pagination parameters: negative skip becomes 0, a
// non-positive limit becomes the default and limits above the maximum are capped.
func NormalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	if limit > store.MaxListLimit {
		limit = store.MaxListLimit
	}
	return skip, limit
}

func (s *taskServiceImpl) ListUserTasks(ctx context.Context, userID string, skip, limit int) ([]*domain.Task, error) {
	skip, limit = NormalizePage(skip, limit)

	tasks, err := s.tasks.ListByUser(ctx, userID, skip, limit)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			"error", err, "user_id", userID)
		return nil, NewServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.tasks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.tasks.WithTx(tx)

		task, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.IsEmpty() {
			updated = task
			return nil
		}

		task.Apply(patch, s.now())
		if err := task.Validate(); err != nil {
			return err
		}
		if err := txStore.Update(ctx, task); err != nil {
			return err
		}

		updated = task
		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			log.Error("failed to update task", "error", err, "task_id", id)
		}
		return nil, NewServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated", "task_id", id)
	return updated, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	err := store.RunInTransaction(ctx, s.tasks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.tasks.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task",
				"error", err, "task_id", id)
		}
		return NewServiceError("delete_task", "failed to delete task", err)
	}
	return nil
}
