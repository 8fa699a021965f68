package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/domain"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/mocks"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/store"
)

// mockTaskStore is a testify mock of store.TaskStore backed by a sqlmock
// connection so RunInTransaction has something to begin and roll back.
type mockTaskStore struct {
	mock.Mock
	db *sql.DB
}

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskStore) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*domain.Task, error) {
	args := m.Called(ctx, userID, offset, limit)
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Error(1)
}

func (m *mockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockTaskStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTaskStore) WithTx(*sql.Tx) store.TaskStore { return m }

func (m *mockTaskStore) DB() *sql.DB { return m.db }

func newMockedService(t *testing.T) (TaskService, *mockTaskStore, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := &mockTaskStore{db: db}
	svc, err := NewTaskService(repo, mocks.NewFallbackClassifier(),
		config.NewProviderHolder(config.ProviderSettings{}), nil)
	require.NoError(t, err)
	return svc, repo, sqlMock
}

func TestCreateTask_PersistenceFailures(t *testing.T) {
	dbDown := errors.New("connection refused")

	tests := []struct {
		name         string
		storeErr     error
		wantSentinel error
		wantWrapped  bool
	}{
		{
			name:         "constraint violation is client error",
			storeErr:     store.NewStoreError("task", "create", "insert failed", store.ErrInvalidEntity),
			wantSentinel: ErrInvalidInput,
		},
		{
			name:         "duplicate is client error",
			storeErr:     fmt.Errorf("%w: id", store.ErrDuplicate),
			wantSentinel: ErrInvalidInput,
		},
		{
			name:        "unexpected failure is wrapped",
			storeErr:    dbDown,
			wantWrapped: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, sqlMock := newMockedService(t)
			sqlMock.ExpectBegin()
			sqlMock.ExpectRollback()
			repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Task")).Return(tc.storeErr)

			task, _, err := svc.CreateTask(context.Background(), CreateTaskInput{Title: "t", UserID: "u"})
			assert.Nil(t, task)
			if tc.wantSentinel != nil {
				assert.ErrorIs(t, err, tc.wantSentinel)
			}
			if tc.wantWrapped {
				var svcErr *ServiceError
				require.ErrorAs(t, err, &svcErr)
				assert.Equal(t, "create_task", svcErr.Operation)
				assert.ErrorIs(t, err, dbDown)
				assert.NotErrorIs(t, err, ErrInvalidInput)
			}
			repo.AssertExpectations(t)
			assert.NoError(t, sqlMock.ExpectationsWereMet(), "transaction must be rolled back")
		})
	}
}

func TestListUserTasks_PassesNormalizedPage(t *testing.T) {
	svc, repo, _ := newMockedService(t)
	repo.On("ListByUser", mock.Anything, "alice", 0, 100).Return([]*domain.Task{}, nil)

	tasks, err := svc.ListUserTasks(context.Background(), "alice", -1, 0)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	repo.AssertExpectations(t)
}

func TestNewServiceError(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"store not found", store.ErrTaskNotFound, ErrTaskNotFound},
		{"wrapped store not found", store.NewStoreError("task", "get", "x", store.ErrTaskNotFound), ErrTaskNotFound},
		{"domain validation", domain.NewValidationError("title", "is required", domain.ErrEmptyTitle), ErrInvalidInput},
		{"invalid entity", store.ErrInvalidEntity, ErrInvalidInput},
		{"unexpected", cause, cause},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, NewServiceError("op", "msg", tc.err), tc.want)
		})
	}

	assert.NoError(t, NewServiceError("op", "msg", nil))
	assert.Same(t, ErrTaskNotFound, NewServiceError("op", "msg", store.ErrTaskNotFound))

	err := &ServiceError{Operation: "delete_task", Message: "failed", Err: cause}
	assert.Equal(t, "task service delete_task failed: failed: disk full", err.Error())
	assert.Equal(t, "task service x failed: y", (&ServiceError{Operation: "x", Message: "y"}).Error())
}
