package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/domain"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/store"
)

func newTestStore(t *testing.T) *SQLiteTaskStore {
	t.Helper()

	db, err := Open("sqlite://:memory:", nil)
	require.NoError(t, err)

	s, err := NewSQLiteTaskStore(db, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.DB().Close() })
	return s
}

func newTask(t *testing.T, title, userID string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, nil, userID, domain.FallbackClassification())
	require.NoError(t, err)
	return task
}

func TestPathFromURL(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{url: "sqlite://tasks.db", want: "tasks.db"},
		{url: "sqlite:///./tasks.db", want: "./tasks.db"},
		{url: "sqlite:////var/lib/tasks.db", want: "/var/lib/tasks.db"},
		{url: "sqlite://", want: MemoryPath},
		{url: "sqlite://:memory:", want: MemoryPath},
		{url: "postgres://localhost/db", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			got, err := PathFromURL(tc.url)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSQLiteTaskStore_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	desc := "Milk, eggs, bread"
	minutes := 30
	task, err := domain.NewTask("Buy groceries", &desc, "user-1", domain.Classification{
		Priority:             domain.PriorityMedium,
		Category:             domain.CategoryWork,
		EstimatedTimeMinutes: &minutes,
		Subtasks:             []string{"Step 1", "Step 2"},
	})
	require.NoError(t, err)

	require.NoError(t, s.Create(ctx, task))
	require.NotZero(t, task.ID)

	got, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy groceries", got.Title)
	assert.Equal(t, "Milk, eggs, bread", *got.Description)
	assert.Equal(t, domain.PriorityMedium, got.Priority)
	assert.Equal(t, domain.CategoryWork, got.Category)
	assert.Equal(t, 30, *got.EstimatedTimeMinutes)
	assert.Equal(t, `["Step 1","Step 2"]`, *got.Subtasks)
	assert.True(t, task.CreatedAt.Equal(got.CreatedAt))

	high := domain.PriorityHigh
	got.Apply(domain.TaskPatch{Priority: &high}, time.Now())
	require.NoError(t, s.Update(ctx, got))

	updated, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(task.CreatedAt))

	require.NoError(t, s.Delete(ctx, task.ID))
	assert.ErrorIs(t, s.Delete(ctx, task.ID), store.ErrTaskNotFound)
	_, err = s.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestSQLiteTaskStore_NullableFieldsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := newTask(t, "No extras", "user-1")
	task.EstimatedTimeMinutes = nil
	require.NoError(t, s.Create(ctx, task))

	got, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.EstimatedTimeMinutes)
	assert.Nil(t, got.Subtasks)
}

func TestSQLiteTaskStore_UpdateMissing(t *testing.T) {
	s := newTestStore(t)

	task := newTask(t, "Ghost", "user-1")
	task.ID = 404
	assert.ErrorIs(t, s.Update(context.Background(), task), store.ErrTaskNotFound)
}

func TestSQLiteTaskStore_RejectsInvalidTask(t *testing.T) {
	s := newTestStore(t)

	task := newTask(t, "Bad", "user-1")
	task.Category = "Chores"

	err := s.Create(context.Background(), task)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestSQLiteTaskStore_CheckConstraint(t *testing.T) {
	s := newTestStore(t)

	err := s.db.Exec(`INSERT INTO tasks (title, priority, category, user_id, created_at, updated_at)
		VALUES ('x', 'urgent', 'Work', 'u', ?, ?)`, time.Now(), time.Now()).Error
	require.Error(t, err)
	assert.ErrorIs(t, mapError(err), store.ErrInvalidEntity)
}

func TestSQLiteTaskStore_ListByUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Create(ctx, newTask(t, fmt.Sprintf("mine %d", i), "alice")))
	}
	require.NoError(t, s.Create(ctx, newTask(t, "theirs", "bob")))

	tests := []struct {
		name      string
		userID    string
		offset    int
		limit     int
		wantCount int
		wantFirst string
	}{
		{name: "all of alice", userID: "alice", offset: 0, limit: 100, wantCount: 5, wantFirst: "mine 0"},
		{name: "offset", userID: "alice", offset: 3, limit: 100, wantCount: 2, wantFirst: "mine 3"},
		{name: "limit", userID: "alice", offset: 0, limit: 2, wantCount: 2, wantFirst: "mine 0"},
		{name: "other user", userID: "bob", offset: 0, limit: 100, wantCount: 1, wantFirst: "theirs"},
		{name: "unknown user", userID: "carol", offset: 0, limit: 100, wantCount: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tasks, err := s.ListByUser(ctx, tc.userID, tc.offset, tc.limit)
			require.NoError(t, err)
			require.NotNil(t, tasks)
			require.Len(t, tasks, tc.wantCount)
			for _, task := range tasks {
				assert.Equal(t, tc.userID, task.UserID)
			}
			if tc.wantCount > 0 {
				assert.Equal(t, tc.wantFirst, tasks[0].Title)
			}
		})
	}
}

func TestSQLiteTaskStore_WithTxRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	var createdID int64
	err := store.RunInTransaction(ctx, s.DB(), func(ctx context.Context, tx *sql.Tx) error {
		task := newTask(t, "Rolled back", "user-1")
		if err := s.WithTx(tx).Create(ctx, task); err != nil {
			return err
		}
		createdID = task.ID
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NotZero(t, createdID)

	_, err = s.GetByID(ctx, createdID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestSQLiteTaskStore_WithTxCommits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := newTask(t, "Committed", "user-1")
	err := store.RunInTransaction(ctx, s.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).Create(ctx, task)
	})
	require.NoError(t, err)

	got, err := s.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Committed", got.Title)
}
