package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/domain"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/store"
)

var rowColumns = []string{
	"id", "title", "description", "priority", "category", "estimated_time_minutes",
	"subtasks", "user_id", "created_at", "updated_at",
}

func newMockStore(t *testing.T) (*PostgresTaskStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresTaskStore(db, nil), mock
}

func sampleTask(t *testing.T) *domain.Task {
	t.Helper()
	desc := "Milk, eggs, bread"
	minutes := 30
	task, err := domain.NewTask("Buy groceries", &desc, "user-1", domain.Classification{
		Priority:             domain.PriorityMedium,
		Category:             domain.CategoryWork,
		EstimatedTimeMinutes: &minutes,
		Subtasks:             []string{"Step 1", "Step 2"},
	})
	require.NoError(t, err)
	return task
}

func TestPostgresTaskStore_Create(t *testing.T) {
	s, mock := newMockStore(t)
	task := sampleTask(t)

	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs("Buy groceries", "Milk, eggs, bread", "Medium", "Work", 30,
			`["Step 1","Step 2"]`, "user-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	require.NoError(t, s.Create(context.Background(), task))
	assert.Equal(t, int64(7), task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_Create_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		mutate  func(*domain.Task)
		wantErr error
	}{
		{
			name:    "invalid task never reaches the database",
			mutate:  func(task *domain.Task) { task.Priority = "urgent" },
			wantErr: store.ErrInvalidEntity,
		},
		{
			name:    "check violation",
			dbErr:   &pgconn.PgError{Code: checkViolationCode, ConstraintName: "tasks_priority_check"},
			wantErr: store.ErrInvalidEntity,
		},
		{
			name:    "unique violation",
			dbErr:   &pgconn.PgError{Code: uniqueViolationCode},
			wantErr: store.ErrDuplicate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			task := sampleTask(t)
			if tc.mutate != nil {
				tc.mutate(task)
			}
			if tc.dbErr != nil {
				mock.ExpectQuery("INSERT INTO tasks").WillReturnError(tc.dbErr)
			}

			err := s.Create(context.Background(), task)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Zero(t, task.ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresTaskStore_GetByID(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE id = \\$1").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(int64(3), "Read book", nil, "Low", "Learning", nil, nil, "user-2", now, now))

	task, err := s.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), task.ID)
	assert.Equal(t, domain.PriorityLow, task.Priority)
	assert.Equal(t, domain.CategoryLearning, task.Category)
	assert.Nil(t, task.Description)
	assert.Nil(t, task.EstimatedTimeMinutes)
	assert.Nil(t, task.Subtasks)
	assert.Equal(t, now, task.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_GetByID_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM tasks").WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestPostgresTaskStore_ListByUser(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM tasks WHERE user_id = \\$1 ORDER BY id ASC OFFSET \\$2 LIMIT \\$3").
		WithArgs("user-1", 0, 100).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(int64(1), "a", "d", "High", "Work", int64(15), `["x"]`, "user-1", now, now).
			AddRow(int64(2), "b", nil, "Low", "Other", nil, nil, "user-1", now, now))

	tasks, err := s.ListByUser(context.Background(), "user-1", 0, 100)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, 15, *tasks[0].EstimatedTimeMinutes)
	assert.Equal(t, `["x"]`, *tasks[0].Subtasks)
	assert.Equal(t, int64(2), tasks[1].ID)
}

func TestPostgresTaskStore_ListByUser_Empty(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM tasks").WillReturnRows(sqlmock.NewRows(rowColumns))

	tasks, err := s.ListByUser(context.Background(), "nobody", 0, 100)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestPostgresTaskStore_UpdateAndDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		run      func(s *PostgresTaskStore) error
		expect   string
		wantErr  error
	}{
		{
			name:     "update existing",
			affected: 1,
			expect:   "UPDATE tasks",
			run: func(s *PostgresTaskStore) error {
				task := sampleTask(t)
				task.ID = 1
				return s.Update(context.Background(), task)
			},
		},
		{
			name:    "update missing",
			expect:  "UPDATE tasks",
			wantErr: store.ErrTaskNotFound,
			run: func(s *PostgresTaskStore) error {
				task := sampleTask(t)
				task.ID = 42
				return s.Update(context.Background(), task)
			},
		},
		{
			name:     "delete existing",
			affected: 1,
			expect:   "DELETE FROM tasks",
			run:      func(s *PostgresTaskStore) error { return s.Delete(context.Background(), 1) },
		},
		{
			name:    "delete missing",
			expect:  "DELETE FROM tasks",
			wantErr: store.ErrTaskNotFound,
			run:     func(s *PostgresTaskStore) error { return s.Delete(context.Background(), 1) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			mock.ExpectExec(tc.expect).WillReturnResult(sqlmock.NewResult(0, tc.affected))

			err := tc.run(s)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresTaskStore_WithTx(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM tasks").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.RunInTransaction(context.Background(), s.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).Delete(ctx, 5)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"unique", &pgconn.PgError{Code: uniqueViolationCode}, store.ErrDuplicate},
		{"foreign key", &pgconn.PgError{Code: foreignKeyViolationCode}, store.ErrInvalidEntity},
		{"check", &pgconn.PgError{Code: checkViolationCode}, store.ErrInvalidEntity},
		{"not null", &pgconn.PgError{Code: notNullViolationCode, ColumnName: "title"}, store.ErrInvalidEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}

	other := errors.New("connection reset")
	assert.Same(t, other, MapError(other))
	assert.True(t, IsCheckConstraintViolation(&pgconn.PgError{Code: checkViolationCode}))
	assert.False(t, IsCheckConstraintViolation(other))
}
