package domain

import (
	"strings"
	"time"
)

// Priority is the urgency level of a task.
type Priority string

// Known priorities. Values are case-sensitive.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Category is the area of life a task belongs to.
type Category string

// Known categories. Values are case-sensitive.
const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryLearning Category = "Learning"
	CategoryHealth   Category = "Health"
	CategoryOther    Category = "Other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryLearning, CategoryHealth, CategoryOther:
		return true
	default:
		return false
	}
}

// Task is a unit of work owned by a single user. Priority, category,
// time estimate and subtasks are filled in by classification on creation
// and may be edited afterwards.
type Task struct {
	ID                   int64     `json:"id"`
	Title                string    `json:"title"`
	Description          *string   `json:"description"`
	Priority             Priority  `json:"priority"`
	Category             Category  `json:"category"`
	EstimatedTimeMinutes *int      `json:"estimated_time_minutes"`
	Subtasks             *string   `json:"subtasks"`
	UserID               string    `json:"user_id"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// NewTask builds an unsaved task from user input and a classification.
// The ID is left at zero; the store assigns it on insert.
func NewTask(title string, description *string, userID string, c Classification) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:                title,
		Description:          description,
		Priority:             c.Priority,
		Category:             c.Category,
		EstimatedTimeMinutes: c.EstimatedTimeMinutes,
		Subtasks:             c.SubtasksText(),
		UserID:               userID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the task invariants that must hold before it is persisted.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}

	if strings.TrimSpace(t.UserID) == "" {
		return NewValidationError("user_id", "is required", ErrEmptyUserID)
	}

	if !t.Priority.Valid() {
		return NewValidationError("priority", "must be one of High, Medium, Low", ErrInvalidPriority)
	}

	if !t.Category.Valid() {
		return NewValidationError("category",
			"must be one of Work, Personal, Learning, Health, Other", ErrInvalidCategory)
	}

	if t.EstimatedTimeMinutes != nil && *t.EstimatedTimeMinutes <= 0 {
		return NewValidationError("estimated_time_minutes", "must be positive", ErrInvalidEstimate)
	}

	return nil
}

// TaskPatch carries a partial update. A nil field means the caller did not
// supply it and the stored value is kept.
type TaskPatch struct {
	Title                *string
	Description          *string
	Priority             *Priority
	Category             *Category
	EstimatedTimeMinutes *int
	Subtasks             *string
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.Category == nil && p.EstimatedTimeMinutes == nil && p.Subtasks == nil
}

// Apply copies every supplied field of the patch onto the task and
// refreshes UpdatedAt. It does not validate; call Validate afterwards.
func (t *Task) Apply(p TaskPatch, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.EstimatedTimeMinutes != nil {
		t.EstimatedTimeMinutes = p.EstimatedTimeMinutes
	}
	if p.Subtasks != nil {
		t.Subtasks = p.Subtasks
	}

	// Keep UpdatedAt strictly increasing even on coarse clocks.
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Microsecond)
	}
	t.UpdatedAt = now.UTC()
}
