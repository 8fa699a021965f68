package api

import (
	"time"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/domain"
)

// CreateTaskRequest defines the payload for the create task endpoint.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,max=500"`
	Description *string `json:"description"`
	UserID      string  `json:"user_id"     validate:"required,max=255"`
}

// UpdateTaskRequest defines the payload for the update task endpoint.
// Only the supplied fields are changed; a JSON null counts as not supplied.
type UpdateTaskRequest struct {
	Title                *string `json:"title"                  validate:"omitempty,min=1,max=500"`
	Description          *string `json:"description"`
	Priority             *string `json:"priority"               validate:"omitempty,oneof=High Medium Low"`
	Category             *string `json:"category"               validate:"omitempty,oneof=Work Personal Learning Health Other"`
	EstimatedTimeMinutes *int    `json:"estimated_time_minutes" validate:"omitempty,gt=0"`
	Subtasks             *string `json:"subtasks"`
}

// Patch converts the request into a domain patch.
func (r UpdateTaskRequest) Patch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:                r.Title,
		Description:          r.Description,
		EstimatedTimeMinutes: r.EstimatedTimeMinutes,
		Subtasks:             r.Subtasks,
	}
	if r.Priority != nil {
		p := domain.Priority(*r.Priority)
		patch.Priority = &p
	}
	if r.Category != nil {
		c := domain.Category(*r.Category)
		patch.Category = &c
	}
	return patch
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID                   int64     `json:"id"`
	Title                string    `json:"title"`
	Description          *string   `json:"description"`
	Priority             string    `json:"priority"`
	Category             string    `json:"category"`
	EstimatedTimeMinutes *int      `json:"estimated_time_minutes"`
	Subtasks             *string   `json:"subtasks"`
	UserID               string    `json:"user_id"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	// AIProcessed is only meaningful on create; other endpoints report false.
	AIProcessed bool `json:"ai_processed"`
}

func taskToResponse(task *domain.Task, aiProcessed bool) TaskResponse {
	return TaskResponse{
		ID:                   task.ID,
		Title:                task.Title,
		Description:          task.Description,
		Priority:             string(task.Priority),
		Category:             string(task.Category),
		EstimatedTimeMinutes: task.EstimatedTimeMinutes,
		Subtasks:             task.Subtasks,
		UserID:               task.UserID,
		CreatedAt:            task.CreatedAt,
		UpdatedAt:            task.UpdatedAt,
		AIProcessed:          aiProcessed,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t, false))
	}
	return out
}

// ConfigResponse describes the current provider settings. The token itself
// is never returned.
type ConfigResponse struct {
	Provider        string `json:"provider"`
	ProviderURL     string `json:"provider_url"`
	Model           string `json:"model"`
	TokenConfigured bool   `json:"token_configured"`
}

func configToResponse(s config.ProviderSettings) ConfigResponse {
	return ConfigResponse{
		Provider:        s.Provider,
		ProviderURL:     s.BaseURL,
		Model:           s.Model,
		TokenConfigured: s.TokenConfigured(),
	}
}

// UpdateConfigRequest replaces the provider endpoint, token and model together.
type UpdateConfigRequest struct {
	ProviderURL string `json:"provider_url" validate:"required,url"`
	APIToken    string `json:"api_token"    validate:"required"`
	ModelName   string `json:"model_name"   validate:"required"`
}

// UpdateTokenRequest replaces only the provider token.
type UpdateTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse is returned by the health check.
type StatusResponse struct {
	Status string `json:"status"`
}
