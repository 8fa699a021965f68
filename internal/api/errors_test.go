package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/api/shared"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/domain"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/service"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/service/auth"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", fmt.Errorf("wrap: %w", auth.ErrExpiredToken), http.StatusUnauthorized},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"wrong role", auth.ErrWrongRole, http.StatusForbidden},
		{"service not found", service.ErrTaskNotFound, http.StatusNotFound},
		{"store not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"invalid input", fmt.Errorf("%w: %w", service.ErrInvalidInput, store.ErrInvalidEntity), http.StatusBadRequest},
		{"domain validation", domain.NewValidationError("title", "is required", domain.ErrEmptyTitle), http.StatusBadRequest},
		{"duplicate", store.ErrDuplicate, http.StatusBadRequest},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"service error", &service.ServiceError{Operation: "x", Message: "y", Err: errors.New("z")}, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"expired", auth.ErrExpiredToken, "Token expired"},
		{"invalid", auth.ErrInvalidToken, "Invalid token"},
		{"wrong role", auth.ErrWrongRole, "Admin access required"},
		{"not found", service.ErrTaskNotFound, "Task not found"},
		{
			"field validation",
			fmt.Errorf("%w: %w", service.ErrInvalidInput,
				domain.NewValidationError("priority", "must be one of High, Medium, Low", domain.ErrInvalidPriority)),
			"Invalid priority: must be one of High, Medium, Low",
		},
		{"store constraint", fmt.Errorf("%w: %w", service.ErrInvalidInput, store.ErrInvalidEntity), "Invalid task data"},
		{"empty body", shared.ErrEmptyBody, "Request body is required"},
		{"internal", errors.New("pq: password authentication failed for user admin"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	tests := []struct {
		name string
		req  interface{}
		want string
	}{
		{"required", CreateTaskRequest{UserID: "u"}, "Invalid title: required field"},
		{"oneof", UpdateTaskRequest{Category: strPtr("Chores")}, "Invalid category: invalid value"},
		{"url", UpdateConfigRequest{ProviderURL: "not a url", APIToken: "t", ModelName: "m"}, "Invalid provider_url: invalid URL"},
		{"positive", UpdateTaskRequest{EstimatedTimeMinutes: intPtr(-1)}, "Invalid estimated_time_minutes: must be positive"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := shared.ValidateRequest(tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.want, SanitizeValidationError(err))
		})
	}

	assert.Equal(t, "Invalid user_id: is required",
		SanitizeValidationError(domain.NewValidationError("user_id", "is required", domain.ErrEmptyUserID)))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		message    string
		wantStatus int
		wantDetail string
	}{
		{"derived message", service.ErrTaskNotFound, "", http.StatusNotFound, "Task not found"},
		{"custom client message", domain.NewValidationError("id", "bad", domain.ErrInvalidID), "Invalid task ID", http.StatusBadRequest, "Invalid task ID"},
		{"custom message ignored for 5xx", errors.New("secret dsn"), "secret dsn leaked", http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(shared.SetTraceID(req.Context()))
			rr := httptest.NewRecorder()

			HandleAPIError(rr, req, tc.err, tc.message)

			require.Equal(t, tc.wantStatus, rr.Code)
			var resp shared.ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tc.wantDetail, resp.Detail)
			assert.Equal(t, shared.GetTraceID(req.Context()), resp.TraceID)
		})
	}
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
