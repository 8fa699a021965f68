package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/logger"
)

type sample struct {
	Name  string `json:"name"  validate:"required"`
	Count int    `json:"count" validate:"gte=0"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    sample
		wantErr error
		anyErr  bool
	}{
		{name: "valid", body: `{"name":"a","count":2}`, want: sample{Name: "a", Count: 2}},
		{name: "empty", body: "", wantErr: ErrEmptyBody},
		{name: "malformed", body: `{"name":`, anyErr: true},
		{name: "trailing value", body: `{"name":"a"}{"name":"b"}`, anyErr: true},
		{name: "wrong type", body: `{"count":"two"}`, anyErr: true},
		{name: "too large", body: `{"name":"` + strings.Repeat("x", MaxRequestBodyBytes) + `"}`, anyErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var got sample
			err := DecodeJSON(req, &got)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Body = nil
	assert.ErrorIs(t, DecodeJSON(req, &sample{}), ErrEmptyBody)
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return errors.New("not ok")
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sample{Name: "a"}))
	assert.Error(t, ValidateRequest(sample{Count: -1}))
	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.EqualError(t, ValidateRequest(selfValidating{}), "not ok")
}

func TestTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	assert.Len(t, GetTraceID(ctx), 36)

	_, ok := GetAdminSubject(ctx)
	assert.False(t, ok)
	subject, ok := GetAdminSubject(context.WithValue(ctx, AdminSubjectContextKey, "frontend"))
	assert.True(t, ok)
	assert.Equal(t, "frontend", subject)
}

func TestRespondWithErrorAndLog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"client error logs at debug", http.StatusBadRequest, `"level":"DEBUG"`},
		{"server error logs at error", http.StatusInternalServerError, `"level":"ERROR"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/1", nil)
			ctx := logger.WithLogger(SetTraceID(req.Context()), log)
			req = req.WithContext(ctx)
			rr := httptest.NewRecorder()

			RespondWithErrorAndLog(rr, req, tc.status, "Something failed",
				errors.New("connect postgres://admin:hunter2@db/tasks failed"))

			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "Something failed", resp.Detail)
			assert.Equal(t, GetTraceID(ctx), resp.TraceID)

			logged := buf.String()
			assert.Contains(t, logged, tc.wantLevel)
			assert.NotContains(t, logged, "hunter2")
		})
	}
}
