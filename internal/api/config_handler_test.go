package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/api/shared"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
)

func newConfigRouter(holder *config.ProviderHolder) http.Handler {
	h := NewConfigHandler(holder, nil)
	r := chi.NewRouter()
	r.Get("/api/config", h.GetConfig)
	r.Post("/api/update-config", h.UpdateConfig)
	r.Post("/api/update-token", h.UpdateToken)
	return r
}

func initialSettings() config.ProviderSettings {
	return config.ProviderSettings{
		Provider: "openai",
		BaseURL:  "https://openrouter.ai/api/v1",
		APIToken: "sk-or-secret-token",
		Model:    "openai/gpt-4o-mini",
	}
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetConfig_NeverReturnsToken(t *testing.T) {
	holder := config.NewProviderHolder(initialSettings())
	rr := serve(newConfigRouter(holder), http.MethodGet, "/api/config", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "sk-or-secret-token")

	var resp ConfigResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, ConfigResponse{
		Provider:        "openai",
		ProviderURL:     "https://openrouter.ai/api/v1",
		Model:           "openai/gpt-4o-mini",
		TokenConfigured: true,
	}, resp)

	holder.SetToken("")
	rr = serve(newConfigRouter(holder), http.MethodGet, "/api/config", "")
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.TokenConfigured)
}

func TestUpdateConfig(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantDetail string
		want       config.ProviderSettings
	}{
		{
			name:       "replaces all three",
			body:       `{"provider_url":"https://api.example.com/v1","api_token":"sk-new","model_name":"gpt-x"}`,
			wantStatus: http.StatusOK,
			want: config.ProviderSettings{
				Provider: "openai",
				BaseURL:  "https://api.example.com/v1",
				APIToken: "sk-new",
				Model:    "gpt-x",
			},
		},
		{
			name:       "missing model",
			body:       `{"provider_url":"https://api.example.com/v1","api_token":"sk-new"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Invalid model_name: required field",
			want:       initialSettings(),
		},
		{
			name:       "blank token",
			body:       `{"provider_url":"https://api.example.com/v1","api_token":"   ","model_name":"m"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Invalid api_token: required field",
			want:       initialSettings(),
		},
		{
			name:       "bad url",
			body:       `{"provider_url":"example","api_token":"t","model_name":"m"}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Invalid provider_url: invalid URL",
			want:       initialSettings(),
		},
		{
			name:       "malformed",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Invalid request format",
			want:       initialSettings(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			holder := config.NewProviderHolder(initialSettings())
			rr := serve(newConfigRouter(holder), http.MethodPost, "/api/update-config", tc.body)

			require.Equal(t, tc.wantStatus, rr.Code, rr.Body.String())
			if tc.wantDetail != "" {
				var resp shared.ErrorResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tc.wantDetail, resp.Detail)
			} else {
				assert.JSONEq(t, `{"message":"Configuration updated successfully"}`, rr.Body.String())
			}
			assert.Equal(t, tc.want, holder.Get())
		})
	}
}

func TestUpdateToken(t *testing.T) {
	holder := config.NewProviderHolder(initialSettings())
	router := newConfigRouter(holder)

	rr := serve(router, http.MethodPost, "/api/update-token", `{"token":"sk-rotated"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Token updated successfully"}`, rr.Body.String())

	want := initialSettings()
	want.APIToken = "sk-rotated"
	assert.Equal(t, want, holder.Get())

	rr = serve(router, http.MethodPost, "/api/update-token", `{"token":""}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, want, holder.Get())

	rr = serve(router, http.MethodPost, "/api/update-token", ``)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestConfigUpdates_ReadersSeeWholeSnapshots(t *testing.T) {
	holder := config.NewProviderHolder(config.ProviderSettings{
		Provider: "openai", BaseURL: "https://a.example.com", APIToken: "token-a", Model: "model-a",
	})
	router := newConfigRouter(holder)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		bodies := []string{
			`{"provider_url":"https://a.example.com","api_token":"token-a","model_name":"model-a"}`,
			`{"provider_url":"https://b.example.com","api_token":"token-b","model_name":"model-b"}`,
		}
		for i := 0; ctx.Err() == nil; i++ {
			serve(router, http.MethodPost, "/api/update-config", bodies[i%2])
		}
	}()

	for i := 0; i < 500; i++ {
		s := holder.Get()
		suffix := s.BaseURL[len("https://")]
		assert.Equal(t, "token-"+string(suffix), s.APIToken)
		assert.Equal(t, "model-"+string(suffix), s.Model)
	}

	cancel()
	wg.Wait()
}

func TestNewConfigHandler_NilHolder(t *testing.T) {
	assert.Panics(t, func() { NewConfigHandler(nil, nil) })
}

func TestRootAndHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	Root(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"AI Task Manager API"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())
}
