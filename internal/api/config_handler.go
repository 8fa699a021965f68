package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/api/shared"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/logger"
)

// ConfigHandler exposes and mutates the process-wide provider settings.
type ConfigHandler struct {
	settings *config.ProviderHolder
	logger   *slog.Logger
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(settings *config.ProviderHolder, logger *slog.Logger) *ConfigHandler {
	if settings == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("settings cannot be nil for ConfigHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ConfigHandler{
		settings: settings,
		logger:   logger.With(slog.String("component", "config_handler")),
	}
}

// GetConfig handles GET /api/config requests
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, configToResponse(h.settings.Get()))
}

// UpdateConfig handles POST /api/update-config requests.
// Endpoint, token and model are swapped in together.
func (h *ConfigHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req UpdateConfigRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	req.ProviderURL = strings.TrimSpace(req.ProviderURL)
	req.APIToken = strings.TrimSpace(req.APIToken)
	req.ModelName = strings.TrimSpace(req.ModelName)

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	updated := h.settings.Update(func(s config.ProviderSettings) config.ProviderSettings {
		s.BaseURL = req.ProviderURL
		s.APIToken = req.APIToken
		s.Model = req.ModelName
		return s
	})

	subject, _ := shared.GetAdminSubject(r.Context())
	log.Info("provider configuration updated",
		slog.String("provider_url", updated.BaseURL),
		slog.String("model", updated.Model),
		slog.Int("token_length", len(updated.APIToken)),
		slog.String("admin_subject", subject))

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Configuration updated successfully"})
}

// UpdateToken handles POST /api/update-token requests
func (h *ConfigHandler) UpdateToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req UpdateTokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	req.Token = strings.TrimSpace(req.Token)

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	updated := h.settings.SetToken(req.Token)

	subject, _ := shared.GetAdminSubject(r.Context())
	log.Info("provider token updated",
		slog.Int("token_length", len(updated.APIToken)),
		slog.String("admin_subject", subject))

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Token updated successfully"})
}
