package api

import (
	"net/http"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/api/shared"
)

// Root handles GET / requests
func Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "AI Task Manager API"})
}

// Health handles GET /health requests
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{Status: "healthy"})
}
