package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/domain"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/service"
)

// getPathID extracts a positive integer id from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}

	return id, nil
}

// getPage reads skip and limit from the query string. Missing values take
// the defaults and out-of-range values are clamped; malformed numbers are an error.
func getPage(r *http.Request) (skip, limit int, err error) {
	q := r.URL.Query()

	if raw := strings.TrimSpace(q.Get("skip")); raw != "" {
		skip, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, domain.NewValidationError("skip", "must be an integer", domain.ErrValidation)
		}
	}
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, domain.NewValidationError("limit", "must be an integer", domain.ErrValidation)
		}
	}

	skip, limit = service.NormalizePage(skip, limit)
	return skip, limit, nil
}
