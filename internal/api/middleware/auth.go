package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/api/shared"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/logger"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/redact"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/service/auth"
)

// AdminAuth guards the runtime configuration routes with admin tokens.
type AdminAuth struct {
	tokens auth.TokenService
}

// NewAdminAuth creates the middleware. A nil token service leaves guarded
// routes open, which is how the server runs without an admin secret.
func NewAdminAuth(tokens auth.TokenService) *AdminAuth {
	return &AdminAuth{tokens: tokens}
}

// Enabled reports whether requests are actually checked.
func (m *AdminAuth) Enabled() bool {
	return m.tokens != nil
}

// RequireAdmin validates the bearer token and stores its subject in the
// request context.
func (m *AdminAuth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.tokens == nil {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" || token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.tokens.ValidateAdminToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrWrongRole):
				shared.RespondWithError(w, r, http.StatusForbidden, "Admin access required")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrMissingToken),
				errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContext(r.Context()).Error("failed to validate admin token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.AdminSubjectContextKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
