package frontend

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/api/shared"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/logger"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/redact"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/service/auth"
)

// AdminSubject is the subject of admin tokens minted by the proxy.
const AdminSubject = "frontend"

// Proxy forwards browser API calls to the backend.
type Proxy struct {
	backend   *url.URL
	staticDir string
	tokens    auth.TokenService
	proxy     *httputil.ReverseProxy
	logger    *slog.Logger
}

// NewProxy creates a Proxy for backendURL. tokens may be nil, in which case
// configuration calls are forwarded unsigned.
func NewProxy(backendURL, staticDir string, tokens auth.TokenService, logger *slog.Logger) (*Proxy, error) {
	backend, err := url.Parse(backendURL)
	if err != nil || backend.Scheme == "" || backend.Host == "" {
		return nil, fmt.Errorf("invalid backend URL %q", backendURL)
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Proxy{
		backend:   backend,
		staticDir: staticDir,
		tokens:    tokens,
		logger:    logger.With("component", "frontend_proxy"),
	}

	p.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(p.backend)
			pr.SetXForwarded()
		},
		ErrorHandler: p.handleProxyError,
	}

	return p, nil
}

// Handler returns the routes served to the browser.
func (p *Proxy) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", p.serveIndex)
	if p.staticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(p.staticDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/tasks/", p.forward(fixed("/api/v1/tasks/"), false))
		r.Get("/tasks/", func(w http.ResponseWriter, r *http.Request) {
			shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "GET not allowed on this endpoint")
		})

		r.Get("/tasks/{id:[0-9]+}", p.forward(taskPath, false))
		r.Put("/tasks/{id:[0-9]+}", p.forward(taskPath, false))
		r.Delete("/tasks/{id:[0-9]+}", p.forward(taskPath, false))

		r.Get("/users/{user_id}/tasks", p.forward(func(r *http.Request) string {
			return "/api/v1/users/" + chi.URLParam(r, "user_id") + "/tasks"
		}, false))

		r.Get("/health", p.forward(fixed("/health"), false))
		r.Get("/config", p.forward(fixed("/api/config"), false))
		r.Post("/update-config", p.forward(fixed("/api/update-config"), true))
		r.Post("/update-token", p.forward(fixed("/api/update-token"), true))
	})

	return r
}

func fixed(path string) func(*http.Request) string {
	return func(*http.Request) string { return path }
}

func taskPath(r *http.Request) string {
	return "/api/v1/tasks/" + chi.URLParam(r, "id")
}

// forward rewrites the request path and hands it to the reverse proxy.
// Admin calls carry a freshly minted token when token signing is enabled.
func (p *Proxy) forward(target func(*http.Request) string, admin bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := r.Clone(r.Context())
		out.URL.Path = target(r)
		out.URL.RawPath = ""

		if admin && p.tokens != nil {
			token, err := p.tokens.GenerateAdminToken(r.Context(), AdminSubject)
			if err != nil {
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"Failed to authorize configuration change", err)
				return
			}
			out.Header.Set("Authorization", "Bearer "+token)
		}

		logger.FromContextOrDefault(r.Context(), p.logger).Debug("forwarding request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("backend_path", out.URL.Path))

		p.proxy.ServeHTTP(w, out)
	}
}

func (p *Proxy) handleProxyError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContextOrDefault(r.Context(), p.logger).Error("backend request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", redact.Error(err)))
	shared.RespondWithError(w, r, http.StatusBadGateway, "Backend unavailable")
}

func (p *Proxy) serveIndex(w http.ResponseWriter, r *http.Request) {
	if p.staticDir == "" {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
		return
	}
	http.ServeFile(w, r, filepath.Join(p.staticDir, "index.html"))
}
