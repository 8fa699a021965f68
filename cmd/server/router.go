package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/api"
	apiMiddleware "github.com/Kemsekov/Ai-Tasks-Helper/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	configHandler := api.NewConfigHandler(app.settings, app.logger)
	adminAuth := apiMiddleware.NewAdminAuth(app.tokenService)

	r.Get("/", api.Root)
	r.Get("/health", api.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tasks/", taskHandler.CreateTask)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Put("/tasks/{id}", taskHandler.UpdateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
		r.Get("/users/{user_id}/tasks", taskHandler.ListUserTasks)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", configHandler.GetConfig)

		r.Group(func(r chi.Router) {
			r.Use(adminAuth.RequireAdmin)
			r.Post("/update-config", configHandler.UpdateConfig)
			r.Post("/update-token", configHandler.UpdateToken)
		})
	})

	c := cors.New(cors.Options{
		AllowedOrigins: app.config.Server.CORSAllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{apiMiddleware.TraceIDHeader},
	})

	return c.Handler(r)
}
