package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/classify"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/service"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/service/auth"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	tasks    store.TaskStore
	settings *config.ProviderHolder

	classifier   service.Classifier
	taskService  service.TaskService
	tokenService auth.TokenService // nil when no admin secret is configured
}

type applicationOptions struct {
	migrate bool
	// tasks and classifier replace the real implementations in tests.
	tasks      store.TaskStore
	classifier service.Classifier
}

// newApplication wires the stores, provider integration and services.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	opts applicationOptions,
) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		settings: config.NewProviderHolder(cfg.LLM.ProviderSettings()),
		tasks:    opts.tasks,
	}

	var err error
	if app.tasks == nil {
		app.tasks, err = openTaskStore(ctx, cfg.Database, opts.migrate, logger)
		if err != nil {
			return nil, err
		}
	}

	app.classifier = opts.classifier
	if app.classifier == nil {
		app.classifier, err = classify.NewClient(
			newProviderFactory(ctx, cfg.LLM, logger),
			classify.Options{MaxAttempts: cfg.LLM.MaxAttempts, Backoff: cfg.LLM.RetryBackoff()},
			logger,
		)
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to create classification client: %w", err)
		}
	}

	app.taskService, err = service.NewTaskService(app.tasks, app.classifier, app.settings, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	if cfg.Auth.AdminSecret != "" {
		app.tokenService, err = auth.NewTokenService(cfg.Auth)
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to initialize admin token service: %w", err)
		}
		logger.Info("admin authentication enabled for configuration endpoints",
			"token_lifetime_minutes", cfg.Auth.AdminTokenLifetimeMinutes)
	} else {
		logger.Warn("no admin secret configured; configuration endpoints are unauthenticated")
	}

	logger.Info("application initialized",
		"provider", cfg.LLM.Provider,
		"max_attempts", cfg.LLM.MaxAttempts)
	return app, nil
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.tasks != nil {
		if err := app.tasks.DB().Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
