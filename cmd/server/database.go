package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql

	"github.com/Kemsekov/Ai-Tasks-Helper/internal/config"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/postgres"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/platform/sqlite"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/redact"
	"github.com/Kemsekov/Ai-Tasks-Helper/internal/store"
)

// errSQLiteMigrations is returned for migrate commands other than "up"
// against SQLite, whose schema is created automatically on open.
var errSQLiteMigrations = errors.New("sqlite schema is managed automatically; only 'migrate up' is supported")

// openPostgres establishes a connection to PostgreSQL and configures the pool.
func openPostgres(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %s", redact.Error(err))
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %s", redact.Error(err))
	}

	log.Info("database connection established", "driver", "pgx")
	return db, nil
}

// openTaskStore selects the store implementation from the database URL:
// sqlite:// URLs use the embedded GORM store, anything else PostgreSQL.
func openTaskStore(
	ctx context.Context,
	cfg config.DatabaseConfig,
	migrate bool,
	log *slog.Logger,
) (store.TaskStore, error) {
	if sqlite.IsSQLiteURL(cfg.URL) {
		gdb, err := sqlite.Open(cfg.URL, log)
		if err != nil {
			return nil, err
		}
		tasks, err := sqlite.NewSQLiteTaskStore(gdb, log)
		if err != nil {
			return nil, err
		}
		log.Info("database connection established", "driver", "sqlite")
		return tasks, nil
	}

	db, err := openPostgres(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if migrate {
		if err := postgres.Migrate(ctx, db, postgres.MigrateUp, log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return postgres.NewPostgresTaskStore(db, log), nil
}

// runMigrations executes a migration command against the configured database.
func runMigrations(ctx context.Context, cfg config.DatabaseConfig, command string, log *slog.Logger) error {
	if sqlite.IsSQLiteURL(cfg.URL) {
		if command != postgres.MigrateUp {
			return errSQLiteMigrations
		}
		gdb, err := sqlite.Open(cfg.URL, log)
		if err != nil {
			return err
		}
		db, err := gdb.DB()
		if err != nil {
			return fmt.Errorf("failed to get sqlite connection: %w", err)
		}
		log.Info("sqlite schema is up to date")
		return db.Close()
	}

	db, err := openPostgres(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", "error", err)
		}
	}()

	return postgres.Migrate(ctx, db, command, log)
}
