package sqlite

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// URLScheme prefixes database URLs served by this package.
const URLScheme = "sqlite://"

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// IsSQLiteURL reports whether url selects the SQLite backend.
func IsSQLiteURL(url string) bool {
	return strings.HasPrefix(url, URLScheme)
}

// PathFromURL extracts the file path from a sqlite:// URL.
// "sqlite:///./tasks.db" and "sqlite://tasks.db" both name a relative file,
// "sqlite:////var/data/tasks.db" an absolute one; an empty path or
// ":memory:" selects an in-memory database.
func PathFromURL(url string) (string, error) {
	if !IsSQLiteURL(url) {
		return "", fmt.Errorf("not a sqlite url: %q", url)
	}

	path := strings.TrimPrefix(url, URLScheme)
	path = strings.TrimPrefix(path, "/")
	if path == "" || path == MemoryPath {
		return MemoryPath, nil
	}
	return path, nil
}

// Open connects to the database named by url and migrates the schema.
func Open(url string, log *slog.Logger) (*gorm.DB, error) {
	path, err := PathFromURL(url)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.New(
			slog.NewLogLogger(log.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// SQLite serialises writers; one connection also keeps an in-memory
	// database shared by every query.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&taskRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("sqlite database ready", slog.String("path", path))
	return db, nil
}
