// Package sqlite implements the store interfaces on SQLite through GORM.
// It backs local runs configured with a sqlite:// database URL and the
// in-process end-to-end tests; the schema is created with AutoMigrate.
package sqlite
