// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. PostgreSQL and SQLite implementations live
// under internal/platform.
package store
