// Package postgres implements the store interfaces on PostgreSQL through the
// pgx database/sql driver. Schema changes live as goose SQL files embedded
// from the migrations directory and are applied with Migrate.
package postgres
