// Package postgres provides the PostgreSQL implementation of the storage
// interfaces defined in internal/store. It owns connection setup through the
// pgx database/sql driver, schema migrations with goose, and the mapping of
// PostgreSQL errors onto store errors.
package postgres
