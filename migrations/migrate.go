// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed client/*.sql server/*.sql
var embedMigrations embed.FS

// Dialect selects both the goose dialect and the migration set to apply.
type Dialect string

const (
	// Postgres applies the relay schema (patch log, live records, heads).
	Postgres Dialect = "pgx"

	// SQLite applies the client schema (collection states, sync keys).
	SQLite Dialect = "sqlite3"
)

var migrationDirs = map[Dialect]string{
	Postgres: "server",
	SQLite:   "client",
}

// ErrNilDB is returned when Migrate is called without a connection.
var ErrNilDB = errors.New("db is nil")

func Migrate(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", ErrNilDB)
	}

	dir, ok := migrationDirs[dialect]
	if !ok {
		return fmt.Errorf("migration error: unsupported dialect %q", dialect)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
