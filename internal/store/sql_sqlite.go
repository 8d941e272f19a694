package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/migrations"
)

// NewConnectSQLite opens the client's local database, creating the file and
// its directory on first start. SQLite serialises writers, so the pool
// holds a single connection.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	if err := ensureDBFile(cfg.DSN); err != nil {
		log.Err(err).Str("dsn", cfg.DSN).Msg("cannot prepare database file")
		return nil, err
	}

	conn, err := openSQL(ctx, "sqlite3", cfg.DSN, 1, log)
	if err != nil {
		return nil, err
	}
	return newDB(conn, migrations.SQLite, log), nil
}

func ensureDBFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create database dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create database file: %w", err)
	}
	return f.Close()
}
