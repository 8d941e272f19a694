package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/migrations"
)

const postgresMaxConns = 10

// NewConnectPostgres opens the relay's patch log database through pgx.
func NewConnectPostgres(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	conn, err := openSQL(ctx, "pgx", dsn, postgresMaxConns, log)
	if err != nil {
		return nil, err
	}

	db := newDB(conn, migrations.Postgres, log)
	db.errorClassificator = NewPostgresErrorClassifier()
	return db, nil
}

// postgresError returns the SQLSTATE of err, or "" for non-server errors.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
