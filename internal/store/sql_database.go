package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/migrations"
)

// DB is a database handle bound to one SQL dialect. Repositories build
// their statements through builder so placeholders match the driver.
type DB struct {
	*sql.DB
	dialect            migrations.Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect migrations.Dialect, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == migrations.Postgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:      conn,
		dialect: dialect,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		logger:  log,
	}
}

// Migrate applies the embedded migrations of the handle's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// classify reports whether err is worth retrying. Handles without a
// classifier never retry.
func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}

// openSQL opens and pings a pool for driver. maxOpen of zero leaves the
// driver default.
func openSQL(ctx context.Context, driver, dsn string, maxOpen int, log *logger.Logger) (*sql.DB, error) {
	log = &logger.Logger{Logger: log.With().Str("driver", driver).Logger()}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		log.Err(err).Msg("cannot open database")
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if maxOpen > 0 {
		conn.SetMaxOpenConns(maxOpen)
		conn.SetMaxIdleConns(min(maxOpen, 4))
	}

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		log.Err(err).Msg("database does not answer ping")
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}

	log.Info().Msg("database connected")
	return conn, nil
}
