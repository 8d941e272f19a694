package store

import (
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells [patchLogRepository.Append] whether a failed
// transaction is worth another attempt.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// PostgresErrorClassifier is the [ErrorClassificator] of the relay database.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify treats lost connections, serialization failures and deadlocks as
// transient. A version conflict is never retried here: the device has to
// pull and rebuild its patch.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	switch {
	case err == nil, errors.Is(err, ErrVersionConflict):
		return NonRetryable
	case errors.Is(err, driver.ErrBadConn):
		return Retryable
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}
	return classifyPgCode(pgErr.Code)
}

// classifyPgCode maps SQLSTATE codes, see
// https://www.postgresql.org/docs/current/errcodes-appendix.html
func classifyPgCode(code string) ErrorClassification {
	switch {
	case pgerrcode.IsConnectionException(code):
		return Retryable
	case code == pgerrcode.SerializationFailure,
		code == pgerrcode.DeadlockDetected,
		code == pgerrcode.TransactionRollback,
		code == pgerrcode.CannotConnectNow,
		code == pgerrcode.LockNotAvailable:
		return Retryable
	}
	// constraint, data and syntax errors will fail the same way again
	return NonRetryable
}
