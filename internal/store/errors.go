package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when a queried record does not exist.
	ErrNotFound = errors.New("record is not found")

	// ErrKeyNotFound is returned when no app-state sync key matches the
	// requested key id, or the device has no keys at all.
	ErrKeyNotFound = errors.New("app state sync key is not found")

	// ErrVersionConflict is returned when a patch is appended on top of a
	// version that is no longer the head of the collection, meaning another
	// device has pushed since the client last pulled.
	ErrVersionConflict = errors.New("patch version conflict occurred")

	// ErrStateNotSaved is returned when an upsert of a collection state
	// completes without error but affects no rows.
	ErrStateNotSaved = errors.New("collection state was not saved")

	// ErrInvalidBlobPath is returned when a blob path would escape the blob
	// directory or is not one the storage generated.
	ErrInvalidBlobPath = errors.New("invalid blob path")

	// ErrCorruptedRecord is returned when a stored value cannot be decoded
	// back into its model (bad JSON, wrong hash length, sealed key that does
	// not open).
	ErrCorruptedRecord = errors.New("stored record is corrupted")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
