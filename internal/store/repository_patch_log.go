package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/wire"
	"github.com/MKhiriev/go-app-state-sync/models"
)

const (
	appendMaxRetries   = 3
	appendRetryBackoff = 50 * time.Millisecond
)

// patchLogRepository is the Postgres-backed [PatchLogRepository].
// Patches are stored in their wire encoding, the live set is kept in
// sync_records keyed by index MAC.
type patchLogRepository struct {
	*DB
	logger *logger.Logger
}

func NewPatchLogRepository(db *DB, logger *logger.Logger) PatchLogRepository {
	logger.Debug().Msg("creating patch log repository")
	return &patchLogRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *patchLogRepository) Head(ctx context.Context, accountID string, collection models.Collection) (models.LogHead, error) {
	log := logger.FromContext(ctx)

	head := models.LogHead{Collection: collection}
	err := r.DB.QueryRowContext(ctx, selectHead, accountID, collection.String()).
		Scan(&head.Version, &head.SnapshotMAC, &head.KeyID)
	if errors.Is(err, sql.ErrNoRows) {
		return head, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "patchLogRepository.Head").
			Str("collection", collection.String()).
			Msg("failed to read collection head")
		return models.LogHead{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return head, nil
}

// Append stores entry in a single transaction. Transient Postgres failures
// (serialization, deadlock, lost connection) are retried with backoff.
func (r *patchLogRepository) Append(ctx context.Context, entry models.LogAppend) error {
	log := logger.FromContext(ctx)

	backoff := retry.WithMaxRetries(appendMaxRetries, retry.NewExponential(appendRetryBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		appendErr := r.append(ctx, entry)
		if appendErr != nil && r.classify(appendErr) == Retryable {
			log.Warn().
				Err(appendErr).
				Str("func", "patchLogRepository.Append").
				Str("collection", entry.Collection.String()).
				Msg("transient failure, retrying append")
			return retry.RetryableError(appendErr)
		}
		return appendErr
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("func", "patchLogRepository.Append").
		Str("collection", entry.Collection.String()).
		Uint64("version", entry.Patch.GetVersion()).
		Int("mutations", len(entry.Mutations)).
		Msg("patch appended")
	return nil
}

func (r *patchLogRepository) append(ctx context.Context, entry models.LogAppend) error {
	log := logger.FromContext(ctx)
	collection := entry.Collection.String()
	version := entry.Patch.GetVersion()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "patchLogRepository.append").
			Str("collection", collection).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var head uint64
	err = tx.QueryRowContext(ctx, lockHeadVersion, entry.AccountID, collection).Scan(&head)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).
			Str("func", "patchLogRepository.append").
			Str("collection", collection).
			Msg("failed to lock collection head")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if version != head+1 {
		log.Warn().
			Str("func", "patchLogRepository.append").
			Str("collection", collection).
			Uint64("head", head).
			Uint64("provided_version", version).
			Msg("optimistic lock failed: patch is not on top of head")
		return fmt.Errorf("%w: head is %d, patch is %d", ErrVersionConflict, head, version)
	}

	if _, err = tx.ExecContext(ctx, insertPatch, entry.AccountID, collection, version, wire.EncodePatch(entry.Patch), entry.DeviceID); err != nil {
		// two first pushes race past the missing head row
		if postgresError(err) == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: version %d already stored", ErrVersionConflict, version)
		}
		log.Err(err).
			Str("func", "patchLogRepository.append").
			Str("collection", collection).
			Msg("failed to insert patch")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	for idx, m := range entry.Mutations {
		switch m.Operation {
		case models.OperationRemove:
			_, err = tx.ExecContext(ctx, deleteRecord, entry.AccountID, collection, m.Record.IndexMAC)
		default:
			_, err = tx.ExecContext(ctx, upsertRecord, entry.AccountID, collection,
				m.Record.IndexMAC, m.Record.ValueBlob, m.Record.KeyID, version)
		}
		if err != nil {
			log.Err(err).
				Str("func", "patchLogRepository.append").
				Str("collection", collection).
				Int("iteration", idx+1).
				Str("operation", m.Operation.String()).
				Msg("failed to apply mutation to live records")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if _, err = tx.ExecContext(ctx, upsertHead, entry.AccountID, collection, version, entry.Patch.SnapshotMAC, entry.Patch.KeyID); err != nil {
		log.Err(err).
			Str("func", "patchLogRepository.append").
			Str("collection", collection).
			Msg("failed to move collection head")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "patchLogRepository.append").
			Str("collection", collection).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (r *patchLogRepository) PatchesAfter(ctx context.Context, accountID string, collection models.Collection, after, limit uint64) ([]models.Patch, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("patch").
		From("sync_patches").
		Where(sq.Eq{"account_id": accountID, "collection": collection.String()}).
		Where(sq.Gt{"version": after}).
		OrderBy("version ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "patchLogRepository.PatchesAfter").
			Str("collection", collection.String()).
			Uint64("after", after).
			Msg("failed to query patches")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	patches := make([]models.Patch, 0, limit)
	for rows.Next() {
		var raw []byte
		if err = rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		patch, decodeErr := wire.DecodePatch(raw)
		if decodeErr != nil {
			log.Err(decodeErr).
				Str("func", "patchLogRepository.PatchesAfter").
				Str("collection", collection.String()).
				Msg("stored patch is corrupted")
			return nil, fmt.Errorf("%w: %w", ErrCorruptedRecord, decodeErr)
		}
		patches = append(patches, *patch)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return patches, nil
}

func (r *patchLogRepository) LiveRecords(ctx context.Context, accountID string, collection models.Collection) ([]models.MutationRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("index_mac", "value_blob", "key_id").
		From("sync_records").
		Where(sq.Eq{"account_id": accountID, "collection": collection.String()}).
		OrderBy("index_mac ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "patchLogRepository.LiveRecords").
			Str("collection", collection.String()).
			Msg("failed to query live records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.MutationRecord
	for rows.Next() {
		var rec models.MutationRecord
		if err = rows.Scan(&rec.IndexMAC, &rec.ValueBlob, &rec.KeyID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
