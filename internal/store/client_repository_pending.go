package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/wire"
	"github.com/MKhiriev/go-app-state-sync/models"
)

const pendingMutationsTable = "pending_mutations"

// pendingMutationRepository keeps queued pushes in SQLite, one row per
// mutation. The plaintext action data is stored in its wire encoding.
type pendingMutationRepository struct {
	*DB
	logger *logger.Logger
}

func NewPendingMutationRepository(db *DB, logger *logger.Logger) PendingMutationRepository {
	logger.Debug().Msg("creating pending mutation repository")
	return &pendingMutationRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *pendingMutationRepository) Enqueue(ctx context.Context, deviceID string, batch models.PendingBatch) error {
	log := logger.FromContext(ctx)

	if len(batch.Mutations) == 0 {
		return nil
	}

	insert := r.builder.
		Insert(pendingMutationsTable).
		Columns("device_id", "batch_id", "collection", "operation", "data", "queued_at")
	for _, m := range batch.Mutations {
		value := m.Value
		data := wire.EncodeSyncActionData(&models.SyncActionData{
			Index:   m.Index.Bytes(),
			Value:   &value,
			Version: m.Version,
		})
		insert = insert.Values(deviceID, batch.ID, batch.Collection.String(), int32(m.Operation), data, batch.QueuedAt.UnixMilli())
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	// a multi-row insert is a single statement, the batch is stored whole
	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "pendingMutationRepository.Enqueue").
			Str("batch_id", batch.ID).
			Str("collection", batch.Collection.String()).
			Msg("failed to queue pending mutations")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *pendingMutationRepository) Pending(ctx context.Context, deviceID string) ([]models.PendingBatch, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("batch_id", "collection", "operation", "data", "queued_at").
		From(pendingMutationsTable).
		Where(sq.Eq{"device_id": deviceID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "pendingMutationRepository.Pending").Msg("failed to query pending mutations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var batches []models.PendingBatch
	positions := make(map[string]int)
	for rows.Next() {
		var (
			batchID    string
			collection string
			operation  int32
			raw        []byte
			queuedAt   int64
		)
		if err := rows.Scan(&batchID, &collection, &operation, &raw, &queuedAt); err != nil {
			log.Err(err).Str("func", "pendingMutationRepository.Pending").Msg("failed to scan pending mutation")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		m, err := decodePendingMutation(collection, operation, raw)
		if err != nil {
			return nil, err
		}

		pos, ok := positions[batchID]
		if !ok {
			pos = len(batches)
			positions[batchID] = pos
			batches = append(batches, models.PendingBatch{
				ID:         batchID,
				Collection: m.Collection,
				QueuedAt:   time.UnixMilli(queuedAt),
			})
		}
		batches[pos].Mutations = append(batches[pos].Mutations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return batches, nil
}

func (r *pendingMutationRepository) Remove(ctx context.Context, deviceID, batchID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Delete(pendingMutationsTable).
		Where(sq.Eq{"device_id": deviceID, "batch_id": batchID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "pendingMutationRepository.Remove").
			Str("batch_id", batchID).
			Msg("failed to remove pending batch")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func decodePendingMutation(collection string, operation int32, raw []byte) (models.PendingMutation, error) {
	name, err := models.ParseCollection(collection)
	if err != nil {
		return models.PendingMutation{}, fmt.Errorf("%w: %w", ErrCorruptedRecord, err)
	}

	data, err := wire.DecodeSyncActionData(raw)
	if err != nil {
		return models.PendingMutation{}, fmt.Errorf("%w: %w", ErrCorruptedRecord, err)
	}
	index, err := models.ParseMessageIndex(data.Index)
	if err != nil {
		return models.PendingMutation{}, fmt.Errorf("%w: %w", ErrCorruptedRecord, err)
	}

	m := models.PendingMutation{
		Collection: name,
		Operation:  models.Operation(operation),
		Index:      index,
		Version:    data.Version,
	}
	if data.Value != nil {
		m.Value = *data.Value
	}
	return m, nil
}
