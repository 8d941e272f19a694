package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/models"
)

const collectionStatesTable = "collection_states"

// collectionStateRepository is the SQLite-backed [CollectionStateRepository].
// The index/value map is stored as a JSON object of base64 strings.
type collectionStateRepository struct {
	*DB
	logger *logger.Logger
}

func NewCollectionStateRepository(db *DB, logger *logger.Logger) CollectionStateRepository {
	logger.Debug().Msg("creating collection state repository")
	return &collectionStateRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *collectionStateRepository) Load(ctx context.Context, deviceID string, collection models.Collection) (*models.CollectionState, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("version", "hash", "index_value_map").
		From(collectionStatesTable).
		Where(sq.Eq{"device_id": deviceID, "name": collection.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		version uint64
		hash    []byte
		rawMap  string
	)
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&version, &hash, &rawMap)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "collectionStateRepository.Load").
			Str("collection", collection.String()).
			Msg("failed to load collection state")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	state, err := decodeCollectionState(collection, version, hash, rawMap)
	if err != nil {
		log.Err(err).
			Str("func", "collectionStateRepository.Load").
			Str("collection", collection.String()).
			Msg("stored collection state is corrupted")
		return nil, err
	}

	return state, nil
}

func (r *collectionStateRepository) Save(ctx context.Context, deviceID string, state *models.CollectionState) error {
	log := logger.FromContext(ctx)

	rawMap, err := json.Marshal(state.IndexValueMap)
	if err != nil {
		return fmt.Errorf("encode index value map: %w", err)
	}

	query, args, err := r.builder.
		Replace(collectionStatesTable).
		Columns("device_id", "name", "version", "hash", "index_value_map", "updated_at").
		Values(deviceID, state.Name.String(), state.Version, state.Hash[:], string(rawMap), time.Now().UTC().Format(time.RFC3339)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "collectionStateRepository.Save").
			Str("collection", state.Name.String()).
			Uint64("version", state.Version).
			Msg("failed to save collection state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrStateNotSaved
	}

	return nil
}

func (r *collectionStateRepository) LoadAll(ctx context.Context, deviceID string) ([]*models.CollectionState, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("name", "version", "hash", "index_value_map").
		From(collectionStatesTable).
		Where(sq.Eq{"device_id": deviceID}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "collectionStateRepository.LoadAll").Msg("failed to query collection states")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var states []*models.CollectionState
	for rows.Next() {
		var (
			name    string
			version uint64
			hash    []byte
			rawMap  string
		)
		if err := rows.Scan(&name, &version, &hash, &rawMap); err != nil {
			log.Err(err).Str("func", "collectionStateRepository.LoadAll").Msg("failed to scan collection state")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		collection, err := models.ParseCollection(name)
		if err != nil {
			// a collection this build does not know about
			log.Warn().Str("func", "collectionStateRepository.LoadAll").Str("collection", name).Msg("skipping unknown collection")
			continue
		}

		state, err := decodeCollectionState(collection, version, hash, rawMap)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return states, nil
}

func decodeCollectionState(collection models.Collection, version uint64, hash []byte, rawMap string) (*models.CollectionState, error) {
	if len(hash) != models.LTHashSize {
		return nil, fmt.Errorf("%w: hash is %d bytes", ErrCorruptedRecord, len(hash))
	}

	state := models.NewCollectionState(collection)
	state.Version = version
	copy(state.Hash[:], hash)

	if rawMap != "" {
		if err := json.Unmarshal([]byte(rawMap), &state.IndexValueMap); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptedRecord, err)
		}
	}
	if state.IndexValueMap == nil {
		state.IndexValueMap = make(map[string][]byte)
	}

	return state, nil
}
