package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-app-state-sync/internal/crypto"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/models"
)

const syncKeysTable = "app_state_sync_keys"

// syncKeyRepository stores app-state sync keys in SQLite. Key data never
// touches the disk in the clear: it is sealed with the device's key vault.
type syncKeyRepository struct {
	*DB
	vault  crypto.KeyVault
	logger *logger.Logger
}

func NewSyncKeyRepository(db *DB, vault crypto.KeyVault, logger *logger.Logger) SyncKeyRepository {
	logger.Debug().Msg("creating sync key repository")
	return &syncKeyRepository{
		DB:     db,
		vault:  vault,
		logger: logger,
	}
}

func (r *syncKeyRepository) Save(ctx context.Context, deviceID string, key models.AppStateSyncKey) error {
	log := logger.FromContext(ctx)

	sealed, err := r.vault.Seal(key.KeyData)
	if err != nil {
		return fmt.Errorf("seal sync key: %w", err)
	}

	query, args, err := r.builder.
		Replace(syncKeysTable).
		Columns("device_id", "key_id", "key_data", "fingerprint", "created_at").
		Values(deviceID, key.KeyIDHex(), sealed, key.Fingerprint, key.Timestamp.UnixMilli()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "syncKeyRepository.Save").
			Str("key_id", key.KeyIDHex()).
			Msg("failed to save sync key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *syncKeyRepository) Latest(ctx context.Context, deviceID string) (models.AppStateSyncKey, error) {
	return r.findOne(ctx, "syncKeyRepository.Latest", r.selectKeys().
		Where(sq.Eq{"device_id": deviceID}).
		OrderBy("created_at DESC", "key_id DESC").
		Limit(1))
}

func (r *syncKeyRepository) Find(ctx context.Context, deviceID string, keyID []byte) (models.AppStateSyncKey, error) {
	return r.findOne(ctx, "syncKeyRepository.Find", r.selectKeys().
		Where(sq.Eq{"device_id": deviceID, "key_id": hex.EncodeToString(keyID)}))
}

func (r *syncKeyRepository) selectKeys() sq.SelectBuilder {
	return r.builder.
		Select("key_id", "key_data", "fingerprint", "created_at").
		From(syncKeysTable)
}

func (r *syncKeyRepository) findOne(ctx context.Context, fn string, b sq.SelectBuilder) (models.AppStateSyncKey, error) {
	log := logger.FromContext(ctx)

	query, args, err := b.ToSql()
	if err != nil {
		return models.AppStateSyncKey{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		keyIDHex    string
		sealed      []byte
		fingerprint []byte
		createdAt   int64
	)
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&keyIDHex, &sealed, &fingerprint, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AppStateSyncKey{}, ErrKeyNotFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to query sync key")
		return models.AppStateSyncKey{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	keyID, err := hex.DecodeString(keyIDHex)
	if err != nil {
		return models.AppStateSyncKey{}, fmt.Errorf("%w: key id: %w", ErrCorruptedRecord, err)
	}

	keyData, err := r.vault.Open(sealed)
	if err != nil {
		log.Err(err).Str("func", fn).Str("key_id", keyIDHex).Msg("failed to open sealed sync key")
		return models.AppStateSyncKey{}, fmt.Errorf("%w: %w", ErrCorruptedRecord, err)
	}

	return models.AppStateSyncKey{
		KeyID:       keyID,
		KeyData:     keyData,
		Fingerprint: fingerprint,
		Timestamp:   time.UnixMilli(createdAt),
	}, nil
}
