package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-app-state-sync/internal/crypto"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/store"
	"github.com/MKhiriev/go-app-state-sync/models"
)

// keyProvider reads sealed keys from the device's key repository and keeps
// the derived mutation keys in memory.
type keyProvider struct {
	deviceID   string
	repository store.SyncKeyRepository
	cache      *crypto.KeyCache
}

func NewKeyProvider(deviceID string, repository store.SyncKeyRepository) KeyProvider {
	return &keyProvider{
		deviceID:   deviceID,
		repository: repository,
		cache:      crypto.NewKeyCache(),
	}
}

func (p *keyProvider) Latest(ctx context.Context) (models.AppStateSyncKey, models.MutationKeys, error) {
	key, err := p.repository.Latest(ctx, p.deviceID)
	if err != nil {
		return models.AppStateSyncKey{}, models.MutationKeys{}, mapKeyError(err, nil)
	}

	keys, err := p.cache.Get(key)
	if err != nil {
		return models.AppStateSyncKey{}, models.MutationKeys{}, fmt.Errorf("derive mutation keys: %w", err)
	}
	return key, keys, nil
}

func (p *keyProvider) Find(ctx context.Context, keyID []byte) (models.MutationKeys, error) {
	key, err := p.repository.Find(ctx, p.deviceID, keyID)
	if err != nil {
		return models.MutationKeys{}, mapKeyError(err, keyID)
	}

	keys, err := p.cache.Get(key)
	if err != nil {
		return models.MutationKeys{}, fmt.Errorf("derive mutation keys: %w", err)
	}
	return keys, nil
}

func (p *keyProvider) Import(ctx context.Context, key models.AppStateSyncKey) error {
	log := logger.FromContext(ctx)

	if _, err := crypto.DeriveMutationKeys(key.KeyData); err != nil || len(key.KeyID) == 0 {
		log.Error().
			Str("func", "keyProvider.Import").
			Str("key_id", key.KeyIDHex()).
			Msg("refusing to import malformed app state key")
		return fmt.Errorf("%w: malformed app state key", ErrInvalidDataProvided)
	}

	if err := p.repository.Save(ctx, p.deviceID, key); err != nil {
		log.Err(err).
			Str("func", "keyProvider.Import").
			Str("key_id", key.KeyIDHex()).
			Msg("failed to save app state key")
		return fmt.Errorf("save app state key: %w", err)
	}

	log.Info().
		Str("func", "keyProvider.Import").
		Str("key_id", key.KeyIDHex()).
		Msg("app state key imported")
	return nil
}

func mapKeyError(err error, keyID []byte) error {
	if errors.Is(err, store.ErrKeyNotFound) {
		if keyID == nil {
			return fmt.Errorf("%w: device has no keys", ErrNoAppStateKey)
		}
		return fmt.Errorf("%w: %x", ErrNoAppStateKey, keyID)
	}
	return fmt.Errorf("load app state key: %w", err)
}
