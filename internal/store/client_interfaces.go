package store

import (
	"context"

	"github.com/MKhiriev/go-app-state-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// CollectionStateRepository persists the per-collection checkpoint of a
// device.
type CollectionStateRepository interface {
	// Load returns nil, nil when the collection has never been saved.
	Load(ctx context.Context, deviceID string, collection models.Collection) (*models.CollectionState, error)
	Save(ctx context.Context, deviceID string, state *models.CollectionState) error
	LoadAll(ctx context.Context, deviceID string) ([]*models.CollectionState, error)
}

// SyncKeyRepository stores app-state sync keys sealed at rest.
type SyncKeyRepository interface {
	Save(ctx context.Context, deviceID string, key models.AppStateSyncKey) error
	// Latest returns the newest key by timestamp.
	Latest(ctx context.Context, deviceID string) (models.AppStateSyncKey, error)
	Find(ctx context.Context, deviceID string, keyID []byte) (models.AppStateSyncKey, error)
}

// PendingMutationRepository keeps pushes that failed to reach the relay.
// Pending returns batches in the order they were queued.
type PendingMutationRepository interface {
	Enqueue(ctx context.Context, deviceID string, batch models.PendingBatch) error
	Pending(ctx context.Context, deviceID string) ([]models.PendingBatch, error)
	Remove(ctx context.Context, deviceID, batchID string) error
}

// DomainStore is the local model app state mutations are applied to.
// Lookups of missing objects return ErrNotFound.
type DomainStore interface {
	GetChat(ctx context.Context, jid string) (models.Chat, error)
	SaveChat(ctx context.Context, chat models.Chat) error
	DeleteChat(ctx context.Context, jid string) error

	GetContact(ctx context.Context, jid string) (models.Contact, error)
	SaveContact(ctx context.Context, contact models.Contact) error

	GetNewsletter(ctx context.Context, jid string) (models.Newsletter, error)
	SaveNewsletter(ctx context.Context, newsletter models.Newsletter) error

	SaveLabel(ctx context.Context, label models.Label) error
	DeleteLabel(ctx context.Context, id string) error

	SaveQuickReply(ctx context.Context, reply models.QuickReply) error
	DeleteQuickReply(ctx context.Context, id string) error

	Settings(ctx context.Context) (models.AccountSettings, error)
	SaveSettings(ctx context.Context, settings models.AccountSettings) error
}
