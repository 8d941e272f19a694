package store

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/crypto"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
)

// ClientStorages groups everything the sync client persists locally.
type ClientStorages struct {
	// CollectionStates holds the per-collection checkpoints (version, LTHash, index map).
	CollectionStates CollectionStateRepository

	// SyncKeys holds the app state sync keys, sealed by the key vault.
	SyncKeys SyncKeyRepository

	// PendingMutations queues pushes that did not reach the relay.
	PendingMutations PendingMutationRepository

	// Domain is the materialized chats/contacts/settings the dispatcher writes to.
	Domain DomainStore

	db *DB
}

// NewClientStorages opens (and creates if needed) the SQLite checkpoint
// database, applies migrations and loads the domain state file.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, vault crypto.KeyVault, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, multierr.Append(fmt.Errorf("migration failed: %w", err), db.Close())
	}

	domain, err := NewDomainStore(cfg.Files.DomainStatePath)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("domain store: %w", err), db.Close())
	}

	return &ClientStorages{
		CollectionStates: NewCollectionStateRepository(db, logger),
		SyncKeys:         NewSyncKeyRepository(db, vault, logger),
		PendingMutations: NewPendingMutationRepository(db, logger),
		Domain:           domain,
		db:               db,
	}, nil
}

// Close flushes the domain store and closes the database. Both are
// attempted even if one fails.
func (s *ClientStorages) Close() error {
	var err error
	if closer, ok := s.Domain.(io.Closer); ok {
		err = multierr.Append(err, closer.Close())
	}
	if s.db != nil {
		err = multierr.Append(err, s.db.Close())
	}
	return err
}
