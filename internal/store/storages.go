package store

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
)

// Storages is the relay's storage layer: the Postgres patch log and the
// on-disk blob store.
type Storages struct {
	PatchLog PatchLogRepository
	Blobs    BlobStorage

	db *DB
}

func NewStorages(ctx context.Context, cfg config.ServerStorage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DSN, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, multierr.Append(fmt.Errorf("migration failed: %w", err), db.Close())
	}

	blobs, err := NewFileBlobStorage(cfg.BlobDir)
	if err != nil {
		return nil, multierr.Append(err, db.Close())
	}

	return &Storages{
		PatchLog: NewPatchLogRepository(db, logger),
		Blobs:    blobs,
		db:       db,
	}, nil
}

func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
