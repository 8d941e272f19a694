package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-app-state-sync/internal/utils"
)

// fileBlobStorage keeps each blob in its own file under dir. Paths handed
// out are UUIDs, so Get accepts nothing else and can never leave dir.
type fileBlobStorage struct {
	dir       string
	generator *utils.UUIDGenerator
}

// NewFileBlobStorage creates dir if needed and returns a [BlobStorage] rooted there.
func NewFileBlobStorage(dir string) (BlobStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &fileBlobStorage{
		dir:       dir,
		generator: utils.NewUUIDGenerator(),
	}, nil
}

func (s *fileBlobStorage) Put(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := s.generator.Generate()
	tmp := filepath.Join(s.dir, name+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("store blob: %w", err)
	}

	return name, nil
}

func (s *fileBlobStorage) Get(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !utils.IsUUID(path) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBlobPath, path)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, path))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}

	return data, nil
}
