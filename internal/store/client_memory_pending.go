package store

import (
	"context"
	"slices"
	"sync"

	"github.com/MKhiriev/go-app-state-sync/models"
)

// memoryPendingMutationRepository is the in-process [PendingMutationRepository].
type memoryPendingMutationRepository struct {
	mu      sync.Mutex
	batches map[string][]models.PendingBatch
}

func NewMemoryPendingMutationRepository() PendingMutationRepository {
	return &memoryPendingMutationRepository{batches: make(map[string][]models.PendingBatch)}
}

func (r *memoryPendingMutationRepository) Enqueue(_ context.Context, deviceID string, batch models.PendingBatch) error {
	if len(batch.Mutations) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	batch.Mutations = slices.Clone(batch.Mutations)
	r.batches[deviceID] = append(r.batches[deviceID], batch)
	return nil
}

func (r *memoryPendingMutationRepository) Pending(_ context.Context, deviceID string) ([]models.PendingBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.PendingBatch, 0, len(r.batches[deviceID]))
	for _, b := range r.batches[deviceID] {
		b.Mutations = slices.Clone(b.Mutations)
		out = append(out, b)
	}
	return out, nil
}

func (r *memoryPendingMutationRepository) Remove(_ context.Context, deviceID, batchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.batches[deviceID] = slices.DeleteFunc(r.batches[deviceID], func(b models.PendingBatch) bool {
		return b.ID == batchID
	})
	return nil
}
