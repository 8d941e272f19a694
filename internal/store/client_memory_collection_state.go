package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/MKhiriev/go-app-state-sync/models"
)

// memoryCollectionStateRepository keeps collection states in process
// memory. Values are copied in and out so callers never share maps.
type memoryCollectionStateRepository struct {
	mu     sync.RWMutex
	states map[string]map[models.Collection]*models.CollectionState
}

func NewMemoryCollectionStateRepository() CollectionStateRepository {
	return &memoryCollectionStateRepository{
		states: make(map[string]map[models.Collection]*models.CollectionState),
	}
}

func (r *memoryCollectionStateRepository) Load(_ context.Context, deviceID string, collection models.Collection) (*models.CollectionState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.states[deviceID][collection]
	if !ok {
		return nil, nil
	}
	return state.Copy(), nil
}

func (r *memoryCollectionStateRepository) Save(_ context.Context, deviceID string, state *models.CollectionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	device, ok := r.states[deviceID]
	if !ok {
		device = make(map[models.Collection]*models.CollectionState)
		r.states[deviceID] = device
	}
	device[state.Name] = state.Copy()
	return nil
}

func (r *memoryCollectionStateRepository) LoadAll(_ context.Context, deviceID string) ([]*models.CollectionState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	states := make([]*models.CollectionState, 0, len(r.states[deviceID]))
	for _, state := range r.states[deviceID] {
		states = append(states, state.Copy())
	}
	slices.SortFunc(states, func(a, b *models.CollectionState) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return states, nil
}
