package service

import (
	"fmt"

	"github.com/MKhiriev/go-app-state-sync/internal/adapter"
	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/store"
)

type ClientServices struct {
	Keys       KeyProvider
	Dispatcher Dispatcher
	AppState   AppStateService
	Auth       ClientAuthService
	SyncJob    ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg *config.ClientConfig, logger *logger.Logger) (*ClientServices, error) {
	keys := NewKeyProvider(cfg.Sync.DeviceID, storages.SyncKeys)
	dispatcher := NewDispatcher(storages.Domain, logger)

	appState, err := NewAppStateService(cfg.Sync, serverAdapter, serverAdapter, storages.CollectionStates, storages.PendingMutations, keys, dispatcher, logger)
	if err != nil {
		return nil, fmt.Errorf("app state service: %w", err)
	}

	auth := NewClientAuthService(cfg.Sync.DeviceID, serverAdapter)

	return &ClientServices{
		Keys:       keys,
		Dispatcher: dispatcher,
		AppState:   appState,
		Auth:       auth,
		SyncJob:    NewClientSyncJob(appState, auth, cfg.Workers.SyncRetries, logger),
	}, nil
}
