package service

import (
	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/store"
)

type Services struct {
	AuthService    AuthService
	RelayService   RelayService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(cfg.App, logger),
		RelayService:   NewRelayService(storages.PatchLog, storages.Blobs, cfg.Relay, logger),
		AppInfoService: appInfo,
	}, nil
}
