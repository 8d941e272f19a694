package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
)

// appInfoService answers the relay's /api/version/ requests. Clients compare
// the reported build before they start pulling.
type appInfoService struct {
	version string
}

func NewAppInfoService(cfg config.ServerApp, log *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	log.Debug().Str("version", version).Msg("relay build registered")
	return &appInfoService{version: version}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.version
}
