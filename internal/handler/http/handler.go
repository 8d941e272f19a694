package http

import (
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/service"
	"github.com/MKhiriev/go-app-state-sync/internal/utils"
)

type Handler struct {
	services *service.Services

	// hashKey enables the HashSHA256 body check when not empty.
	hashKey string

	logger *logger.Logger
}

func NewHandler(services *service.Services, hashKey string, logger *logger.Logger) *Handler {
	if hashKey != "" {
		utils.InitHasherPool(hashKey)
	}

	logger.Info().Bool("hash_check", hashKey != "").Msg("http handler created")
	return &Handler{
		services: services,
		hashKey:  hashKey,
		logger:   logger,
	}
}
