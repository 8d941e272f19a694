package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/handler"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/server"
	"github.com/MKhiriev/go-app-state-sync/internal/service"
	"github.com/MKhiriev/go-app-state-sync/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("app-state-relay")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Uint64("page_size", cfg.Relay.PageSize).
		Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
