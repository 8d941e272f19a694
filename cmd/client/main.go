package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-app-state-sync/internal/adapter"
	"github.com/MKhiriev/go-app-state-sync/internal/client"
	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/crypto"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/MKhiriev/go-app-state-sync/internal/service"
	"github.com/MKhiriev/go-app-state-sync/internal/store"
	"github.com/MKhiriev/go-app-state-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewClientLogger("app-state-client", cfg.App.LogDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	vault, err := crypto.NewKeyVault(cfg.Sync.KeyPassphrase, crypto.VaultSalt(cfg.Sync.DeviceID))
	if err != nil {
		return fmt.Errorf("create key vault: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, vault, log)
	if err != nil {
		return fmt.Errorf("create local storage: %w", err)
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Err(closeErr).Msg("failed to close local storage")
		}
	}()

	serverAdapter, err := adapter.NewServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		return fmt.Errorf("create server adapter: %w", err)
	}
	defer serverAdapter.Close()

	services, err := service.NewClientServices(storages, serverAdapter, cfg, log)
	if err != nil {
		return fmt.Errorf("create client services: %w", err)
	}

	buildInfo := models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
	app, err := client.NewApp(services, cfg, buildInfo, os.Stdout, log)
	if err != nil {
		return fmt.Errorf("init client app: %w", err)
	}

	return app.Run(ctx, flag.Args())
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
