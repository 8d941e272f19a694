package config

import (
	"fmt"
	"time"
)

// Relay defaults applied when no source sets a value.
const (
	DefaultPageSize                   = 50
	DefaultSnapshotThreshold          = 500
	DefaultExternalMutationsThreshold = 100
	DefaultTokenDuration              = 24 * time.Hour
)

// ServerApp holds relay application settings.
type ServerApp struct {
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
	HashKey       string
	Version       string
	AccountID     string
}

// ServerStorage groups relay storage settings.
type ServerStorage struct {
	// DSN is the PostgreSQL connection string.
	DSN string
	// BlobDir is where snapshot and mutation blobs are written.
	BlobDir string
}

// ServerRelay is the paging and snapshot policy of the relay.
type ServerRelay struct {
	PageSize                   uint64
	SnapshotThreshold          uint64
	ExternalMutationsThreshold uint64
}

// ServerConfig is the relay configuration assembled from [StructuredConfig].
type ServerConfig struct {
	App     ServerApp
	Server  Server
	Storage ServerStorage
	Relay   ServerRelay
}

// GetServerConfig builds and validates the relay config view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)

	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	serverCfg := &ServerConfig{
		App: ServerApp{
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
			HashKey:       cfg.App.HashKey,
			Version:       cfg.App.Version,
			AccountID:     cfg.App.AccountID,
		},
		Server: cfg.Server,
		Storage: ServerStorage{
			DSN:     cfg.Storage.DB.DSN,
			BlobDir: cfg.Storage.Files.BlobDir,
		},
		Relay: ServerRelay{
			PageSize:                   cfg.Relay.PageSize,
			SnapshotThreshold:          cfg.Relay.SnapshotThreshold,
			ExternalMutationsThreshold: cfg.Relay.ExternalMutationsThreshold,
		},
	}

	if serverCfg.Relay.PageSize == 0 {
		serverCfg.Relay.PageSize = DefaultPageSize
	}
	if serverCfg.Relay.SnapshotThreshold == 0 {
		serverCfg.Relay.SnapshotThreshold = DefaultSnapshotThreshold
	}
	if serverCfg.Relay.ExternalMutationsThreshold == 0 {
		serverCfg.Relay.ExternalMutationsThreshold = DefaultExternalMutationsThreshold
	}
	if serverCfg.App.TokenDuration == 0 {
		serverCfg.App.TokenDuration = DefaultTokenDuration
	}
	if serverCfg.Server.RequestTimeout == 0 {
		serverCfg.Server.RequestTimeout = DefaultRequestTimeout
	}

	return serverCfg
}
