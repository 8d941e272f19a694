package config

import (
	"fmt"
	"strings"
	"time"
)

// Client defaults applied when no source sets a value.
const (
	DefaultClientType     = "WEB"
	DefaultSyncInterval   = 30 * time.Second
	DefaultSyncRetries    = 3
	DefaultRequestTimeout = 10 * time.Second
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// HashKey is the HMAC key used by the client for payload integrity checks.
	HashKey string
	// MetricsAddress is the optional listen address of /metrics.
	MetricsAddress string
	// LogDir is the directory of the client log file.
	LogDir string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the relay HTTP endpoint used by the client.
	HTTPAddress string
	// GRPCAddress is the relay gRPC endpoint. Preferred when set.
	GRPCAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file used by the client.
	DSN string
}

// ClientFiles contains local file paths of the client.
type ClientFiles struct {
	// DomainStatePath is the JSON file backing the domain store.
	DomainStatePath string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
	// Files holds local file paths.
	Files ClientFiles
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the client pulls in the background.
	SyncInterval time.Duration
	// SyncRetries is how many times one pull is retried with backoff.
	SyncRetries uint64
}

// ClientSync holds the device identity and key material of the engine.
type ClientSync struct {
	DeviceID       string
	ClientType     string
	CheckPatchMACs bool
	RootKeyHex     string
	RootKeyID      string
	KeyPassphrase  string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
	// Sync contains the engine settings.
	Sync ClientSync
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills defaults, and validates the resulting
// [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey:        cfg.App.HashKey,
			MetricsAddress: cfg.App.MetricsAddress,
			LogDir:         cfg.App.LogDir,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			GRPCAddress:    cfg.Adapter.GRPCAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
			Files: ClientFiles{
				DomainStatePath: cfg.Storage.Files.DomainStatePath,
			},
		},
		Workers: ClientWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
			SyncRetries:  cfg.Workers.SyncRetries,
		},
		Sync: ClientSync{
			DeviceID:       cfg.Sync.DeviceID,
			ClientType:     strings.ToUpper(cfg.Sync.ClientType),
			CheckPatchMACs: true,
			RootKeyHex:     cfg.Sync.RootKeyHex,
			RootKeyID:      cfg.Sync.RootKeyID,
			KeyPassphrase:  cfg.Sync.KeyPassphrase,
		},
	}

	if cfg.Sync.CheckPatchMACs != nil {
		clientCfg.Sync.CheckPatchMACs = *cfg.Sync.CheckPatchMACs
	}
	if clientCfg.Sync.ClientType == "" {
		clientCfg.Sync.ClientType = DefaultClientType
	}
	if clientCfg.Workers.SyncInterval == 0 {
		clientCfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if clientCfg.Workers.SyncRetries == 0 {
		clientCfg.Workers.SyncRetries = DefaultSyncRetries
	}
	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}

	return clientCfg
}
