// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// sync client and the relay server. It aggregates all sub-configurations and
// is populated by merging values from a .env file, environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters,
	// integrity keys, and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database and the
	// on-disk blob/domain files.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the relay HTTP
	// and gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the relay endpoints the client talks to.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for the background sync job.
	Workers Workers `envPrefix:"WORKERS_"`

	// Sync holds device identity and root key material for the engine.
	Sync Sync `envPrefix:"SYNC_"`

	// Relay holds the server-side paging and snapshot policy.
	Relay Relay `envPrefix:"RELAY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the file-system storage settings.
	Files Files `envPrefix:"FILES_"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify device JWTs.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued device token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a device token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey is the HMAC key used for the HashSHA256 request header.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// MetricsAddress is the optional listen address of the client's
	// /metrics endpoint. Empty disables it.
	// Env: APP_METRICS_ADDRESS
	MetricsAddress string `env:"METRICS_ADDRESS"`

	// AccountID groups devices that share one app-state log. The relay puts
	// it into every device token it issues.
	// Env: APP_ACCOUNT_ID
	AccountID string `env:"ACCOUNT_ID"`

	// LogDir is where the client writes its log file.
	// Env: APP_LOG_DIR
	LogDir string `env:"LOG_DIR"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address on which the gRPC server listens.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is a PostgreSQL URI for the relay or a SQLite file path for the
	// client.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings.
type Files struct {
	// BlobDir is where the relay keeps encrypted snapshot and mutation
	// blobs.
	// Env: STORAGE_FILES_BLOB_DIR
	BlobDir string `env:"BLOB_DIR"`

	// DomainStatePath is the JSON file backing the client's domain store.
	// Env: STORAGE_FILES_DOMAIN_STATE_PATH
	DomainStatePath string `env:"DOMAIN_STATE_PATH"`
}

// Adapter holds the relay endpoints used by the client.
type Adapter struct {
	// HTTPAddress is the relay base URL or host:port.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the relay gRPC host:port. When set, queries go over
	// gRPC instead of HTTP.
	// Env: ADAPTER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the background pull.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// SyncRetries is how many times one background pull is retried with
	// backoff before the job waits for the next tick.
	// Env: WORKERS_SYNC_RETRIES
	SyncRetries uint64 `env:"SYNC_RETRIES"`
}

// Sync holds the engine's identity and key material.
type Sync struct {
	// DeviceID identifies this companion device.
	// Env: SYNC_DEVICE_ID
	DeviceID string `env:"DEVICE_ID"`

	// ClientType is one of MOBILE, WEB or DESKTOP.
	// Env: SYNC_CLIENT_TYPE
	ClientType string `env:"CLIENT_TYPE"`

	// CheckPatchMACs enables snapshot and patch MAC verification.
	// Env: SYNC_CHECK_PATCH_MACS
	CheckPatchMACs *bool `env:"CHECK_PATCH_MACS"`

	// RootKeyHex is a 32-byte app-state sync key (hex) imported at start.
	// Env: SYNC_ROOT_KEY
	RootKeyHex string `env:"ROOT_KEY"`

	// RootKeyID is the hex key id of RootKeyHex.
	// Env: SYNC_ROOT_KEY_ID
	RootKeyID string `env:"ROOT_KEY_ID"`

	// KeyPassphrase seals sync keys stored in the local database.
	// Env: SYNC_KEY_PASSPHRASE
	KeyPassphrase string `env:"KEY_PASSPHRASE"`
}

// Relay holds the server-side paging and snapshot policy.
type Relay struct {
	// PageSize is the maximum number of patches in one collection response.
	// Env: RELAY_PAGE_SIZE
	PageSize uint64 `env:"PAGE_SIZE"`

	// SnapshotThreshold is how far behind the head a client may be before
	// the relay answers with a snapshot instead of patches.
	// Env: RELAY_SNAPSHOT_THRESHOLD
	SnapshotThreshold uint64 `env:"SNAPSHOT_THRESHOLD"`

	// ExternalMutationsThreshold is the inline mutation count above which a
	// stored patch carries its mutations as an external blob.
	// Env: RELAY_EXTERNAL_MUTATIONS_THRESHOLD
	ExternalMutationsThreshold uint64 `env:"EXTERNAL_MUTATIONS_THRESHOLD"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (last source wins for non-zero
// fields):
//  1. .env file in the working directory
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 1-3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags().
		withJSON().
		build()
}
