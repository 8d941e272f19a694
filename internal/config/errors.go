package config

import "errors"

// Validation errors returned by the config views when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, no relay address or a zero request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing hash key or token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidSyncConfigs indicates an invalid device identity, client type
	// or root key.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidServerConfigs indicates a missing listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
