// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/hex"
	"slices"
	"strings"
)

// clientTypes lists the accepted Sync.ClientType values.
var clientTypes = []string{"MOBILE", "WEB", "DESKTOP"}

// validate checks cross-binary invariants of the merged [StructuredConfig].
// Binary-specific rules live in the views.
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.Files.DomainStatePath == "" {
		return ErrInvalidStorageConfigs
	}

	if (cfg.Adapter.HTTPAddress == "" && cfg.Adapter.GRPCAddress == "") || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.HashKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Sync.DeviceID == "" || cfg.Sync.KeyPassphrase == "" {
		return ErrInvalidSyncConfigs
	}

	if !slices.Contains(clientTypes, cfg.Sync.ClientType) {
		return ErrInvalidSyncConfigs
	}

	// the root key is optional once imported, but must be complete and well-formed
	if cfg.Sync.RootKeyHex != "" || cfg.Sync.RootKeyID != "" {
		key, err := hex.DecodeString(cfg.Sync.RootKeyHex)
		if err != nil || len(key) != 32 {
			return ErrInvalidSyncConfigs
		}
		if _, err := hex.DecodeString(cfg.Sync.RootKeyID); err != nil || cfg.Sync.RootKeyID == "" {
			return ErrInvalidSyncConfigs
		}
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.DSN == "" || cfg.Storage.BlobDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.AccountID == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
