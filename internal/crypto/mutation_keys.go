// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"github.com/MKhiriev/go-app-state-sync/models"
	"golang.org/x/crypto/hkdf"
)

const (
	// RootKeySize is the size of an app state sync key.
	RootKeySize = 32

	mutationKeysInfo = "WhatsApp Mutation Keys"
	mutationKeySize  = 32
)

// DeriveMutationKeys expands a root key into the five mutation keys with a
// single HKDF-SHA256 run of 160 bytes, split in order.
func DeriveMutationKeys(keyData []byte) (models.MutationKeys, error) {
	if len(keyData) != RootKeySize {
		return models.MutationKeys{}, fmt.Errorf("%w: root key is %d bytes, want %d", ErrInvalidKey, len(keyData), RootKeySize)
	}

	expanded := make([]byte, 5*mutationKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, keyData, nil, []byte(mutationKeysInfo)), expanded); err != nil {
		return models.MutationKeys{}, fmt.Errorf("expand mutation keys: %w", err)
	}

	return models.MutationKeys{
		IndexKey:       expanded[0:32],
		EncKey:         expanded[32:64],
		MACKey:         expanded[64:96],
		SnapshotMACKey: expanded[96:128],
		PatchMACKey:    expanded[128:160],
	}, nil
}

// KeyCache keeps derived mutation keys per key ID for the lifetime of the
// process. Derived keys never change, so entries are never evicted.
type KeyCache struct {
	mu   sync.RWMutex
	keys map[string]models.MutationKeys
}

// NewKeyCache returns an empty cache.
func NewKeyCache() *KeyCache {
	return &KeyCache{keys: make(map[string]models.MutationKeys)}
}

// Get returns the mutation keys of key, deriving them on first use.
func (c *KeyCache) Get(key models.AppStateSyncKey) (models.MutationKeys, error) {
	id := key.KeyIDHex()

	c.mu.RLock()
	keys, ok := c.keys[id]
	c.mu.RUnlock()
	if ok {
		return keys, nil
	}

	keys, err := DeriveMutationKeys(key.KeyData)
	if err != nil {
		return models.MutationKeys{}, err
	}

	c.mu.Lock()
	c.keys[id] = keys
	c.mu.Unlock()
	return keys, nil
}

// Len returns the number of cached keys.
func (c *KeyCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.keys)
}
