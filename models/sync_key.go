// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/hex"
	"time"
)

// AppStateSyncKey is a root secret shared between the devices of an account.
// Keys are provisioned out of band; the sync engine only reads them.
type AppStateSyncKey struct {
	// KeyID is the opaque reference carried by every record, patch and
	// snapshot encrypted under this key.
	KeyID []byte

	// KeyData is the 32-byte root secret mutation keys are derived from.
	KeyData []byte

	// Fingerprint is the raw provisioning fingerprint, kept for diagnostics.
	Fingerprint []byte

	// Timestamp is when the key was provisioned. The newest key is used
	// for pushes.
	Timestamp time.Time
}

// KeyIDHex returns the hex form of KeyID used as a cache and storage key.
func (k AppStateSyncKey) KeyIDHex() string {
	return hex.EncodeToString(k.KeyID)
}

// MutationKeys are the five keys expanded from an AppStateSyncKey.
type MutationKeys struct {
	IndexKey       []byte
	EncKey         []byte
	MACKey         []byte
	SnapshotMACKey []byte
	PatchMACKey    []byte
}
