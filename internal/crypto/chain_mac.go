// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/MKhiriev/go-app-state-sync/models"
)

// SnapshotMAC computes HMAC-SHA256(key, hash ‖ be64(version) ‖ name).
func SnapshotMAC(hash []byte, version uint64, collection models.Collection, key []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(hash)
	mac.Write(be64(version))
	mac.Write([]byte(collection.String()))
	return mac.Sum(nil)
}

// PatchMAC computes HMAC-SHA256(key, snapshotMAC ‖ valueMACs... ‖ be64(version) ‖ name).
// valueMACs must be in the order the mutations appear in the patch.
func PatchMAC(snapshotMAC []byte, valueMACs [][]byte, version uint64, collection models.Collection, key []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(snapshotMAC)
	for _, v := range valueMACs {
		mac.Write(v)
	}
	mac.Write(be64(version))
	mac.Write([]byte(collection.String()))
	return mac.Sum(nil)
}

// PatchValueMACs returns the value MAC of every mutation in wire order.
func PatchValueMACs(mutations []models.SyncdMutation) [][]byte {
	out := make([][]byte, 0, len(mutations))
	for _, m := range mutations {
		out = append(out, ValueMAC(m.Record.ValueBlob))
	}
	return out
}

// VerifyPatchMAC checks the patch MAC of patch against its own snapshot MAC
// and mutations. mutations are passed separately because they may have been
// downloaded from an external blob.
func VerifyPatchMAC(patch *models.Patch, mutations []models.SyncdMutation, collection models.Collection, keys models.MutationKeys) error {
	expected := PatchMAC(patch.SnapshotMAC, PatchValueMACs(mutations), patch.GetVersion(), collection, keys.PatchMACKey)
	if !hmac.Equal(expected, patch.PatchMAC) {
		return fmt.Errorf("%w: patch mac of %s v%d", ErrAuthenticationFailed, collection, patch.GetVersion())
	}
	return nil
}

// VerifySnapshotMAC checks that mac authenticates state.
func VerifySnapshotMAC(state *models.CollectionState, mac []byte, keys models.MutationKeys) error {
	expected := SnapshotMAC(state.Hash[:], state.Version, state.Name, keys.SnapshotMACKey)
	if !hmac.Equal(expected, mac) {
		return fmt.Errorf("%w: snapshot mac of %s v%d", ErrAuthenticationFailed, state.Name, state.Version)
	}
	return nil
}

func be64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
