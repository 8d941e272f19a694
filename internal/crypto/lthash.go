// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"io"

	"github.com/MKhiriev/go-app-state-sync/models"
	"golang.org/x/crypto/hkdf"
)

// LTHash is a homomorphic summation hash. Every value is expanded with HKDF
// into Size bytes, read as little-endian uint16 words, and added to or
// subtracted from the running hash word by word modulo 2^16. The result does
// not depend on the order values are added in.
type LTHash struct {
	info []byte
	size int
}

// PatchIntegrity is the LTHash used for app state collection hashes.
var PatchIntegrity = LTHash{info: []byte("WhatsApp Patch Integrity"), size: models.LTHashSize}

// SubtractThenAdd returns base with every value of subtract removed and every
// value of add included. base is not modified.
func (lth LTHash) SubtractThenAdd(base []byte, subtract, add [][]byte) []byte {
	out := make([]byte, len(base))
	copy(out, base)
	for _, item := range subtract {
		lth.apply(out, item, false)
	}
	for _, item := range add {
		lth.apply(out, item, true)
	}
	return out
}

func (lth LTHash) apply(base, input []byte, add bool) {
	expanded := make([]byte, lth.size)
	// HKDF-SHA256 can produce up to 255*32 bytes, far more than size.
	_, _ = io.ReadFull(hkdf.New(sha256.New, input, nil, lth.info), expanded)

	for i := 0; i+1 < len(base) && i+1 < len(expanded); i += 2 {
		x := binary.LittleEndian.Uint16(base[i:])
		y := binary.LittleEndian.Uint16(expanded[i:])
		if add {
			x += y
		} else {
			x -= y
		}
		binary.LittleEndian.PutUint16(base[i:], x)
	}
}

// HashGenerator accumulates the mutations of one patch or snapshot on top of
// a collection state and produces the next hash and index map.
type HashGenerator struct {
	hash          [models.LTHashSize]byte
	indexValueMap map[string][]byte
	add           [][]byte
	remove        [][]byte
}

// NewHashGenerator starts from a copy of state. state is never modified.
func NewHashGenerator(state *models.CollectionState) *HashGenerator {
	g := &HashGenerator{
		hash:          state.Hash,
		indexValueMap: make(map[string][]byte, len(state.IndexValueMap)),
	}
	for k, v := range state.IndexValueMap {
		g.indexValueMap[k] = v
	}
	return g
}

// IndexKey is the key an index MAC is stored under in the index value map.
func IndexKey(indexMAC []byte) string {
	return base64.StdEncoding.EncodeToString(indexMAC)
}

// Mix records one mutation. A SET replaces any live value of the same index,
// which is queued for removal. A REMOVE of an index with no live value is
// ignored.
func (g *HashGenerator) Mix(indexMAC, valueMAC []byte, op models.Operation) {
	key := IndexKey(indexMAC)
	previous, exists := g.indexValueMap[key]

	switch op {
	case models.OperationRemove:
		if !exists {
			return
		}
		delete(g.indexValueMap, key)
	default:
		value := make([]byte, len(valueMAC))
		copy(value, valueMAC)
		g.add = append(g.add, value)
		g.indexValueMap[key] = value
	}
	if exists {
		g.remove = append(g.remove, previous)
	}
}

// Finish returns the resulting hash and index value map. It can be called
// more than once and always returns the same result for the same mixes.
func (g *HashGenerator) Finish() ([models.LTHashSize]byte, map[string][]byte) {
	var hash [models.LTHashSize]byte
	copy(hash[:], PatchIntegrity.SubtractThenAdd(g.hash[:], g.remove, g.add))

	indexValueMap := make(map[string][]byte, len(g.indexValueMap))
	for k, v := range g.indexValueMap {
		indexValueMap[k] = v
	}
	return hash, indexValueMap
}

// Apply writes the result of Finish into state.
func (g *HashGenerator) Apply(state *models.CollectionState) {
	state.Hash, state.IndexValueMap = g.Finish()
}
