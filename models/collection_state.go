// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LTHashSize is the size in bytes of the running collection hash (64 uint16 words).
const LTHashSize = 128

// CollectionState is the durable checkpoint of a single collection for a device.
//
// Hash is always the homomorphic hash of exactly the values held in
// IndexValueMap. Version only grows, except when the state is reset to
// empty after repeated decode failures.
type CollectionState struct {
	// Name is the collection this state belongs to.
	Name Collection `json:"name"`

	// Version is the number of the last patch applied to this state.
	// Zero means nothing has been synced yet.
	Version uint64 `json:"version"`

	// Hash is the LTHash over all live value MACs.
	Hash [LTHashSize]byte `json:"hash"`

	// IndexValueMap maps the base64 encoded index MAC of every live
	// mutation to its 32-byte value MAC.
	IndexValueMap map[string][]byte `json:"index_value_map"`
}

// NewCollectionState returns the empty state of a collection.
func NewCollectionState(name Collection) *CollectionState {
	return &CollectionState{
		Name:          name,
		IndexValueMap: make(map[string][]byte),
	}
}

// Copy returns a deep copy of the state.
func (s *CollectionState) Copy() *CollectionState {
	out := &CollectionState{
		Name:          s.Name,
		Version:       s.Version,
		Hash:          s.Hash,
		IndexValueMap: make(map[string][]byte, len(s.IndexValueMap)),
	}
	for k, v := range s.IndexValueMap {
		value := make([]byte, len(v))
		copy(value, v)
		out.IndexValueMap[k] = value
	}
	return out
}

// Empty reports whether nothing has been applied to the state yet.
func (s *CollectionState) Empty() bool {
	return s.Version == 0 && len(s.IndexValueMap) == 0
}
