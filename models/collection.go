// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// Collection is a named, independently versioned partition of synced app state.
// The set of collections is fixed by the protocol.
type Collection string

const (
	// CriticalBlock holds settings that must be present before anything else,
	// such as the push name and locale.
	CriticalBlock Collection = "critical_block"

	// CriticalUnblockLow holds contact names.
	CriticalUnblockLow Collection = "critical_unblock_low"

	// RegularHigh holds chat-level toggles (mute, pin, archive, star, deletions).
	RegularHigh Collection = "regular_high"

	// RegularLow holds low priority chat state (read marks, unarchive setting).
	RegularLow Collection = "regular_low"

	// Regular holds everything else (labels, quick replies, recents).
	Regular Collection = "regular"
)

// ErrUnknownCollection is returned by ParseCollection for names outside the protocol set.
var ErrUnknownCollection = errors.New("unknown collection")

var allCollections = []Collection{
	CriticalBlock,
	CriticalUnblockLow,
	RegularHigh,
	RegularLow,
	Regular,
}

// AllCollections returns every collection in protocol order.
func AllCollections() []Collection {
	out := make([]Collection, len(allCollections))
	copy(out, allCollections)
	return out
}

// String returns the wire token of the collection.
func (c Collection) String() string {
	return string(c)
}

// Valid reports whether c is one of the protocol collections.
func (c Collection) Valid() bool {
	for _, known := range allCollections {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCollection converts a wire token back to a Collection.
func ParseCollection(name string) (Collection, error) {
	c := Collection(name)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return c, nil
}
