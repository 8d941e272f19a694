// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncNamespace is the query namespace app state sync requests are sent to.
const SyncNamespace = "w:sync:app:state"

// SyncRequest asks the relay for the missing part of one or more collections
// and optionally carries locally built patches to append.
type SyncRequest struct {
	Collections []CollectionRequest
}

// CollectionRequest is the per-collection part of a SyncRequest.
type CollectionRequest struct {
	// Name is the collection being synced.
	Name Collection

	// Version is the last version the client has applied.
	Version uint64

	// ReturnSnapshot asks for a full snapshot instead of patches.
	ReturnSnapshot bool

	// Patch, when set, is appended to the log if Version is still the head.
	Patch *Patch
}

// CollectionResponseError is the response type of a collection that failed.
const CollectionResponseError = "error"

// SyncResponse is the relay's answer to a SyncRequest.
type SyncResponse struct {
	Collections []CollectionResponse
}

// CollectionResponse carries what the client needs to catch up a collection.
type CollectionResponse struct {
	Name    Collection
	Version uint64

	// Type is empty on success and CollectionResponseError on failure, in
	// which case ErrorCode and ErrorText describe the problem.
	Type      string
	ErrorCode uint32
	ErrorText string

	// HasMorePatches is set when Patches was cut at the page size.
	HasMorePatches bool

	// Snapshot references an encrypted Snapshot in the blob store.
	Snapshot *ExternalBlobReference

	// Patches are in ascending version order.
	Patches []Patch
}

// Failed reports whether the collection was answered with an error.
func (c CollectionResponse) Failed() bool {
	return c.Type == CollectionResponseError
}
