// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Operation says whether a mutation adds (or replaces) a value or removes it.
type Operation int32

const (
	// OperationSet adds a value under an index, replacing any live value.
	OperationSet Operation = 0

	// OperationRemove removes the live value of an index.
	OperationRemove Operation = 1
)

// MACByte is the byte prepended to the value MAC input for the operation.
func (o Operation) MACByte() byte {
	return byte(o) + 1
}

func (o Operation) String() string {
	switch o {
	case OperationSet:
		return "SET"
	case OperationRemove:
		return "REMOVE"
	default:
		return "UNKNOWN"
	}
}

// MutationRecord is the encrypted wire form of a single mutation.
type MutationRecord struct {
	// IndexMAC is HMAC-SHA256 of the plaintext index under the index key.
	IndexMAC []byte

	// ValueBlob is IV ‖ ciphertext ‖ 32-byte value MAC.
	ValueBlob []byte

	// KeyID references the app state sync key the record was encrypted with.
	KeyID []byte
}

// SyncdMutation is a record together with its operation, as carried in a patch.
type SyncdMutation struct {
	Operation Operation
	Record    MutationRecord
}

// ExitCode is set by the server on a patch that terminates the log.
type ExitCode struct {
	Code uint64
	Text string
}

// ExternalBlobReference points to an encrypted payload offloaded to the blob store.
type ExternalBlobReference struct {
	MediaKey      []byte
	DirectPath    string
	Handle        string
	FileSizeBytes uint64
	FileSHA256    []byte
	FileEncSHA256 []byte
}

// Patch is one increment of a collection.
type Patch struct {
	// Version is nil when the server omitted it; the decoder then assumes
	// the version following the one the collection was requested at.
	Version *uint64

	Mutations         []SyncdMutation
	ExternalMutations *ExternalBlobReference
	SnapshotMAC       []byte
	PatchMAC          []byte
	KeyID             []byte
	ExitCode          *ExitCode
	DeviceIndex       uint32
}

// GetVersion returns the patch version or zero when absent.
func (p *Patch) GetVersion() uint64 {
	if p == nil || p.Version == nil {
		return 0
	}
	return *p.Version
}

// SetVersion sets the patch version.
func (p *Patch) SetVersion(v uint64) {
	p.Version = &v
}

// Snapshot is a full replacement of a collection's live set.
type Snapshot struct {
	Version uint64
	Records []MutationRecord
	MAC     []byte
	KeyID   []byte
}
