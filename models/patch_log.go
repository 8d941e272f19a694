package models

// LogHead is the newest version of one collection in the relay's log,
// together with the snapshot MAC and key id of the patch that produced it.
type LogHead struct {
	Collection  Collection
	Version     uint64
	SnapshotMAC []byte
	KeyID       []byte
}

// LogAppend is one accepted patch as the relay stores it.
//
// Patch is the stored form, which may reference its mutations through
// ExternalMutations. Mutations is always the full inline list and drives
// the live record set.
type LogAppend struct {
	AccountID  string
	DeviceID   string
	Collection Collection
	Patch      *Patch
	Mutations  []SyncdMutation
}
