// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wire

import (
	"fmt"

	"github.com/MKhiriev/go-app-state-sync/models"
	"google.golang.org/protobuf/encoding/protowire"
)

// EncodePatch serializes a SyncdPatch.
func EncodePatch(p *models.Patch) []byte {
	var b []byte
	if p.Version != nil {
		b = appendMessage(b, 1, encodeVersion(*p.Version))
	}
	for _, m := range p.Mutations {
		b = appendMessage(b, 2, encodeMutation(m))
	}
	if p.ExternalMutations != nil {
		b = appendMessage(b, 3, EncodeExternalBlobReference(p.ExternalMutations))
	}
	b = appendBytes(b, 4, p.SnapshotMAC)
	b = appendBytes(b, 5, p.PatchMAC)
	if p.KeyID != nil {
		b = appendMessage(b, 6, encodeKeyID(p.KeyID))
	}
	if p.ExitCode != nil {
		var exit []byte
		exit = appendVarint(exit, 1, p.ExitCode.Code)
		exit = appendString(exit, 2, p.ExitCode.Text)
		b = appendMessage(b, 7, exit)
	}
	b = appendVarint(b, 8, uint64(p.DeviceIndex))
	return b
}

// DecodePatch parses a SyncdPatch.
func DecodePatch(b []byte) (*models.Patch, error) {
	p := &models.Patch{}
	err := forEachField(b, func(f field) error {
		switch f.num {
		case 1:
			if err := expect(f, protowire.BytesType); err != nil {
				return err
			}
			v, err := decodeVersion(f.bytes)
			if err != nil {
				return err
			}
			p.SetVersion(v)
		case 2:
			if err := expect(f, protowire.BytesType); err != nil {
				return err
			}
			m, err := decodeMutation(f.bytes)
			if err != nil {
				return fmt.Errorf("mutation %d: %w", len(p.Mutations), err)
			}
			p.Mutations = append(p.Mutations, m)
		case 3:
			if err := expect(f, protowire.BytesType); err != nil {
				return err
			}
			ref, err := DecodeExternalBlobReference(f.bytes)
			if err != nil {
				return err
			}
			p.ExternalMutations = ref
		case 4:
			p.SnapshotMAC = f.clone()
		case 5:
			p.PatchMAC = f.clone()
		case 6:
			if err := expect(f, protowire.BytesType); err != nil {
				return err
			}
			id, err := decodeKeyID(f.bytes)
			if err != nil {
				return err
			}
			p.KeyID = id
		case 7:
			if err := expect(f, protowire.BytesType); err != nil {
				return err
			}
			exit := &models.ExitCode{}
			err := forEachField(f.bytes, func(f field) error {
				switch f.num {
				case 1:
					exit.Code = f.value
				case 2:
					exit.Text = f.string()
				}
				return nil
			})
			if err != nil {
				return err
			}
			p.ExitCode = exit
		case 8:
			p.DeviceIndex = uint32(f.value)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	return p, nil
}

// EncodeSnapshot serializes a SyncdSnapshot.
func EncodeSnapshot(s *models.Snapshot) []byte {
	var b []byte
	b = appendMessage(b, 1, encodeVersion(s.Version))
	for _, r := range s.Records {
		b = appendMessage(b, 2, encodeRecord(r))
	}
	b = appendBytes(b, 3, s.MAC)
	if s.KeyID != nil {
		b = appendMessage(b, 4, encodeKeyID(s.KeyID))
	}
	return b
}

// DecodeSnapshot parses a SyncdSnapshot.
func DecodeSnapshot(b []byte) (*models.Snapshot, error) {
	s := &models.Snapshot{}
	err := forEachField(b, func(f field) error {
		switch f.num {
		case 1, 2, 4:
			if err := expect(f, protowire.BytesType); err != nil {
				return err
			}
		}
		switch f.num {
		case 1:
			v, err := decodeVersion(f.bytes)
			if err != nil {
				return err
			}
			s.Version = v
		case 2:
			r, err := decodeRecord(f.bytes)
			if err != nil {
				return fmt.Errorf("record %d: %w", len(s.Records), err)
			}
			s.Records = append(s.Records, r)
		case 3:
			s.MAC = f.clone()
		case 4:
			id, err := decodeKeyID(f.bytes)
			if err != nil {
				return err
			}
			s.KeyID = id
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

// EncodeMutations serializes a SyncdMutations message, the payload of an
// external mutations blob.
func EncodeMutations(mutations []models.SyncdMutation) []byte {
	var b []byte
	for _, m := range mutations {
		b = appendMessage(b, 1, encodeMutation(m))
	}
	return b
}

// DecodeMutations parses a SyncdMutations message.
func DecodeMutations(b []byte) ([]models.SyncdMutation, error) {
	var out []models.SyncdMutation
	err := forEachField(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		if err := expect(f, protowire.BytesType); err != nil {
			return err
		}
		m, err := decodeMutation(f.bytes)
		if err != nil {
			return fmt.Errorf("mutation %d: %w", len(out), err)
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode mutations: %w", err)
	}
	return out, nil
}

// EncodeExternalBlobReference serializes an ExternalBlobReference.
func EncodeExternalBlobReference(r *models.ExternalBlobReference) []byte {
	var b []byte
	b = appendBytes(b, 1, r.MediaKey)
	b = appendString(b, 2, r.DirectPath)
	b = appendString(b, 3, r.Handle)
	b = appendVarint(b, 4, r.FileSizeBytes)
	b = appendBytes(b, 5, r.FileSHA256)
	b = appendBytes(b, 6, r.FileEncSHA256)
	return b
}

// DecodeExternalBlobReference parses an ExternalBlobReference.
func DecodeExternalBlobReference(b []byte) (*models.ExternalBlobReference, error) {
	r := &models.ExternalBlobReference{}
	err := forEachField(b, func(f field) error {
		switch f.num {
		case 1:
			r.MediaKey = f.clone()
		case 2:
			r.DirectPath = f.string()
		case 3:
			r.Handle = f.string()
		case 4:
			r.FileSizeBytes = f.value
		case 5:
			r.FileSHA256 = f.clone()
		case 6:
			r.FileEncSHA256 = f.clone()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode external blob reference: %w", err)
	}
	if r.DirectPath == "" {
		return nil, fmt.Errorf("decode external blob reference: %w: direct path", ErrMissingField)
	}
	return r, nil
}

func encodeVersion(v uint64) []byte {
	return appendRequiredVarint(nil, 1, v)
}

func decodeVersion(b []byte) (uint64, error) {
	var v uint64
	err := forEachField(b, func(f field) error {
		if f.num == 1 {
			v = f.value
		}
		return nil
	})
	return v, err
}

func encodeKeyID(id []byte) []byte {
	return appendMessage(nil, 1, id)
}

func decodeKeyID(b []byte) ([]byte, error) {
	var id []byte
	err := forEachField(b, func(f field) error {
		if f.num == 1 {
			id = f.clone()
		}
		return nil
	})
	return id, err
}

func encodeMutation(m models.SyncdMutation) []byte {
	var b []byte
	b = appendRequiredVarint(b, 1, uint64(m.Operation))
	b = appendMessage(b, 2, encodeRecord(m.Record))
	return b
}

func decodeMutation(b []byte) (models.SyncdMutation, error) {
	var (
		m         models.SyncdMutation
		hasRecord bool
	)
	err := forEachField(b, func(f field) error {
		switch f.num {
		case 1:
			m.Operation = models.Operation(f.value)
		case 2:
			if err := expect(f, protowire.BytesType); err != nil {
				return err
			}
			r, err := decodeRecord(f.bytes)
			if err != nil {
				return err
			}
			m.Record = r
			hasRecord = true
		}
		return nil
	})
	if err != nil {
		return m, err
	}
	if !hasRecord {
		return m, fmt.Errorf("%w: record", ErrMissingField)
	}
	return m, nil
}

func encodeRecord(r models.MutationRecord) []byte {
	var b []byte
	b = appendMessage(b, 1, appendBytes(nil, 1, r.IndexMAC))
	b = appendMessage(b, 2, appendBytes(nil, 1, r.ValueBlob))
	if r.KeyID != nil {
		b = appendMessage(b, 3, encodeKeyID(r.KeyID))
	}
	return b
}

func decodeRecord(b []byte) (models.MutationRecord, error) {
	var r models.MutationRecord
	blob := func(b []byte) ([]byte, error) {
		var out []byte
		err := forEachField(b, func(f field) error {
			if f.num == 1 {
				out = f.clone()
			}
			return nil
		})
		return out, err
	}
	err := forEachField(b, func(f field) error {
		if f.num < 1 || f.num > 3 {
			return nil
		}
		if err := expect(f, protowire.BytesType); err != nil {
			return err
		}
		var err error
		switch f.num {
		case 1:
			r.IndexMAC, err = blob(f.bytes)
		case 2:
			r.ValueBlob, err = blob(f.bytes)
		case 3:
			r.KeyID, err = decodeKeyID(f.bytes)
		}
		return err
	})
	return r, err
}
