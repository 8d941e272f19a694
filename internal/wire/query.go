// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wire

import (
	"fmt"

	"github.com/MKhiriev/go-app-state-sync/models"
	"google.golang.org/protobuf/encoding/protowire"
)

// EncodeSyncRequest serializes the body of an app state query.
func EncodeSyncRequest(r *models.SyncRequest) []byte {
	var b []byte
	for _, c := range r.Collections {
		var msg []byte
		msg = appendString(msg, 1, c.Name.String())
		msg = appendRequiredVarint(msg, 2, c.Version)
		msg = appendBool(msg, 3, c.ReturnSnapshot)
		if c.Patch != nil {
			msg = appendMessage(msg, 4, EncodePatch(c.Patch))
		}
		b = appendMessage(b, 1, msg)
	}
	return b
}

// DecodeSyncRequest parses the body of an app state query.
func DecodeSyncRequest(b []byte) (*models.SyncRequest, error) {
	r := &models.SyncRequest{}
	err := forEachField(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		if err := expect(f, protowire.BytesType); err != nil {
			return err
		}
		var c models.CollectionRequest
		err := forEachField(f.bytes, func(f field) error {
			switch f.num {
			case 1:
				name, err := models.ParseCollection(f.string())
				if err != nil {
					return err
				}
				c.Name = name
			case 2:
				c.Version = f.value
			case 3:
				c.ReturnSnapshot = f.bool()
			case 4:
				if err := expect(f, protowire.BytesType); err != nil {
					return err
				}
				p, err := DecodePatch(f.bytes)
				if err != nil {
					return err
				}
				c.Patch = p
			}
			return nil
		})
		if err != nil {
			return err
		}
		if c.Name == "" {
			return fmt.Errorf("%w: collection name", ErrMissingField)
		}
		r.Collections = append(r.Collections, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode sync request: %w", err)
	}
	return r, nil
}

// EncodeSyncResponse serializes the relay's answer to an app state query.
func EncodeSyncResponse(r *models.SyncResponse) []byte {
	var b []byte
	for _, c := range r.Collections {
		var msg []byte
		msg = appendString(msg, 1, c.Name.String())
		msg = appendRequiredVarint(msg, 2, c.Version)
		msg = appendString(msg, 3, c.Type)
		msg = appendVarint(msg, 4, uint64(c.ErrorCode))
		msg = appendString(msg, 5, c.ErrorText)
		msg = appendBool(msg, 6, c.HasMorePatches)
		if c.Snapshot != nil {
			msg = appendMessage(msg, 7, EncodeExternalBlobReference(c.Snapshot))
		}
		for i := range c.Patches {
			msg = appendMessage(msg, 8, EncodePatch(&c.Patches[i]))
		}
		b = appendMessage(b, 1, msg)
	}
	return b
}

// DecodeSyncResponse parses the relay's answer to an app state query.
func DecodeSyncResponse(b []byte) (*models.SyncResponse, error) {
	r := &models.SyncResponse{}
	err := forEachField(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		if err := expect(f, protowire.BytesType); err != nil {
			return err
		}
		var c models.CollectionResponse
		err := forEachField(f.bytes, func(f field) error {
			switch f.num {
			case 1:
				name, err := models.ParseCollection(f.string())
				if err != nil {
					return err
				}
				c.Name = name
			case 2:
				c.Version = f.value
			case 3:
				c.Type = f.string()
			case 4:
				c.ErrorCode = uint32(f.value)
			case 5:
				c.ErrorText = f.string()
			case 6:
				c.HasMorePatches = f.bool()
			case 7:
				if err := expect(f, protowire.BytesType); err != nil {
					return err
				}
				ref, err := DecodeExternalBlobReference(f.bytes)
				if err != nil {
					return err
				}
				c.Snapshot = ref
			case 8:
				if err := expect(f, protowire.BytesType); err != nil {
					return err
				}
				p, err := DecodePatch(f.bytes)
				if err != nil {
					return err
				}
				c.Patches = append(c.Patches, *p)
			}
			return nil
		})
		if err != nil {
			return err
		}
		if c.Name == "" {
			return fmt.Errorf("%w: collection name", ErrMissingField)
		}
		r.Collections = append(r.Collections, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode sync response: %w", err)
	}
	return r, nil
}
