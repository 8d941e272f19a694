// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"io"

	"github.com/MKhiriev/go-app-state-sync/internal/wire"
	"github.com/MKhiriev/go-app-state-sync/models"
)

const (
	// ValueMACSize is the length of the value MAC appended to every value
	// blob. It is a fixed protocol constant.
	ValueMACSize = 32

	// valueMACTrailerSize is the length of the big endian length field that
	// closes the value MAC input; only its last byte is ever non-zero.
	valueMACTrailerSize = 8
)

// ValueMAC returns the value MAC of a record, the last ValueMACSize bytes of
// its value blob. It returns nil for blobs that are too short.
func ValueMAC(blob []byte) []byte {
	if len(blob) < ValueMACSize {
		return nil
	}
	return blob[len(blob)-ValueMACSize:]
}

// GenerateValueMAC computes HMAC-SHA512(macKey, op ‖ keyID ‖ ciphertext ‖ trailer)
// truncated to ValueMACSize, where ciphertext is IV ‖ AES-CBC output and the
// trailer is len(keyID)+1 written as a 64-bit big endian integer.
func GenerateValueMAC(op models.Operation, ciphertext, keyID, macKey []byte) []byte {
	trailer := make([]byte, valueMACTrailerSize)
	trailer[valueMACTrailerSize-1] = byte(len(keyID) + 1)

	mac := hmac.New(sha512.New, macKey)
	mac.Write([]byte{op.MACByte()})
	mac.Write(keyID)
	mac.Write(ciphertext)
	mac.Write(trailer)
	return mac.Sum(nil)[:ValueMACSize]
}

// GenerateIndexMAC computes HMAC-SHA256(indexKey, index).
func GenerateIndexMAC(index, indexKey []byte) []byte {
	mac := hmac.New(sha256.New, indexKey)
	mac.Write(index)
	return mac.Sum(nil)
}

// EncryptMutation encrypts data under keys and returns the wire record.
// rnd supplies the IV and is crypto/rand.Reader outside of tests.
func EncryptMutation(rnd io.Reader, keys models.MutationKeys, keyID []byte, op models.Operation, data *models.SyncActionData) (models.MutationRecord, error) {
	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rnd, iv); err != nil {
		return models.MutationRecord{}, fmt.Errorf("generate iv: %w", err)
	}

	encrypted, err := cbcEncrypt(keys.EncKey, iv, wire.EncodeSyncActionData(data))
	if err != nil {
		return models.MutationRecord{}, fmt.Errorf("encrypt mutation: %w", err)
	}

	blob := make([]byte, 0, len(iv)+len(encrypted)+ValueMACSize)
	blob = append(blob, iv...)
	blob = append(blob, encrypted...)
	blob = append(blob, GenerateValueMAC(op, blob, keyID, keys.MACKey)...)

	return models.MutationRecord{
		IndexMAC:  GenerateIndexMAC(data.Index, keys.IndexKey),
		ValueBlob: blob,
		KeyID:     bytes.Clone(keyID),
	}, nil
}

// DecryptMutation authenticates and decrypts record. With verify set the
// value MAC is checked before anything is decrypted and the index MAC is
// checked against the decrypted index. verify is only false when integrity
// checks were disabled in configuration.
func DecryptMutation(keys models.MutationKeys, op models.Operation, record models.MutationRecord, verify bool) (*models.SyncActionData, error) {
	blob := record.ValueBlob
	if len(blob) < aes.BlockSize+ValueMACSize {
		return nil, fmt.Errorf("%w: value blob is %d bytes", ErrMalformedCiphertext, len(blob))
	}
	ciphertext := blob[:len(blob)-ValueMACSize]

	if verify {
		expected := GenerateValueMAC(op, ciphertext, record.KeyID, keys.MACKey)
		if !hmac.Equal(expected, ValueMAC(blob)) {
			return nil, fmt.Errorf("%w: value mac", ErrAuthenticationFailed)
		}
	}

	plaintext, err := cbcDecrypt(keys.EncKey, ciphertext[:aes.BlockSize], ciphertext[aes.BlockSize:])
	if err != nil {
		return nil, fmt.Errorf("decrypt mutation: %w", err)
	}

	data, err := wire.DecodeSyncActionData(plaintext)
	if err != nil {
		return nil, err
	}

	if verify && !hmac.Equal(GenerateIndexMAC(data.Index, keys.IndexKey), record.IndexMAC) {
		return nil, fmt.Errorf("%w: index mac", ErrAuthenticationFailed)
	}
	return data, nil
}
