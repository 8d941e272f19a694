// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/MKhiriev/go-app-state-sync/models"
	"golang.org/x/crypto/hkdf"
)

const (
	blobKeysInfo = "WhatsApp App State Keys"
	blobMACSize  = 10
)

type blobKeys struct {
	iv        []byte
	cipherKey []byte
	macKey    []byte
}

func expandBlobKey(mediaKey []byte) (blobKeys, error) {
	if len(mediaKey) != RootKeySize {
		return blobKeys{}, fmt.Errorf("%w: media key is %d bytes", ErrInvalidKey, len(mediaKey))
	}
	expanded := make([]byte, 112)
	if _, err := io.ReadFull(hkdf.New(sha256.New, mediaKey, nil, []byte(blobKeysInfo)), expanded); err != nil {
		return blobKeys{}, fmt.Errorf("expand media key: %w", err)
	}
	return blobKeys{
		iv:        expanded[0:16],
		cipherKey: expanded[16:48],
		macKey:    expanded[48:80],
	}, nil
}

func blobMAC(keys blobKeys, encrypted []byte) []byte {
	mac := hmac.New(sha256.New, keys.macKey)
	mac.Write(keys.iv)
	mac.Write(encrypted)
	return mac.Sum(nil)[:blobMACSize]
}

// EncryptBlob encrypts plaintext under a fresh media key for upload to the
// blob store. The returned reference has everything but DirectPath and
// Handle filled in; file is what must be stored.
func EncryptBlob(rnd io.Reader, plaintext []byte) (*models.ExternalBlobReference, []byte, error) {
	mediaKey := make([]byte, RootKeySize)
	if _, err := io.ReadFull(rnd, mediaKey); err != nil {
		return nil, nil, fmt.Errorf("generate media key: %w", err)
	}
	keys, err := expandBlobKey(mediaKey)
	if err != nil {
		return nil, nil, err
	}

	encrypted, err := cbcEncrypt(keys.cipherKey, keys.iv, plaintext)
	if err != nil {
		return nil, nil, fmt.Errorf("encrypt blob: %w", err)
	}
	file := append(encrypted, blobMAC(keys, encrypted)...)

	plainSum := sha256.Sum256(plaintext)
	encSum := sha256.Sum256(file)
	return &models.ExternalBlobReference{
		MediaKey:      mediaKey,
		FileSizeBytes: uint64(len(plaintext)),
		FileSHA256:    plainSum[:],
		FileEncSHA256: encSum[:],
	}, file, nil
}

// DecryptBlob verifies and decrypts a downloaded blob file.
func DecryptBlob(ref *models.ExternalBlobReference, file []byte) ([]byte, error) {
	if len(ref.FileEncSHA256) > 0 {
		sum := sha256.Sum256(file)
		if !hmac.Equal(sum[:], ref.FileEncSHA256) {
			return nil, fmt.Errorf("%w: encrypted file hash", ErrAuthenticationFailed)
		}
	}
	if len(file) < blobMACSize {
		return nil, fmt.Errorf("%w: blob is %d bytes", ErrMalformedCiphertext, len(file))
	}

	keys, err := expandBlobKey(ref.MediaKey)
	if err != nil {
		return nil, err
	}

	encrypted, mac := file[:len(file)-blobMACSize], file[len(file)-blobMACSize:]
	if !hmac.Equal(blobMAC(keys, encrypted), mac) {
		return nil, fmt.Errorf("%w: blob mac", ErrAuthenticationFailed)
	}

	plaintext, err := cbcDecrypt(keys.cipherKey, keys.iv, encrypted)
	if err != nil {
		return nil, fmt.Errorf("decrypt blob: %w", err)
	}

	if len(ref.FileSHA256) > 0 {
		sum := sha256.Sum256(plaintext)
		if !hmac.Equal(sum[:], ref.FileSHA256) {
			return nil, fmt.Errorf("%w: file hash", ErrAuthenticationFailed)
		}
	}
	return plaintext, nil
}
