// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const vaultSaltContext = "go-app-state-sync key vault"

// keyVault is the private implementation of [KeyVault].
type keyVault struct {
	aead cipher.AEAD
	rand io.Reader
}

// argonParams are the Argon2id parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
type argonParams struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
}

var defaultArgonParams = argonParams{
	time:    1,
	memory:  64 * 1024, // 64 MiB
	threads: 4,
	keyLen:  32, // 256 bits
}

// VaultSalt derives the per-device salt of the key vault. Salts need not be
// secret, only distinct between devices.
func VaultSalt(deviceID string) []byte {
	sum := sha256.Sum256([]byte(vaultSaltContext + "\x00" + deviceID))
	return sum[:16]
}

// NewKeyVault derives the key-encryption key from passphrase and salt with
// Argon2id and returns a [KeyVault] sealing with AES-256-GCM.
func NewKeyVault(passphrase string, salt []byte) (KeyVault, error) {
	return newKeyVault(passphrase, salt, defaultArgonParams)
}

func newKeyVault(passphrase string, salt []byte, p argonParams) (*keyVault, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("%w: empty passphrase", ErrInvalidKey)
	}

	// 1. Derive KEK
	kek := argon2.IDKey([]byte(passphrase), salt, p.time, p.memory, p.threads, p.keyLen)

	// 2. Build AES-GCM cipher from KEK
	block, err := aes.NewCipher(kek)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &keyVault{aead: gcm, rand: rand.Reader}, nil
}

// Seal implements [KeyVault]. The random nonce is prepended to the
// ciphertext: blob = nonce ‖ ciphertext.
func (v *keyVault) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, v.aead.NonceSize())
	if _, err := io.ReadFull(v.rand, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return v.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open implements [KeyVault].
func (v *keyVault) Open(sealed []byte) ([]byte, error) {
	nonceSize := v.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, fmt.Errorf("%w: sealed key too short", ErrMalformedCiphertext)
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := v.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// almost always a wrong passphrase
		return nil, fmt.Errorf("%w: open sealed key: %w", ErrAuthenticationFailed, err)
	}
	return plaintext, nil
}
