// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrAuthenticationFailed is returned when any MAC or tag does not match:
	// index MAC, value MAC, snapshot MAC, patch MAC or blob MAC. Callers must
	// never continue decoding after this error.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInvalidKey is returned for key material of the wrong size.
	ErrInvalidKey = errors.New("invalid key material")

	// ErrMalformedCiphertext is returned when a blob is too short or its
	// padding is invalid.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
)
