// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package wire

import "errors"

var (
	// ErrMalformed is returned when a buffer is not a valid encoding of the
	// expected message.
	ErrMalformed = errors.New("malformed protobuf payload")

	// ErrMissingField is returned when a field the protocol requires is absent.
	ErrMissingField = errors.New("required field is missing")
)
