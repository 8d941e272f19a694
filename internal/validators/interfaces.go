// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the shape of sync queries the relay receives.
//
// The relay never sees plaintext, so validation stops at structure: known
// collections, patch versions that follow the client's version, MACs and
// key ids of the right size, inline mutations only. Anything that needs a
// key is left to the devices.
package validators

import "context"

// Validator checks a value. fields narrows the check to the named parts;
// no fields means all of them.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
