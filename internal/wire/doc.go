// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package wire encodes and decodes the protobuf messages exchanged by app
// state sync: patches, snapshots, mutation records, external blob references,
// the plaintext SyncActionData, and the query envelopes sent to the relay.
//
// Messages are written directly with protowire so that the byte layout is
// fixed by this package and does not depend on generated code.
package wire
