// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// relay transport handlers.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies and gRPC status messages. Keeping them in one place
// keeps the wording of both transports identical.
package app

const (
	// MsgInvalidDataProvided is returned when a request body cannot be
	// decoded, e.g. malformed JSON on device registration.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidQuery is returned when a sync query frame fails to decode or
	// violates the query rules (unknown collection, wrong patch version,
	// missing MACs).
	MsgInvalidQuery = "invalid sync query"

	// MsgUnknownNamespace is returned for a query submitted to any namespace
	// other than the app state sync one.
	MsgUnknownNamespace = "unknown query namespace"

	// MsgEmptyDeviceID is returned when a device registers without an ID.
	MsgEmptyDeviceID = "empty device ID"

	// MsgIntegrityCheckFailed is returned when the HashSHA256 header does not
	// match the HMAC of the request body.
	MsgIntegrityCheckFailed = "integrity check failed"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpired is returned when a device token is syntactically
	// valid but its expiry time has passed.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid is returned when a device token is either
	// expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoDeviceInContext is returned when a protected handler runs without
	// the account and device identifiers the auth layer puts in the context.
	MsgNoDeviceInContext = "no authenticated device"

	// MsgBlobNotFound is returned when a snapshot or mutations blob does not
	// exist or the path is not one the relay hands out.
	MsgBlobNotFound = "blob not found"

	// MsgTokenCreationFailed is returned when the relay cannot sign a device
	// token, usually because the sign key is not configured.
	MsgTokenCreationFailed = "token creation failed"
)
