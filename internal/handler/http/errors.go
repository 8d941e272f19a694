// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the transport middleware. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the "Bearer <token>" form.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrMissingHash is returned when body hashing is enabled and a query
	// arrives without the HashSHA256 header.
	ErrMissingHash = errors.New("missing `HashSHA256` header")
)
