// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the app state relay.
//
// The primary abstraction is [ServerAdapter], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) and a gRPC implementation ([NewGRPCServerAdapter]);
// [NewServerAdapter] picks one from the client configuration.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError and from gRPC status codes by mapGRPCError so that callers can
// use [errors.Is] for transport-agnostic error handling (e.g. [ErrConflict] for
// 409, [ErrUnauthorized] for 401, [ErrTransport] for a relay that cannot be
// reached).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-app-state-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// Transport submits an opaque query to the relay and returns its opaque
// response. The sync engine builds and parses the payloads itself.
type Transport interface {
	SubmitQuery(ctx context.Context, namespace string, payload []byte) ([]byte, error)
}

// BlobDownloader fetches an external blob and returns its verified plaintext.
type BlobDownloader interface {
	// Download retrieves ref.DirectPath, checks the encrypted file hash and
	// the blob MAC, decrypts it and checks the plaintext hash.
	Download(ctx context.Context, ref *models.ExternalBlobReference) ([]byte, error)
}

// ServerAdapter is everything the client needs from the relay.
type ServerAdapter interface {
	Transport
	BlobDownloader

	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// RegisterDevice asks the relay for a device token and stores it via
	// SetToken.
	RegisterDevice(ctx context.Context, deviceID string) (models.Token, error)

	// Close releases the underlying connection.
	Close() error
}
