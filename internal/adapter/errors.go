package adapter

import "errors"

// Sentinel errors returned by [ServerAdapter] implementations. Status codes
// of either transport are mapped onto them.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("version conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")

	// ErrTransport marks a failure to reach the relay at all: refused
	// connection, timeout, unavailable upstream. Callers may retry.
	ErrTransport = errors.New("relay is unreachable")

	// ErrNoAddress is returned when neither an HTTP nor a gRPC address is set.
	ErrNoAddress = errors.New("no relay address configured")
)
