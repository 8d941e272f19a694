package server

import "context"

// Server is one relay transport, or all of them together.
type Server interface {
	// RunServer serves until the transport stops. Stopping through
	// Shutdown is not an error.
	RunServer() error

	// Shutdown stops accepting queries and waits for the ones in flight,
	// at most until ctx ends.
	Shutdown(ctx context.Context) error
}
