// Package server runs the relay's HTTP and gRPC transports side by side.
// A failure of one stops the other, and SIGINT, SIGTERM or SIGQUIT shuts
// both down gracefully.
package server
