// Package http implements the HTTP transport of the relay.
//
// It exposes device registration, the sync query endpoint, blob downloads,
// the version endpoint and Prometheus metrics. Authentication, request tracing,
// access logging, response compression and body integrity checks are
// handled here before requests are delegated to the service layer.
package http
