// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// NewServer got no transport with both an address and a handler.
	errNoServersAreCreated = errors.New("relay has neither an HTTP nor a gRPC listener configured")
	errNoServersToRun      = errors.New("relay has no listener to start")
)
