// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client runs one command line invocation.
type Client interface {
	// Run executes the command named by args[0], sync when args is empty,
	// and blocks until it finishes or ctx is cancelled.
	Run(ctx context.Context, args []string) error
}

var _ Client = (*App)(nil)
