// Package workers runs the background workers of the sync client.
// It defines the Worker interface and a Workers aggregate that runs several
// workers until their shared context ends.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is cancelled or the worker fails. A worker that stops
// because ctx ended returns nil.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}
