// Package workers provides the background executor the synchronizers run
// on and an aggregate for long-running workers.
//
// It defines the Worker interface, the Executor interface accepted by
// retryable tasks, a FIFO worker Pool implementing both, and a Workers
// aggregate that runs several workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that blocks until ctx is cancelled or the
// worker stops on its own.
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

// Executor accepts jobs for asynchronous execution. Submit never blocks the
// caller; ordering between independently submitted jobs is not guaranteed.
type Executor interface {
	Submit(job func()) error
}
