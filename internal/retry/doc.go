// Package retry provides the retryable unit of background work used by every
// synchronizer: an immutable backoff Policy, a Provider of named policies, a
// generic Task with a run/onSuccess/onError lifecycle and a cancellable
// Handle to observe it.
//
// The retry loop itself is github.com/sethvargo/go-retry driven by a
// Backoff built from the Policy.
//
// A Task delivers at most one terminal callback. A cancelled task is silent:
// neither onSuccess nor onError fires and the handle reports Cancelled.
package retry
