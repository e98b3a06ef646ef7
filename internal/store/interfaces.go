// Package store provides the durable key/value state the synchronizers read
// and write by name: tokens, flags, hashes and the sets of ids that still
// wait for a backend acknowledgement.
//
// Three engines implement [Storage]: bbolt (default), SQLite and an
// in-memory map. [Preferences] adds typed accessors on top of any engine.
package store

import "context"

// Storage is a durable string key/value store with atomic set editing.
//
// Implementations must be safe for concurrent use.
type Storage interface {
	// Find returns the value stored under key. ok is false when the key is
	// absent.
	Find(ctx context.Context, key string) (value string, ok bool, err error)

	// Save stores value under key, replacing any previous value.
	Save(ctx context.Context, key, value string) error

	// Remove deletes the given keys. Missing keys are ignored.
	Remove(ctx context.Context, keys ...string) error

	// EditSet atomically loads the set stored under key, passes it to edit
	// and stores the result. An empty result removes the key.
	EditSet(ctx context.Context, key string, edit func(set map[string]struct{})) error

	// Close releases the underlying resources.
	Close() error
}
