package store

import "errors"

// Sentinel errors returned by the storage engines. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrUnknownDriver is returned by NewStorage for an unsupported driver.
	ErrUnknownDriver = errors.New("unknown storage driver")

	// ErrCorruptedSet is returned when a value stored under a set key cannot
	// be decoded as a set.
	ErrCorruptedSet = errors.New("stored value is not a set")

	// ErrStorageClosed is returned by the memory engine after Close.
	ErrStorageClosed = errors.New("storage is closed")
)
