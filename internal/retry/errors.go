package retry

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrPermanent marks an error that must not be retried.
	ErrPermanent = errors.New("permanent failure")
	// ErrAlreadyExecuted is returned when a Task is executed twice.
	ErrAlreadyExecuted = errors.New("task already executed")
	// ErrPanicked wraps a value recovered from a panicking task.
	ErrPanicked = errors.New("task panicked")
)

// Permanent wraps err so that IsRetryable reports false for it.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}

// IsRetryable is the default error classification.
//
// Errors wrapping ErrPermanent, ErrPanicked or context.Canceled are terminal.
// An error exposing a Retryable() bool method anywhere in its chain is
// classified by that method. Everything else is treated as transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrPermanent) || errors.Is(err, ErrPanicked) || errors.Is(err, context.Canceled) {
		return false
	}

	var classified interface{ Retryable() bool }
	if errors.As(err, &classified) {
		return classified.Retryable()
	}

	return true
}
