// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package retry

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/MKhiriev/go-mobile-messaging/internal/workers"
	goretry "github.com/sethvargo/go-retry"
)

// Task is a retryable unit of work with a run/onSuccess/onError lifecycle.
// A Task executes once; it delivers at most one terminal callback, after its
// state has been committed.
type Task[In, Out any] struct {
	run       func(ctx context.Context, in In) (Out, error)
	onSuccess func(Out)
	onError   func(error)
	policy    Policy
	retryable func(error) bool

	executed atomic.Bool
	state    atomic.Int32
	attempts atomic.Int32
}

// NewTask creates a task. onSuccess and onError may be nil. Without
// RetryWith the task makes a single attempt.
func NewTask[In, Out any](
	run func(ctx context.Context, in In) (Out, error),
	onSuccess func(Out),
	onError func(error),
) *Task[In, Out] {
	return &Task[In, Out]{
		run:       run,
		onSuccess: onSuccess,
		onError:   onError,
		policy:    NoRetry(),
		retryable: IsRetryable,
	}
}

// RetryWith sets the retry policy. It must be called before execution.
func (t *Task[In, Out]) RetryWith(policy Policy) *Task[In, Out] {
	t.policy = policy.normalize()
	return t
}

// Classify replaces the retryable predicate. It must be called before
// execution.
func (t *Task[In, Out]) Classify(retryable func(error) bool) *Task[In, Out] {
	if retryable != nil {
		t.retryable = retryable
	}
	return t
}

func (t *Task[In, Out]) State() State {
	return State(t.state.Load())
}

// Attempts returns the number of times run has been invoked.
func (t *Task[In, Out]) Attempts() int {
	return int(t.attempts.Load())
}

// Execute schedules the task on exec and returns immediately.
func (t *Task[In, Out]) Execute(ctx context.Context, exec workers.Executor, in In) *Handle {
	return Go(ctx, exec, func(ctx context.Context) (State, error) {
		return t.Do(ctx, in)
	})
}

// Do runs the retry loop on the calling goroutine and returns the terminal
// state. Backoff sleeps block the caller.
//
// When ctx is cancelled before a terminal outcome the task ends Cancelled
// and no callback fires.
func (t *Task[In, Out]) Do(ctx context.Context, in In) (State, error) {
	if !t.executed.CompareAndSwap(false, true) {
		return Failed, ErrAlreadyExecuted
	}
	if h := handleFrom(ctx); h != nil {
		h.track(t)
	}

	t.state.Store(int32(Running))

	out, err := goretry.DoValue(ctx, t.policy.Backoff(), func(ctx context.Context) (Out, error) {
		t.attempts.Add(1)

		out, err := t.attempt(ctx, in)
		if err != nil && t.retryable(err) {
			return out, goretry.RetryableError(err)
		}
		return out, err
	})

	switch {
	case err == nil:
		t.state.Store(int32(Succeeded))
		if t.onSuccess != nil {
			t.onSuccess(out)
		}
		return Succeeded, nil

	case ctx.Err() != nil:
		t.state.Store(int32(Cancelled))
		return Cancelled, ctx.Err()

	default:
		t.state.Store(int32(Failed))
		if t.onError != nil {
			t.onError(err)
		}
		return Failed, err
	}
}

func (t *Task[In, Out]) attempt(ctx context.Context, in In) (out Out, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()

	return t.run(ctx, in)
}
