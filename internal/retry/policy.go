// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package retry

import (
	"math"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// Policy describes how a Task retries. It is a value type; copies never
// share state.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt. Zero means
	// a single attempt.
	MaxRetries int
	// BackoffMultiplier is applied to the delay after every retry.
	BackoffMultiplier float64
	// MinBackoff is the delay before the first retry.
	MinBackoff time.Duration
	// MaxBackoff caps the delay. Zero means no cap.
	MaxBackoff time.Duration
}

// NewPolicy returns a normalized Policy: negative values become zero, a
// multiplier below 1 becomes 1 and a cap below MinBackoff is raised to it.
func NewPolicy(maxRetries int, multiplier float64, minBackoff, maxBackoff time.Duration) Policy {
	return Policy{
		MaxRetries:        maxRetries,
		BackoffMultiplier: multiplier,
		MinBackoff:        minBackoff,
		MaxBackoff:        maxBackoff,
	}.normalize()
}

// NoRetry is a single-attempt policy.
func NoRetry() Policy {
	return Policy{BackoffMultiplier: 1}
}

func (p Policy) normalize() Policy {
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.BackoffMultiplier < 1 || math.IsNaN(p.BackoffMultiplier) {
		p.BackoffMultiplier = 1
	}
	if p.MinBackoff < 0 {
		p.MinBackoff = 0
	}
	if p.MaxBackoff < 0 {
		p.MaxBackoff = 0
	}
	if p.MaxBackoff != 0 && p.MaxBackoff < p.MinBackoff {
		p.MaxBackoff = p.MinBackoff
	}
	return p
}

// DelayForAttempt returns the wait before retry n (n >= 1):
// MinBackoff * BackoffMultiplier^(n-1), clamped to [MinBackoff, MaxBackoff].
// The result is never negative and never decreases as n grows.
func (p Policy) DelayForAttempt(n int) time.Duration {
	p = p.normalize()
	if n < 1 {
		n = 1
	}

	delay := float64(p.MinBackoff) * math.Pow(p.BackoffMultiplier, float64(n-1))

	ceiling := float64(math.MaxInt64)
	if p.MaxBackoff > 0 {
		ceiling = float64(p.MaxBackoff)
	}
	if delay >= ceiling || math.IsInf(delay, 1) {
		if p.MaxBackoff > 0 {
			return p.MaxBackoff
		}
		return time.Duration(math.MaxInt64)
	}

	return max(time.Duration(delay), p.MinBackoff)
}

// Backoff returns a fresh go-retry Backoff that yields DelayForAttempt for
// retries 1..MaxRetries and then stops.
func (p Policy) Backoff() goretry.Backoff {
	p = p.normalize()

	retries := 0
	return goretry.BackoffFunc(func() (time.Duration, bool) {
		retries++
		if retries > p.MaxRetries {
			return 0, true
		}
		return p.DelayForAttempt(retries), false
	})
}
