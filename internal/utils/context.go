// Package utils provides general-purpose helper utilities
// used across different parts of the client.
// Includes tools for working with context, type-safe keys, fingerprints,
// id generation, HTTP response writing and HTTP client initialization.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SyncTriggerCtxKey is the key used to store what triggered a sync
// ("startup", "periodic", "explicit", ...) in the context. Synchronizers
// attach it to their log entries.
var SyncTriggerCtxKey = contextKey("syncTrigger")

// Well-known sync triggers.
const (
	TriggerStartup  = "startup"
	TriggerPeriodic = "periodic"
	TriggerExplicit = "explicit"
)

// WithSyncTrigger returns a copy of ctx carrying trigger.
//
// Example usage:
//
//	ctx = utils.WithSyncTrigger(ctx, utils.TriggerPeriodic)
func WithSyncTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, SyncTriggerCtxKey, trigger)
}

// SyncTriggerFromContext retrieves the sync trigger from the context.
//
// Returns TriggerExplicit when no trigger was attached: a sync started
// outside the startup and periodic paths is an explicit API call.
func SyncTriggerFromContext(ctx context.Context) string {
	trigger, ok := ctx.Value(SyncTriggerCtxKey).(string)
	if !ok || trigger == "" {
		return TriggerExplicit
	}
	return trigger
}
