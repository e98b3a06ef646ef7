package session

import (
	"context"

	"github.com/MKhiriev/go-mobile-messaging/internal/broadcast"
	"github.com/MKhiriev/go-mobile-messaging/internal/store"
)

// ── base url ─────────────────────────────────────────────────────────────────

// APIBaseURL returns the persisted base URL or the default one.
func (s *Session) APIBaseURL(ctx context.Context) string {
	url, err := s.prefs.String(ctx, store.KeyAPIBaseURL)
	if err != nil || url == "" {
		return s.defaultBaseURL
	}
	return url
}

func (s *Session) SetAPIBaseURL(ctx context.Context, url string) error {
	return s.prefs.SaveString(ctx, store.KeyAPIBaseURL, url)
}

// ResetAPIBaseURL returns to the default base URL.
func (s *Session) ResetAPIBaseURL(ctx context.Context) error {
	return s.prefs.Remove(ctx, store.KeyAPIBaseURL)
}

func (s *Session) DefaultAPIBaseURL() string {
	return s.defaultBaseURL
}

// ── last error ───────────────────────────────────────────────────────────────

// SetLastHTTPError records the last terminal backend error. A nil err
// clears it.
func (s *Session) SetLastHTTPError(ctx context.Context, err error) error {
	if err == nil {
		return s.prefs.Remove(ctx, store.KeyLastHTTPError)
	}
	return s.prefs.SaveJSON(ctx, store.KeyLastHTTPError, broadcast.FromError(err))
}

// LastHTTPError returns the last recorded error, or nil.
func (s *Session) LastHTTPError(ctx context.Context) (*broadcast.MobileMessagingError, error) {
	var stored broadcast.MobileMessagingError
	ok, err := s.prefs.JSON(ctx, store.KeyLastHTTPError, &stored)
	if err != nil || !ok {
		return nil, err
	}
	return &stored, nil
}

// ── retry overrides ──────────────────────────────────────────────────────────

// MaxRetriesOverride returns the persisted max retry count, if any.
func (s *Session) MaxRetriesOverride(ctx context.Context) (int, bool) {
	v, ok, err := s.prefs.Int64(ctx, store.KeyRetryMaxCount)
	if err != nil || !ok {
		return 0, false
	}
	return int(v), true
}

// BackoffMultiplierOverride returns the persisted backoff multiplier, if any.
func (s *Session) BackoffMultiplierOverride(ctx context.Context) (float64, bool) {
	v, ok, err := s.prefs.Float64(ctx, store.KeyRetryBackoffMultiplier)
	if err != nil || !ok {
		return 0, false
	}
	return v, true
}

func (s *Session) SetMaxRetriesOverride(ctx context.Context, maxRetries int) error {
	return s.prefs.SaveInt64(ctx, store.KeyRetryMaxCount, int64(maxRetries))
}

func (s *Session) SetBackoffMultiplierOverride(ctx context.Context, multiplier float64) error {
	return s.prefs.SaveFloat64(ctx, store.KeyRetryBackoffMultiplier, multiplier)
}
