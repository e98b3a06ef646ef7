// Package stats keeps persisted error counters per synchronization kind.
package stats

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
	"github.com/MKhiriev/go-mobile-messaging/internal/store"
)

// Kind identifies a counter.
type Kind string

const (
	RegistrationSync Kind = "registration_sync"
	UserDataSync     Kind = "user_data_sync"
	MessagesSync     Kind = "messages_sync"
	DeliveryReport   Kind = "delivery_report"
	SeenReport       Kind = "seen_report"
	MOSend           Kind = "mo_send"
)

// Kinds lists every counter.
var Kinds = []Kind{RegistrationSync, UserDataSync, MessagesSync, DeliveryReport, SeenReport, MOSend}

// Stats counts terminal sync failures. Counters survive restarts.
type Stats struct {
	prefs  *store.Preferences
	logger *logger.Logger

	mu sync.Mutex
}

func New(prefs *store.Preferences, log *logger.Logger) *Stats {
	return &Stats{prefs: prefs, logger: log.WithComponent("stats")}
}

// ReportError increments the counter of kind. Storage failures are logged
// and otherwise ignored.
func (s *Stats) ReportError(ctx context.Context, kind Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := store.KeyStatsPrefix + string(kind)

	count, _, err := s.prefs.Int64(ctx, key)
	if err != nil {
		s.logger.Err(err).Str("kind", string(kind)).Msg("error reading error counter")
		return
	}

	if err = s.prefs.SaveInt64(ctx, key, count+1); err != nil {
		s.logger.Err(err).Str("kind", string(kind)).Msg("error saving error counter")
	}
}

// ErrorCount returns the counter of kind.
func (s *Stats) ErrorCount(ctx context.Context, kind Kind) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, _, err := s.prefs.Int64(ctx, store.KeyStatsPrefix+string(kind))
	return count, err
}

// Snapshot returns every counter.
func (s *Stats) Snapshot(ctx context.Context) (map[Kind]int64, error) {
	out := make(map[Kind]int64, len(Kinds))
	for _, kind := range Kinds {
		count, err := s.ErrorCount(ctx, kind)
		if err != nil {
			return nil, err
		}
		out[kind] = count
	}
	return out, nil
}

// Reset zeroes every counter.
func (s *Stats) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(Kinds))
	for _, kind := range Kinds {
		keys = append(keys, store.KeyStatsPrefix+string(kind))
	}
	return s.prefs.Remove(ctx, keys...)
}
