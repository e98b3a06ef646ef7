package session

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-mobile-messaging/internal/store"
	"github.com/MKhiriev/go-mobile-messaging/models"
)

// MaxSyncedMessageIDs bounds the list of message ids sent back to the
// backend on every messages sync.
const MaxSyncedMessageIDs = 100

// ── delivery ─────────────────────────────────────────────────────────────────

func (s *Session) UnreportedMessageIDs(ctx context.Context) ([]string, error) {
	return s.prefs.Set(ctx, store.KeyUnreportedMessageIDs)
}

func (s *Session) AddUnreportedMessageIDs(ctx context.Context, ids ...string) error {
	return s.prefs.AddToSet(ctx, store.KeyUnreportedMessageIDs, nonEmpty(ids)...)
}

// RemoveUnreportedMessageIDs removes exactly ids; ids added concurrently
// stay in the set.
func (s *Session) RemoveUnreportedMessageIDs(ctx context.Context, ids ...string) error {
	return s.prefs.RemoveFromSet(ctx, store.KeyUnreportedMessageIDs, ids...)
}

// ── seen ─────────────────────────────────────────────────────────────────────

// UnreportedSeenMessages returns message id → seen time in unix millis.
func (s *Session) UnreportedSeenMessages(ctx context.Context) (map[string]int64, error) {
	entries, err := s.prefs.Set(ctx, store.KeyUnreportedSeenMessages)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]int64, len(entries))
	for _, entry := range entries {
		id, at, err := parseSeenEntry(entry)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[id]; !ok || at < prev {
			seen[id] = at
		}
	}
	return seen, nil
}

// AddUnreportedSeenMessages records ids as seen at the given time. An id
// already recorded keeps its earlier time.
func (s *Session) AddUnreportedSeenMessages(ctx context.Context, seenAt time.Time, ids ...string) error {
	ids = nonEmpty(ids)
	if len(ids) == 0 {
		return nil
	}

	at := seenAt.UnixMilli()
	return s.prefs.EditSet(ctx, store.KeyUnreportedSeenMessages, func(set map[string]struct{}) {
		known := seenIDs(set)
		for _, id := range ids {
			if _, ok := known[id]; ok {
				continue
			}
			set[seenEntry(id, at)] = struct{}{}
		}
	})
}

// RemoveUnreportedSeenMessageIDs drops every entry of the given ids.
func (s *Session) RemoveUnreportedSeenMessageIDs(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	return s.prefs.EditSet(ctx, store.KeyUnreportedSeenMessages, func(set map[string]struct{}) {
		for entry := range set {
			id, _, err := parseSeenEntry(entry)
			if err != nil {
				delete(set, entry)
				continue
			}
			if _, ok := drop[id]; ok {
				delete(set, entry)
			}
		}
	})
}

// SeenReport builds the seen report for the unreported entries relative to
// now.
func (s *Session) SeenReport(ctx context.Context) (models.SeenMessagesReport, error) {
	seen, err := s.UnreportedSeenMessages(ctx)
	if err != nil {
		return models.SeenMessagesReport{}, err
	}

	now := s.now().UnixMilli()
	report := models.SeenMessagesReport{Messages: make([]models.SeenMessage, 0, len(seen))}
	for id, at := range seen {
		delta := (now - at) / 1000
		if delta < 0 {
			delta = 0
		}
		report.Messages = append(report.Messages, models.SeenMessage{MessageID: id, TimestampDelta: delta})
	}
	slices.SortFunc(report.Messages, func(a, b models.SeenMessage) int {
		return strings.Compare(a.MessageID, b.MessageID)
	})

	return report, nil
}

func seenEntry(id string, at int64) string {
	return id + "," + strconv.FormatInt(at, 10)
}

func parseSeenEntry(entry string) (string, int64, error) {
	i := strings.LastIndexByte(entry, ',')
	if i <= 0 {
		return "", 0, fmt.Errorf("%w: seen entry %q", store.ErrCorruptedSet, entry)
	}

	at, err := strconv.ParseInt(entry[i+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: seen entry %q", store.ErrCorruptedSet, entry)
	}
	return entry[:i], at, nil
}

func seenIDs(set map[string]struct{}) map[string]struct{} {
	ids := make(map[string]struct{}, len(set))
	for entry := range set {
		if id, _, err := parseSeenEntry(entry); err == nil {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// ── synced ───────────────────────────────────────────────────────────────────

// SyncedMessageIDs returns the ids of messages already fetched, oldest first.
func (s *Session) SyncedMessageIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if _, err := s.prefs.JSON(ctx, store.KeySyncedMessageIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// AddSyncedMessageIDs appends ids that are not yet known and returns the
// ones that were new. Only the most recent MaxSyncedMessageIDs are kept.
func (s *Session) AddSyncedMessageIDs(ctx context.Context, ids ...string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	synced, err := s.SyncedMessageIDs(ctx)
	if err != nil {
		return nil, err
	}

	var added []string
	for _, id := range nonEmpty(ids) {
		if slices.Contains(synced, id) || slices.Contains(added, id) {
			continue
		}
		added = append(added, id)
	}
	if len(added) == 0 {
		return nil, nil
	}

	synced = append(synced, added...)
	if len(synced) > MaxSyncedMessageIDs {
		synced = synced[len(synced)-MaxSyncedMessageIDs:]
	}

	if err = s.prefs.SaveJSON(ctx, store.KeySyncedMessageIDs, synced); err != nil {
		return nil, err
	}
	return added, nil
}

// MessagesLastSyncedAt returns the time of the last successful messages
// sync, or the zero time.
func (s *Session) MessagesLastSyncedAt(ctx context.Context) (time.Time, error) {
	millis, ok, err := s.prefs.Int64(ctx, store.KeyMessagesLastSyncedAt)
	if err != nil || !ok {
		return time.Time{}, err
	}
	return time.UnixMilli(millis), nil
}

func (s *Session) SetMessagesLastSyncedAt(ctx context.Context, at time.Time) error {
	return s.prefs.SaveInt64(ctx, store.KeyMessagesLastSyncedAt, at.UnixMilli())
}

// ── mobile originated ────────────────────────────────────────────────────────

// UnsentMOMessages returns the persisted outgoing messages ordered by id.
func (s *Session) UnsentMOMessages(ctx context.Context) ([]models.MOMessage, error) {
	entries, err := s.prefs.Set(ctx, store.KeyUnsentMOMessages)
	if err != nil {
		return nil, err
	}

	messages := make([]models.MOMessage, 0, len(entries))
	for _, entry := range entries {
		var msg models.MOMessage
		if err = json.Unmarshal([]byte(entry), &msg); err != nil {
			return nil, fmt.Errorf("%w: mo message: %v", store.ErrCorruptedSet, err)
		}
		messages = append(messages, msg)
	}
	slices.SortFunc(messages, func(a, b models.MOMessage) int {
		return strings.Compare(a.MessageID, b.MessageID)
	})
	return messages, nil
}

// AddUnsentMOMessages persists messages so they are resent after a failure.
// Messages without an id get one.
func (s *Session) AddUnsentMOMessages(ctx context.Context, messages ...models.MOMessage) ([]models.MOMessage, error) {
	encoded := make([]string, 0, len(messages))
	for i := range messages {
		if messages[i].MessageID == "" {
			messages[i].MessageID = s.newID()
		}
		data, err := json.Marshal(messages[i])
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, string(data))
	}

	if err := s.RemoveUnsentMOMessages(ctx, moIDs(messages)...); err != nil {
		return nil, err
	}
	if err := s.prefs.AddToSet(ctx, store.KeyUnsentMOMessages, encoded...); err != nil {
		return nil, err
	}
	return messages, nil
}

// RemoveUnsentMOMessages drops the persisted messages with the given ids.
func (s *Session) RemoveUnsentMOMessages(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	return s.prefs.EditSet(ctx, store.KeyUnsentMOMessages, func(set map[string]struct{}) {
		for entry := range set {
			var msg models.MOMessage
			if err := json.Unmarshal([]byte(entry), &msg); err != nil || slices.Contains(ids, msg.MessageID) {
				delete(set, entry)
			}
		}
	})
}

func moIDs(messages []models.MOMessage) []string {
	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.MessageID)
	}
	return ids
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
