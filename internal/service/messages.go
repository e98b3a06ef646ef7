package service

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-mobile-messaging/internal/broadcast"
	"github.com/MKhiriev/go-mobile-messaging/internal/retry"
	"github.com/MKhiriev/go-mobile-messaging/internal/stats"
	"github.com/MKhiriev/go-mobile-messaging/models"
)

// MessagesSynchronizer fetches messages the device missed and piggybacks
// unreported delivery ids on the same request.
type MessagesSynchronizer struct {
	synchronizer
}

func NewMessagesSynchronizer(deps Deps) *MessagesSynchronizer {
	return &MessagesSynchronizer{synchronizer: newSynchronizer(deps, stats.MessagesSync, broadcast.KindMessages)}
}

// Sync requests missed messages. It is skipped before the installation is
// registered, and within the throttle window when there are no delivery
// ids to report. The listener receives only messages not seen before.
func (s *MessagesSynchronizer) Sync(ctx context.Context, listener ActionListener[[]models.Message]) *retry.Handle {
	return s.launch(ctx, func(ctx context.Context) (retry.State, error) {
		req, err := s.prepare(ctx)
		if err != nil {
			return failPrepare(ctx, &s.synchronizer, listener, err)
		}
		if req == nil {
			return retry.Skipped, nil
		}

		task := retry.NewTask(
			s.API.SyncMessages,
			func(resp models.SyncMessagesResponse) { s.onSuccess(ctx, *req, resp, listener) },
			func(err error) {
				s.reportFailure(context.WithoutCancel(ctx), err)
				notifyError(listener, err)
			},
		).RetryWith(s.policy(ctx))

		s.logger.Debug().
			Int("known", len(req.MessageIDs)).
			Int("delivered", len(req.DeliveryReportIDs)).
			Msg(">>> sync messages")
		return task.Do(ctx, *req)
	})
}

func (s *MessagesSynchronizer) prepare(ctx context.Context) (*models.SyncMessagesRequest, error) {
	unavailable, err := s.Session.IsRegistrationUnavailable(ctx)
	if err != nil || unavailable {
		return nil, err
	}

	delivered, err := s.Session.UnreportedMessageIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(delivered) == 0 {
		throttled, err := s.throttled(ctx)
		if err != nil || throttled {
			return nil, err
		}
	}

	synced, err := s.Session.SyncedMessageIDs(ctx)
	if err != nil {
		return nil, err
	}

	return &models.SyncMessagesRequest{
		MessageIDs:        orEmpty(synced),
		DeliveryReportIDs: orEmpty(delivered),
	}, nil
}

func (s *MessagesSynchronizer) throttled(ctx context.Context) (bool, error) {
	if s.MessagesSyncThrottle <= 0 {
		return false, nil
	}

	last, err := s.Session.MessagesLastSyncedAt(ctx)
	if err != nil || last.IsZero() {
		return false, err
	}
	return s.Session.Now().Sub(last) < s.MessagesSyncThrottle, nil
}

func (s *MessagesSynchronizer) onSuccess(ctx context.Context, req models.SyncMessagesRequest, resp models.SyncMessagesResponse, listener ActionListener[[]models.Message]) {
	ctx = context.WithoutCancel(ctx)

	s.logReconcile(s.Session.RemoveUnreportedMessageIDs(ctx, req.DeliveryReportIDs...), "delivery ids")

	ids := make([]string, 0, len(resp.Payloads))
	for _, msg := range resp.Payloads {
		ids = append(ids, msg.MessageID)
	}
	added, err := s.Session.AddSyncedMessageIDs(ctx, ids...)
	s.logReconcile(err, "synced message ids")

	fresh := make([]models.Message, 0, len(added))
	for _, msg := range resp.Payloads {
		if slices.Contains(added, msg.MessageID) {
			fresh = append(fresh, msg)
		}
	}

	s.logReconcile(s.Session.SetMessagesLastSyncedAt(ctx, s.Session.Now()), "messages sync time")
	s.logger.Debug().Int("received", len(resp.Payloads)).Int("new", len(fresh)).Msg("<<< messages synced")

	s.Notifier.Notify(broadcast.MessagesSynced{Messages: fresh})
	notifySuccess(listener, fresh)
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
