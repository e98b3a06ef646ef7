package service

import (
	"context"

	"github.com/MKhiriev/go-mobile-messaging/internal/broadcast"
	"github.com/MKhiriev/go-mobile-messaging/internal/retry"
	"github.com/MKhiriev/go-mobile-messaging/internal/stats"
	"github.com/MKhiriev/go-mobile-messaging/models"
)

// MOMessageSender sends mobile originated messages. Messages are persisted
// before sending and resent by later syncs until the backend accepts them.
type MOMessageSender struct {
	synchronizer
}

func NewMOMessageSender(deps Deps) *MOMessageSender {
	return &MOMessageSender{synchronizer: newSynchronizer(deps, stats.MOSend, broadcast.KindMOMessages)}
}

// Send persists messages and sends them together with any unsent ones.
func (m *MOMessageSender) Send(ctx context.Context, listener ActionListener[[]models.MOMessage], messages ...models.MOMessage) *retry.Handle {
	if len(messages) > 0 {
		if err := m.validate(ctx, messages); err != nil {
			return rejected(listener, err)
		}
	}
	if _, err := m.Session.AddUnsentMOMessages(ctx, messages...); err != nil {
		return rejected(listener, err)
	}
	explicit := len(messages) > 0

	return m.launch(ctx, func(ctx context.Context) (retry.State, error) {
		regID, err := m.Session.PushRegistrationID(ctx)
		if err != nil {
			return failPrepare(ctx, &m.synchronizer, listener, err)
		}
		if regID == "" {
			if !explicit {
				return retry.Skipped, nil
			}
			notifyError(listener, ErrRegistrationUnavailable)
			return retry.Failed, ErrRegistrationUnavailable
		}

		unsent, err := m.Session.UnsentMOMessages(ctx)
		if err != nil {
			return failPrepare(ctx, &m.synchronizer, listener, err)
		}
		if len(unsent) == 0 {
			return retry.Skipped, nil
		}

		task := retry.NewTask(
			func(ctx context.Context, req models.MOMessagesRequest) (models.MOMessagesResponse, error) {
				m.logger.Debug().Int("count", len(req.Messages)).Msg(">>> send mo messages")
				return m.API.SendMO(ctx, regID, req)
			},
			func(resp models.MOMessagesResponse) { m.onSuccess(ctx, unsent, resp, listener) },
			func(err error) { m.onError(ctx, unsent, err, listener) },
		).RetryWith(m.policy(ctx))

		return task.Do(ctx, models.MOMessagesRequest{Messages: unsent})
	})
}

// Sync resends persisted messages.
func (m *MOMessageSender) Sync(ctx context.Context, listener ActionListener[[]models.MOMessage]) *retry.Handle {
	return m.Send(ctx, listener)
}

func (m *MOMessageSender) onSuccess(ctx context.Context, sent []models.MOMessage, resp models.MOMessagesResponse, listener ActionListener[[]models.MOMessage]) {
	ctx = context.WithoutCancel(ctx)

	ids := make([]string, 0, len(sent))
	for _, msg := range sent {
		ids = append(ids, msg.MessageID)
	}
	m.logReconcile(m.Session.RemoveUnsentMOMessages(ctx, ids...), "unsent mo messages")

	m.Notifier.Notify(broadcast.MessagesSent{Messages: resp.Messages})
	notifySuccess(listener, resp.Messages)
}

func (m *MOMessageSender) onError(ctx context.Context, sent []models.MOMessage, err error, listener ActionListener[[]models.MOMessage]) {
	ctx = context.WithoutCancel(ctx)

	failed := make([]models.MOMessage, len(sent))
	for i, msg := range sent {
		msg.Status = models.MOStatusError
		msg.StatusMessage = err.Error()
		failed[i] = msg
	}

	m.reportFailure(ctx, err)
	m.Notifier.Notify(broadcast.MessagesSent{Messages: failed})
	notifyError(listener, err)
}
