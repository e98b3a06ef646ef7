package service

import (
	"context"

	"github.com/MKhiriev/go-mobile-messaging/internal/broadcast"
	"github.com/MKhiriev/go-mobile-messaging/internal/retry"
	"github.com/MKhiriev/go-mobile-messaging/internal/stats"
	"github.com/MKhiriev/go-mobile-messaging/models"
)

// DeliveryReporter acknowledges message delivery to the backend.
type DeliveryReporter struct {
	synchronizer
}

func NewDeliveryReporter(deps Deps) *DeliveryReporter {
	return &DeliveryReporter{synchronizer: newSynchronizer(deps, stats.DeliveryReport, broadcast.KindDelivery)}
}

// Report adds ids to the unreported delivery ids and reports all of them.
// Only the reported ids are cleared on success.
func (r *DeliveryReporter) Report(ctx context.Context, listener ActionListener[[]string], ids ...string) *retry.Handle {
	if err := r.Session.AddUnreportedMessageIDs(ctx, ids...); err != nil {
		return rejected(listener, err)
	}

	return r.launch(ctx, func(ctx context.Context) (retry.State, error) {
		pending, err := r.Session.UnreportedMessageIDs(ctx)
		if err != nil {
			return failPrepare(ctx, &r.synchronizer, listener, err)
		}
		if len(pending) == 0 {
			return retry.Skipped, nil
		}

		task := retry.NewTask(
			func(ctx context.Context, ids []string) ([]string, error) {
				r.logger.Debug().Int("count", len(ids)).Msg(">>> report delivery")
				return ids, r.API.ReportDelivery(ctx, ids)
			},
			func(reported []string) {
				ctx := context.WithoutCancel(ctx)
				r.logReconcile(r.Session.RemoveUnreportedMessageIDs(ctx, reported...), "delivery ids")
				r.Notifier.Notify(broadcast.DeliveryReported{MessageIDs: reported})
				notifySuccess(listener, reported)
			},
			func(err error) {
				r.reportFailure(context.WithoutCancel(ctx), err)
				notifyError(listener, err)
			},
		).RetryWith(r.policy(ctx))

		return task.Do(ctx, pending)
	})
}

// SeenStatusReporter reports the messages the user has seen.
type SeenStatusReporter struct {
	synchronizer
}

func NewSeenStatusReporter(deps Deps) *SeenStatusReporter {
	return &SeenStatusReporter{synchronizer: newSynchronizer(deps, stats.SeenReport, broadcast.KindSeen)}
}

// Report records ids as seen now and reports every unreported seen message
// with its age in seconds.
func (r *SeenStatusReporter) Report(ctx context.Context, listener ActionListener[[]string], ids ...string) *retry.Handle {
	if err := r.Session.AddUnreportedSeenMessages(ctx, r.Session.Now(), ids...); err != nil {
		return rejected(listener, err)
	}

	return r.launch(ctx, func(ctx context.Context) (retry.State, error) {
		report, err := r.Session.SeenReport(ctx)
		if err != nil {
			return failPrepare(ctx, &r.synchronizer, listener, err)
		}
		if len(report.Messages) == 0 {
			return retry.Skipped, nil
		}

		task := retry.NewTask(
			func(ctx context.Context, report models.SeenMessagesReport) ([]string, error) {
				r.logger.Debug().Int("count", len(report.Messages)).Msg(">>> report seen")
				return report.IDs(), r.API.ReportSeen(ctx, report)
			},
			func(reported []string) {
				ctx := context.WithoutCancel(ctx)
				r.logReconcile(r.Session.RemoveUnreportedSeenMessageIDs(ctx, reported...), "seen messages")
				r.Notifier.Notify(broadcast.SeenReported{MessageIDs: reported})
				notifySuccess(listener, reported)
			},
			func(err error) {
				r.reportFailure(context.WithoutCancel(ctx), err)
				notifyError(listener, err)
			},
		).RetryWith(r.policy(ctx))

		return task.Do(ctx, report)
	})
}
