package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-mobile-messaging/internal/retry"
)

// Services groups the synchronizers built from one set of deps.
type Services struct {
	Installation *InstallationSynchronizer
	UserData     *UserDataSynchronizer
	Messages     *MessagesSynchronizer
	Delivery     *DeliveryReporter
	Seen         *SeenStatusReporter
	MO           *MOMessageSender
}

func NewServices(deps Deps) *Services {
	return &Services{
		Installation: NewInstallationSynchronizer(deps),
		UserData:     NewUserDataSynchronizer(deps),
		Messages:     NewMessagesSynchronizer(deps),
		Delivery:     NewDeliveryReporter(deps),
		Seen:         NewSeenStatusReporter(deps),
		MO:           NewMOMessageSender(deps),
	}
}

// SyncAll runs every synchronizer in order, waiting for each to finish:
// installation, user data, messages, delivery reports, seen reports and
// unsent mobile originated messages. Failures do not stop the remaining
// steps; they are joined into the returned error.
func (s *Services) SyncAll(ctx context.Context) error {
	steps := []func(ctx context.Context) *retry.Handle{
		func(ctx context.Context) *retry.Handle { return s.Installation.Sync(ctx, nil) },
		func(ctx context.Context) *retry.Handle { return s.UserData.Sync(ctx, nil, nil) },
		func(ctx context.Context) *retry.Handle { return s.Messages.Sync(ctx, nil) },
		func(ctx context.Context) *retry.Handle { return s.Delivery.Report(ctx, nil) },
		func(ctx context.Context) *retry.Handle { return s.Seen.Report(ctx, nil) },
		func(ctx context.Context) *retry.Handle { return s.MO.Sync(ctx, nil) },
	}

	var errs []error
	for _, step := range steps {
		state, err := step(ctx).Wait(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if state == retry.Failed {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
