package service

import (
	"context"

	"github.com/MKhiriev/go-mobile-messaging/internal/broadcast"
	"github.com/MKhiriev/go-mobile-messaging/internal/retry"
	"github.com/MKhiriev/go-mobile-messaging/internal/stats"
	"github.com/MKhiriev/go-mobile-messaging/models"
)

// UserDataSynchronizer reports user data changes bound to the installation.
type UserDataSynchronizer struct {
	synchronizer
}

func NewUserDataSynchronizer(deps Deps) *UserDataSynchronizer {
	return &UserDataSynchronizer{synchronizer: newSynchronizer(deps, stats.UserDataSync, broadcast.KindUserData)}
}

// Sync merges data into the unreported user data and reports the result.
// data may be nil to resend what is still unreported. Before the
// installation is registered explicit data fails with
// ErrRegistrationUnavailable; it stays stored when saving is enabled.
//
// When saving user data is disabled nothing is kept between calls and the
// request is made once.
func (s *UserDataSynchronizer) Sync(ctx context.Context, data *models.UserData, listener ActionListener[models.UserData]) *retry.Handle {
	if err := s.validate(ctx, data); err != nil {
		return rejected(listener, err)
	}

	return s.launch(ctx, func(ctx context.Context) (retry.State, error) {
		pending, err := s.Session.MergeUnreportedUserData(ctx, data)
		if err != nil {
			return failPrepare(ctx, &s.synchronizer, listener, err)
		}
		if pending == nil {
			return retry.Skipped, nil
		}

		regID, err := s.Session.PushRegistrationID(ctx)
		if err != nil {
			return failPrepare(ctx, &s.synchronizer, listener, err)
		}
		if regID == "" {
			if data == nil {
				return retry.Skipped, nil
			}
			s.logger.Debug().Msg("user data kept until the installation is registered")
			notifyError(listener, ErrRegistrationUnavailable)
			return retry.Failed, ErrRegistrationUnavailable
		}

		policy := s.policy(ctx)
		if !s.Session.ShouldSaveUserData(ctx) {
			policy = s.Policies.NoRetry()
		}

		task := retry.NewTask(
			func(ctx context.Context, user *models.UserData) (*models.UserData, error) {
				s.logger.Debug().Str("push_registration_id", regID).Msg(">>> patch user")
				if err := s.API.PatchUser(ctx, regID, *user); err != nil {
					return nil, err
				}
				return user, nil
			},
			func(sent *models.UserData) { s.onSuccess(ctx, sent, listener) },
			func(err error) {
				s.reportFailure(context.WithoutCancel(ctx), err)
				notifyError(listener, err)
			},
		).RetryWith(policy)

		return task.Do(ctx, pending)
	})
}

// Fetch retrieves the user bound to the installation and stores it as the
// canonical user data.
func (s *UserDataSynchronizer) Fetch(ctx context.Context, listener ActionListener[models.UserData]) *retry.Handle {
	return s.launch(ctx, func(ctx context.Context) (retry.State, error) {
		regID, err := s.Session.PushRegistrationID(ctx)
		if err != nil {
			return failPrepare(ctx, &s.synchronizer, listener, err)
		}
		if regID == "" {
			return retry.Skipped, nil
		}

		task := retry.NewTask(
			s.API.GetUser,
			func(user models.UserData) {
				ctx := context.WithoutCancel(ctx)
				s.logReconcile(s.Session.SetUserData(ctx, &user), "user data")
				s.Notifier.Notify(broadcast.UserUpdated{UserData: user})
				notifySuccess(listener, user)
			},
			func(err error) {
				s.reportFailure(context.WithoutCancel(ctx), err)
				notifyError(listener, err)
			},
		).RetryWith(s.policy(ctx))

		return task.Do(ctx, regID)
	})
}

func (s *UserDataSynchronizer) onSuccess(ctx context.Context, sent *models.UserData, listener ActionListener[models.UserData]) {
	ctx = context.WithoutCancel(ctx)

	s.logReconcile(s.Session.ClearUnreportedUserData(ctx, sent), "unreported user data")

	current, err := s.Session.UserData(ctx)
	s.logReconcile(err, "user data")

	canonical := current.Merge(sent)
	s.logReconcile(s.Session.SetUserData(ctx, canonical), "user data")

	s.Notifier.Notify(broadcast.UserUpdated{UserData: *canonical})
	notifySuccess(listener, *canonical)
}
