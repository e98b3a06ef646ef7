package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/MKhiriev/go-mobile-messaging/internal/broadcast"
	"github.com/MKhiriev/go-mobile-messaging/internal/retry"
	"github.com/MKhiriev/go-mobile-messaging/internal/stats"
	"github.com/MKhiriev/go-mobile-messaging/models"
)

// InstallationSynchronizer registers the installation on the backend and
// keeps its attributes up to date.
type InstallationSynchronizer struct {
	synchronizer
}

func NewInstallationSynchronizer(deps Deps) *InstallationSynchronizer {
	return &InstallationSynchronizer{synchronizer: newSynchronizer(deps, stats.RegistrationSync, broadcast.KindInstallation)}
}

// installationPlan is one installation request together with the markers
// it carries. Empty or nil fields were not part of the request.
type installationPlan struct {
	create    bool
	pushRegID string
	body      models.Installation

	token       string
	fingerprint string
	serviceType string
	primary     *bool
	appUserID   *string
	regEnabled  bool
}

// Sync reports every dirty installation attribute. Without a push
// registration id only an unreported cloud token leads to a request, which
// then creates the installation.
func (s *InstallationSynchronizer) Sync(ctx context.Context, listener ActionListener[models.Installation]) *retry.Handle {
	return s.sync(ctx, nil, false, listener)
}

// UpdateApplicationUserID stores id and reports it.
func (s *InstallationSynchronizer) UpdateApplicationUserID(ctx context.Context, id string, listener ActionListener[models.Installation]) *retry.Handle {
	if err := s.Session.SetApplicationUserID(ctx, id); err != nil {
		return rejected(listener, err)
	}
	return s.sync(ctx, nil, true, listener)
}

// UpdatePrimary stores the primary flag as unreported and reports it.
func (s *InstallationSynchronizer) UpdatePrimary(ctx context.Context, primary bool, listener ActionListener[models.Installation]) *retry.Handle {
	if err := s.Session.SetUnreportedPrimary(ctx, primary); err != nil {
		return rejected(listener, err)
	}
	return s.sync(ctx, nil, true, listener)
}

// UpdatePushRegEnabled enables or disables push delivery for this
// installation.
func (s *InstallationSynchronizer) UpdatePushRegEnabled(ctx context.Context, enabled bool, listener ActionListener[models.Installation]) *retry.Handle {
	if err := s.Session.SetPushRegistrationEnabled(ctx, enabled); err != nil {
		return rejected(listener, err)
	}
	return s.sync(ctx, &models.Installation{RegEnabled: &enabled}, true, listener)
}

// Patch sends inst together with any dirty attributes. Fields set in inst
// win over local state.
func (s *InstallationSynchronizer) Patch(ctx context.Context, inst models.Installation, listener ActionListener[models.Installation]) *retry.Handle {
	if err := s.validate(ctx, inst); err != nil {
		return rejected(listener, err)
	}
	return s.sync(ctx, &inst, true, listener)
}

// Fetch retrieves the installation from the backend. It is skipped while
// the installation is not registered.
func (s *InstallationSynchronizer) Fetch(ctx context.Context, listener ActionListener[models.Installation]) *retry.Handle {
	return s.launch(ctx, func(ctx context.Context) (retry.State, error) {
		regID, err := s.Session.PushRegistrationID(ctx)
		if err != nil {
			return failPrepare(ctx, &s.synchronizer, listener, err)
		}
		if regID == "" {
			return retry.Skipped, nil
		}

		task := retry.NewTask(
			func(ctx context.Context, regID string) (models.Installation, error) {
				return s.API.GetInstance(ctx, regID)
			},
			func(inst models.Installation) { s.onFetched(ctx, regID, inst, listener) },
			func(err error) {
				s.reportFailure(context.WithoutCancel(ctx), err)
				notifyError(listener, err)
			},
		).RetryWith(s.policy(ctx))

		return task.Do(ctx, regID)
	})
}

func (s *InstallationSynchronizer) sync(ctx context.Context, patch *models.Installation, requireRegistration bool, listener ActionListener[models.Installation]) *retry.Handle {
	return s.launch(ctx, func(ctx context.Context) (retry.State, error) {
		plan, err := s.prepare(ctx, patch, requireRegistration)
		if errors.Is(err, ErrRegistrationUnavailable) {
			notifyError(listener, err)
			return retry.Failed, err
		}
		if err != nil {
			return failPrepare(ctx, &s.synchronizer, listener, err)
		}
		if plan == nil {
			s.logger.Debug().Msg("installation is up to date")
			if requireRegistration {
				cached, err := s.Session.Installation(ctx)
				if err != nil {
					return failPrepare(ctx, &s.synchronizer, listener, err)
				}
				notifySuccess(listener, cached)
			}
			return retry.Skipped, nil
		}

		return s.send(ctx, plan, listener)
	})
}

// prepare collects the dirty attributes. A nil plan means there is nothing
// to send.
func (s *InstallationSynchronizer) prepare(ctx context.Context, patch *models.Installation, requireRegistration bool) (*installationPlan, error) {
	sess := s.Session

	unavailable, err := sess.IsRegistrationUnavailable(ctx)
	if err != nil {
		return nil, err
	}
	if unavailable && requireRegistration {
		return nil, ErrRegistrationUnavailable
	}

	hasToken, err := sess.HasUnreportedCloudToken(ctx)
	if err != nil {
		return nil, err
	}
	if unavailable && !hasToken {
		return nil, nil
	}

	plan := &installationPlan{create: unavailable}
	if !unavailable {
		if plan.pushRegID, err = sess.PushRegistrationID(ctx); err != nil {
			return nil, err
		}
	}
	dirty := patch != nil

	if hasToken {
		if plan.token, err = sess.CloudToken(ctx); err != nil {
			return nil, err
		}
		plan.body.PushServiceToken = plan.token
		dirty = true
	}

	changed, err := sess.IsPushServiceTypeChanged(ctx)
	if err != nil {
		return nil, err
	}
	if serviceType := sess.PushServiceType(); serviceType != "" && (changed || plan.create) {
		plan.serviceType = serviceType
		plan.body.PushServiceType = serviceType
		dirty = true
	}

	if s.SystemData != nil {
		data, fingerprint, err := sess.SystemDataForReport(ctx, s.SystemData.SystemData())
		if err != nil {
			return nil, err
		}
		if data != nil {
			data.ApplyTo(&plan.body)
			plan.fingerprint = fingerprint
			dirty = true
		}
	}

	if plan.primary, err = sess.UnreportedPrimarySetting(ctx); err != nil {
		return nil, err
	}
	if plan.primary != nil {
		plan.body.IsPrimary = plan.primary
		dirty = true
	}

	hasUserID, err := sess.HasUnreportedApplicationUserID(ctx)
	if err != nil {
		return nil, err
	}
	if hasUserID {
		id, err := sess.ApplicationUserID(ctx)
		if err != nil {
			return nil, err
		}
		plan.appUserID = &id
		plan.body.ApplicationUserID = &id
		dirty = true
	}

	if !dirty {
		return nil, nil
	}

	if plan.regEnabled, err = sess.PushRegistrationEnabled(ctx); err != nil {
		return nil, err
	}
	plan.body.RegEnabled = &plan.regEnabled

	if patch != nil {
		if err = mergeJSON(&plan.body, patch); err != nil {
			return nil, err
		}
		plan.regEnabled = *plan.body.RegEnabled
	}

	return plan, nil
}

func (s *InstallationSynchronizer) send(ctx context.Context, plan *installationPlan, listener ActionListener[models.Installation]) (retry.State, error) {
	// The token counts as reported while the create request is in flight.
	holdsToken := plan.create && plan.token != ""
	if holdsToken {
		if err := s.Session.SetCloudTokenReported(ctx, true); err != nil {
			return failPrepare(ctx, &s.synchronizer, listener, err)
		}
	}

	task := retry.NewTask(
		s.request,
		func(inst models.Installation) { s.onSuccess(ctx, plan, inst, listener) },
		func(err error) { s.onError(ctx, plan, err, listener) },
	).RetryWith(s.policy(ctx))

	state, err := task.Do(ctx, plan)
	if state == retry.Cancelled && holdsToken {
		s.logReconcile(s.Session.SetCloudTokenReported(context.WithoutCancel(ctx), false), "cloud token")
	}
	return state, err
}

func (s *InstallationSynchronizer) request(ctx context.Context, plan *installationPlan) (models.Installation, error) {
	if plan.create {
		s.logger.Debug().Msg(">>> create installation")
		created, err := s.API.CreateInstance(ctx, plan.body)
		if err != nil {
			return models.Installation{}, err
		}
		if created.PushRegID == "" {
			return models.Installation{}, retry.Permanent(ErrNoRegistration)
		}
		s.logger.Debug().Str("push_registration_id", created.PushRegID).Msg("<<< installation created")
		return created, nil
	}

	s.logger.Debug().Str("push_registration_id", plan.pushRegID).Msg(">>> patch installation")
	if err := s.API.PatchInstance(ctx, plan.pushRegID, plan.body); err != nil {
		return models.Installation{}, err
	}

	patched := plan.body
	patched.PushRegID = plan.pushRegID
	return patched, nil
}

func (s *InstallationSynchronizer) onSuccess(ctx context.Context, plan *installationPlan, result models.Installation, listener ActionListener[models.Installation]) {
	ctx = context.WithoutCancel(ctx)
	sess := s.Session

	if plan.create {
		s.logReconcile(sess.SetPushRegistrationID(ctx, result.PushRegID), "push registration id")
	}
	if plan.primary != nil {
		s.logReconcile(sess.SetPrimary(ctx, *plan.primary), "primary")
	}
	s.logReconcile(sess.SetPushRegistrationEnabled(ctx, plan.regEnabled), "push registration enabled")
	if plan.token != "" {
		s.logReconcile(sess.MarkCloudTokenReported(ctx, plan.token), "cloud token")
	}
	if plan.appUserID != nil {
		s.logReconcile(sess.MarkApplicationUserIDReported(ctx, *plan.appUserID), "application user id")
	}
	if plan.fingerprint != "" {
		s.logReconcile(sess.SetSystemDataReported(ctx, plan.fingerprint), "system data")
	}
	if plan.serviceType != "" {
		s.logReconcile(sess.SetReportedPushServiceType(ctx, plan.serviceType), "push service type")
	}

	canonical := s.cache(ctx, result)
	if plan.create {
		s.Notifier.Notify(broadcast.InstallationCreated{Installation: canonical})
	} else {
		s.Notifier.Notify(broadcast.InstallationUpdated{Installation: canonical})
	}
	notifySuccess(listener, canonical)
}

func (s *InstallationSynchronizer) onError(ctx context.Context, plan *installationPlan, err error, listener ActionListener[models.Installation]) {
	ctx = context.WithoutCancel(ctx)

	if plan.token != "" {
		s.logReconcile(s.Session.SetCloudTokenReported(ctx, false), "cloud token")
	}
	s.reportFailure(ctx, err)
	notifyError(listener, err)
}

func (s *InstallationSynchronizer) onFetched(ctx context.Context, regID string, inst models.Installation, listener ActionListener[models.Installation]) {
	ctx = context.WithoutCancel(ctx)
	if inst.PushRegID == "" {
		inst.PushRegID = regID
	}

	unreported, err := s.Session.UnreportedPrimarySetting(ctx)
	s.logReconcile(err, "primary")
	if err == nil && unreported == nil && inst.IsPrimary != nil {
		s.logReconcile(s.Session.SetPrimary(ctx, *inst.IsPrimary), "primary")
	}

	s.logReconcile(s.Session.SetInstallation(ctx, inst), "installation")
	s.Notifier.Notify(broadcast.InstallationFetched{Installation: inst})
	notifySuccess(listener, inst)
}

// cache merges update into the cached installation and returns the result.
func (s *InstallationSynchronizer) cache(ctx context.Context, update models.Installation) models.Installation {
	cached, err := s.Session.Installation(ctx)
	s.logReconcile(err, "cached installation")

	if err = mergeJSON(&cached, update); err != nil {
		s.logReconcile(err, "cached installation")
		return update
	}
	s.logReconcile(s.Session.SetInstallation(ctx, cached), "cached installation")
	return cached
}

// mergeJSON overlays the fields patch serializes onto dst.
func mergeJSON(dst, patch any) error {
	data, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// rejected completes a handle for an operation that failed before it could
// be scheduled.
func rejected[T any](listener ActionListener[T], err error) *retry.Handle {
	notifyError(listener, err)
	return retry.Completed(retry.Failed, err)
}
