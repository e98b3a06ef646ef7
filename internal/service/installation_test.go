// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-mobile-messaging/internal/adapter"
	"github.com/MKhiriev/go-mobile-messaging/internal/broadcast"
	"github.com/MKhiriev/go-mobile-messaging/internal/retry"
	"github.com/MKhiriev/go-mobile-messaging/internal/stats"
	"github.com/MKhiriev/go-mobile-messaging/internal/validators"
	"github.com/MKhiriev/go-mobile-messaging/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── create ───────────────────────────────────────────────────────────────────

func TestInstallationSync_CreatesWhenRegistrationUnavailable(t *testing.T) {
	env := newTestEnv(t, 3)
	ctx := context.Background()
	require.NoError(t, env.sess.SetCloudToken(ctx, "cloud-token"))
	require.NoError(t, env.sess.SetUnreportedPrimary(ctx, true))

	var sent models.Installation
	env.api.EXPECT().CreateInstance(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inst models.Installation) (models.Installation, error) {
			sent = inst
			created := inst
			created.PushRegID = "reg-1"
			return created, nil
		}).Times(1)

	spy := &listenerSpy[models.Installation]{}
	state, err := waitHandle(t, NewInstallationSynchronizer(env.deps).Sync(ctx, spy))

	require.NoError(t, err)
	assert.Equal(t, retry.Succeeded, state)

	assert.Equal(t, "cloud-token", sent.PushServiceToken)
	assert.Equal(t, "Firebase", sent.PushServiceType)
	assert.Equal(t, "Linux", sent.OS)
	require.NotNil(t, sent.IsPrimary)
	assert.True(t, *sent.IsPrimary)
	require.NotNil(t, sent.RegEnabled)
	assert.True(t, *sent.RegEnabled)

	regID, err := env.sess.PushRegistrationID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "reg-1", regID)

	hasToken, err := env.sess.HasUnreportedCloudToken(ctx)
	require.NoError(t, err)
	assert.False(t, hasToken)

	unreported, err := env.sess.UnreportedPrimarySetting(ctx)
	require.NoError(t, err)
	assert.Nil(t, unreported)

	changed, err := env.sess.IsPushServiceTypeChanged(ctx)
	require.NoError(t, err)
	assert.False(t, changed)

	created := eventsOf[broadcast.InstallationCreated](env.events)
	require.Len(t, created, 1)
	assert.Equal(t, "reg-1", created[0].Installation.PushRegID)
	assert.Empty(t, eventsOf[broadcast.Error](env.events))

	successes, errs := spy.counts()
	assert.Equal(t, 1, successes)
	assert.Zero(t, errs)
}

func TestInstallationSync_NoTokenMakesNoNetworkCall(t *testing.T) {
	env := newTestEnv(t, 3)
	ctx := context.Background()
	require.NoError(t, env.sess.SetUnreportedPrimary(ctx, true))
	require.NoError(t, env.sess.SetApplicationUserID(ctx, "user-1"))

	spy := &listenerSpy[models.Installation]{}
	state, err := waitHandle(t, NewInstallationSynchronizer(env.deps).Sync(ctx, spy))

	require.NoError(t, err)
	assert.Equal(t, retry.Skipped, state)
	assert.Empty(t, env.events.all())

	successes, errs := spy.counts()
	assert.Zero(t, successes+errs)
}

func TestInstallationSync_CreateFailureKeepsTokenUnreported(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()
	require.NoError(t, env.sess.SetCloudToken(ctx, "cloud-token"))

	env.api.EXPECT().CreateInstance(gomock.Any(), gomock.Any()).
		Return(models.Installation{}, errTransient).Times(1)

	state, err := waitHandle(t, NewInstallationSynchronizer(env.deps).Sync(ctx, nil))

	assert.Equal(t, retry.Failed, state)
	assert.ErrorIs(t, err, errTransient)

	hasToken, err := env.sess.HasUnreportedCloudToken(ctx)
	require.NoError(t, err)
	assert.True(t, hasToken)

	unavailable, err := env.sess.IsRegistrationUnavailable(ctx)
	require.NoError(t, err)
	assert.True(t, unavailable)
}

func TestInstallationSync_CreateWithoutRegistrationIDIsTerminal(t *testing.T) {
	env := newTestEnv(t, 3)
	ctx := context.Background()
	require.NoError(t, env.sess.SetCloudToken(ctx, "cloud-token"))

	env.api.EXPECT().CreateInstance(gomock.Any(), gomock.Any()).
		Return(models.Installation{}, nil).Times(1)

	h := NewInstallationSynchronizer(env.deps).Sync(ctx, nil)
	state, err := waitHandle(t, h)

	assert.Equal(t, retry.Failed, state)
	assert.ErrorIs(t, err, ErrNoRegistration)
	assert.Equal(t, 1, h.Attempts())
}

// ── update ───────────────────────────────────────────────────────────────────

func TestInstallationSync_PatchThenIdempotent(t *testing.T) {
	env := newTestEnv(t, 3)
	env.registered(t)
	ctx := context.Background()
	require.NoError(t, env.sess.SetUnreportedPrimary(ctx, false))
	require.NoError(t, env.sess.SetApplicationUserID(ctx, "user-1"))

	var sent models.Installation
	env.api.EXPECT().PatchInstance(gomock.Any(), "reg-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, inst models.Installation) error {
			sent = inst
			return nil
		}).Times(1)

	sync := NewInstallationSynchronizer(env.deps)
	state, err := waitHandle(t, sync.Sync(ctx, nil))
	require.NoError(t, err)
	assert.Equal(t, retry.Succeeded, state)

	require.NotNil(t, sent.IsPrimary)
	assert.False(t, *sent.IsPrimary)
	require.NotNil(t, sent.ApplicationUserID)
	assert.Equal(t, "user-1", *sent.ApplicationUserID)
	assert.Empty(t, sent.PushServiceToken, "reported token is not resent")
	assert.Empty(t, sent.OS, "reported system data is not resent")

	// nothing changed since: no network call
	state, err = waitHandle(t, sync.Sync(ctx, nil))
	require.NoError(t, err)
	assert.Equal(t, retry.Skipped, state)

	assert.Len(t, eventsOf[broadcast.InstallationUpdated](env.events), 1)

	cached, err := env.sess.Installation(ctx)
	require.NoError(t, err)
	assert.Equal(t, "reg-1", cached.PushRegID)
	require.NotNil(t, cached.ApplicationUserID)
	assert.Equal(t, "user-1", *cached.ApplicationUserID)
}

func TestInstallationSync_UpdateSuppressedWhileUnregistered(t *testing.T) {
	env := newTestEnv(t, 3)
	ctx := context.Background()
	require.NoError(t, env.sess.SetCloudToken(ctx, "cloud-token"))
	require.NoError(t, env.sess.SetUnreportedPrimary(ctx, true))

	// only the create path may be used; PatchInstance has no expectation
	env.api.EXPECT().CreateInstance(gomock.Any(), gomock.Any()).
		Return(models.Installation{PushRegID: "reg-1"}, nil).Times(1)

	state, err := waitHandle(t, NewInstallationSynchronizer(env.deps).Sync(ctx, nil))
	require.NoError(t, err)
	assert.Equal(t, retry.Succeeded, state)
}

func TestInstallationSync_RetriesThenFailsOnce(t *testing.T) {
	env := newTestEnv(t, 3)
	env.registered(t)
	ctx := context.Background()
	require.NoError(t, env.sess.SetUnreportedPrimary(ctx, true))

	env.api.EXPECT().PatchInstance(gomock.Any(), "reg-1", gomock.Any()).
		Return(errTransient).Times(4)

	spy := &listenerSpy[models.Installation]{}
	h := NewInstallationSynchronizer(env.deps).Sync(ctx, spy)
	state, err := waitHandle(t, h)

	assert.Equal(t, retry.Failed, state)
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 4, h.Attempts())

	errEvents := eventsOf[broadcast.Error](env.events)
	require.Len(t, errEvents, 1)
	assert.Equal(t, broadcast.KindInstallation, errEvents[0].Kind)
	assert.Empty(t, eventsOf[broadcast.InstallationUpdated](env.events))

	count, err := env.stats.ErrorCount(ctx, stats.RegistrationSync)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	lastErr, err := env.sess.LastHTTPError(ctx)
	require.NoError(t, err)
	require.NotNil(t, lastErr)

	successes, errs := spy.counts()
	assert.Zero(t, successes)
	assert.Equal(t, 1, errs)

	// the marker survived, so the next sync resends the same value
	unreported, err := env.sess.UnreportedPrimarySetting(ctx)
	require.NoError(t, err)
	require.NotNil(t, unreported)

	env.api.EXPECT().PatchInstance(gomock.Any(), "reg-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, inst models.Installation) error {
			require.NotNil(t, inst.IsPrimary)
			assert.True(t, *inst.IsPrimary)
			return nil
		}).Times(1)

	state, err = waitHandle(t, NewInstallationSynchronizer(env.deps).Sync(ctx, nil))
	require.NoError(t, err)
	assert.Equal(t, retry.Succeeded, state)
}

func TestInstallationSync_ClientErrorIsNotRetried(t *testing.T) {
	env := newTestEnv(t, 3)
	env.registered(t)
	ctx := context.Background()
	require.NoError(t, env.sess.SetUnreportedPrimary(ctx, true))

	env.api.EXPECT().PatchInstance(gomock.Any(), "reg-1", gomock.Any()).
		Return(&adapter.BackendError{Status: http.StatusBadRequest, Code: "INVALID"}).Times(1)

	h := NewInstallationSynchronizer(env.deps).Sync(ctx, nil)
	state, _ := waitHandle(t, h)

	assert.Equal(t, retry.Failed, state)
	assert.Equal(t, 1, h.Attempts())

	errEvents := eventsOf[broadcast.Error](env.events)
	require.Len(t, errEvents, 1)
	assert.Equal(t, "INVALID", errEvents[0].Err.Code)
	assert.Equal(t, http.StatusBadRequest, errEvents[0].Err.Status)
}

func TestInstallationSync_CancelIsSilent(t *testing.T) {
	env := newTestEnv(t, 3)
	env.registered(t)
	ctx := context.Background()
	require.NoError(t, env.sess.SetUnreportedPrimary(ctx, true))

	started := make(chan struct{})
	env.api.EXPECT().PatchInstance(gomock.Any(), "reg-1", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ models.Installation) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		}).Times(1)

	spy := &listenerSpy[models.Installation]{}
	h := NewInstallationSynchronizer(env.deps).Sync(ctx, spy)
	<-started
	h.Cancel()

	state, _ := waitHandle(t, h)
	assert.Equal(t, retry.Cancelled, state)
	assert.Empty(t, env.events.all())

	successes, errs := spy.counts()
	assert.Zero(t, successes+errs)

	unreported, err := env.sess.UnreportedPrimarySetting(ctx)
	require.NoError(t, err)
	assert.NotNil(t, unreported)
}

func TestInstallationSync_ConcurrentCallsAreSerialized(t *testing.T) {
	env := newTestEnv(t, 3)
	env.registered(t)
	ctx := context.Background()
	require.NoError(t, env.sess.SetUnreportedPrimary(ctx, true))

	env.api.EXPECT().PatchInstance(gomock.Any(), "reg-1", gomock.Any()).Return(nil).Times(1)

	sync := NewInstallationSynchronizer(env.deps)
	first := sync.Sync(ctx, nil)
	second := sync.Sync(ctx, nil)

	s1, err := waitHandle(t, first)
	require.NoError(t, err)
	s2, err := waitHandle(t, second)
	require.NoError(t, err)

	assert.ElementsMatch(t, []retry.State{retry.Succeeded, retry.Skipped}, []retry.State{s1, s2})
}

// ── explicit operations ──────────────────────────────────────────────────────

func TestInstallation_UpdatePrimaryRequiresRegistration(t *testing.T) {
	env := newTestEnv(t, 3)
	ctx := context.Background()

	spy := &listenerSpy[models.Installation]{}
	state, err := waitHandle(t, NewInstallationSynchronizer(env.deps).UpdatePrimary(ctx, true, spy))

	assert.Equal(t, retry.Failed, state)
	assert.ErrorIs(t, err, ErrRegistrationUnavailable)
	_, errs := spy.counts()
	assert.Equal(t, 1, errs)

	// kept for the create request
	unreported, err := env.sess.UnreportedPrimarySetting(ctx)
	require.NoError(t, err)
	require.NotNil(t, unreported)
	assert.True(t, *unreported)
}

func TestInstallation_UpdatePushRegEnabled(t *testing.T) {
	env := newTestEnv(t, 3)
	env.registered(t)
	ctx := context.Background()

	env.api.EXPECT().PatchInstance(gomock.Any(), "reg-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, inst models.Installation) error {
			require.NotNil(t, inst.RegEnabled)
			assert.False(t, *inst.RegEnabled)
			return nil
		}).Times(1)

	state, err := waitHandle(t, NewInstallationSynchronizer(env.deps).UpdatePushRegEnabled(ctx, false, nil))
	require.NoError(t, err)
	assert.Equal(t, retry.Succeeded, state)

	enabled, err := env.sess.PushRegistrationEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestInstallation_UpdateApplicationUserID(t *testing.T) {
	env := newTestEnv(t, 3)
	env.registered(t)
	ctx := context.Background()

	env.api.EXPECT().PatchInstance(gomock.Any(), "reg-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, inst models.Installation) error {
			require.NotNil(t, inst.ApplicationUserID)
			assert.Equal(t, "user-42", *inst.ApplicationUserID)
			return nil
		}).Times(1)

	spy := &listenerSpy[models.Installation]{}
	state, err := waitHandle(t, NewInstallationSynchronizer(env.deps).UpdateApplicationUserID(ctx, "user-42", spy))
	require.NoError(t, err)
	assert.Equal(t, retry.Succeeded, state)

	reported, err := env.sess.IsApplicationUserIDReported(ctx)
	require.NoError(t, err)
	assert.True(t, reported)
}

func TestInstallation_UpdateApplicationUserIDUnchanged(t *testing.T) {
	env := newTestEnv(t, 3)
	env.registered(t)
	ctx := context.Background()
	sync := NewInstallationSynchronizer(env.deps)

	env.api.EXPECT().PatchInstance(gomock.Any(), "reg-1", gomock.Any()).Return(nil).Times(1)

	state, err := waitHandle(t, sync.UpdateApplicationUserID(ctx, "user-42", nil))
	require.NoError(t, err)
	require.Equal(t, retry.Succeeded, state)

	spy := &listenerSpy[models.Installation]{}
	state, err = waitHandle(t, sync.UpdateApplicationUserID(ctx, "user-42", spy))
	require.NoError(t, err)
	assert.Equal(t, retry.Skipped, state)

	successes, errs := spy.counts()
	assert.Equal(t, 1, successes)
	assert.Zero(t, errs)
	require.Len(t, spy.successes, 1)
	require.NotNil(t, spy.successes[0].ApplicationUserID)
	assert.Equal(t, "user-42", *spy.successes[0].ApplicationUserID)
}

func TestInstallation_PatchSendsExplicitFields(t *testing.T) {
	env := newTestEnv(t, 3)
	env.registered(t)
	ctx := context.Background()

	env.api.EXPECT().PatchInstance(gomock.Any(), "reg-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, inst models.Installation) error {
			assert.Equal(t, map[string]any{"tier": "gold"}, inst.CustomAttributes)
			return nil
		}).Times(1)

	patch := models.Installation{CustomAttributes: map[string]any{"tier": "gold"}}
	state, err := waitHandle(t, NewInstallationSynchronizer(env.deps).Patch(ctx, patch, nil))
	require.NoError(t, err)
	assert.Equal(t, retry.Succeeded, state)
}

func TestInstallation_Fetch(t *testing.T) {
	env := newTestEnv(t, 3)
	ctx := context.Background()
	sync := NewInstallationSynchronizer(env.deps)

	state, err := waitHandle(t, sync.Fetch(ctx, nil))
	require.NoError(t, err)
	assert.Equal(t, retry.Skipped, state, "nothing to fetch before registration")

	env.registered(t)
	env.api.EXPECT().GetInstance(gomock.Any(), "reg-1").
		Return(models.Installation{OS: "Linux", IsPrimary: models.Bool(true)}, nil).Times(1)

	spy := &listenerSpy[models.Installation]{}
	state, err = waitHandle(t, sync.Fetch(ctx, spy))
	require.NoError(t, err)
	assert.Equal(t, retry.Succeeded, state)

	fetched := eventsOf[broadcast.InstallationFetched](env.events)
	require.Len(t, fetched, 1)
	assert.Equal(t, "reg-1", fetched[0].Installation.PushRegID)

	primary, err := env.sess.IsPrimary(ctx)
	require.NoError(t, err)
	assert.True(t, primary)
}

func TestInstallation_PatchRejectsManagedFields(t *testing.T) {
	env := newTestEnv(t, 3)
	env.registered(t)

	state, err := waitHandle(t, NewInstallationSynchronizer(env.deps).Patch(context.Background(), models.Installation{PushRegID: "other"}, nil))
	assert.Equal(t, retry.Failed, state)
	assert.ErrorIs(t, err, validators.ErrInvalidInstallation)
}
