package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-mobile-messaging/internal/adapter"
	"github.com/MKhiriev/go-mobile-messaging/internal/broadcast"
	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
	"github.com/MKhiriev/go-mobile-messaging/internal/retry"
	"github.com/MKhiriev/go-mobile-messaging/internal/session"
	"github.com/MKhiriev/go-mobile-messaging/internal/stats"
	"github.com/MKhiriev/go-mobile-messaging/internal/utils"
	"github.com/MKhiriev/go-mobile-messaging/internal/validators"
	"github.com/MKhiriev/go-mobile-messaging/internal/workers"
)

// Deps are the collaborators shared by all synchronizers.
type Deps struct {
	Session    *session.Session
	API        adapter.MobileAPI
	Executor   workers.Executor
	Policies   *retry.Provider
	Notifier   broadcast.Notifier
	Stats      *stats.Stats
	SystemData SystemDataProvider
	Logger     *logger.Logger

	// Validator checks values supplied by the host application. Nil
	// accepts everything.
	Validator validators.Validator

	// MessagesSyncThrottle is the minimum interval between two message
	// syncs that carry no delivery reports. Zero disables throttling.
	MessagesSyncThrottle time.Duration
}

// entityLock serializes the syncs of one entity. Unlike sync.Mutex,
// acquiring it can be abandoned when the context is cancelled.
type entityLock chan struct{}

func newEntityLock() entityLock {
	return make(entityLock, 1)
}

func (l entityLock) lock(ctx context.Context) error {
	select {
	case l <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l entityLock) unlock() {
	<-l
}

// synchronizer holds what every entity synchronizer shares: the deps, the
// entity lock and the failure reporting.
type synchronizer struct {
	Deps

	lock      entityLock
	statsKind stats.Kind
	eventKind broadcast.Kind
	logger    *logger.Logger
}

func newSynchronizer(deps Deps, statsKind stats.Kind, eventKind broadcast.Kind) synchronizer {
	return synchronizer{
		Deps:      deps,
		lock:      newEntityLock(),
		statsKind: statsKind,
		eventKind: eventKind,
		logger:    deps.Logger.WithComponent(string(eventKind)),
	}
}

// launch runs fn on the executor while holding the entity lock.
func (s *synchronizer) launch(ctx context.Context, fn func(ctx context.Context) (retry.State, error)) *retry.Handle {
	return retry.Go(ctx, s.Executor, func(ctx context.Context) (retry.State, error) {
		if err := s.lock.lock(ctx); err != nil {
			return retry.Cancelled, err
		}
		defer s.lock.unlock()

		return fn(ctx)
	})
}

// policy returns the retry policy for one sync.
func (s *synchronizer) policy(ctx context.Context) retry.Policy {
	return s.Policies.Default(ctx)
}

func (s *synchronizer) validate(ctx context.Context, obj any) error {
	if s.Validator == nil {
		return nil
	}
	return s.Validator.Validate(ctx, obj)
}

// reportFailure records a terminal failure: last error, stats counter and
// an Error broadcast. Unreported markers are left to the caller.
func (s *synchronizer) reportFailure(ctx context.Context, err error) {
	s.logger.Error().Err(err).Str("trigger", utils.SyncTriggerFromContext(ctx)).Msg("sync failed")

	if setErr := s.Session.SetLastHTTPError(ctx, err); setErr != nil {
		s.logger.Err(setErr).Msg("failed to record last error")
	}
	s.Stats.ReportError(ctx, s.statsKind)
	s.Notifier.Notify(broadcast.Error{Kind: s.eventKind, Err: broadcast.FromError(err)})
}

// logReconcile logs a storage failure while applying a successful response.
// The backend already accepted the data, so the sync still succeeds.
func (s *synchronizer) logReconcile(err error, what string) {
	if err != nil {
		s.logger.Err(err).Msg("failed to reconcile " + what)
	}
}

// failPrepare handles an error raised before any request was sent.
func failPrepare[T any](ctx context.Context, s *synchronizer, listener ActionListener[T], err error) (retry.State, error) {
	if ctx.Err() != nil {
		return retry.Cancelled, ctx.Err()
	}
	s.reportFailure(ctx, err)
	notifyError(listener, err)
	return retry.Failed, err
}
