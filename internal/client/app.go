package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-mobile-messaging/internal/adapter"
	"github.com/MKhiriev/go-mobile-messaging/internal/broadcast"
	"github.com/MKhiriev/go-mobile-messaging/internal/config"
	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
	"github.com/MKhiriev/go-mobile-messaging/internal/retry"
	"github.com/MKhiriev/go-mobile-messaging/internal/service"
	"github.com/MKhiriev/go-mobile-messaging/internal/session"
	"github.com/MKhiriev/go-mobile-messaging/internal/stats"
	"github.com/MKhiriev/go-mobile-messaging/internal/store"
	"github.com/MKhiriev/go-mobile-messaging/internal/validators"
	"github.com/MKhiriev/go-mobile-messaging/internal/workers"
	"github.com/MKhiriev/go-mobile-messaging/models"
)

// App is one running client instance.
type App struct {
	cfg     *config.StructuredConfig
	logger  *logger.Logger
	storage store.Storage

	session  *session.Session
	events   *broadcast.Broadcaster
	stats    *stats.Stats
	services *service.Services
	pool     *workers.Pool
	job      *service.SyncJob
}

// Option customizes NewApp.
type Option func(*options)

type options struct {
	api        adapter.MobileAPI
	storage    store.Storage
	systemData service.SystemDataProvider
	session    []session.Option
}

// WithMobileAPI replaces the HTTP backend adapter.
func WithMobileAPI(api adapter.MobileAPI) Option {
	return func(o *options) { o.api = api }
}

// WithStorage replaces the storage engine selected by the configuration.
func WithStorage(storage store.Storage) Option {
	return func(o *options) { o.storage = storage }
}

// WithSystemData replaces the host system data provider.
func WithSystemData(provider service.SystemDataProvider) Option {
	return func(o *options) { o.systemData = provider }
}

// WithSessionOptions passes options to the session.
func WithSessionOptions(opts ...session.Option) Option {
	return func(o *options) { o.session = append(o.session, opts...) }
}

// NewApp builds the client from cfg. The returned App owns the storage and
// must be closed.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, build models.AppBuildInfo, log *logger.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	storage := o.storage
	if storage == nil {
		var err error
		if storage, err = store.NewStorage(ctx, cfg.Storage, log); err != nil {
			return nil, fmt.Errorf("create storage: %w", err)
		}
	}

	prefs := store.NewPreferences(storage)
	sess := session.New(prefs, cfg.App, cfg.Adapter.BaseURL, o.session...)

	api := o.api
	if api == nil {
		var err error
		if api, err = adapter.NewHTTPMobileAPI(cfg.Adapter, sess, log); err != nil {
			return nil, errors.Join(fmt.Errorf("create mobile api: %w", err), storage.Close())
		}
	}

	systemData := o.systemData
	if systemData == nil {
		sdkVersion := cfg.App.Version
		if sdkVersion == "" {
			sdkVersion = build.BuildVersion()
		}
		systemData = service.HostSystemData(sdkVersion, build.BuildVersion())
	}

	events := broadcast.NewBroadcaster(log)
	counters := stats.New(prefs, log)
	pool := workers.NewPool(cfg.Workers.PoolSize, log)

	services := service.NewServices(service.Deps{
		Session:              sess,
		API:                  api,
		Executor:             pool,
		Policies:             retry.NewProvider(cfg.Retry, sess),
		Notifier:             events,
		Stats:                counters,
		SystemData:           systemData,
		Logger:               log,
		Validator:            validators.NewModelsValidator(),
		MessagesSyncThrottle: cfg.Workers.MessagesSyncThrottle,
	})

	app := &App{
		cfg:      cfg,
		logger:   log.WithComponent("client"),
		storage:  storage,
		session:  sess,
		events:   events,
		stats:    counters,
		services: services,
		pool:     pool,
		job:      service.NewSyncJob(services, cfg.Workers.SyncInterval, log),
	}
	events.Subscribe(broadcast.ListenerFunc(app.logEvent))

	if cfg.App.CloudToken != "" {
		if err := sess.SetCloudToken(ctx, cfg.App.CloudToken); err != nil {
			return nil, errors.Join(fmt.Errorf("store cloud token: %w", err), storage.Close())
		}
	}

	return app, nil
}

// Run starts the executor and the periodic sync job and blocks until ctx is
// cancelled. Jobs already queued are drained before Run returns.
func (a *App) Run(ctx context.Context) error {
	id, err := a.session.UniversalInstallationID(ctx)
	if err != nil {
		return fmt.Errorf("universal installation id: %w", err)
	}
	a.logger.Info().
		Str("application_code", a.session.ApplicationCode()).
		Str("universal_installation_id", id).
		Msg("client started")

	err = workers.NewWorkers(a.pool, a.job).Run(ctx)
	a.logger.Info().Msg("client stopped")
	return err
}

// Close releases the storage.
func (a *App) Close() error {
	return a.storage.Close()
}

// Subscribe registers l for every broadcast event.
func (a *App) Subscribe(l broadcast.Listener) (unsubscribe func()) {
	return a.events.Subscribe(l)
}

func (a *App) Services() *service.Services {
	return a.services
}

func (a *App) Session() *session.Session {
	return a.session
}

func (a *App) Stats() *stats.Stats {
	return a.stats
}

// SetCloudToken stores a new push transport token and reports it.
func (a *App) SetCloudToken(ctx context.Context, token string) *retry.Handle {
	if err := a.session.SetCloudToken(ctx, token); err != nil {
		return retry.Completed(retry.Failed, err)
	}
	return a.services.Installation.Sync(ctx, nil)
}

// Sync runs one full synchronization round outside the periodic schedule.
func (a *App) Sync(ctx context.Context) error {
	return a.services.SyncAll(ctx)
}

func (a *App) logEvent(e broadcast.Event) {
	switch ev := e.(type) {
	case broadcast.Error:
		a.logger.Warn().Str("kind", string(ev.Kind)).Err(ev.Err).Msg("sync error")
	case broadcast.InstallationCreated:
		a.logger.Info().Str("push_registration_id", ev.Installation.PushRegID).Msg("installation created")
	case broadcast.MessagesSynced:
		a.logger.Info().Int("count", len(ev.Messages)).Msg("messages synced")
	default:
		a.logger.Debug().Str("event", fmt.Sprintf("%T", e)).Msg("event")
	}
}
