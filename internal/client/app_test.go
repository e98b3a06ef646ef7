package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-mobile-messaging/internal/broadcast"
	"github.com/MKhiriev/go-mobile-messaging/internal/config"
	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
	"github.com/MKhiriev/go-mobile-messaging/internal/retry"
	"github.com/MKhiriev/go-mobile-messaging/internal/store"
	"github.com/MKhiriev/go-mobile-messaging/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	creates atomic.Int64
	syncs   atomic.Int64
	patches atomic.Int64
}

func writeJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return w.Write(body)
}

func (b *fakeBackend) router() http.Handler {
	r := chi.NewRouter()
	r.Post("/mobile/1/appinstance", func(w http.ResponseWriter, r *http.Request) {
		b.creates.Add(1)
		_, _ = writeJSON(w, models.Installation{PushRegID: "reg-1"}, http.StatusOK)
	})
	r.Patch("/mobile/1/appinstance/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.patches.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/mobile/5/messages", func(w http.ResponseWriter, r *http.Request) {
		b.syncs.Add(1)
		_, _ = writeJSON(w, models.SyncMessagesResponse{Payloads: []models.Message{{MessageID: "m1"}}}, http.StatusOK)
	})
	return r
}

func testConfig(baseURL string) *config.StructuredConfig {
	maxRetries := 0
	return &config.StructuredConfig{
		App: config.App{
			ApplicationCode: "app-code",
			PushServiceType: "Firebase",
			CloudToken:      "cloud-token",
		},
		Adapter: config.Adapter{BaseURL: baseURL, RequestTimeout: time.Second},
		Retry: config.Retry{
			MaxRetries:        &maxRetries,
			BackoffMultiplier: 2,
			MinBackoff:        time.Millisecond,
			MaxBackoff:        5 * time.Millisecond,
		},
		Workers: config.Workers{
			PoolSize:             1,
			SyncInterval:         time.Hour,
			MessagesSyncThrottle: time.Minute,
		},
	}
}

type eventLog struct {
	mu     sync.Mutex
	events []broadcast.Event
}

func (l *eventLog) OnEvent(e broadcast.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) has(match func(broadcast.Event) bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.events {
		if match(e) {
			return true
		}
	}
	return false
}

func newTestApp(t *testing.T, baseURL string) *App {
	t.Helper()

	app, err := NewApp(context.Background(), testConfig(baseURL), models.NewAppBuildInfo("1.2.3", "", ""), logger.Nop(),
		WithStorage(store.NewMemoryStorage()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

// ── NewApp ───────────────────────────────────────────────────────────────────

func TestNewApp_StoresConfiguredToken(t *testing.T) {
	app := newTestApp(t, "https://api.example.com")

	token, err := app.Session().CloudToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cloud-token", token)
}

func TestNewApp_InvalidBaseURL(t *testing.T) {
	_, err := NewApp(context.Background(), testConfig("://bad"), models.NewAppBuildInfo("", "", ""), logger.Nop(),
		WithStorage(store.NewMemoryStorage()))
	require.Error(t, err)
}

// ── Run ──────────────────────────────────────────────────────────────────────

func TestApp_Run_StartupSync(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.router())
	defer srv.Close()

	app := newTestApp(t, srv.URL)
	events := &eventLog{}
	unsubscribe := app.Subscribe(events)
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		return events.has(func(e broadcast.Event) bool {
			synced, ok := e.(broadcast.MessagesSynced)
			return ok && len(synced.Messages) == 1
		})
	}, 3*time.Second, 10*time.Millisecond)

	assert.Equal(t, int64(1), backend.creates.Load())
	assert.Equal(t, int64(1), backend.syncs.Load())
	assert.True(t, events.has(func(e broadcast.Event) bool {
		_, ok := e.(broadcast.InstallationCreated)
		return ok
	}))

	regID, err := app.Session().PushRegistrationID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "reg-1", regID)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestApp_SetCloudToken_ReportsNewToken(t *testing.T) {
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.router())
	defer srv.Close()

	app := newTestApp(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = app.Run(ctx) }()

	require.Eventually(t, func() bool {
		regID, err := app.Session().PushRegistrationID(ctx)
		return err == nil && regID == "reg-1"
	}, 3*time.Second, 10*time.Millisecond)

	waitCtx, waitCancel := context.WithTimeout(ctx, 3*time.Second)
	defer waitCancel()

	state, err := app.SetCloudToken(ctx, "rotated-token").Wait(waitCtx)
	require.NoError(t, err)
	assert.Equal(t, retry.Succeeded, state)
	assert.Equal(t, int64(1), backend.patches.Load())

	hasToken, err := app.Session().HasUnreportedCloudToken(ctx)
	require.NoError(t, err)
	assert.False(t, hasToken)
}
