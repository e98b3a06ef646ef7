// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the state of one application session: tokens,
// identifiers, flags and the unreported markers that the synchronizers
// reconcile with the backend.
//
// A Session is constructed once and passed to every component that needs
// it. All state lives in the injected store, so a new Session over the same
// storage resumes where the previous process stopped.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-mobile-messaging/internal/config"
	"github.com/MKhiriev/go-mobile-messaging/internal/store"
	"github.com/MKhiriev/go-mobile-messaging/internal/utils"
)

// Session is safe for concurrent use.
type Session struct {
	prefs          *store.Preferences
	app            config.App
	defaultBaseURL string

	now   func() time.Time
	newID utils.IDGenerator

	// mu serializes compare-and-set style updates.
	mu sync.Mutex
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen utils.IDGenerator) Option {
	return func(s *Session) { s.newID = gen }
}

// New creates a session over prefs. app supplies the application code and
// the reporting switches; defaultBaseURL is the backend URL used until the
// backend redirects the client.
func New(prefs *store.Preferences, app config.App, defaultBaseURL string, opts ...Option) *Session {
	s := &Session{
		prefs:          prefs,
		app:            app,
		defaultBaseURL: defaultBaseURL,
		now:            time.Now,
		newID:          utils.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preferences returns the underlying typed store.
func (s *Session) Preferences() *store.Preferences {
	return s.prefs
}

// Now returns the session clock's current time.
func (s *Session) Now() time.Time {
	return s.now()
}

func (s *Session) ApplicationCode() string {
	return s.app.ApplicationCode
}

// UniversalInstallationID returns the locally generated installation id,
// creating and persisting it on first use.
func (s *Session) UniversalInstallationID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.prefs.String(ctx, store.KeyUniversalInstallationID)
	if err != nil || id != "" {
		return id, err
	}

	id = s.newID()
	if err = s.prefs.SaveString(ctx, store.KeyUniversalInstallationID, id); err != nil {
		return "", err
	}
	return id, nil
}

// ShouldSaveUserData reports whether unreported user data is kept on disk.
// A persisted setting wins over configuration.
func (s *Session) ShouldSaveUserData(ctx context.Context) bool {
	return s.flag(ctx, store.KeySaveUserDataOnDisk, s.app.SaveUserData)
}

// SetSaveUserData persists the save-user-data setting.
func (s *Session) SetSaveUserData(ctx context.Context, enabled bool) error {
	return s.prefs.SaveBool(ctx, store.KeySaveUserDataOnDisk, enabled)
}

// ShouldReportSystemInfo reports whether device details are sent with the
// installation. A persisted setting wins over configuration.
func (s *Session) ShouldReportSystemInfo(ctx context.Context) bool {
	return s.flag(ctx, store.KeyReportSystemInfo, s.app.ReportSystemInfo)
}

func (s *Session) SetReportSystemInfo(ctx context.Context, enabled bool) error {
	return s.prefs.SaveBool(ctx, store.KeyReportSystemInfo, enabled)
}

func (s *Session) flag(ctx context.Context, key string, configured *bool) bool {
	if v, err := s.prefs.OptionalBool(ctx, key); err == nil && v != nil {
		return *v
	}
	if configured != nil {
		return *configured
	}
	return true
}
