package session

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-mobile-messaging/internal/store"
	"github.com/MKhiriev/go-mobile-messaging/internal/utils"
	"github.com/MKhiriev/go-mobile-messaging/models"
)

// ── cloud token ──────────────────────────────────────────────────────────────

func (s *Session) CloudToken(ctx context.Context) (string, error) {
	return s.prefs.String(ctx, store.KeyCloudToken)
}

// SetCloudToken stores a new token from the push transport. A changed token
// becomes unreported.
func (s *Session) SetCloudToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.prefs.String(ctx, store.KeyCloudToken)
	if err != nil {
		return err
	}
	if current == token {
		return nil
	}

	if err = s.prefs.SaveString(ctx, store.KeyCloudToken, token); err != nil {
		return err
	}
	return s.prefs.SaveBool(ctx, store.KeyCloudTokenReported, false)
}

func (s *Session) IsCloudTokenReported(ctx context.Context) (bool, error) {
	return s.prefs.Bool(ctx, store.KeyCloudTokenReported)
}

// SetCloudTokenReported sets the reported flag unconditionally.
func (s *Session) SetCloudTokenReported(ctx context.Context, reported bool) error {
	return s.prefs.SaveBool(ctx, store.KeyCloudTokenReported, reported)
}

// MarkCloudTokenReported marks token as reported only if it is still the
// current token.
func (s *Session) MarkCloudTokenReported(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.prefs.String(ctx, store.KeyCloudToken)
	if err != nil || current != token {
		return err
	}
	return s.prefs.SaveBool(ctx, store.KeyCloudTokenReported, true)
}

// HasUnreportedCloudToken reports whether a token is present and not yet
// acknowledged.
func (s *Session) HasUnreportedCloudToken(ctx context.Context) (bool, error) {
	token, err := s.CloudToken(ctx)
	if err != nil || token == "" {
		return false, err
	}

	reported, err := s.IsCloudTokenReported(ctx)
	return !reported, err
}

// ── registration ─────────────────────────────────────────────────────────────

func (s *Session) PushRegistrationID(ctx context.Context) (string, error) {
	return s.prefs.String(ctx, store.KeyPushRegistrationID)
}

func (s *Session) SetPushRegistrationID(ctx context.Context, id string) error {
	return s.prefs.SaveString(ctx, store.KeyPushRegistrationID, id)
}

// IsRegistrationUnavailable reports whether the backend has not assigned a
// push registration id yet.
func (s *Session) IsRegistrationUnavailable(ctx context.Context) (bool, error) {
	id, err := s.PushRegistrationID(ctx)
	return id == "", err
}

// PushRegistrationEnabled defaults to true.
func (s *Session) PushRegistrationEnabled(ctx context.Context) (bool, error) {
	v, err := s.prefs.OptionalBool(ctx, store.KeyPushRegistrationEnabled)
	if err != nil || v == nil {
		return true, err
	}
	return *v, nil
}

func (s *Session) SetPushRegistrationEnabled(ctx context.Context, enabled bool) error {
	return s.prefs.SaveBool(ctx, store.KeyPushRegistrationEnabled, enabled)
}

// ── primary ──────────────────────────────────────────────────────────────────

func (s *Session) IsPrimary(ctx context.Context) (bool, error) {
	return s.prefs.Bool(ctx, store.KeyPrimary)
}

// UnreportedPrimarySetting returns the primary flag waiting to be sent, or
// nil.
func (s *Session) UnreportedPrimarySetting(ctx context.Context) (*bool, error) {
	return s.prefs.OptionalBool(ctx, store.KeyUnreportedPrimary)
}

func (s *Session) SetUnreportedPrimary(ctx context.Context, primary bool) error {
	return s.prefs.SaveBool(ctx, store.KeyUnreportedPrimary, primary)
}

// SetPrimary stores the acknowledged primary flag and clears the unreported
// one if it still holds the same value.
func (s *Session) SetPrimary(ctx context.Context, primary bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prefs.SaveBool(ctx, store.KeyPrimary, primary); err != nil {
		return err
	}

	unreported, err := s.prefs.OptionalBool(ctx, store.KeyUnreportedPrimary)
	if err != nil || unreported == nil || *unreported != primary {
		return err
	}
	return s.prefs.Remove(ctx, store.KeyUnreportedPrimary)
}

// ── application user id ──────────────────────────────────────────────────────

func (s *Session) ApplicationUserID(ctx context.Context) (string, error) {
	return s.prefs.String(ctx, store.KeyApplicationUserID)
}

// SetApplicationUserID stores id. A changed id becomes unreported.
func (s *Session) SetApplicationUserID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok, err := s.prefs.Storage().Find(ctx, store.KeyApplicationUserID)
	if err != nil {
		return err
	}
	if ok && current == id {
		return nil
	}

	if err = s.prefs.SaveString(ctx, store.KeyApplicationUserID, id); err != nil {
		return err
	}
	return s.prefs.SaveBool(ctx, store.KeyApplicationUserIDReported, false)
}

// HasUnreportedApplicationUserID reports whether an id was set and not yet
// acknowledged. An empty id is a valid value meaning "unset".
func (s *Session) HasUnreportedApplicationUserID(ctx context.Context) (bool, error) {
	reported, err := s.prefs.OptionalBool(ctx, store.KeyApplicationUserIDReported)
	if err != nil || reported == nil {
		return false, err
	}
	return !*reported, nil
}

// MarkApplicationUserIDReported marks id as reported only if it is still the
// current id.
func (s *Session) MarkApplicationUserIDReported(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.prefs.String(ctx, store.KeyApplicationUserID)
	if err != nil || current != id {
		return err
	}
	return s.prefs.SaveBool(ctx, store.KeyApplicationUserIDReported, true)
}

// ── push service type ────────────────────────────────────────────────────────

func (s *Session) PushServiceType() string {
	return s.app.PushServiceType
}

// IsPushServiceTypeChanged reports whether the configured push service type
// differs from the last one the backend acknowledged.
func (s *Session) IsPushServiceTypeChanged(ctx context.Context) (bool, error) {
	reported, err := s.prefs.String(ctx, store.KeyReportedPushServiceType)
	return reported != s.app.PushServiceType, err
}

func (s *Session) SetReportedPushServiceType(ctx context.Context, serviceType string) error {
	return s.prefs.SaveString(ctx, store.KeyReportedPushServiceType, serviceType)
}

// ── system data ──────────────────────────────────────────────────────────────

// SystemDataForReport returns the system data that still has to be
// reported together with its fingerprint, or nil when the backend already
// has it or reporting is disabled. Changed data is persisted as unreported.
func (s *Session) SystemDataForReport(ctx context.Context, current models.SystemData) (*models.SystemData, string, error) {
	if !s.ShouldReportSystemInfo(ctx) {
		return nil, "", nil
	}

	fingerprint, err := utils.Fingerprint(current)
	if err != nil {
		return nil, "", err
	}

	reported, err := s.prefs.String(ctx, store.KeyReportedSystemDataHash)
	if err != nil {
		return nil, "", err
	}
	if reported == fingerprint {
		return nil, "", nil
	}

	if err = s.prefs.SaveJSON(ctx, store.KeyUnreportedSystemData, current); err != nil {
		return nil, "", err
	}
	return &current, fingerprint, nil
}

// UnreportedSystemData returns the persisted system data waiting to be sent.
func (s *Session) UnreportedSystemData(ctx context.Context) (*models.SystemData, error) {
	var data models.SystemData
	ok, err := s.prefs.JSON(ctx, store.KeyUnreportedSystemData, &data)
	if err != nil || !ok {
		return nil, err
	}
	return &data, nil
}

// SetSystemDataReported records fingerprint as acknowledged.
func (s *Session) SetSystemDataReported(ctx context.Context, fingerprint string) error {
	if fingerprint == "" {
		return errors.New("empty system data fingerprint")
	}
	if err := s.prefs.SaveString(ctx, store.KeyReportedSystemDataHash, fingerprint); err != nil {
		return err
	}
	return s.prefs.Remove(ctx, store.KeyUnreportedSystemData)
}

// ── installation cache ───────────────────────────────────────────────────────

// Installation returns the last installation acknowledged by the backend.
func (s *Session) Installation(ctx context.Context) (models.Installation, error) {
	var inst models.Installation
	_, err := s.prefs.JSON(ctx, store.KeyInstallation, &inst)
	return inst, err
}

func (s *Session) SetInstallation(ctx context.Context, inst models.Installation) error {
	return s.prefs.SaveJSON(ctx, store.KeyInstallation, inst)
}

func (s *Session) IsApplicationUserIDReported(ctx context.Context) (bool, error) {
	unreported, err := s.HasUnreportedApplicationUserID(ctx)
	return !unreported, err
}
