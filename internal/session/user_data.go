package session

import (
	"context"

	"github.com/MKhiriev/go-mobile-messaging/internal/store"
	"github.com/MKhiriev/go-mobile-messaging/internal/utils"
	"github.com/MKhiriev/go-mobile-messaging/models"
)

// UnreportedUserData returns user data waiting to be sent, or nil.
func (s *Session) UnreportedUserData(ctx context.Context) (*models.UserData, error) {
	var data models.UserData
	ok, err := s.prefs.JSON(ctx, store.KeyUnreportedUserData, &data)
	if err != nil || !ok {
		return nil, err
	}
	return &data, nil
}

// MergeUnreportedUserData merges patch into the unreported user data and
// returns the result. The result is persisted only when saving user data is
// enabled.
func (s *Session) MergeUnreportedUserData(ctx context.Context, patch *models.UserData) (*models.UserData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.UnreportedUserData(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil && patch == nil {
		return nil, nil
	}

	merged := current.Merge(patch)
	if !s.ShouldSaveUserData(ctx) {
		return merged, nil
	}
	if err = s.prefs.SaveJSON(ctx, store.KeyUnreportedUserData, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// ClearUnreportedUserData removes the unreported user data if it still
// equals sent. Data merged after sent was taken stays unreported.
func (s *Session) ClearUnreportedUserData(ctx context.Context, sent *models.UserData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.UnreportedUserData(ctx)
	if err != nil || current == nil {
		return err
	}

	same, err := sameUserData(current, sent)
	if err != nil || !same {
		return err
	}
	return s.prefs.Remove(ctx, store.KeyUnreportedUserData)
}

// UserData returns the last user data acknowledged by the backend.
func (s *Session) UserData(ctx context.Context) (*models.UserData, error) {
	var data models.UserData
	ok, err := s.prefs.JSON(ctx, store.KeyUserData, &data)
	if err != nil || !ok {
		return nil, err
	}
	return &data, nil
}

func (s *Session) SetUserData(ctx context.Context, data *models.UserData) error {
	if data == nil {
		return s.prefs.Remove(ctx, store.KeyUserData)
	}
	return s.prefs.SaveJSON(ctx, store.KeyUserData, data)
}

func sameUserData(a, b *models.UserData) (bool, error) {
	if a == nil || b == nil {
		return a == b, nil
	}

	fa, err := utils.Fingerprint(a)
	if err != nil {
		return false, err
	}
	fb, err := utils.Fingerprint(b)
	return fa == fb, err
}
