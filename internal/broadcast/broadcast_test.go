package broadcast

import (
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
	"github.com/MKhiriev/go-mobile-messaging/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Broadcaster ───────────────────────────────────────────────────────────────

func TestBroadcaster_NotifyInOrder(t *testing.T) {
	b := NewBroadcaster(logger.Nop())

	var got []string
	b.Subscribe(ListenerFunc(func(Event) { got = append(got, "first") }))
	b.Subscribe(ListenerFunc(func(Event) { got = append(got, "second") }))

	b.Notify(InstallationUpdated{})
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	b := NewBroadcaster(logger.Nop())

	var calls int
	unsubscribe := b.Subscribe(ListenerFunc(func(Event) { calls++ }))

	b.Notify(UserUpdated{})
	unsubscribe()
	unsubscribe()
	b.Notify(UserUpdated{})

	assert.Equal(t, 1, calls)
}

// TestBroadcaster_PanickingListener verifies that a panic does not stop
// delivery to the remaining listeners.
func TestBroadcaster_PanickingListener(t *testing.T) {
	b := NewBroadcaster(logger.Nop())

	delivered := false
	b.Subscribe(ListenerFunc(func(Event) { panic("boom") }))
	b.Subscribe(ListenerFunc(func(Event) { delivered = true }))

	assert.NotPanics(t, func() { b.Notify(MessagesSynced{}) })
	assert.True(t, delivered)
}

func TestBroadcaster_TypedSwitch(t *testing.T) {
	b := NewBroadcaster(logger.Nop())

	var created *models.Installation
	b.Subscribe(ListenerFunc(func(e Event) {
		switch ev := e.(type) {
		case InstallationCreated:
			created = &ev.Installation
		}
	}))

	b.Notify(InstallationCreated{Installation: models.Installation{PushRegID: "reg-1"}})
	require.NotNil(t, created)
	assert.Equal(t, "reg-1", created.PushRegID)
}

func TestBroadcaster_NoListeners(t *testing.T) {
	assert.NotPanics(t, func() { NewBroadcaster(logger.Nop()).Notify(SeenReported{}) })
}

// ── FromError ─────────────────────────────────────────────────────────────────

type fakeBackendError struct {
	status int
	code   string
	text   string
}

func (e fakeBackendError) Error() string { return fmt.Sprintf("%d %s", e.status, e.text) }
func (e fakeBackendError) StatusCode() int { return e.status }
func (e fakeBackendError) ErrorCode() string { return e.code }
func (e fakeBackendError) ErrorText() string { return e.text }

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	plain := FromError(errors.New("boom"))
	assert.Equal(t, CodeUnknown, plain.Code)
	assert.Equal(t, "boom", plain.Message)
	assert.Zero(t, plain.Status)

	backend := FromError(fmt.Errorf("patch: %w", fakeBackendError{status: 400, code: "40001", text: "Invalid"}))
	assert.Equal(t, "40001", backend.Code)
	assert.Equal(t, "Invalid", backend.Message)
	assert.Equal(t, 400, backend.Status)

	noBody := FromError(fakeBackendError{status: 503})
	assert.Equal(t, "Service Unavailable", noBody.Code)

	network := FromError(fakeBackendError{})
	assert.Equal(t, CodeNetwork, network.Code)

	same := &MobileMessagingError{Code: "X"}
	assert.Same(t, same, FromError(fmt.Errorf("wrap: %w", same)))
}

func TestMobileMessagingError_ErrorAndUnwrap(t *testing.T) {
	base := errors.New("base")
	err := FromError(base)

	assert.Equal(t, "UNKNOWN: base", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "msg", (&MobileMessagingError{Message: "msg"}).Error())
}
