// Package broadcast delivers sync outcomes to application listeners as a
// closed set of typed events.
package broadcast

import "github.com/MKhiriev/go-mobile-messaging/models"

// Event is implemented only by the event types of this package.
type Event interface {
	event()
}

// Kind names the synchronizer an Error event comes from.
type Kind string

const (
	KindInstallation Kind = "installation"
	KindUserData     Kind = "user_data"
	KindMessages     Kind = "messages"
	KindDelivery     Kind = "delivery_report"
	KindSeen         Kind = "seen_report"
	KindMOMessages   Kind = "mo_messages"
)

// InstallationCreated is sent after the backend assigned a push
// registration id to this installation.
type InstallationCreated struct {
	Installation models.Installation
}

// InstallationUpdated is sent after dirty installation attributes were
// acknowledged.
type InstallationUpdated struct {
	Installation models.Installation
}

type InstallationFetched struct {
	Installation models.Installation
}

type UserUpdated struct {
	UserData models.UserData
}

// MessagesSynced carries the messages the backend returned as missed.
type MessagesSynced struct {
	Messages []models.Message
}

type DeliveryReported struct {
	MessageIDs []string
}

type SeenReported struct {
	MessageIDs []string
}

// MessagesSent carries the per-message result of a mobile-originated send.
type MessagesSent struct {
	Messages []models.MOMessage
}

// Error is sent once per terminal failure of a synchronizer.
type Error struct {
	Kind Kind
	Err  *MobileMessagingError
}

func (InstallationCreated) event() {}
func (InstallationUpdated) event() {}
func (InstallationFetched) event() {}
func (UserUpdated) event() {}
func (MessagesSynced) event() {}
func (DeliveryReported) event() {}
func (SeenReported) event() {}
func (MessagesSent) event() {}
func (Error) event() {}
