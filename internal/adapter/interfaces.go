// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the synchronizers and
// the mobile messaging backend.
//
// The primary abstraction is [MobileAPI]: one method per backend operation,
// opaque to the caller apart from its error. The package ships an HTTP/REST
// implementation ([NewHTTPMobileAPI]) built on resty.
//
// Every non-2xx response is mapped to a [*BackendError] carrying the status
// and the backend's error envelope, so callers can classify failures with
// [errors.As] and BackendError.Retryable.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-mobile-messaging/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mobile_api_mock.go -package=mock

// MobileAPI defines the backend operations used by the synchronizers.
type MobileAPI interface {
	// CreateInstance registers a new installation and returns it with the
	// push registration id assigned by the backend.
	CreateInstance(ctx context.Context, inst models.Installation) (models.Installation, error)

	// PatchInstance applies the non-nil fields of inst to the installation
	// identified by pushRegID.
	PatchInstance(ctx context.Context, pushRegID string, inst models.Installation) error

	// GetInstance fetches the installation identified by pushRegID.
	GetInstance(ctx context.Context, pushRegID string) (models.Installation, error)

	// PatchUser applies the set fields of user to the user bound to the
	// installation.
	PatchUser(ctx context.Context, pushRegID string, user models.UserData) error

	// GetUser fetches the user bound to the installation.
	GetUser(ctx context.Context, pushRegID string) (models.UserData, error)

	// SyncMessages reports known and delivered message ids and returns
	// messages the device has missed.
	SyncMessages(ctx context.Context, req models.SyncMessagesRequest) (models.SyncMessagesResponse, error)

	// ReportDelivery acknowledges delivery of the given messages.
	ReportDelivery(ctx context.Context, ids []string) error

	// ReportSeen reports the messages the user has seen.
	ReportSeen(ctx context.Context, report models.SeenMessagesReport) error

	// SendMO sends mobile originated messages and returns their per-message
	// status.
	SendMO(ctx context.Context, pushRegID string, req models.MOMessagesRequest) (models.MOMessagesResponse, error)
}

// Identity supplies request headers and the mutable base URL. It is
// implemented by the session.
type Identity interface {
	ApplicationCode() string
	PushRegistrationID(ctx context.Context) (string, error)
	UniversalInstallationID(ctx context.Context) (string, error)

	APIBaseURL(ctx context.Context) string
	SetAPIBaseURL(ctx context.Context, url string) error
	ResetAPIBaseURL(ctx context.Context) error
}
