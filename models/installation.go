// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Installation is the backend representation of a single device
// installation (the "app instance"). Pointer fields are optional: a nil value
// is omitted from PATCH bodies so that only dirty attributes are sent.
type Installation struct {
	// PushRegID is the backend-assigned push registration id. Empty until the
	// installation has been created on the backend.
	PushRegID string `json:"pushRegId,omitempty"`

	// PushServiceToken is the cloud (FCM/APNs-like) token of this device.
	PushServiceToken string `json:"registrationId,omitempty"`

	// PushServiceType names the push transport the token belongs to.
	PushServiceType string `json:"pushServiceType,omitempty"`

	RegEnabled        *bool   `json:"regEnabled,omitempty"`
	IsPrimary         *bool   `json:"isPrimary,omitempty"`
	ApplicationUserID *string `json:"applicationUserId,omitempty"`

	SDKVersion         string `json:"sdkVersion,omitempty"`
	OS                 string `json:"os,omitempty"`
	OSVersion          string `json:"osVersion,omitempty"`
	DeviceManufacturer string `json:"deviceManufacturer,omitempty"`
	DeviceModel        string `json:"deviceModel,omitempty"`
	AppVersion         string `json:"appVersion,omitempty"`
	Language           string `json:"language,omitempty"`
	DeviceName         string `json:"deviceName,omitempty"`

	Geofencing           *bool `json:"geoEnabled,omitempty"`
	NotificationsEnabled *bool `json:"notificationsEnabled,omitempty"`
	DeviceSecure         *bool `json:"deviceSecure,omitempty"`

	CustomAttributes map[string]any `json:"customAttributes,omitempty"`
}

// IsEmpty reports whether the installation carries no attribute that would
// be worth sending to the backend.
func (i Installation) IsEmpty() bool {
	return i.PushServiceToken == "" &&
		i.PushServiceType == "" &&
		i.RegEnabled == nil &&
		i.IsPrimary == nil &&
		i.ApplicationUserID == nil &&
		i.SDKVersion == "" &&
		i.OS == "" &&
		i.CustomAttributes == nil
}

// SystemData describes the device and application environment. It is
// reported to the backend as part of the installation whenever its
// fingerprint changes.
type SystemData struct {
	SDKVersion           string `json:"sdkVersion"`
	OS                   string `json:"os"`
	OSVersion            string `json:"osVersion"`
	DeviceManufacturer   string `json:"deviceManufacturer"`
	DeviceModel          string `json:"deviceModel"`
	AppVersion           string `json:"appVersion"`
	Geofencing           bool   `json:"geofencing"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	DeviceSecure         bool   `json:"deviceSecure"`
	Language             string `json:"language"`
	DeviceName           string `json:"deviceName"`
}

// ApplyTo copies the system data attributes into the installation.
func (s SystemData) ApplyTo(i *Installation) {
	i.SDKVersion = s.SDKVersion
	i.OS = s.OS
	i.OSVersion = s.OSVersion
	i.DeviceManufacturer = s.DeviceManufacturer
	i.DeviceModel = s.DeviceModel
	i.AppVersion = s.AppVersion
	i.Language = s.Language
	i.DeviceName = s.DeviceName
	i.Geofencing = Bool(s.Geofencing)
	i.NotificationsEnabled = Bool(s.NotificationsEnabled)
	i.DeviceSecure = Bool(s.DeviceSecure)
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// String returns a pointer to v.
func String(v string) *string {
	return &v
}
