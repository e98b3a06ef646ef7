// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// MOStatus is the send status of a mobile-originated message.
type MOStatus string

const (
	MOStatusUnknown MOStatus = "UNKNOWN"
	MOStatusSuccess MOStatus = "SUCCESS"
	MOStatusError   MOStatus = "ERROR"
)

// MOMessage is a mobile-originated message sent from the installation to a
// backend destination.
type MOMessage struct {
	MessageID     string         `json:"messageId"`
	Destination   string         `json:"destination,omitempty"`
	Text          string         `json:"text"`
	CustomPayload map[string]any `json:"customPayload,omitempty"`

	Status        MOStatus `json:"status,omitempty"`
	StatusCode    int      `json:"statusCode,omitempty"`
	StatusMessage string   `json:"statusMessage,omitempty"`
}

// MOMessagesRequest is the body of a send request.
type MOMessagesRequest struct {
	From     string      `json:"from"`
	Messages []MOMessage `json:"messages"`
}

// MOMessagesResponse carries per-message send results.
type MOMessagesResponse struct {
	Messages []MOMessage `json:"messages"`
}
