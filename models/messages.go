// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Message is a push message delivered to the installation.
type Message struct {
	MessageID     string         `json:"messageId"`
	Title         string         `json:"title,omitempty"`
	Body          string         `json:"body,omitempty"`
	Sound         string         `json:"sound,omitempty"`
	Category      string         `json:"category,omitempty"`
	Silent        bool           `json:"silent,omitempty"`
	CustomPayload map[string]any `json:"customPayload,omitempty"`
	ReceivedAt    int64          `json:"receivedTimestamp,omitempty"`
	SeenAt        int64          `json:"seenTimestamp,omitempty"`
}

// SyncMessagesRequest asks the backend for messages the installation may have
// missed and piggybacks pending delivery reports.
type SyncMessagesRequest struct {
	// MessageIDs are the ids already known locally.
	MessageIDs []string `json:"mIDs"`

	// DeliveryReportIDs are ids whose delivery was not yet acknowledged.
	DeliveryReportIDs []string `json:"drIDs"`
}

// SyncMessagesResponse carries the messages the backend thinks the
// installation has not received.
type SyncMessagesResponse struct {
	Payloads []Message `json:"payloads"`
}

// DeliveryReportRequest reports delivery of the listed messages.
type DeliveryReportRequest struct {
	MessageIDs []string `json:"dlrIds"`
}

// SeenMessage reports one message as seen. TimestampDelta is the number of
// seconds elapsed between the moment the message was seen and the moment the
// report is sent.
type SeenMessage struct {
	MessageID      string `json:"messageId"`
	TimestampDelta int64  `json:"timestampDelta"`
}

// SeenMessagesReport is the body of a seen-status report.
type SeenMessagesReport struct {
	Messages []SeenMessage `json:"messages"`
}

// IDs returns the ids of all messages in the report.
func (r SeenMessagesReport) IDs() []string {
	ids := make([]string, 0, len(r.Messages))
	for _, m := range r.Messages {
		ids = append(ids, m.MessageID)
	}
	return ids
}
