// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks values handed to the client by the host
// application before they are persisted or sent to the backend.
//
// A rejected value never reaches storage, so the background sync cannot
// keep retrying a request the backend would always refuse. Callers may pass
// field names to restrict which rules run.
package validators

import "context"

// Validator validates user data, installation patches and mobile originated
// messages.
type Validator interface {
	// Validate returns the first rule obj breaks. With fields given, only
	// the rules for those fields run.
	Validate(ctx context.Context, obj any, fields ...string) error
}
