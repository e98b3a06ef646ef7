// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the mobile-messaging client runtime.
//
// It wires storage, the session, the backend adapter, the synchronizers and
// the background sync job into a single process lifecycle, and exposes the
// operations a host application calls: token updates, user data and
// installation changes, message reports and mobile originated messages.
package client
