// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service contains the synchronizers that reconcile unreported local
// state with the backend, and the periodic job that drives them.
//
// Every synchronizer follows the same shape: Sync reads the session's
// unreported markers, builds one request from everything that is dirty and
// runs it as a retryable task on the shared executor. Success clears exactly
// the markers that were sent; terminal failure keeps them, records the error
// and broadcasts it. A sync with nothing dirty makes no network call and
// completes in the Skipped state.
package service

import (
	"github.com/MKhiriev/go-mobile-messaging/models"
)

// ActionListener receives the outcome of one sync call. At most one method
// is called. Neither is called for a NoOp or a cancelled sync.
type ActionListener[T any] interface {
	OnSuccess(result T)
	OnError(err error)
}

// ListenerFuncs adapts a pair of functions to ActionListener. Nil functions
// are skipped.
type ListenerFuncs[T any] struct {
	Success func(T)
	Error   func(error)
}

func (l ListenerFuncs[T]) OnSuccess(result T) {
	if l.Success != nil {
		l.Success(result)
	}
}

func (l ListenerFuncs[T]) OnError(err error) {
	if l.Error != nil {
		l.Error(err)
	}
}

// SystemDataProvider supplies the current device details.
type SystemDataProvider interface {
	SystemData() models.SystemData
}

// SystemDataFunc adapts a function to SystemDataProvider.
type SystemDataFunc func() models.SystemData

func (f SystemDataFunc) SystemData() models.SystemData { return f() }

func notifySuccess[T any](l ActionListener[T], result T) {
	if l != nil {
		l.OnSuccess(result)
	}
}

func notifyError[T any](l ActionListener[T], err error) {
	if l != nil {
		l.OnError(err)
	}
}
