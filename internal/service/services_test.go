// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
	"github.com/MKhiriev/go-mobile-messaging/internal/workers"
	"github.com/MKhiriev/go-mobile-messaging/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSyncAll_RegistersThenSyncsMessages(t *testing.T) {
	env := newTestEnv(t, 3)
	ctx := context.Background()
	require.NoError(t, env.sess.SetCloudToken(ctx, "cloud-token"))

	gomock.InOrder(
		env.api.EXPECT().CreateInstance(gomock.Any(), gomock.Any()).
			Return(models.Installation{PushRegID: "reg-1"}, nil),
		env.api.EXPECT().SyncMessages(gomock.Any(), gomock.Any()).
			Return(models.SyncMessagesResponse{}, nil),
	)

	services := NewServices(env.deps)
	require.NoError(t, services.SyncAll(ctx))

	// second round: installation clean, messages throttled
	require.NoError(t, services.SyncAll(ctx))
}

func TestSyncAll_ContinuesAfterFailure(t *testing.T) {
	env := newTestEnv(t, 0)
	env.registered(t)
	ctx := context.Background()
	require.NoError(t, env.sess.SetUnreportedPrimary(ctx, true))

	env.api.EXPECT().PatchInstance(gomock.Any(), "reg-1", gomock.Any()).Return(errTransient).Times(1)
	env.api.EXPECT().SyncMessages(gomock.Any(), gomock.Any()).Return(models.SyncMessagesResponse{}, nil).Times(1)

	err := NewServices(env.deps).SyncAll(ctx)
	assert.ErrorIs(t, err, errTransient)
}

func TestSyncAll_OnWorkerPool(t *testing.T) {
	env := newTestEnv(t, 3)
	env.registered(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := workers.NewPool(2, logger.Nop())
	go func() { _ = pool.Run(ctx) }()
	env.deps.Executor = pool

	env.api.EXPECT().SyncMessages(gomock.Any(), gomock.Any()).Return(models.SyncMessagesResponse{}, nil).Times(1)

	done := make(chan error, 1)
	go func() { done <- NewServices(env.deps).SyncAll(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("SyncAll did not finish on the worker pool")
	}
}
