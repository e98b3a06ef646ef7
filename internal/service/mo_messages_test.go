// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-mobile-messaging/internal/broadcast"
	"github.com/MKhiriev/go-mobile-messaging/internal/retry"
	"github.com/MKhiriev/go-mobile-messaging/internal/validators"
	"github.com/MKhiriev/go-mobile-messaging/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMOSend_Success(t *testing.T) {
	env := newTestEnv(t, 3)
	env.registered(t)
	ctx := context.Background()

	env.api.EXPECT().SendMO(gomock.Any(), "reg-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req models.MOMessagesRequest) (models.MOMessagesResponse, error) {
			require.Len(t, req.Messages, 1)
			assert.NotEmpty(t, req.Messages[0].MessageID)
			out := req.Messages[0]
			out.Status = models.MOStatusSuccess
			return models.MOMessagesResponse{Messages: []models.MOMessage{out}}, nil
		}).Times(1)

	spy := &listenerSpy[[]models.MOMessage]{}
	state, err := waitHandle(t, NewMOMessageSender(env.deps).Send(ctx, spy, models.MOMessage{Destination: "support", Text: "hi"}))
	require.NoError(t, err)
	assert.Equal(t, retry.Succeeded, state)

	unsent, err := env.sess.UnsentMOMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, unsent)

	sent := eventsOf[broadcast.MessagesSent](env.events)
	require.Len(t, sent, 1)
	require.Len(t, sent[0].Messages, 1)
	assert.Equal(t, models.MOStatusSuccess, sent[0].Messages[0].Status)

	successes, _ := spy.counts()
	assert.Equal(t, 1, successes)
}

func TestMOSend_FailureKeepsMessages(t *testing.T) {
	env := newTestEnv(t, 0)
	env.registered(t)
	ctx := context.Background()
	sender := NewMOMessageSender(env.deps)

	env.api.EXPECT().SendMO(gomock.Any(), "reg-1", gomock.Any()).
		Return(models.MOMessagesResponse{}, errTransient).Times(1)

	state, err := waitHandle(t, sender.Send(ctx, nil, models.MOMessage{MessageID: "mo-1", Text: "hi"}))
	assert.Equal(t, retry.Failed, state)
	assert.ErrorIs(t, err, errTransient)

	unsent, err := env.sess.UnsentMOMessages(ctx)
	require.NoError(t, err)
	require.Len(t, unsent, 1)
	assert.Equal(t, "mo-1", unsent[0].MessageID)

	sent := eventsOf[broadcast.MessagesSent](env.events)
	require.Len(t, sent, 1)
	assert.Equal(t, models.MOStatusError, sent[0].Messages[0].Status)
	assert.Len(t, eventsOf[broadcast.Error](env.events), 1)

	// the next sync resends it
	env.api.EXPECT().SendMO(gomock.Any(), "reg-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req models.MOMessagesRequest) (models.MOMessagesResponse, error) {
			require.Len(t, req.Messages, 1)
			assert.Equal(t, "mo-1", req.Messages[0].MessageID)
			return models.MOMessagesResponse{Messages: req.Messages}, nil
		}).Times(1)

	state, err = waitHandle(t, sender.Sync(ctx, nil))
	require.NoError(t, err)
	assert.Equal(t, retry.Succeeded, state)
}

func TestMOSend_Unregistered(t *testing.T) {
	env := newTestEnv(t, 3)
	ctx := context.Background()
	sender := NewMOMessageSender(env.deps)

	spy := &listenerSpy[[]models.MOMessage]{}
	state, err := waitHandle(t, sender.Send(ctx, spy, models.MOMessage{Text: "hi"}))
	assert.Equal(t, retry.Failed, state)
	assert.ErrorIs(t, err, ErrRegistrationUnavailable)
	_, errs := spy.counts()
	assert.Equal(t, 1, errs)

	state, err = waitHandle(t, sender.Sync(ctx, nil))
	require.NoError(t, err)
	assert.Equal(t, retry.Skipped, state)

	unsent, err := env.sess.UnsentMOMessages(ctx)
	require.NoError(t, err)
	assert.Len(t, unsent, 1)
}

func TestMOSend_RejectsEmptyText(t *testing.T) {
	env := newTestEnv(t, 3)
	env.registered(t)
	ctx := context.Background()

	state, err := waitHandle(t, NewMOMessageSender(env.deps).Send(ctx, nil, models.MOMessage{Destination: "support"}))
	assert.Equal(t, retry.Failed, state)
	assert.ErrorIs(t, err, validators.ErrEmptyMOText)

	unsent, err := env.sess.UnsentMOMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, unsent)
}
