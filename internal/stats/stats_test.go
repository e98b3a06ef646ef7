package stats

import (
	"context"
	"sync"
	"testing"

	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
	"github.com/MKhiriev/go-mobile-messaging/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_ReportError(t *testing.T) {
	ctx := context.Background()
	s := New(store.NewPreferences(store.NewMemoryStorage()), logger.Nop())

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ReportError(ctx, RegistrationSync)
		}()
	}
	wg.Wait()
	s.ReportError(ctx, SeenReport)

	count, err := s.ErrorCount(ctx, RegistrationSync)
	require.NoError(t, err)
	assert.Equal(t, int64(10), count)

	snapshot, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snapshot[SeenReport])
	assert.Equal(t, int64(0), snapshot[MessagesSync])
	assert.Len(t, snapshot, len(Kinds))
}

func TestStats_Reset(t *testing.T) {
	ctx := context.Background()
	s := New(store.NewPreferences(store.NewMemoryStorage()), logger.Nop())

	s.ReportError(ctx, UserDataSync)
	require.NoError(t, s.Reset(ctx))

	count, err := s.ErrorCount(ctx, UserDataSync)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStats_ReportError_StorageFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	storage := store.NewMemoryStorage()
	s := New(store.NewPreferences(storage), logger.Nop())
	require.NoError(t, storage.Close())

	assert.NotPanics(t, func() { s.ReportError(ctx, MOSend) })
}
