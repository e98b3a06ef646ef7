package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
	"github.com/MKhiriev/go-mobile-messaging/internal/utils"
)

// DefaultSyncInterval is used when the job is started with a non-positive
// interval.
const DefaultSyncInterval = 5 * time.Minute

// Syncer runs one full synchronization round.
type Syncer interface {
	SyncAll(ctx context.Context) error
}

// SyncJob calls Syncer.SyncAll once on start and then on a ticker.
type SyncJob struct {
	syncer   Syncer
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a SyncJob. The job is idle until Start or Run is
// called.
func NewSyncJob(syncer Syncer, interval time.Duration, log *logger.Logger) *SyncJob {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &SyncJob{syncer: syncer, interval: interval, logger: log.WithComponent("sync_job")}
}

// Run implements workers.Worker. It starts the job and blocks until ctx is
// cancelled.
func (j *SyncJob) Run(ctx context.Context) error {
	j.Start(ctx)
	<-ctx.Done()
	j.Stop()
	return nil
}

// Start stops any previously running job, then launches a background
// goroutine that syncs immediately and every interval after that. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *SyncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()

		j.syncAll(utils.WithSyncTrigger(jobCtx, utils.TriggerStartup))

		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.syncAll(utils.WithSyncTrigger(jobCtx, utils.TriggerPeriodic))
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the job is not running.
func (j *SyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *SyncJob) syncAll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	err := j.syncer.SyncAll(ctx)
	if err != nil && ctx.Err() == nil {
		j.logger.Warn().Err(err).Str("trigger", utils.SyncTriggerFromContext(ctx)).Msg("sync round finished with errors")
		return
	}
	j.logger.Debug().Str("trigger", utils.SyncTriggerFromContext(ctx)).Dur("elapsed", time.Since(start)).Msg("sync round finished")
}
