// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Pool runs submitted jobs on a fixed number of goroutines. Jobs wait in an
// unbounded FIFO queue, so Submit never blocks.
//
// Jobs may be submitted before Run is called; they start as soon as the
// workers are up. After Stop (or cancellation of the context passed to Run)
// the workers drain the jobs already queued and exit; new submissions fail
// with ErrPoolStopped.
type Pool struct {
	size   int
	logger *logger.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	stopped bool
}

// NewPool creates a pool with size workers. A size below 1 is treated as 1.
func NewPool(size int, log *logger.Logger) *Pool {
	if size < 1 {
		size = 1
	}

	p := &Pool{
		size:   size,
		logger: log.WithComponent("workers"),
	}
	p.cond = sync.NewCond(&p.mu)

	return p
}

// Submit implements Executor.
func (p *Pool) Submit(job func()) error {
	if job == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return ErrPoolStopped
	}

	p.queue = append(p.queue, job)
	p.cond.Signal()

	return nil
}

// Run starts the workers and blocks until the pool is stopped, either by Stop
// or by cancellation of ctx, and every queued job has finished.
func (p *Pool) Run(ctx context.Context) error {
	stopOnDone := context.AfterFunc(ctx, p.Stop)
	defer stopOnDone()

	g := new(errgroup.Group)
	for id := range p.size {
		g.Go(func() error {
			p.work(id)
			return nil
		})
	}

	p.logger.Info().Int("size", p.size).Msg("worker pool started")
	err := g.Wait()
	p.logger.Info().Msg("worker pool stopped")

	return err
}

// Stop stops accepting jobs and wakes idle workers so that they exit once
// the queue is empty. It does not wait for running jobs; Run does.
func (p *Pool) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()

	p.cond.Broadcast()
}

// Pending returns the number of queued jobs that have not started yet.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.queue)
}

func (p *Pool) work(id int) {
	for {
		job, ok := p.next()
		if !ok {
			return
		}
		p.run(id, job)
	}
}

func (p *Pool) next() (func(), bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.stopped {
		p.cond.Wait()
	}
	if len(p.queue) == 0 {
		return nil, false
	}

	job := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]

	return job, true
}

func (p *Pool) run(id int, job func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().
				Int("worker", id).
				Err(fmt.Errorf("%v", r)).
				Msg("job panicked")
		}
	}()

	job()
}
