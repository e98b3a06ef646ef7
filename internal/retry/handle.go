package retry

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-mobile-messaging/internal/workers"
)

// Handle observes and cancels one unit of background work.
type Handle struct {
	done   chan struct{}
	cancel context.CancelFunc

	mu      sync.Mutex
	state   State
	err     error
	tracked interface{ Attempts() int }
}

type handleKey struct{}

// Go submits fn to exec and returns a Handle completed with fn's result.
// fn receives a context that is cancelled by Handle.Cancel or by the parent
// ctx. If exec rejects the job the handle completes as Cancelled with the
// submission error.
func Go(ctx context.Context, exec workers.Executor, fn func(ctx context.Context) (State, error)) *Handle {
	hctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	hctx = context.WithValue(hctx, handleKey{}, h)

	err := exec.Submit(func() {
		state, err := Failed, error(ErrPanicked)
		defer func() { h.complete(state, err) }()

		h.start()
		state, err = fn(hctx)
	})
	if err != nil {
		h.complete(Cancelled, err)
	}

	return h
}

// Completed returns a handle that is already in the given terminal state.
func Completed(state State, err error) *Handle {
	h := &Handle{
		done:   make(chan struct{}),
		cancel: func() {},
	}
	h.complete(state, err)
	return h
}

func handleFrom(ctx context.Context) *Handle {
	h, _ := ctx.Value(handleKey{}).(*Handle)
	return h
}

// Done is closed once the work reaches a terminal state.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the work completes or ctx is done. In the latter case
// the current state and ctx's error are returned.
func (h *Handle) Wait(ctx context.Context) (State, error) {
	select {
	case <-h.done:
		return h.State(), h.Err()
	case <-ctx.Done():
		return h.State(), ctx.Err()
	}
}

// Cancel stops further attempts. It has no effect on completed work.
func (h *Handle) Cancel() {
	h.cancel()
}

func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Err returns the terminal error, if any.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Attempts returns the number of attempts made by the task running under
// this handle.
func (h *Handle) Attempts() int {
	h.mu.Lock()
	tracked := h.tracked
	h.mu.Unlock()

	if tracked == nil {
		return 0
	}
	return tracked.Attempts()
}

func (h *Handle) track(t interface{ Attempts() int }) {
	h.mu.Lock()
	h.tracked = t
	h.mu.Unlock()
}

func (h *Handle) start() {
	h.mu.Lock()
	if h.state == Idle {
		h.state = Running
	}
	h.mu.Unlock()
}

func (h *Handle) complete(state State, err error) {
	h.mu.Lock()
	select {
	case <-h.done:
		h.mu.Unlock()
		return
	default:
	}
	h.state = state
	h.err = err
	close(h.done)
	h.mu.Unlock()

	h.cancel()
}
