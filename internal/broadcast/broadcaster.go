// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package broadcast

import (
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
)

// Listener receives every event published after it subscribed.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Notifier publishes events. It is the only dependency synchronizers have on
// this package.
type Notifier interface {
	Notify(Event)
}

type subscription struct {
	id       uint64
	listener Listener
}

// Broadcaster fans events out to subscribed listeners synchronously, in
// subscription order. A panicking listener is logged and skipped.
type Broadcaster struct {
	logger *logger.Logger

	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

func NewBroadcaster(log *logger.Logger) *Broadcaster {
	return &Broadcaster{logger: log.WithComponent("broadcast")}
}

// Subscribe registers l and returns a function that removes it. The
// returned function is safe to call more than once.
func (b *Broadcaster) Subscribe(l Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, listener: l})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		b.subs = slices.DeleteFunc(b.subs, func(s subscription) bool { return s.id == id })
	}
}

// Notify delivers e to every listener.
func (b *Broadcaster) Notify(e Event) {
	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	b.logger.Debug().Str("event", fmt.Sprintf("%T", e)).Int("listeners", len(subs)).Msg("notify")

	for _, s := range subs {
		b.deliver(s.listener, e)
	}
}

func (b *Broadcaster) deliver(l Listener, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("event", fmt.Sprintf("%T", e)).
				Err(fmt.Errorf("%v", r)).
				Msg("listener panicked")
		}
	}()

	l.OnEvent(e)
}
