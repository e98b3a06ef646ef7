package store

import (
	"context"
	"sync"
)

type memoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// NewMemoryStorage returns a Storage that keeps everything in process
// memory. State does not survive a restart.
func NewMemoryStorage() Storage {
	return &memoryStorage{values: make(map[string]string)}
}

func (s *memoryStorage) Find(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, ErrStorageClosed
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memoryStorage) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}
	s.values[key] = value
	return nil
}

func (s *memoryStorage) Remove(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *memoryStorage) EditSet(_ context.Context, key string, edit func(set map[string]struct{})) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	encoded, keep, err := editEncodedSet(s.values[key], edit)
	if err != nil {
		return err
	}
	if !keep {
		delete(s.values, key)
		return nil
	}
	s.values[key] = encoded
	return nil
}

func (s *memoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
