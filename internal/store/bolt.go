// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	boltDirPerm     = fs.FileMode(0o700)
	boltFilePerm    = fs.FileMode(0o600)
	boltOpenTimeout = 5 * time.Second
)

var preferencesBucket = []byte("preferences")

// boltStorage keeps every key in a single bbolt bucket. bbolt serializes
// writers, so EditSet is atomic without extra locking.
type boltStorage struct {
	db *bolt.DB
}

// NewBoltStorage opens the bbolt database at path, creating the file and
// its directory if they do not exist.
func NewBoltStorage(path string) (Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), boltDirPerm); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	db, err := bolt.Open(path, boltFilePerm, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(preferencesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing bolt db: %w", err)
	}

	return &boltStorage{db: db}, nil
}

func (s *boltStorage) Find(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(preferencesBucket).Get([]byte(key))
		if data == nil {
			return nil
		}
		value, ok = string(data), true
		return nil
	})

	return value, ok, err
}

func (s *boltStorage) Save(_ context.Context, key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(preferencesBucket).Put([]byte(key), []byte(value))
	})
}

func (s *boltStorage) Remove(_ context.Context, keys ...string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(preferencesBucket)
		for _, key := range keys {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *boltStorage) EditSet(_ context.Context, key string, edit func(set map[string]struct{})) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(preferencesBucket)

		encoded, keep, err := editEncodedSet(string(b.Get([]byte(key))), edit)
		if err != nil {
			return err
		}
		if !keep {
			return b.Delete([]byte(key))
		}
		return b.Put([]byte(key), []byte(encoded))
	})
}

func (s *boltStorage) Close() error {
	return s.db.Close()
}
