// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// Preferences wraps a Storage with typed accessors. Missing keys read as
// zero values.
type Preferences struct {
	storage Storage
}

func NewPreferences(storage Storage) *Preferences {
	return &Preferences{storage: storage}
}

// Storage returns the underlying engine.
func (p *Preferences) Storage() Storage {
	return p.storage
}

func (p *Preferences) Contains(ctx context.Context, key string) (bool, error) {
	_, ok, err := p.storage.Find(ctx, key)
	return ok, err
}

func (p *Preferences) String(ctx context.Context, key string) (string, error) {
	v, _, err := p.storage.Find(ctx, key)
	return v, err
}

func (p *Preferences) SaveString(ctx context.Context, key, value string) error {
	return p.storage.Save(ctx, key, value)
}

func (p *Preferences) Bool(ctx context.Context, key string) (bool, error) {
	v, err := p.OptionalBool(ctx, key)
	if err != nil || v == nil {
		return false, err
	}
	return *v, nil
}

// OptionalBool returns nil when key is absent.
func (p *Preferences) OptionalBool(ctx context.Context, key string) (*bool, error) {
	raw, ok, err := p.storage.Find(ctx, key)
	if err != nil || !ok {
		return nil, err
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}
	return &v, nil
}

func (p *Preferences) SaveBool(ctx context.Context, key string, value bool) error {
	return p.storage.Save(ctx, key, strconv.FormatBool(value))
}

// Int64 returns ok=false when key is absent.
func (p *Preferences) Int64(ctx context.Context, key string) (int64, bool, error) {
	raw, ok, err := p.storage.Find(ctx, key)
	if err != nil || !ok {
		return 0, false, err
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parsing %s: %w", key, err)
	}
	return v, true, nil
}

func (p *Preferences) SaveInt64(ctx context.Context, key string, value int64) error {
	return p.storage.Save(ctx, key, strconv.FormatInt(value, 10))
}

// Float64 returns ok=false when key is absent.
func (p *Preferences) Float64(ctx context.Context, key string) (float64, bool, error) {
	raw, ok, err := p.storage.Find(ctx, key)
	if err != nil || !ok {
		return 0, false, err
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parsing %s: %w", key, err)
	}
	return v, true, nil
}

func (p *Preferences) SaveFloat64(ctx context.Context, key string, value float64) error {
	return p.storage.Save(ctx, key, strconv.FormatFloat(value, 'g', -1, 64))
}

// JSON decodes the value under key into dst. It returns false when the key
// is absent.
func (p *Preferences) JSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := p.storage.Find(ctx, key)
	if err != nil || !ok {
		return false, err
	}

	if err = json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func (p *Preferences) SaveJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return p.storage.Save(ctx, key, string(data))
}

// Set returns the members of the set under key in sorted order.
func (p *Preferences) Set(ctx context.Context, key string) ([]string, error) {
	raw, _, err := p.storage.Find(ctx, key)
	if err != nil {
		return nil, err
	}

	set, err := decodeSet(raw)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	slices.Sort(values)

	return values, nil
}

func (p *Preferences) AddToSet(ctx context.Context, key string, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	return p.storage.EditSet(ctx, key, func(set map[string]struct{}) {
		for _, v := range values {
			set[v] = struct{}{}
		}
	})
}

func (p *Preferences) RemoveFromSet(ctx context.Context, key string, values ...string) error {
	if len(values) == 0 {
		return nil
	}
	return p.storage.EditSet(ctx, key, func(set map[string]struct{}) {
		for _, v := range values {
			delete(set, v)
		}
	})
}

// EditSet exposes the atomic set edit of the underlying engine.
func (p *Preferences) EditSet(ctx context.Context, key string, edit func(set map[string]struct{})) error {
	return p.storage.EditSet(ctx, key, edit)
}

func (p *Preferences) Remove(ctx context.Context, keys ...string) error {
	return p.storage.Remove(ctx, keys...)
}
