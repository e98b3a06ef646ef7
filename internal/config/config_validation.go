// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// client invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.ApplicationCode == "" {
		return fmt.Errorf("%w: application code is required", ErrInvalidAppConfigs)
	}

	u, err := url.Parse(cfg.Adapter.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base url %q must include scheme and host", ErrInvalidAdapterConfigs, cfg.Adapter.BaseURL)
	}
	if cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidAdapterConfigs)
	}

	switch cfg.Storage.Driver {
	case DriverBolt, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}

	if cfg.Retry.MaxRetries != nil && *cfg.Retry.MaxRetries < 0 {
		return fmt.Errorf("%w: negative max retries", ErrInvalidRetryConfigs)
	}
	if cfg.Retry.BackoffMultiplier < 0 || cfg.Retry.MinBackoff < 0 || cfg.Retry.MaxBackoff < 0 {
		return fmt.Errorf("%w: negative backoff", ErrInvalidRetryConfigs)
	}

	if cfg.Workers.PoolSize < 1 || cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
