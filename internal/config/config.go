// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// mobile-messaging client. It aggregates all sub-configurations and is
// populated by merging values from environment variables (optionally loaded
// from a .env file), command-line flags and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the application code that
	// authorizes every backend call and the reporting switches.
	App App `envPrefix:"APP_"`

	// Adapter holds the backend endpoint and outbound request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage selects and configures the durable key/value engine that keeps
	// unreported state across restarts.
	Storage Storage `envPrefix:"STORAGE_"`

	// Retry holds the parameters of the default retry policy.
	Retry Retry `envPrefix:"RETRY_"`

	// Workers holds settings for the background executor and sync job.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_"`

	// FilePath is the optional path to a JSON (.json) or YAML (.yaml, .yml)
	// configuration file. Populated via the CONFIG environment variable or
	// the -c / -config flag.
	FilePath string `env:"CONFIG"`
}

// App holds application-level configuration.
type App struct {
	// ApplicationCode identifies the application on the backend.
	// Env: APP_APPLICATION_CODE
	ApplicationCode string `env:"APPLICATION_CODE"`

	// PushServiceType names the push transport tokens come from
	// (e.g. "Firebase").
	// Env: APP_PUSH_SERVICE_TYPE
	PushServiceType string `env:"PUSH_SERVICE_TYPE"`

	// ReportSystemInfo enables reporting of device details (OS version,
	// manufacturer, model, language, device name).
	// Env: APP_REPORT_SYSTEM_INFO
	ReportSystemInfo *bool `env:"REPORT_SYSTEM_INFO"`

	// SaveUserData keeps unreported user data on disk so that it survives
	// restarts and is retried. When disabled, user data is sent once.
	// Env: APP_SAVE_USER_DATA
	SaveUserData *bool `env:"SAVE_USER_DATA"`

	// Version is the SDK version reported with system data.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// CloudToken is the push transport token handed to the client at
	// startup. Empty keeps the stored one.
	// Env: APP_CLOUD_TOKEN
	CloudToken string `env:"CLOUD_TOKEN"`
}

// Adapter holds configuration of the backend HTTP adapter.
type Adapter struct {
	// BaseURL is the default backend base URL. The backend may redirect the
	// client to another base URL at runtime; any error response resets it
	// back to this value.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the maximum duration of a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage selects the durable key/value engine.
type Storage struct {
	// Driver is one of "bolt", "sqlite" or "memory".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the engine specific location: a file path for bolt, a
	// go-sqlite3 DSN for sqlite. ":memory:" selects the memory engine
	// regardless of Driver.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`
}

// Retry holds parameters of the default retry policy.
type Retry struct {
	// MaxRetries is the number of retries after the first attempt.
	// Env: RETRY_MAX_RETRIES
	MaxRetries *int `env:"MAX_RETRIES"`

	// BackoffMultiplier is the factor applied to the delay after each retry.
	// Env: RETRY_BACKOFF_MULTIPLIER
	BackoffMultiplier float64 `env:"BACKOFF_MULTIPLIER"`

	// MinBackoff is the delay before the first retry.
	// Env: RETRY_MIN_BACKOFF
	MinBackoff time.Duration `env:"MIN_BACKOFF"`

	// MaxBackoff caps the delay between retries.
	// Env: RETRY_MAX_BACKOFF
	MaxBackoff time.Duration `env:"MAX_BACKOFF"`
}

// Workers holds configuration for background processing.
type Workers struct {
	// PoolSize is the number of executor goroutines.
	// Env: WORKERS_POOL_SIZE
	PoolSize int `env:"POOL_SIZE"`

	// SyncInterval defines how often the periodic sync job runs.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// MessagesSyncThrottle is the minimum interval between two message syncs
	// that carry no pending delivery reports.
	// Env: WORKERS_MESSAGES_SYNC_THROTTLE
	MessagesSyncThrottle time.Duration `env:"MESSAGES_SYNC_THROTTLE"`
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File is the log file path; empty means a "logs" file next to the
	// executable.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// GetStructuredConfig loads, merges, and validates the client configuration
// from all available sources in the following priority order (later sources
// override non-zero fields of earlier ones):
//  1. Environment variables (a .env file in the working directory is loaded
//     first when present)
//  2. Command-line flags
//  3. Configuration file (path resolved from sources 1 and 2)
//
// Defaults are applied to every field left unset.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(".env").
		withEnv().
		withFlags(args).
		withFile().
		build()
}
