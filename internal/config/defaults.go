package config

import "time"

const (
	DefaultBaseURL              = "https://mobile.infobip.com"
	DefaultRequestTimeout       = 15 * time.Second
	DefaultStorageDriver        = DriverBolt
	DefaultStorageDSN           = "mobile-messaging.db"
	DefaultMaxRetries           = 3
	DefaultBackoffMultiplier    = 2.0
	DefaultMinBackoff           = time.Second
	DefaultMaxBackoff           = 30 * time.Second
	DefaultPoolSize             = 2
	DefaultSyncInterval         = 5 * time.Minute
	DefaultMessagesSyncThrottle = time.Minute
	DefaultPushServiceType      = "Firebase"
)

// Storage drivers.
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// MemoryDSN selects the memory engine regardless of the configured driver.
const MemoryDSN = ":memory:"

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Adapter.BaseURL == "" {
		cfg.Adapter.BaseURL = DefaultBaseURL
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DefaultStorageDriver
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = DefaultStorageDSN
	}
	if cfg.Storage.DSN == MemoryDSN {
		cfg.Storage.Driver = DriverMemory
	}

	if cfg.Retry.MaxRetries == nil {
		maxRetries := DefaultMaxRetries
		cfg.Retry.MaxRetries = &maxRetries
	}
	if cfg.Retry.BackoffMultiplier == 0 {
		cfg.Retry.BackoffMultiplier = DefaultBackoffMultiplier
	}
	if cfg.Retry.MinBackoff == 0 {
		cfg.Retry.MinBackoff = DefaultMinBackoff
	}
	if cfg.Retry.MaxBackoff == 0 {
		cfg.Retry.MaxBackoff = DefaultMaxBackoff
	}

	if cfg.Workers.PoolSize == 0 {
		cfg.Workers.PoolSize = DefaultPoolSize
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Workers.MessagesSyncThrottle == 0 {
		cfg.Workers.MessagesSyncThrottle = DefaultMessagesSyncThrottle
	}

	if cfg.App.PushServiceType == "" {
		cfg.App.PushServiceType = DefaultPushServiceType
	}
	if cfg.App.ReportSystemInfo == nil {
		cfg.App.ReportSystemInfo = boolPtr(true)
	}
	if cfg.App.SaveUserData == nil {
		cfg.App.SaveUserData = boolPtr(true)
	}
}

func boolPtr(v bool) *bool {
	return &v
}
