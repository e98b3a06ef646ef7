package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// parseFlags parses the client configuration flags from args (without the
// program name).
//
// Flags:
//
//	-app-code application code
//	-push-service-type push transport name
//	-cloud-token push transport token
//	-base-url backend base URL
//	-request-timeout outbound request timeout (e.g. "15s")
//	-storage-driver bolt | sqlite | memory
//	-d storage DSN
//	-max-retries number of retries after the first attempt
//	-backoff-multiplier retry backoff multiplier
//	-min-backoff delay before the first retry
//	-max-backoff delay cap
//	-pool-size executor size
//	-sync-interval periodic sync interval
//	-log-level zerolog level
//	-log-file log file path
//	-c/-config configuration file path (.json, .yaml, .yml)
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("mobile-messaging", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		appCode, pushServiceType    string
		cloudToken                  string
		baseURL                     string
		requestTimeout              time.Duration
		storageDriver, storageDSN   string
		maxRetries                  int
		backoffMultiplier           float64
		minBackoff, maxBackoff      time.Duration
		poolSize                    int
		syncInterval                time.Duration
		logLevel, logFile, filePath string
	)

	fs.StringVar(&appCode, "app-code", "", "Application code")
	fs.StringVar(&pushServiceType, "push-service-type", "", "Push service type")
	fs.StringVar(&cloudToken, "cloud-token", "", "Push service cloud token")
	fs.StringVar(&baseURL, "base-url", "", "Backend base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.StringVar(&storageDriver, "storage-driver", "", "Storage driver: bolt, sqlite or memory")
	fs.StringVar(&storageDSN, "d", "", "Storage DSN")
	fs.IntVar(&maxRetries, "max-retries", -1, "Retries after the first attempt")
	fs.Float64Var(&backoffMultiplier, "backoff-multiplier", 0, "Retry backoff multiplier")
	fs.DurationVar(&minBackoff, "min-backoff", 0, "Delay before the first retry")
	fs.DurationVar(&maxBackoff, "max-backoff", 0, "Maximum delay between retries")
	fs.IntVar(&poolSize, "pool-size", 0, "Executor pool size")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&filePath, "c", "", "Config file path")
	fs.StringVar(&filePath, "config", "", "Config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			ApplicationCode: appCode,
			PushServiceType: pushServiceType,
			CloudToken:      cloudToken,
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			Driver: storageDriver,
			DSN:    storageDSN,
		},
		Retry: Retry{
			BackoffMultiplier: backoffMultiplier,
			MinBackoff:        minBackoff,
			MaxBackoff:        maxBackoff,
		},
		Workers: Workers{
			PoolSize:     poolSize,
			SyncInterval: syncInterval,
		},
		Log: Log{
			Level: logLevel,
			File:  logFile,
		},
		FilePath: filePath,
	}
	if maxRetries >= 0 {
		cfg.Retry.MaxRetries = &maxRetries
	}

	return cfg, nil
}
