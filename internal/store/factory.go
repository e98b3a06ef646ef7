package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mobile-messaging/internal/config"
	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
)

// NewStorage opens the engine selected by cfg.
func NewStorage(ctx context.Context, cfg config.Storage, log *logger.Logger) (Storage, error) {
	log.Debug().Str("driver", cfg.Driver).Str("dsn", cfg.DSN).Msg("opening storage")

	if cfg.DSN == config.MemoryDSN {
		return NewMemoryStorage(), nil
	}

	switch cfg.Driver {
	case config.DriverBolt, "":
		return NewBoltStorage(cfg.DSN)
	case config.DriverSQLite:
		return NewSQLiteStorage(ctx, cfg.DSN, log)
	case config.DriverMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
