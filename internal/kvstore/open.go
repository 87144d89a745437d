package kvstore

import (
	"context"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/redis"
)

// Open builds the backend selected by cfg.StorageDriver. A backend that
// cannot be opened degrades to NopBackend so the dashboard keeps working
// without persistence. The returned func releases backend resources.
func Open(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (Backend, func() error) {
	noClose := func() error { return nil }

	switch cfg.StorageDriver {
	case "redis":
		client := redis.NewClient(cfg.RedisAddr)
		if err := redis.Ping(ctx, client); err != nil {
			// The backend is kept; reads and writes fail softly until redis comes up.
			logger.Warnw("Redis not reachable, preferences will not persist until it is", "addr", cfg.RedisAddr, "error", err)
		}
		return NewRedisBackend(client), client.Close
	case "sqlite":
		backend, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			logger.Warnw("SQLite unavailable, preferences disabled", "path", cfg.SQLitePath, "error", err)
			return NopBackend{}, noClose
		}
		return backend, backend.Close
	case "memory":
		return NewMemoryBackend(), noClose
	default:
		logger.Infow("Preference storage disabled", "driver", cfg.StorageDriver)
		return NopBackend{}, noClose
	}
}
