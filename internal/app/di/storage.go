// Package di wires the application components from configuration.
package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jobboard_backend/internal/platform/config"
	"jobboard_backend/internal/platform/db"
	"jobboard_backend/internal/platform/kv"
	"jobboard_backend/internal/platform/logger"
	infraredis "jobboard_backend/internal/platform/redis"
)

// ErrUnknownBackend is returned for a storage.backend other than memory, redis or sql.
var ErrUnknownBackend = errors.New("di: unknown storage backend")

// Backend is the opened key-value store together with what must be released
// on shutdown.
type Backend struct {
	Store kv.Store
	Redis *redis.Client
	close []func() error
}

// Close releases connections in reverse order of opening.
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.close) - 1; i >= 0; i-- {
		errs = append(errs, b.close[i]())
	}
	return errors.Join(errs...)
}

// OpenBackend selects the store from cfg.Storage. Redis is connected when it
// is the backend or when caching is enabled; a cache that cannot reach Redis
// is skipped with a warning.
func OpenBackend(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Backend, error) {
	l = logger.OrNop(l)
	b := &Backend{}

	needRedis := cfg.Storage.Backend == "redis" || cfg.Storage.Cache.Enable
	if needRedis {
		rdb, err := infraredis.NewRedisClient(ctx, infraredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, l)
		switch {
		case err == nil:
			b.Redis = rdb
			b.close = append(b.close, rdb.Close)
		case cfg.Storage.Backend == "redis":
			return nil, fmt.Errorf("redis backend: %w", err)
		default:
			l.Warn("redis unavailable, running without cache", zap.Error(err))
		}
	}

	switch cfg.Storage.Backend {
	case "memory", "":
		b.Store = kv.NewMemoryStore()
	case "redis":
		b.Store = kv.NewRedisStore(b.Redis, "")
	case "sql":
		gdb, err := db.Open(db.Opts{
			Driver:             cfg.DB.Driver,
			DSN:                cfg.DB.DSN,
			MaxOpenConns:       cfg.DB.MaxOpenConns,
			MaxIdleConns:       cfg.DB.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
			ConnectTimeout:     time.Duration(cfg.DB.ConnectTimeoutSec) * time.Second,
			LogLevel:           cfg.DB.LogLevel,
		}, l)
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("sql backend: %w", err)
		}
		if sqlDB, err := gdb.DB(); err == nil {
			b.close = append(b.close, sqlDB.Close)
		}
		s := kv.NewSQLStore(gdb)
		if err := s.Migrate(ctx); err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("migrate kv table: %w", err)
		}
		b.Store = s
	default:
		_ = b.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Storage.Backend)
	}

	// Caching a Redis backend in the same Redis buys nothing.
	if cfg.Storage.Cache.Enable && b.Redis != nil && cfg.Storage.Backend != "redis" {
		b.Store = kv.NewCachingStore(b.Redis, cfg.CacheTTL(), b.Store, cfg.Storage.Namespace+"cache")
		l.Info("kv cache enabled", zap.Duration("ttl", cfg.CacheTTL()))
	}

	l.Info("storage backend ready", zap.String("backend", cfg.Storage.Backend))
	return b, nil
}
