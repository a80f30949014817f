// Package redis creates the shared go-redis client.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Options holds the connection settings.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings Redis. The client is closed when the
// ping fails.
func NewRedisClient(ctx context.Context, o Options, l *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     o.Addr,
		Password: o.Password,
		DB:       o.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		l.Error("redis connection failed", zap.String("address", o.Addr), zap.Error(err))
		_ = rdb.Close()
		return nil, err
	}

	l.Info("redis connection successful", zap.String("address", o.Addr))
	return rdb, nil
}
