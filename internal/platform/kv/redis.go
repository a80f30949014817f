package kv

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	fieldValue   = "value"
	fieldVersion = "version"
)

// RedisStore implements Store on Redis.
// Each key is a hash holding the value and its version; conditional writes
// use WATCH/MULTI so a concurrent writer aborts the transaction.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a new RedisStore. Keys are stored as "<prefix>:<key>"
// when prefix is non-empty.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

// redisKey returns the Redis key for a store key.
func (r *RedisStore) redisKey(key string) string {
	if r.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

// Get retrieves the value and version stored under key.
func (r *RedisStore) Get(ctx context.Context, key string) (Item, error) {
	fields, err := r.client.HGetAll(ctx, r.redisKey(key)).Result()
	if err != nil {
		return Item{}, err
	}
	if len(fields) == 0 {
		return Item{}, ErrNotFound
	}
	version, err := strconv.ParseInt(fields[fieldVersion], 10, 64)
	if err != nil {
		return Item{}, fmt.Errorf("kv: invalid version for %q: %w", key, err)
	}
	return Item{Value: []byte(fields[fieldValue]), Version: version}, nil
}

// Set writes value and bumps the version atomically.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte) (int64, error) {
	rk := r.redisKey(key)
	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, rk, fieldValue, value)
		incr = p.HIncrBy(ctx, rk, fieldVersion, 1)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// CompareAndSet writes value if the stored version matches.
func (r *RedisStore) CompareAndSet(ctx context.Context, key string, value []byte, version int64) (int64, error) {
	rk := r.redisKey(key)
	next := version + 1

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, rk, fieldVersion).Int64()
		if errors.Is(err, redis.Nil) {
			current = 0
		} else if err != nil {
			return err
		}
		if current != version {
			return ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, rk, fieldValue, value, fieldVersion, next)
			return nil
		})
		return err
	}, rk)

	if errors.Is(err, redis.TxFailedErr) {
		return 0, ErrVersionConflict
	}
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Delete removes key from Redis.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.redisKey(key)).Err()
}
