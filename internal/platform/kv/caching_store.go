package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CachingStore decorates a Store with a Redis read cache.
// Reads go through the cache; every write or delete bumps a per-key
// generation counter and drops the cached entry. A miss only fills the cache
// if the generation is unchanged since before the inner read, so a load that
// raced a write never publishes the older version.
type CachingStore struct {
	inner     Store
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	sf        singleflight.Group
}

var _ Store = (*CachingStore)(nil)

// errFillRaced aborts a cache fill that lost to a concurrent write.
var errFillRaced = errors.New("kv: cache fill raced a write")

// cachedItem is the JSON form of an Item in Redis.
type cachedItem struct {
	Value   []byte `json:"v"`
	Version int64  `json:"ver"`
}

// NewCachingStore decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "kvcache".
// A nil rdb disables caching entirely.
func NewCachingStore(rdb *redis.Client, ttl time.Duration, inner Store, namespace string) *CachingStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "kvcache"
	}
	return &CachingStore{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Get returns the cached item when present, otherwise loads it from inner.
// Concurrent misses for the same key and generation share a single load.
func (c *CachingStore) Get(ctx context.Context, key string) (Item, error) {
	if c.rdb == nil {
		return c.inner.Get(ctx, key)
	}

	ck := c.cacheKey(key)

	if b, err := c.rdb.Get(ctx, ck).Bytes(); err == nil && len(b) > 0 {
		var ci cachedItem
		if err := json.Unmarshal(b, &ci); err == nil {
			return Item{Value: ci.Value, Version: ci.Version}, nil
		}
		// Drop an undecodable cache entry and fall through to inner.
		_ = c.rdb.Del(ctx, ck).Err()
	}

	// Readers only share a load that started after the last write they can see.
	gen, genErr := c.generation(ctx, c.rdb, key)
	v, err, _ := c.sf.Do(fmt.Sprintf("%s@%d", ck, gen), func() (any, error) {
		it, err := c.inner.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if genErr == nil {
			c.fill(ctx, key, gen, it)
		}
		return it, nil
	})
	if err != nil {
		return Item{}, err
	}
	return v.(Item), nil
}

// Set writes through to the inner store and drops the cached copy.
func (c *CachingStore) Set(ctx context.Context, key string, value []byte) (int64, error) {
	next, err := c.inner.Set(ctx, key, value)
	c.invalidate(ctx, key)
	return next, err
}

// CompareAndSet forwards to inner and invalidates the cache entry on success
// and on conflict, so the next read sees the winning version.
func (c *CachingStore) CompareAndSet(ctx context.Context, key string, value []byte, version int64) (int64, error) {
	next, err := c.inner.CompareAndSet(ctx, key, value, version)
	c.invalidate(ctx, key)
	return next, err
}

// Delete removes key from the inner store and drops the cached copy.
func (c *CachingStore) Delete(ctx context.Context, key string) error {
	err := c.inner.Delete(ctx, key)
	c.invalidate(ctx, key)
	return err
}

// fill caches it unless a write bumped the generation after gen was read.
// Best effort.
func (c *CachingStore) fill(ctx context.Context, key string, gen int64, it Item) {
	b, err := json.Marshal(cachedItem{Value: it.Value, Version: it.Version})
	if err != nil {
		return
	}
	gk := c.genKey(key)
	_ = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := c.generation(ctx, tx, key)
		if err != nil {
			return err
		}
		if cur != gen {
			return errFillRaced
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, c.cacheKey(key), b, c.ttl)
			return nil
		})
		return err
	}, gk)
}

// getter is the part of *redis.Client and *redis.Tx used to read counters.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// generation reads the write counter of key; an absent counter is 0.
func (c *CachingStore) generation(ctx context.Context, r getter, key string) (int64, error) {
	n, err := r.Get(ctx, c.genKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// invalidate bumps the generation and removes the cached entry for key.
// Best effort.
func (c *CachingStore) invalidate(ctx context.Context, key string) {
	if c.rdb == nil {
		return
	}
	_, _ = c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, c.genKey(key))
		p.Del(ctx, c.cacheKey(key))
		return nil
	})
}

// cacheKey generates the Redis key for a cached store key.
func (c *CachingStore) cacheKey(key string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(key))
}

// genKey is the Redis key of the write counter for key.
func (c *CachingStore) genKey(key string) string {
	return c.cacheKey(key) + ":gen"
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
