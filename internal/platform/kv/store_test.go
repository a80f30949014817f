package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to ":memory:" is a separate database
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// backends returns one constructor per Store implementation.
func backends() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
		"redis": func(t *testing.T) Store {
			client, _ := setupTestRedis(t)
			return NewRedisStore(client, "test")
		},
		"sql": func(t *testing.T) Store {
			s := NewSQLStore(setupTestDB(t))
			require.NoError(t, s.Migrate(context.Background()))
			return s
		},
		"cached-memory": func(t *testing.T) Store {
			client, _ := setupTestRedis(t)
			return NewCachingStore(client, 0, NewMemoryStore(), "")
		},
		"cached-sql": func(t *testing.T) Store {
			client, _ := setupTestRedis(t)
			s := NewSQLStore(setupTestDB(t))
			require.NoError(t, s.Migrate(context.Background()))
			return NewCachingStore(client, 0, s, "")
		},
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)

			_, err := s.Get(context.Background(), "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_CompareAndSet(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)

			// create requires absence
			v, err := s.CompareAndSet(ctx, "jobs", []byte(`[1]`), 0)
			require.NoError(t, err)
			assert.Equal(t, int64(1), v)

			_, err = s.CompareAndSet(ctx, "jobs", []byte(`[2]`), 0)
			assert.ErrorIs(t, err, ErrVersionConflict)

			it, err := s.Get(ctx, "jobs")
			require.NoError(t, err)
			assert.Equal(t, `[1]`, string(it.Value))
			assert.Equal(t, int64(1), it.Version)

			v, err = s.CompareAndSet(ctx, "jobs", []byte(`[1,2]`), 1)
			require.NoError(t, err)
			assert.Equal(t, int64(2), v)

			// stale writer loses
			_, err = s.CompareAndSet(ctx, "jobs", []byte(`[9]`), 1)
			assert.ErrorIs(t, err, ErrVersionConflict)

			it, err = s.Get(ctx, "jobs")
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(it.Value))
			assert.Equal(t, int64(2), it.Version)
		})
	}
}

func TestStore_SetBumpsVersion(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)

			v, err := s.Set(ctx, "stats", []byte(`{"a":1}`))
			require.NoError(t, err)
			assert.Equal(t, int64(1), v)

			v, err = s.Set(ctx, "stats", []byte(`{"a":2}`))
			require.NoError(t, err)
			assert.Equal(t, int64(2), v)

			it, err := s.Get(ctx, "stats")
			require.NoError(t, err)
			assert.Equal(t, `{"a":2}`, string(it.Value))
		})
	}
}

func TestStore_RawValuesRoundTrip(t *testing.T) {
	values := []struct {
		name  string
		value []byte
	}{
		{"number one", []byte(`1`)},
		{"number zero", []byte(`0`)},
		{"json string", []byte(`"x"`)},
		{"not json", []byte(`plain text {`)},
		{"binary", []byte{0x00, 0xff, 0x10, '\n'}},
		{"empty", []byte{}},
	}

	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)

			for i, tt := range values {
				key := "raw-" + tt.name
				v, err := s.CompareAndSet(ctx, key, tt.value, 0)
				require.NoError(t, err, tt.name)

				it, err := s.Get(ctx, key)
				require.NoError(t, err, tt.name)
				assert.Equal(t, string(tt.value), string(it.Value), tt.name)
				assert.Equal(t, v, it.Version, tt.name)

				// Set goes through the update path on an existing row.
				next := values[(i+1)%len(values)].value
				_, err = s.Set(ctx, key, next)
				require.NoError(t, err, tt.name)
				it, err = s.Get(ctx, key)
				require.NoError(t, err, tt.name)
				assert.Equal(t, string(next), string(it.Value), tt.name)
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)

			_, err := s.CompareAndSet(ctx, "users", []byte(`[]`), 0)
			require.NoError(t, err)

			require.NoError(t, s.Delete(ctx, "users"))
			_, err = s.Get(ctx, "users")
			assert.ErrorIs(t, err, ErrNotFound)

			// deleting again is fine
			assert.NoError(t, s.Delete(ctx, "users"))
		})
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	buf := []byte(`[1]`)
	_, err := s.CompareAndSet(ctx, "k", buf, 0)
	require.NoError(t, err)
	buf[1] = '9'

	it, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(it.Value))
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore().Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	client, mr := setupTestRedis(t)
	s := NewRedisStore(client, "cft")

	_, err := s.CompareAndSet(context.Background(), "jobs", []byte(`[]`), 0)
	require.NoError(t, err)

	assert.True(t, mr.Exists("cft:jobs"))
	assert.Equal(t, "1", mr.HGet("cft:jobs", "version"))
}
