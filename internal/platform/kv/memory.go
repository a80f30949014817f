package kv

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used for tests and ephemeral runs.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]Item
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Item)}
}

// Get returns the entry for key or ErrNotFound.
func (m *MemoryStore) Get(ctx context.Context, key string) (Item, error) {
	if err := ctx.Err(); err != nil {
		return Item{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[key]
	if !ok {
		return Item{}, ErrNotFound
	}
	return Item{Value: clone(it.Value), Version: it.Version}, nil
}

// Set writes value unconditionally and returns the new version.
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.items[key].Version + 1
	m.items[key] = Item{Value: clone(value), Version: next}
	return next, nil
}

// CompareAndSet writes value only if the stored version equals version.
func (m *MemoryStore) CompareAndSet(ctx context.Context, key string, value []byte, version int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.items[key].Version != version {
		return 0, ErrVersionConflict
	}
	next := version + 1
	m.items[key] = Item{Value: clone(value), Version: next}
	return next, nil
}

// Delete removes key. Missing keys are not an error.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
