// Package recordstore implements typed collections and single-value slots on
// top of a versioned kv.Store. A collection is serialized as one JSON array
// under one key, and every mutation is a compare-and-set read-modify-write of
// that whole array.
package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"jobboard_backend/internal/platform/kv"
)

var (
	// ErrConflict is returned when a write kept losing compare-and-set races
	// after all retries.
	ErrConflict = errors.New("recordstore: write conflict")

	// ErrCorrupt is returned when stored content cannot be decoded.
	// It is an integrity failure and is never treated as an empty collection.
	ErrCorrupt = errors.New("recordstore: stored data is corrupt")
)

// DefaultMaxRetries is the number of re-reads after a version conflict.
const DefaultMaxRetries = 3

type options struct {
	maxRetries int
}

// Option configures a Collection or Slot.
type Option func(*options)

// WithMaxRetries sets how many times a conflicting write is retried.
// Zero means a single attempt.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxRetries = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{maxRetries: DefaultMaxRetries}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Collection is a typed, id-addressed sequence of records stored under one key.
type Collection[T any] struct {
	store kv.Store
	key   string
	idOf  func(T) string
	opts  options
}

// NewCollection creates a collection stored under key. idOf extracts the
// record identifier used by Get, Update and Delete.
func NewCollection[T any](store kv.Store, key string, idOf func(T) string, opts ...Option) *Collection[T] {
	return &Collection[T]{
		store: store,
		key:   key,
		idOf:  idOf,
		opts:  buildOptions(opts),
	}
}

// Key returns the storage key of the collection.
func (c *Collection[T]) Key() string {
	return c.key
}

// All returns every record. An absent key yields an empty slice.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	items, _, err := c.load(ctx)
	return items, err
}

// Get returns the first record whose id matches.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	return c.Find(ctx, func(v T) bool { return c.idOf(v) == id })
}

// Find returns the first record matching pred.
func (c *Collection[T]) Find(ctx context.Context, pred func(T) bool) (T, bool, error) {
	var zero T
	items, _, err := c.load(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, v := range items {
		if pred(v) {
			return v, true, nil
		}
	}
	return zero, false, nil
}

// Filter returns every record matching pred, in stored order.
func (c *Collection[T]) Filter(ctx context.Context, pred func(T) bool) ([]T, error) {
	items, _, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, v := range items {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Create appends item and returns it. No uniqueness check is made.
func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	_, err := c.Modify(ctx, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// Update applies mutate to a copy of the record with the given id and
// stores the result. Fields the mutator leaves alone are preserved.
// When no record matches, nothing is written and ok is false.
// mutate may run more than once if the write has to be retried.
func (c *Collection[T]) Update(ctx context.Context, id string, mutate func(*T)) (T, bool, error) {
	var (
		updated T
		found   bool
	)
	err := c.modify(ctx, func(items []T) ([]T, bool, error) {
		found = false
		for i := range items {
			if c.idOf(items[i]) != id {
				continue
			}
			next := items[i]
			mutate(&next)
			items[i] = next
			updated, found = next, true
			return items, true, nil
		}
		return items, false, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return updated, found, nil
}

// Delete removes the records with the given id and reports whether any was
// removed. Nothing is written when none matched.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := c.modify(ctx, func(items []T) ([]T, bool, error) {
		out := items[:0:0]
		for _, v := range items {
			if c.idOf(v) != id {
				out = append(out, v)
			}
		}
		removed = len(out) != len(items)
		return out, removed, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// Modify runs fn over the current records and stores what it returns,
// retrying on version conflicts. An error from fn aborts without writing.
func (c *Collection[T]) Modify(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	var result []T
	err := c.modify(ctx, func(items []T) ([]T, bool, error) {
		next, err := fn(items)
		if err != nil {
			return nil, false, err
		}
		result = next
		return next, true, nil
	})
	return result, err
}

// Seed writes items only when the key is absent. It reports whether it wrote.
func (c *Collection[T]) Seed(ctx context.Context, items []T) (bool, error) {
	if items == nil {
		items = []T{}
	}
	return seed(ctx, c.store, c.key, items)
}

// Clear removes the whole collection.
func (c *Collection[T]) Clear(ctx context.Context) error {
	return c.store.Delete(ctx, c.key)
}

// load reads and decodes the collection together with its version.
func (c *Collection[T]) load(ctx context.Context) ([]T, int64, error) {
	it, err := c.store.Get(ctx, c.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []T{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(it.Value, &items); err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %w", ErrCorrupt, c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, it.Version, nil
}

// modify is the compare-and-set loop shared by all mutations.
// fn reports whether anything changed; when it did not, nothing is written.
func (c *Collection[T]) modify(ctx context.Context, fn func([]T) ([]T, bool, error)) error {
	for attempt := 0; attempt <= c.opts.maxRetries; attempt++ {
		items, version, err := c.load(ctx)
		if err != nil {
			return err
		}

		next, changed, err := fn(items)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}

		err = compareAndSet(ctx, c.store, c.key, next, version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, kv.ErrVersionConflict) {
			return err
		}
		conflictsTotal.WithLabelValues(metricLabel(c.key)).Inc()
	}
	return fmt.Errorf("%w: %s", ErrConflict, c.key)
}

func compareAndSet(ctx context.Context, store kv.Store, key string, v any, version int64) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if _, err := store.CompareAndSet(ctx, key, b, version); err != nil {
		return err
	}
	writesTotal.WithLabelValues(metricLabel(key)).Inc()
	return nil
}

func seed(ctx context.Context, store kv.Store, key string, v any) (bool, error) {
	err := compareAndSet(ctx, store, key, v, 0)
	if errors.Is(err, kv.ErrVersionConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
