package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"jobboard_backend/internal/platform/kv"
)

// Slot holds a single JSON value under one key (stats, sessions).
type Slot[T any] struct {
	store kv.Store
	key   string
	opts  options
}

// NewSlot creates a slot stored under key.
func NewSlot[T any](store kv.Store, key string, opts ...Option) *Slot[T] {
	return &Slot[T]{
		store: store,
		key:   key,
		opts:  buildOptions(opts),
	}
}

// Key returns the storage key of the slot.
func (s *Slot[T]) Key() string {
	return s.key
}

// Load returns the stored value and whether one exists.
func (s *Slot[T]) Load(ctx context.Context) (T, bool, error) {
	v, version, err := s.load(ctx)
	return v, version > 0, err
}

// Store writes v, replacing any previous value.
func (s *Slot[T]) Store(ctx context.Context, v T) error {
	_, err := s.Modify(ctx, func(cur *T, _ bool) error {
		*cur = v
		return nil
	})
	return err
}

// Modify applies fn to the current value (the zero value when absent) and
// stores the result under compare-and-set. An error from fn aborts without
// writing. fn may run more than once.
func (s *Slot[T]) Modify(ctx context.Context, fn func(cur *T, exists bool) error) (T, error) {
	var zero T
	for attempt := 0; attempt <= s.opts.maxRetries; attempt++ {
		cur, version, err := s.load(ctx)
		if err != nil {
			return zero, err
		}

		if err := fn(&cur, version > 0); err != nil {
			return zero, err
		}

		err = compareAndSet(ctx, s.store, s.key, cur, version)
		if err == nil {
			return cur, nil
		}
		if !errors.Is(err, kv.ErrVersionConflict) {
			return zero, err
		}
		conflictsTotal.WithLabelValues(metricLabel(s.key)).Inc()
	}
	return zero, fmt.Errorf("%w: %s", ErrConflict, s.key)
}

// Seed writes v only when the key is absent. It reports whether it wrote.
func (s *Slot[T]) Seed(ctx context.Context, v T) (bool, error) {
	return seed(ctx, s.store, s.key, v)
}

// Clear removes the value.
func (s *Slot[T]) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, s.key)
}

func (s *Slot[T]) load(ctx context.Context) (T, int64, error) {
	var v T
	it, err := s.store.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return v, 0, nil
	}
	if err != nil {
		return v, 0, fmt.Errorf("load %s: %w", s.key, err)
	}
	if err := json.Unmarshal(it.Value, &v); err != nil {
		return v, 0, fmt.Errorf("%w: %s: %w", ErrCorrupt, s.key, err)
	}
	return v, it.Version, nil
}
