// Package kv provides versioned key-value backends used as the persistence
// medium for serialized record collections.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key is absent.
	ErrNotFound = errors.New("kv: key not found")

	// ErrVersionConflict is returned by CompareAndSet when the stored version
	// differs from the expected one.
	ErrVersionConflict = errors.New("kv: version conflict")
)

// Item is a stored value together with its version.
// Versions start at 1 and grow by one on every successful write.
type Item struct {
	Value   []byte
	Version int64
}

// Store is the storage backend abstraction.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the current item for key, or ErrNotFound.
	Get(ctx context.Context, key string) (Item, error)

	// Set writes value unconditionally and returns the new version.
	Set(ctx context.Context, key string, value []byte) (int64, error)

	// CompareAndSet writes value only if the stored version equals version.
	// A version of 0 means the key must be absent.
	// It returns the new version, or ErrVersionConflict on mismatch.
	CompareAndSet(ctx context.Context, key string, value []byte, version int64) (int64, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
