// Package kv provides the persistent key/value blob store backing all
// application state. Values are opaque byte snapshots; callers own the
// encoding. Several backends are available (in-memory, file-per-key,
// SQLite, PostgreSQL) behind a single Store interface so services never
// depend on a concrete engine.
package kv

import (
	"context"
	"errors"
)

// ErrQuotaExceeded reports that a write was rejected because the backend is
// out of capacity. Backends wrap their engine-specific condition with this
// sentinel so callers can match it with errors.Is.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is a minimal blob store keyed by string.
type Store interface {
	// Get returns the value stored under key, or common.ErrorNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	// Returns an error matching ErrQuotaExceeded when capacity is exhausted.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Closer is implemented by backends holding external resources.
type Closer interface {
	Close() error
}
