// Package cache persists enrichment results per company id and upgrades
// entries written in the legacy flat-signal shape when they are read.
package cache

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when a key has no value.
var ErrNotFound = errors.New("cache: key not found")

// Store is a minimal key-value store. Writes to the same key are
// last-write-wins; implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
