package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// KV is the persistence medium behind the session store. Values are opaque
// JSON documents; Get returns ErrNotFound for missing keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
