package core

import (
	"context"

	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when a key has no value.
// Callers treat it as "no data yet", never as a fault.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the durable medium the records store flushes to.
// Implementations live in storage/kv; an in-memory one is used in tests.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// IsKeyNotFound reports whether err (or its cause) is ErrKeyNotFound.
func IsKeyNotFound(err error) bool {
	return errors.Cause(err) == ErrKeyNotFound
}
