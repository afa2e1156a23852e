// Package db provides the durable key-value persistence used by the
// ticket store and the audit log.
package db

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KV is a local durable key-value store. Get returns ErrKeyNotFound for
// absent keys; Set overwrites the whole value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
