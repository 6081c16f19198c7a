// Package local is the on-device key/value store that holds settings and,
// when Redis is not configured, character documents.
package local

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_store.go -package=mocklocal -source=store.go

// Store keeps opaque byte blobs under string keys. Get of a missing key
// returns a not found error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
