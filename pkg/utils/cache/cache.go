package cache

import (
	"context"
	"errors"
)

// based on github.com/kittpat1413/go-common/framework/cache/cache.go

var ErrCacheMiss = errors.New("cache miss")

type Cache[K comparable, V any] interface {
	Get(ctx context.Context, key K) (*V, error)
	// GetMany resolves all keys at once. Missing entries are loaded in a
	// single batch; keys the loader cannot resolve are absent from the result.
	GetMany(ctx context.Context, keys []K) (map[K]*V, error)
	Invalidate(ctx context.Context, key K)
}
