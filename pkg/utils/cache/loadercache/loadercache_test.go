package loadercache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetManyBatchesMisses(t *testing.T) {
	calls := 0
	c := New(WithBatchLoader(
		func(keys []string) (map[string]*int, error) {
			calls++
			ret := make(map[string]*int, len(keys))
			for i, k := range keys {
				v := i + 1
				ret[k] = &v
			}
			return ret, nil
		}))

	ctx := context.Background()
	got, err := c.GetMany(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, calls)

	// second call is served from the cache, only "c" hits the loader
	got, err = c.GetMany(ctx, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 2, calls)

	got, err = c.GetMany(ctx, []string{"a", "c"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 2, calls)
}

func TestGetManyUnresolvedKeysAbsent(t *testing.T) {
	c := New(WithBatchLoader(
		func(keys []string) (map[string]*int, error) {
			return map[string]*int{}, nil
		}))

	got, err := c.GetMany(context.Background(), []string{"missing"})
	require.NoError(t, err)
	assert.Len(t, got, 0)
}

func TestGetFallsBackToSingleLoader(t *testing.T) {
	c := New(WithLoader(
		func(key string) (*int, error) {
			v := len(key)
			return &v, nil
		}))

	got, err := c.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, 3, *got)
}
