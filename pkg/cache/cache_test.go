package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	require.Equal(t, "v", got)

	_, ok = c.Get(ctx, "missing")
	require.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", -time.Second))

	_, ok := c.Get(ctx, "k")
	require.False(t, ok, "expired entries must not be returned")
}

func TestCache_DeleteByPrefix(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "funcionarios:search:", "all", time.Minute))
	require.NoError(t, c.Set(ctx, "funcionarios:search:ana", "ana", time.Minute))
	require.NoError(t, c.Set(ctx, "other", "keep", time.Minute))

	require.NoError(t, c.DeleteByPrefix(ctx, "funcionarios:search:"))

	_, ok := c.Get(ctx, "funcionarios:search:")
	require.False(t, ok)
	_, ok = c.Get(ctx, "funcionarios:search:ana")
	require.False(t, ok)

	got, ok := c.Get(ctx, "other")
	require.True(t, ok)
	require.Equal(t, "keep", got)
}
