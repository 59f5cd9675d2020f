package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheService(client, time.Minute), mr
}

func TestCacheService_SetGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, PointsKey(42), 123.5))

	var got float64
	require.NoError(t, svc.Get(ctx, PointsKey(42), &got))
	assert.Equal(t, 123.5, got)
}

func TestCacheService_GetMiss(t *testing.T) {
	svc, _ := newTestService(t)

	var got float64
	err := svc.Get(context.Background(), PointsKey(99), &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCacheService_Delete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, PointsKey(1), 10.0))
	require.NoError(t, svc.Delete(ctx, PointsKey(1)))

	var got float64
	assert.ErrorIs(t, svc.Get(ctx, PointsKey(1), &got), ErrCacheMiss)

	// Deleting an absent key is not an error.
	require.NoError(t, svc.Delete(ctx, PointsKey(1)))
}

func TestCacheService_TTL(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, PointsKey(7), 5.0))
	mr.FastForward(2 * time.Minute)

	var got float64
	assert.ErrorIs(t, svc.Get(ctx, PointsKey(7), &got), ErrCacheMiss)
}

func TestPointsKey(t *testing.T) {
	assert.Equal(t, "points:42", PointsKey(42))
}
