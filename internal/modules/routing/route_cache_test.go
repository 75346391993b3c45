package routing

import (
	"context"
	"testing"
	"time"

	"move-booking/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisCache_SetGet(t *testing.T) {
	mr, client := setupMiniredis(t)
	cache := NewRedisCache(client)
	ctx := context.Background()

	route := &models.Route{
		DistanceMeters:  7500,
		DurationSeconds: 900,
		Polyline:        "_p~iF~ps|U",
		Points:          []models.Coordinate{{Latitude: 38.5, Longitude: -120.2}},
	}
	require.NoError(t, cache.Set(ctx, "route:a:b", route, time.Minute))

	assert.True(t, mr.Exists("route:a:b"))
	assert.Equal(t, time.Minute, mr.TTL("route:a:b"))

	got, err := cache.Get(ctx, "route:a:b")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 7500, got.DistanceMeters)
	assert.Equal(t, "_p~iF~ps|U", got.Polyline)
	assert.Nil(t, got.Points)
	// the caller's route is untouched
	assert.Len(t, route.Points, 1)
}

func TestRedisCache_Miss(t *testing.T) {
	_, client := setupMiniredis(t)

	got, err := NewRedisCache(client).Get(context.Background(), "route:none")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_Expiry(t *testing.T) {
	mr, client := setupMiniredis(t)
	cache := NewRedisCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "route:a:b", &models.Route{DistanceMeters: 1}, time.Second))
	mr.FastForward(2 * time.Second)

	got, err := cache.Get(ctx, "route:a:b")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	_, err = NewRedisCache(client).Get(context.Background(), "route:a:b")
	assert.Error(t, err)
}

func TestCacheKey(t *testing.T) {
	key := cacheKey(nyc, brooklyn)
	assert.Equal(t, key, cacheKey(nyc, brooklyn))
	assert.NotEqual(t, key, cacheKey(brooklyn, nyc))
	assert.Regexp(t, `^route:[0-9b-hjkmnp-z]{9}:[0-9b-hjkmnp-z]{9}$`, key)
}
