package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"move-booking/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/mmcloughlin/geohash"
)

// geohashPrecision of 9 characters is roughly a 5m cell.
const geohashPrecision = 9

// Cache stores computed routes. Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (*models.Route, error)
	Set(ctx context.Context, key string, route *models.Route, ttl time.Duration) error
}

// RedisCache keeps routes as JSON strings in Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.Route, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache.Get: %w", err)
	}

	var route models.Route
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, fmt.Errorf("cache.Get unmarshal: %w", err)
	}
	return &route, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, route *models.Route, ttl time.Duration) error {
	stored := *route
	stored.Points = nil // rebuilt from the polyline on read
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("cache.Set marshal: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache.Set: %w", err)
	}
	return nil
}

// cacheKey identifies an origin/destination pair by the geohash of each end.
func cacheKey(origin, destination models.Location) string {
	return fmt.Sprintf("route:%s:%s",
		geohash.EncodeWithPrecision(origin.Latitude, origin.Longitude, geohashPrecision),
		geohash.EncodeWithPrecision(destination.Latitude, destination.Longitude, geohashPrecision),
	)
}
