package routing

import (
	"context"
	"fmt"
	"time"

	"move-booking/internal/models"

	"go.uber.org/zap"
)

// Directions is the external mapping collaborator.
type Directions interface {
	Route(ctx context.Context, origin, destination models.Location) (*models.Route, error)
}

// ServiceInterface computes routes between two locations.
type ServiceInterface interface {
	Route(ctx context.Context, origin, destination models.Location) (*models.Route, error)
}

// Service answers route queries from the cache, falling back to the
// directions collaborator. The cache is optional.
type Service struct {
	directions Directions
	cache      Cache
	ttl        time.Duration
	logger     *zap.Logger
}

func NewService(directions Directions, cache Cache, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		directions: directions,
		cache:      cache,
		ttl:        ttl,
		logger:     logger,
	}
}

// Route returns the route with its decoded points. Cache failures are logged
// and otherwise ignored.
func (s *Service) Route(ctx context.Context, origin, destination models.Location) (*models.Route, error) {
	key := cacheKey(origin, destination)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("route cache read failed", zap.String("key", key), zap.Error(err))
		}
		if cached != nil {
			s.logger.Debug("route cache hit", zap.String("key", key))
			s.decodePoints(cached)
			return cached, nil
		}
	}

	route, err := s.directions.Route(ctx, origin, destination)
	if err != nil {
		return nil, fmt.Errorf("service.Route: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, route, s.ttl); err != nil {
			s.logger.Warn("route cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	s.decodePoints(route)
	return route, nil
}

func (s *Service) decodePoints(route *models.Route) {
	if route.Polyline == "" {
		return
	}
	points, err := DecodePolyline(route.Polyline)
	if err != nil {
		s.logger.Warn("could not decode route polyline", zap.Error(err))
		return
	}
	route.Points = points
}
