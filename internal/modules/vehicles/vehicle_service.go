package vehicles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"move-booking/internal/models"

	"github.com/samber/lo"
)

// ServiceInterface describes the vehicle catalog operations.
type ServiceInterface interface {
	// List returns the catalog, optionally narrowed to one vehicle type.
	List(ctx context.Context, vehicleType string) ([]*models.Vehicle, error)
	// Get returns one vehicle or models.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Vehicle, error)
	// Resolve maps a client supplied id onto a catalog vehicle, failing with
	// models.ErrUnknownVehicle when the id is not in the catalog.
	Resolve(ctx context.Context, id string) (*models.Vehicle, error)
}

// Service implements ServiceInterface.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a service with the given repository.
func NewService(repo RepositoryInterface) ServiceInterface {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, vehicleType string) ([]*models.Vehicle, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.List: %w", err)
	}
	if vehicleType == "" {
		return all, nil
	}
	return lo.Filter(all, func(v *models.Vehicle, _ int) bool {
		return strings.EqualFold(v.Type, vehicleType)
	}), nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Vehicle, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.Get: %w", err)
	}
	return v, nil
}

func (s *Service) Resolve(ctx context.Context, id string) (*models.Vehicle, error) {
	v, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownVehicle, id)
	}
	if err != nil {
		return nil, fmt.Errorf("service.Resolve: %w", err)
	}
	return v, nil
}
