package profile

import (
	"context"
	"errors"
	"fmt"

	"move-booking/internal/models"

	"go.uber.org/zap"
)

// RecentOrderCount is how many orders the profile screen lists.
const RecentOrderCount = 5

// OrderHistory supplies the order summaries shown under the profile.
type OrderHistory interface {
	RecentOrders(ctx context.Context, userID string, n int) ([]models.OrderSummary, error)
}

// ServiceInterface defines methods for profile business logic.
type ServiceInterface interface {
	GetProfile(ctx context.Context, userID, email string) (*models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID, email string, req models.UpdateProfileRequest) (*models.Profile, error)
}

type Service struct {
	repo    RepositoryInterface
	history OrderHistory
	logger  *zap.Logger
}

func NewService(repo RepositoryInterface, history OrderHistory, logger *zap.Logger) ServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, history: history, logger: logger}
}

// GetProfile returns the stored profile with the user's latest orders. A user
// who never saved a profile gets an empty one carrying the token's email.
func (s *Service) GetProfile(ctx context.Context, userID, email string) (*models.ProfileResponse, error) {
	p, err := s.repo.FindByUserID(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		p = &models.Profile{UserID: userID, Email: email}
	} else if err != nil {
		return nil, fmt.Errorf("service.GetProfile: %w", err)
	}
	if p.Email == "" {
		p.Email = email
	}

	recent, err := s.history.RecentOrders(ctx, userID, RecentOrderCount)
	if err != nil {
		return nil, fmt.Errorf("service.GetProfile: %w", err)
	}
	if recent == nil {
		recent = []models.OrderSummary{}
	}
	return &models.ProfileResponse{Profile: p, RecentOrders: recent}, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID, email string, req models.UpdateProfileRequest) (*models.Profile, error) {
	p, err := s.repo.Upsert(ctx, &models.Profile{
		UserID:   userID,
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    email,
	})
	if err != nil {
		return nil, fmt.Errorf("service.UpdateProfile: %w", err)
	}
	s.logger.Info("profile updated", zap.String("user_id", userID))
	return p, nil
}
