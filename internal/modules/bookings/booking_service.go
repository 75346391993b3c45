package bookings

import (
	"context"
	"errors"
	"fmt"

	"move-booking/internal/events"
	"move-booking/internal/models"
	"move-booking/internal/modules/draft"
	"move-booking/pkg/email"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// VehicleResolver maps a client supplied vehicle id onto the catalog record.
type VehicleResolver interface {
	Resolve(ctx context.Context, id string) (*models.Vehicle, error)
}

// RoutePlanner is the mapping collaborator.
type RoutePlanner interface {
	Route(ctx context.Context, origin, destination models.Location) (*models.Route, error)
}

// ServiceInterface defines the contract for the booking service.
type ServiceInterface interface {
	// Draft operations, one per store operation.
	GetDraft(userID string) models.BookingDraft
	SetOrigin(userID string, loc *models.Location) models.BookingDraft
	SetDestination(userID string, loc *models.Location) models.BookingDraft
	SelectVehicle(ctx context.Context, userID string, vehicleID *string) (models.BookingDraft, error)
	SetDateTime(userID string, dt *models.DateTime) models.BookingDraft
	SetItems(userID string, items []string) models.BookingDraft
	SetDistance(userID string, distance *float64) models.BookingDraft
	SetDuration(userID string, duration *float64) models.BookingDraft
	SetMetrics(userID string, distance, duration *float64) models.BookingDraft
	ComputeRoute(ctx context.Context, userID string) (*models.Route, error)
	ResetDraft(userID string) models.BookingDraft
	CommitDraft(userID string) models.FinalizedBooking
	CommittedBookings(userID string) []models.FinalizedBooking
	ValidateDraft(userID string) (*draft.ValidDraft, error)

	// Checkout and order history.
	Checkout(ctx context.Context, userID, userEmail string) (*models.Order, error)
	ListUserOrders(ctx context.Context, userID string, page, limit int) ([]*models.Order, int, error)
	GetOrderDetails(ctx context.Context, orderID, userID string) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID, userID string) (*models.Order, error)
	CompleteOrder(ctx context.Context, orderID, userID string) (*models.Order, error)
	RecentOrders(ctx context.Context, userID string, n int) ([]models.OrderSummary, error)
}

// Service implements the booking service logic.
type Service struct {
	drafts    *draft.Registry
	repo      RepositoryInterface
	vehicles  VehicleResolver
	routes    RoutePlanner
	mailer    email.ServiceInterface // optional
	templates *email.TemplateManager // optional
	publisher events.Publisher
	logger    *zap.Logger
}

// Deps groups the collaborators of the booking service.
type Deps struct {
	Drafts    *draft.Registry
	Repo      RepositoryInterface
	Vehicles  VehicleResolver
	Routes    RoutePlanner
	Mailer    email.ServiceInterface
	Templates *email.TemplateManager
	Publisher events.Publisher
	Logger    *zap.Logger
}

// NewService creates a new booking service.
func NewService(d Deps) *Service {
	if d.Publisher == nil {
		d.Publisher = events.NoopPublisher{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return &Service{
		drafts:    d.Drafts,
		repo:      d.Repo,
		vehicles:  d.Vehicles,
		routes:    d.Routes,
		mailer:    d.Mailer,
		templates: d.Templates,
		publisher: d.Publisher,
		logger:    d.Logger,
	}
}

func (s *Service) GetDraft(userID string) models.BookingDraft {
	return s.drafts.Get(userID).Draft()
}

func (s *Service) SetOrigin(userID string, loc *models.Location) models.BookingDraft {
	store := s.drafts.Get(userID)
	store.SetOrigin(loc)
	return store.Draft()
}

func (s *Service) SetDestination(userID string, loc *models.Location) models.BookingDraft {
	store := s.drafts.Get(userID)
	store.SetDestination(loc)
	return store.Draft()
}

// SelectVehicle resolves vehicleID against the catalog before storing it.
// A nil id clears the selection.
func (s *Service) SelectVehicle(ctx context.Context, userID string, vehicleID *string) (models.BookingDraft, error) {
	store := s.drafts.Get(userID)
	if vehicleID == nil {
		store.SetSelectedVehicle(nil)
		return store.Draft(), nil
	}

	v, err := s.vehicles.Resolve(ctx, *vehicleID)
	if err != nil {
		return models.BookingDraft{}, fmt.Errorf("service.SelectVehicle: %w", err)
	}
	store.SetSelectedVehicle(v)
	return store.Draft(), nil
}

func (s *Service) SetDateTime(userID string, dt *models.DateTime) models.BookingDraft {
	store := s.drafts.Get(userID)
	store.SetDateTime(dt)
	return store.Draft()
}

func (s *Service) SetItems(userID string, items []string) models.BookingDraft {
	store := s.drafts.Get(userID)
	store.SetItems(items)
	return store.Draft()
}

func (s *Service) SetDistance(userID string, distance *float64) models.BookingDraft {
	store := s.drafts.Get(userID)
	store.SetDistance(distance)
	return store.Draft()
}

func (s *Service) SetDuration(userID string, duration *float64) models.BookingDraft {
	store := s.drafts.Get(userID)
	store.SetDuration(duration)
	return store.Draft()
}

// SetMetrics replaces distance and duration together.
func (s *Service) SetMetrics(userID string, distance, duration *float64) models.BookingDraft {
	store := s.drafts.Get(userID)
	store.SetMetrics(distance, duration)
	return store.Draft()
}

// ComputeRoute asks the mapping collaborator for the route between the
// draft's origin and destination and keeps its distance and duration.
func (s *Service) ComputeRoute(ctx context.Context, userID string) (*models.Route, error) {
	store := s.drafts.Get(userID)
	d := store.Draft()
	if d.Origin == nil || d.Destination == nil {
		return nil, models.ErrRouteEndpointsMissing
	}

	route, err := s.routes.Route(ctx, *d.Origin, *d.Destination)
	if err != nil {
		return nil, fmt.Errorf("service.ComputeRoute: %w", err)
	}

	distance := float64(route.DistanceMeters)
	duration := float64(route.DurationSeconds)
	store.SetMetrics(&distance, &duration)
	return route, nil
}

func (s *Service) ResetDraft(userID string) models.BookingDraft {
	store := s.drafts.Get(userID)
	store.Reset()
	return store.Draft()
}

// CommitDraft snapshots the draft without validating it and without clearing it.
func (s *Service) CommitDraft(userID string) models.FinalizedBooking {
	return s.drafts.Get(userID).Commit()
}

func (s *Service) CommittedBookings(userID string) []models.FinalizedBooking {
	return s.drafts.Get(userID).Bookings()
}

func (s *Service) ValidateDraft(userID string) (*draft.ValidDraft, error) {
	return draft.Validate(s.drafts.Get(userID).Draft())
}

// Checkout validates and prices the user's draft, persists it as a pending
// order and commits the same snapshot it persisted. The draft is not reset.
func (s *Service) Checkout(ctx context.Context, userID, userEmail string) (*models.Order, error) {
	store := s.drafts.Get(userID)

	snapshot := store.Draft()
	valid, err := draft.Validate(snapshot)
	if err != nil {
		return nil, err
	}

	price, err := QuotePrice(valid.Vehicle.Price, valid.Duration)
	if err != nil {
		return nil, fmt.Errorf("service.Checkout: %w", err)
	}

	order, err := s.repo.Create(ctx, &models.Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		Origin:      valid.Origin,
		Destination: valid.Destination,
		Vehicle:     valid.Vehicle,
		Distance:    valid.Distance,
		Duration:    valid.Duration,
		DateTime:    valid.DateTime,
		Items:       valid.Items,
		Price:       price,
		Status:      models.OrderStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("service.Checkout: %w", err)
	}

	store.CommitSnapshot(snapshot)

	s.logger.Info("booking checked out",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.String("vehicle_id", order.Vehicle.ID),
		zap.Float64("price", order.Price),
	)

	s.sendConfirmation(ctx, userEmail, order)
	s.publish(ctx, events.BookingCheckedOut, order)
	return order, nil
}

// ListUserOrders retrieves all orders for a specific user.
func (s *Service) ListUserOrders(ctx context.Context, userID string, page, limit int) ([]*models.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	orders, total, err := s.repo.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListUserOrders: %w", err)
	}
	return orders, total, nil
}

// GetOrderDetails retrieves a single order owned by userID.
func (s *Service) GetOrderDetails(ctx context.Context, orderID, userID string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.GetOrderDetails: %w", err)
	}

	// Return NotFound to avoid leaking other users' orders.
	if order.UserID != userID {
		return nil, models.ErrNotFound
	}
	return order, nil
}

// CancelOrder cancels a pending order.
func (s *Service) CancelOrder(ctx context.Context, orderID, userID string) (*models.Order, error) {
	order, err := s.transition(ctx, orderID, userID, models.OrderStatusCancelled, models.ErrOrderCannotBeCancelled)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.BookingCancelled, order)
	return order, nil
}

// CompleteOrder marks a pending order as completed.
func (s *Service) CompleteOrder(ctx context.Context, orderID, userID string) (*models.Order, error) {
	order, err := s.transition(ctx, orderID, userID, models.OrderStatusCompleted, models.ErrOrderCannotBeCompleted)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.BookingCompleted, order)
	return order, nil
}

// transition moves a pending order to the target status. Only pending orders
// may change status.
func (s *Service) transition(ctx context.Context, orderID, userID string, to models.OrderStatus, conflict error) (*models.Order, error) {
	order, err := s.GetOrderDetails(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, conflict
	}

	updated, err := s.repo.TransitionStatus(ctx, orderID, userID, models.OrderStatusPending, to)
	if errors.Is(err, models.ErrNotFound) {
		// changed underneath us between the read and the update
		return nil, conflict
	}
	if err != nil {
		return nil, fmt.Errorf("service.transition: %w", err)
	}
	return updated, nil
}

// RecentOrders returns summaries of the user's n most recent orders.
func (s *Service) RecentOrders(ctx context.Context, userID string, n int) ([]models.OrderSummary, error) {
	orders, _, err := s.repo.ListByUserID(ctx, userID, 1, n)
	if err != nil {
		return nil, fmt.Errorf("service.RecentOrders: %w", err)
	}
	return lo.Map(orders, func(o *models.Order, _ int) models.OrderSummary {
		return o.Summary()
	}), nil
}

func (s *Service) sendConfirmation(ctx context.Context, to string, order *models.Order) {
	if s.mailer == nil || s.templates == nil || to == "" {
		return
	}
	subject, text, html, err := s.templates.BookingConfirmation(email.BookingData{
		OrderID:     order.ID,
		Vehicle:     order.Vehicle.Name,
		Origin:      order.Origin.Address,
		Destination: order.Destination.Address,
		Date:        order.DateTime.Date,
		Time:        order.DateTime.Time,
		Price:       FormatPrice(order.Price),
		Items:       order.Items,
	})
	if err != nil {
		s.logger.Error("failed to render confirmation email", zap.String("order_id", order.ID), zap.Error(err))
		return
	}
	if err := s.mailer.SendEmail(ctx, to, subject, text, html); err != nil {
		s.logger.Error("failed to send confirmation email", zap.String("order_id", order.ID), zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, eventType string, order *models.Order) {
	if err := s.publisher.Publish(ctx, events.NewBookingEvent(eventType, order)); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("event", eventType),
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
	}
}
