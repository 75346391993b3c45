package bookings

import (
	"context"
	"errors"
	"testing"

	"move-booking/internal/events"
	"move-booking/internal/models"
	"move-booking/internal/modules/draft"
	"move-booking/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	args := m.Called(ctx, order)
	switch v := args.Get(0).(type) {
	case func(context.Context, *models.Order) *models.Order:
		return v(ctx, order), args.Error(1)
	case *models.Order:
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockRepo) ListByUserID(ctx context.Context, userID string, page, limit int) ([]*models.Order, int, error) {
	args := m.Called(ctx, userID, page, limit)
	o, _ := args.Get(0).([]*models.Order)
	return o, args.Int(1), args.Error(2)
}

func (m *mockRepo) TransitionStatus(ctx context.Context, orderID, userID string, from, to models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, orderID, userID, from, to)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

type mockVehicles struct {
	mock.Mock
}

func (m *mockVehicles) Resolve(ctx context.Context, id string) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.Vehicle)
	return v, args.Error(1)
}

type mockRoutes struct {
	mock.Mock
}

func (m *mockRoutes) Route(ctx context.Context, origin, destination models.Location) (*models.Route, error) {
	args := m.Called(ctx, origin, destination)
	r, _ := args.Get(0).(*models.Route)
	return r, args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendEmail(ctx context.Context, to, subject, plain, html string) error {
	return m.Called(ctx, to, subject, plain, html).Error(0)
}

type recordingPublisher struct {
	events []events.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.BookingEvent) error {
	p.events = append(p.events, e)
	return p.err
}

var (
	home   = models.Location{Latitude: 37.7749, Longitude: -122.4194, Address: "1 Market St"}
	office = models.Location{Latitude: 37.8044, Longitude: -122.2712, Address: "2 Broadway"}
	van    = &models.Vehicle{ID: "van", Name: "Cargo Van", Type: "Standard", Capacity: "3000 lbs", Price: "$99/hour"}
)

type fixture struct {
	svc       *Service
	drafts    *draft.Registry
	repo      *mockRepo
	vehicles  *mockVehicles
	routes    *mockRoutes
	mailer    *mockMailer
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tm, err := email.NewTemplateManager()
	require.NoError(t, err)

	f := &fixture{
		drafts:    draft.NewRegistry(),
		repo:      new(mockRepo),
		vehicles:  new(mockVehicles),
		routes:    new(mockRoutes),
		mailer:    new(mockMailer),
		publisher: &recordingPublisher{},
	}
	f.svc = NewService(Deps{
		Drafts:    f.drafts,
		Repo:      f.repo,
		Vehicles:  f.vehicles,
		Routes:    f.routes,
		Mailer:    f.mailer,
		Templates: tm,
		Publisher: f.publisher,
		Logger:    zap.NewNop(),
	})
	return f
}

// fillDraft puts a complete draft for user u1 into the registry.
func (f *fixture) fillDraft() {
	store := f.drafts.Get("u1")
	o, d := home, office
	store.SetOrigin(&o)
	store.SetDestination(&d)
	store.SetSelectedVehicle(van)
	store.SetDateTime(&models.DateTime{Date: "2026-11-02", Time: "9:00 AM - 10:00 AM"})
	store.SetMetrics(ptr(12500.0), ptr(5400.0))
	store.SetItems([]string{"sofa", "boxes"})
}

func ptr[T any](v T) *T { return &v }

func TestService_DraftsAreIsolatedPerUser(t *testing.T) {
	f := newFixture(t)

	got := f.svc.SetOrigin("u1", &home)
	require.NotNil(t, got.Origin)
	assert.Equal(t, "1 Market St", got.Origin.Address)

	assert.Nil(t, f.svc.GetDraft("u2").Origin)
}

func TestService_SelectVehicle(t *testing.T) {
	f := newFixture(t)
	f.vehicles.On("Resolve", mock.Anything, "van").Return(van, nil)

	d, err := f.svc.SelectVehicle(context.Background(), "u1", ptr("van"))
	require.NoError(t, err)
	require.NotNil(t, d.SelectedVehicle)
	assert.Equal(t, "Cargo Van", d.SelectedVehicle.Name)

	d, err = f.svc.SelectVehicle(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Nil(t, d.SelectedVehicle)
}

func TestService_SelectVehicle_Unknown(t *testing.T) {
	f := newFixture(t)
	f.vehicles.On("Resolve", mock.Anything, "hover").Return(nil, models.ErrUnknownVehicle)

	_, err := f.svc.SelectVehicle(context.Background(), "u1", ptr("hover"))
	assert.ErrorIs(t, err, models.ErrUnknownVehicle)
	assert.Nil(t, f.svc.GetDraft("u1").SelectedVehicle)
}

func TestService_ComputeRoute(t *testing.T) {
	f := newFixture(t)
	f.svc.SetOrigin("u1", &home)
	f.svc.SetDestination("u1", &office)
	f.routes.On("Route", mock.Anything, home, office).
		Return(&models.Route{DistanceMeters: 19800, DurationSeconds: 1500}, nil)

	route, err := f.svc.ComputeRoute(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 19800, route.DistanceMeters)

	d := f.svc.GetDraft("u1")
	require.NotNil(t, d.Distance)
	require.NotNil(t, d.Duration)
	assert.Equal(t, 19800.0, *d.Distance)
	assert.Equal(t, 1500.0, *d.Duration)
}

func TestService_ComputeRoute_MissingEndpoints(t *testing.T) {
	f := newFixture(t)
	f.svc.SetOrigin("u1", &home)

	_, err := f.svc.ComputeRoute(context.Background(), "u1")
	assert.ErrorIs(t, err, models.ErrRouteEndpointsMissing)
	f.routes.AssertNotCalled(t, "Route", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ComputeRoute_NoRouteLeavesMetrics(t *testing.T) {
	f := newFixture(t)
	f.svc.SetOrigin("u1", &home)
	f.svc.SetDestination("u1", &office)
	f.routes.On("Route", mock.Anything, home, office).Return(nil, models.ErrNoRoute)

	_, err := f.svc.ComputeRoute(context.Background(), "u1")
	assert.ErrorIs(t, err, models.ErrNoRoute)
	assert.Nil(t, f.svc.GetDraft("u1").Distance)
}

func TestService_CommitDraftKeepsDraft(t *testing.T) {
	f := newFixture(t)
	f.svc.SetOrigin("u1", &home)

	snap := f.svc.CommitDraft("u1")
	require.NotNil(t, snap.Origin)
	assert.NotNil(t, f.svc.GetDraft("u1").Origin)
	assert.Len(t, f.svc.CommittedBookings("u1"), 1)

	f.svc.ResetDraft("u1")
	assert.Nil(t, f.svc.GetDraft("u1").Origin)
	assert.Len(t, f.svc.CommittedBookings("u1"), 1)
}

func TestService_Checkout(t *testing.T) {
	f := newFixture(t)
	f.fillDraft()

	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
		return o.ID != "" &&
			o.UserID == "u1" &&
			o.Status == models.OrderStatusPending &&
			o.Price == 198 && // 1.5h billed as 2h
			o.Vehicle.ID == "van" &&
			len(o.Items) == 2
	})).Return(func(_ context.Context, o *models.Order) *models.Order {
		return o
	}, nil)
	f.mailer.On("SendEmail", mock.Anything, "jo@example.com", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	order, err := f.svc.Checkout(context.Background(), "u1", "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, 198.0, order.Price)

	// committed but not reset
	assert.Len(t, f.svc.CommittedBookings("u1"), 1)
	assert.NotNil(t, f.svc.GetDraft("u1").Origin)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.BookingCheckedOut, f.publisher.events[0].Type)
	assert.Equal(t, order.ID, f.publisher.events[0].OrderID)
	f.repo.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func TestService_Checkout_CommitsPersistedSnapshot(t *testing.T) {
	f := newFixture(t)
	f.fillDraft()

	// the draft changes while the insert is in flight
	f.repo.On("Create", mock.Anything, mock.Anything).Return(func(_ context.Context, o *models.Order) *models.Order {
		f.svc.SetDestination("u1", &models.Location{Latitude: 40.7128, Longitude: -74.006, Address: "NYC"})
		return o
	}, nil)
	f.mailer.On("SendEmail", mock.Anything, "jo@example.com", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	order, err := f.svc.Checkout(context.Background(), "u1", "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "2 Broadway", order.Destination.Address)

	committed := f.svc.CommittedBookings("u1")
	require.Len(t, committed, 1)
	assert.Equal(t, order.Destination, *committed[0].Destination)
	assert.Equal(t, "NYC", f.svc.GetDraft("u1").Destination.Address)
}

func TestService_SetDistanceAndDurationAreIndependent(t *testing.T) {
	f := newFixture(t)

	f.svc.SetDuration("u1", ptr(5400.0))
	d := f.svc.SetDistance("u1", ptr(1200.0))
	require.NotNil(t, d.Duration)
	assert.Equal(t, 5400.0, *d.Duration)

	d = f.svc.SetDuration("u1", nil)
	assert.Nil(t, d.Duration)
	assert.Equal(t, 1200.0, *d.Distance)
}

func TestService_Checkout_IncompleteDraft(t *testing.T) {
	f := newFixture(t)
	f.svc.SetOrigin("u1", &home)

	_, err := f.svc.Checkout(context.Background(), "u1", "jo@example.com")

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Problems, "destination is required")
	assert.Empty(t, f.svc.CommittedBookings("u1"))
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Checkout_RepositoryFailureDoesNotCommit(t *testing.T) {
	f := newFixture(t)
	f.fillDraft()
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := f.svc.Checkout(context.Background(), "u1", "jo@example.com")
	assert.Error(t, err)
	assert.Empty(t, f.svc.CommittedBookings("u1"))
	assert.Empty(t, f.publisher.events)
}

func TestService_Checkout_SideEffectFailuresAreNotFatal(t *testing.T) {
	f := newFixture(t)
	f.fillDraft()
	f.publisher.err = errors.New("nsq down")
	f.repo.On("Create", mock.Anything, mock.Anything).Return(func(_ context.Context, o *models.Order) *models.Order {
		return o
	}, nil)
	f.mailer.On("SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("ses down"))

	_, err := f.svc.Checkout(context.Background(), "u1", "jo@example.com")
	assert.NoError(t, err)
	assert.Len(t, f.svc.CommittedBookings("u1"), 1)
}

func TestService_Checkout_SkipsEmailWithoutAddress(t *testing.T) {
	f := newFixture(t)
	f.fillDraft()
	f.repo.On("Create", mock.Anything, mock.Anything).Return(func(_ context.Context, o *models.Order) *models.Order {
		return o
	}, nil)

	_, err := f.svc.Checkout(context.Background(), "u1", "")
	require.NoError(t, err)
	f.mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetOrderDetails_HidesOtherUsersOrders(t *testing.T) {
	f := newFixture(t)
	f.repo.On("FindByID", mock.Anything, "o1").Return(&models.Order{ID: "o1", UserID: "u2"}, nil)

	_, err := f.svc.GetOrderDetails(context.Background(), "o1", "u1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestService_ListUserOrders_ClampsPaging(t *testing.T) {
	f := newFixture(t)
	f.repo.On("ListByUserID", mock.Anything, "u1", 1, 20).Return([]*models.Order{}, 0, nil)

	_, total, err := f.svc.ListUserOrders(context.Background(), "u1", 0, 500)
	require.NoError(t, err)
	assert.Zero(t, total)
	f.repo.AssertExpectations(t)
}

func TestService_CancelOrder(t *testing.T) {
	f := newFixture(t)
	pending := &models.Order{ID: "o1", UserID: "u1", Status: models.OrderStatusPending}
	cancelled := &models.Order{ID: "o1", UserID: "u1", Status: models.OrderStatusCancelled}
	f.repo.On("FindByID", mock.Anything, "o1").Return(pending, nil)
	f.repo.On("TransitionStatus", mock.Anything, "o1", "u1", models.OrderStatusPending, models.OrderStatusCancelled).
		Return(cancelled, nil)

	order, err := f.svc.CancelOrder(context.Background(), "o1", "u1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.BookingCancelled, f.publisher.events[0].Type)
}

func TestService_CancelOrder_NotPending(t *testing.T) {
	f := newFixture(t)
	f.repo.On("FindByID", mock.Anything, "o1").
		Return(&models.Order{ID: "o1", UserID: "u1", Status: models.OrderStatusCompleted}, nil)

	_, err := f.svc.CancelOrder(context.Background(), "o1", "u1")
	assert.ErrorIs(t, err, models.ErrOrderCannotBeCancelled)
	f.repo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CompleteOrder_LostRace(t *testing.T) {
	f := newFixture(t)
	f.repo.On("FindByID", mock.Anything, "o1").
		Return(&models.Order{ID: "o1", UserID: "u1", Status: models.OrderStatusPending}, nil)
	f.repo.On("TransitionStatus", mock.Anything, "o1", "u1", models.OrderStatusPending, models.OrderStatusCompleted).
		Return(nil, models.ErrNotFound)

	_, err := f.svc.CompleteOrder(context.Background(), "o1", "u1")
	assert.ErrorIs(t, err, models.ErrOrderCannotBeCompleted)
	assert.Empty(t, f.publisher.events)
}

func TestService_RecentOrders(t *testing.T) {
	f := newFixture(t)
	f.repo.On("ListByUserID", mock.Anything, "u1", 1, 5).Return([]*models.Order{
		{ID: "o2", Vehicle: *van, Origin: home, Destination: office, Price: 99, Status: models.OrderStatusPending},
	}, 7, nil)

	got, err := f.svc.RecentOrders(context.Background(), "u1", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Cargo Van", got[0].Vehicle)
	assert.Equal(t, "1 Market St", got[0].Origin)
}
