package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"move-booking/internal/database"
	"move-booking/internal/models"

	"github.com/jackc/pgx/v5"
)

// RepositoryInterface defines the contract for the order repository.
type RepositoryInterface interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	ListByUserID(ctx context.Context, userID string, page, limit int) ([]*models.Order, int, error)
	// TransitionStatus moves an order owned by userID from one status to
	// another. It returns models.ErrNotFound when no row is in the from state.
	TransitionStatus(ctx context.Context, orderID, userID string, from, to models.OrderStatus) (*models.Order, error)
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db database.DBTX
}

// NewRepository creates a new order repository.
func NewRepository(db database.DBTX) RepositoryInterface {
	return &Repository{db: db}
}

const orderColumns = `id::text, user_id, origin, destination, vehicle, distance, duration,
		move_date, time_slot, items, price, status, created_at, updated_at`

// Create inserts a new order. The caller supplies the id.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	origin, destination, vehicle, err := marshalOrderJSON(order)
	if err != nil {
		return nil, fmt.Errorf("repository.Create: %w", err)
	}

	items := order.Items
	if items == nil {
		items = []string{}
	}

	query := `
		INSERT INTO orders (id, user_id, origin, destination, vehicle, distance, duration,
			move_date, time_slot, items, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + orderColumns

	row := r.db.QueryRow(ctx, query,
		order.ID,
		order.UserID,
		origin,
		destination,
		vehicle,
		order.Distance,
		order.Duration,
		order.DateTime.Date,
		order.DateTime.Time,
		items,
		order.Price,
		string(order.Status),
	)
	created, err := r.scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("repository.Create: %w", err)
	}
	return created, nil
}

// scanOrder is a helper function to scan a row into an Order model.
func (r *Repository) scanOrder(row pgx.Row) (*models.Order, error) {
	var (
		order                        models.Order
		origin, destination, vehicle []byte
		status                       string
	)
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&origin,
		&destination,
		&vehicle,
		&order.Distance,
		&order.Duration,
		&order.DateTime.Date,
		&order.DateTime.Time,
		&order.Items,
		&order.Price,
		&status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	if err := json.Unmarshal(origin, &order.Origin); err != nil {
		return nil, fmt.Errorf("failed to decode origin: %w", err)
	}
	if err := json.Unmarshal(destination, &order.Destination); err != nil {
		return nil, fmt.Errorf("failed to decode destination: %w", err)
	}
	if err := json.Unmarshal(vehicle, &order.Vehicle); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle: %w", err)
	}
	order.Status = models.OrderStatus(status)
	if order.Items == nil {
		order.Items = []string{}
	}
	return &order, nil
}

// FindByID retrieves a single order by its ID.
func (r *Repository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE id::text = $1`

	order, err := r.scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return order, nil
}

// ListByUserID retrieves the orders of a user, newest first, with pagination.
func (r *Repository) ListByUserID(ctx context.Context, userID string, page, limit int) ([]*models.Order, int, error) {
	offset := (page - 1) * limit
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListByUserID.Query: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.ListByUserID.Scan: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository.ListByUserID.Rows: %w", err)
	}

	var total int
	err = r.db.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE user_id = $1", userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListByUserID.Count: %w", err)
	}

	return orders, total, nil
}

// TransitionStatus updates the status of an order only if it is still in the expected state.
func (r *Repository) TransitionStatus(ctx context.Context, orderID, userID string, from, to models.OrderStatus) (*models.Order, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id::text = $2 AND user_id = $3 AND status = $4
		RETURNING ` + orderColumns

	order, err := r.scanOrder(r.db.QueryRow(ctx, query, string(to), orderID, userID, string(from)))
	if err != nil {
		return nil, fmt.Errorf("repository.TransitionStatus: %w", err)
	}
	return order, nil
}

func marshalOrderJSON(order *models.Order) (origin, destination, vehicle []byte, err error) {
	if origin, err = json.Marshal(order.Origin); err != nil {
		return nil, nil, nil, err
	}
	if destination, err = json.Marshal(order.Destination); err != nil {
		return nil, nil, nil, err
	}
	if vehicle, err = json.Marshal(order.Vehicle); err != nil {
		return nil, nil, nil, err
	}
	return origin, destination, vehicle, nil
}
