package vehicles

import (
	"context"
	"errors"
	"fmt"

	"move-booking/internal/database"
	"move-booking/internal/models"

	"github.com/jackc/pgx/v5"
)

// RepositoryInterface declares database operations for the vehicle catalog.
type RepositoryInterface interface {
	// FindByID returns a vehicle by its catalog id.
	FindByID(ctx context.Context, id string) (*models.Vehicle, error)
	// List returns the whole catalog in display order.
	List(ctx context.Context) ([]*models.Vehicle, error)
}

// Repository implements RepositoryInterface using PostgreSQL.
type Repository struct {
	db database.DBTX
}

// NewRepository creates a Repository instance.
func NewRepository(db database.DBTX) RepositoryInterface {
	return &Repository{db: db}
}

// FindByID fetches a single vehicle. Returns models.ErrNotFound if none exist.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Vehicle, error) {
	query := `
        SELECT id, name, type, capacity, price
        FROM vehicles WHERE id = $1`
	v := &models.Vehicle{}
	err := r.db.QueryRow(ctx, query, id).Scan(&v.ID, &v.Name, &v.Type, &v.Capacity, &v.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return v, nil
}

// List retrieves all vehicles in the catalog.
func (r *Repository) List(ctx context.Context) ([]*models.Vehicle, error) {
	query := `
        SELECT id, name, type, capacity, price
        FROM vehicles ORDER BY sort_order, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.List: %w", err)
	}
	defer rows.Close()

	vehicles := []*models.Vehicle{}
	for rows.Next() {
		v := &models.Vehicle{}
		if err := rows.Scan(&v.ID, &v.Name, &v.Type, &v.Capacity, &v.Price); err != nil {
			return nil, fmt.Errorf("repository.List scan: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.List rows: %w", err)
	}
	return vehicles, nil
}
