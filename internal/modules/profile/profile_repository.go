package profile

import (
	"context"
	"errors"
	"fmt"

	"move-booking/internal/database"
	"move-booking/internal/models"

	"github.com/jackc/pgx/v5"
)

// RepositoryInterface defines methods for interacting with profile storage.
type RepositoryInterface interface {
	FindByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error)
}

type Repository struct {
	db database.DBTX
}

func NewRepository(db database.DBTX) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	p := &models.Profile{}
	query := `SELECT user_id, full_name, phone, email, created_at, updated_at FROM profiles WHERE user_id = $1`
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.Phone, &p.Email, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByUserID: %w", err)
	}
	return p, nil
}

// Upsert creates the profile on first save and overwrites name, phone and email afterwards.
func (r *Repository) Upsert(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query := `
	INSERT INTO profiles (user_id, full_name, phone, email)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id) DO UPDATE
	SET full_name = EXCLUDED.full_name, phone = EXCLUDED.phone, email = EXCLUDED.email, updated_at = NOW()
	RETURNING user_id, full_name, phone, email, created_at, updated_at
	`
	saved := &models.Profile{}
	err := r.db.QueryRow(ctx, query, p.UserID, p.FullName, p.Phone, p.Email).Scan(
		&saved.UserID, &saved.FullName, &saved.Phone, &saved.Email, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("repository.Upsert: %w", err)
	}
	return saved, nil
}
