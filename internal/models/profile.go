package models

import "time"

// Profile holds the contact details shown on the profile screen.
type Profile struct {
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// UpdateProfileRequest defines the body of PUT /profile.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
}

// ProfileResponse is the profile plus its most recent orders.
type ProfileResponse struct {
	Profile      *Profile       `json:"profile"`
	RecentOrders []OrderSummary `json:"recent_orders"`
}
