package models

import "time"

// OrderStatus is the lifecycle state of a persisted booking.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a checked-out booking as stored in the relational store.
type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Origin      Location    `json:"origin"`
	Destination Location    `json:"destination"`
	Vehicle     Vehicle     `json:"vehicle"`
	Distance    float64     `json:"distance"` // metres
	Duration    float64     `json:"duration"` // seconds
	DateTime    DateTime    `json:"date_time"`
	Items       []string    `json:"items"`
	Price       float64     `json:"price"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderSummary is the compact form shown in the profile's order history.
type OrderSummary struct {
	ID          string      `json:"id"`
	Vehicle     string      `json:"vehicle"`
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Price       float64     `json:"price"`
	Status      OrderStatus `json:"status"`
}

// Summary converts an order into its history-list form.
func (o *Order) Summary() OrderSummary {
	return OrderSummary{
		ID:          o.ID,
		Vehicle:     o.Vehicle.Name,
		Origin:      o.Origin.Address,
		Destination: o.Destination.Address,
		Date:        o.DateTime.Date,
		Time:        o.DateTime.Time,
		Price:       o.Price,
		Status:      o.Status,
	}
}
