// Package events publishes booking lifecycle events to NSQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"move-booking/internal/models"

	"github.com/nsqio/go-nsq"
)

const (
	BookingCheckedOut = "booking.checked_out"
	BookingCancelled  = "booking.cancelled"
	BookingCompleted  = "booking.completed"
)

// BookingEvent is the message body published for every order transition.
type BookingEvent struct {
	Type       string             `json:"type"`
	OrderID    string             `json:"order_id"`
	UserID     string             `json:"user_id"`
	Status     models.OrderStatus `json:"status"`
	VehicleID  string             `json:"vehicle_id,omitempty"`
	Date       string             `json:"date,omitempty"`
	Time       string             `json:"time,omitempty"`
	Price      float64            `json:"price"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// NewBookingEvent builds the event for an order at its current state.
func NewBookingEvent(eventType string, order *models.Order) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		VehicleID:  order.Vehicle.ID,
		Date:       order.DateTime.Date,
		Time:       order.DateTime.Time,
		Price:      order.Price,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher sends booking events somewhere.
type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

// producer is the part of *nsq.Producer we use.
type producer interface {
	Publish(topic string, body []byte) error
	Stop()
}

// NSQPublisher publishes JSON encoded events to a single NSQ topic.
type NSQPublisher struct {
	producer producer
	topic    string
}

// NewNSQPublisher connects to nsqd at address and checks it is reachable.
func NewNSQPublisher(address, topic string) (*NSQPublisher, error) {
	p, err := nsq.NewProducer(address, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ producer: %w", err)
	}
	if err := p.Ping(); err != nil {
		p.Stop()
		return nil, fmt.Errorf("failed to ping NSQ daemon: %w", err)
	}
	return &NSQPublisher{producer: p, topic: topic}, nil
}

func (p *NSQPublisher) Publish(_ context.Context, event BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.producer.Publish(p.topic, body); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

// Stop gracefully stops the producer.
func (p *NSQPublisher) Stop() {
	p.producer.Stop()
}

// NoopPublisher drops every event. Used when no NSQ address is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, BookingEvent) error { return nil }
