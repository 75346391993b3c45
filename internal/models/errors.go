package models

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrOrderCannotBeCancelled is returned when an attempt is made to cancel an order
	// that is no longer pending.
	ErrOrderCannotBeCancelled = errors.New("order cannot be cancelled")

	// ErrOrderCannotBeCompleted is returned when completing an order that is not pending.
	ErrOrderCannotBeCompleted = errors.New("order cannot be completed")

	// ErrUnknownVehicle is returned when a draft references a vehicle id missing from the catalog.
	ErrUnknownVehicle = errors.New("unknown vehicle")

	// ErrNoRoute is returned when the mapping service finds no route between two points.
	ErrNoRoute = errors.New("no route found for the given locations")

	// ErrRouteEndpointsMissing is returned when a route is requested before origin and destination are set.
	ErrRouteEndpointsMissing = errors.New("origin and destination must be set before computing a route")

	// ErrInvalidPrice is returned when a vehicle's price label cannot be parsed.
	ErrInvalidPrice = errors.New("vehicle price is not in a recognised format")
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ValidationError lists every problem found while checking a booking draft
// before checkout.
type ValidationError struct {
	Problems []string `json:"problems"`
}

func (e *ValidationError) Error() string {
	return "incomplete selection: " + strings.Join(e.Problems, "; ")
}
