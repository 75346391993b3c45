// Package draft holds the in-progress booking of a user and the bookings
// committed from it.
package draft

import (
	"slices"
	"sync"

	"move-booking/internal/models"
)

// Store holds one booking draft plus the append-only list of bookings
// committed from it. All operations are total and apply atomically.
type Store struct {
	mu       sync.RWMutex
	draft    models.BookingDraft
	bookings []models.FinalizedBooking
}

// NewStore returns a store with an empty draft.
func NewStore() *Store {
	return &Store{draft: models.BookingDraft{Items: []string{}}}
}

func (s *Store) SetOrigin(loc *models.Location) {
	s.mu.Lock()
	s.draft.Origin = cloneLocation(loc)
	s.mu.Unlock()
}

func (s *Store) SetDestination(loc *models.Location) {
	s.mu.Lock()
	s.draft.Destination = cloneLocation(loc)
	s.mu.Unlock()
}

func (s *Store) SetSelectedVehicle(v *models.Vehicle) {
	s.mu.Lock()
	s.draft.SelectedVehicle = cloneVehicle(v)
	s.mu.Unlock()
}

func (s *Store) SetDateTime(dt *models.DateTime) {
	s.mu.Lock()
	s.draft.DateTime = cloneDateTime(dt)
	s.mu.Unlock()
}

// SetItems replaces the checklist. A nil slice is stored as empty.
func (s *Store) SetItems(items []string) {
	s.mu.Lock()
	s.draft.Items = cloneItems(items)
	s.mu.Unlock()
}

func (s *Store) SetDistance(d *float64) {
	s.mu.Lock()
	s.draft.Distance = cloneFloat(d)
	s.mu.Unlock()
}

func (s *Store) SetDuration(d *float64) {
	s.mu.Lock()
	s.draft.Duration = cloneFloat(d)
	s.mu.Unlock()
}

// SetMetrics sets distance and duration in one step.
func (s *Store) SetMetrics(distance, duration *float64) {
	s.mu.Lock()
	s.draft.Distance = cloneFloat(distance)
	s.draft.Duration = cloneFloat(duration)
	s.mu.Unlock()
}

// Reset empties every draft field. Committed bookings are kept.
func (s *Store) Reset() {
	s.mu.Lock()
	s.draft = models.BookingDraft{Items: []string{}}
	s.mu.Unlock()
}

// Commit appends a snapshot of the current draft to the committed bookings
// and returns it. The draft itself is left as is.
func (s *Store) Commit() models.FinalizedBooking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendBooking(s.draft)
}

// CommitSnapshot appends the given draft, typically one obtained earlier from
// Draft, instead of the current one. Later edits to the store do not leak
// into the committed booking.
func (s *Store) CommitSnapshot(d models.BookingDraft) models.FinalizedBooking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendBooking(d)
}

// appendBooking must be called with mu held.
func (s *Store) appendBooking(d models.BookingDraft) models.FinalizedBooking {
	snapshot := models.FinalizedBooking{
		Origin:          cloneLocation(d.Origin),
		Destination:     cloneLocation(d.Destination),
		SelectedVehicle: cloneVehicle(d.SelectedVehicle),
		DateTime:        cloneDateTime(d.DateTime),
		Distance:        cloneFloat(d.Distance),
		Duration:        cloneFloat(d.Duration),
	}
	s.bookings = append(s.bookings, snapshot)
	return cloneFinalized(snapshot)
}

// Draft returns a copy of the current draft.
func (s *Store) Draft() models.BookingDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.BookingDraft{
		Origin:          cloneLocation(s.draft.Origin),
		Destination:     cloneLocation(s.draft.Destination),
		SelectedVehicle: cloneVehicle(s.draft.SelectedVehicle),
		DateTime:        cloneDateTime(s.draft.DateTime),
		Distance:        cloneFloat(s.draft.Distance),
		Duration:        cloneFloat(s.draft.Duration),
		Items:           cloneItems(s.draft.Items),
	}
}

// Bookings returns copies of the committed bookings in commit order.
func (s *Store) Bookings() []models.FinalizedBooking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.FinalizedBooking, len(s.bookings))
	for i, b := range s.bookings {
		out[i] = cloneFinalized(b)
	}
	return out
}

func cloneLocation(l *models.Location) *models.Location {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

func cloneVehicle(v *models.Vehicle) *models.Vehicle {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneDateTime(dt *models.DateTime) *models.DateTime {
	if dt == nil {
		return nil
	}
	c := *dt
	return &c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func cloneItems(items []string) []string {
	if items == nil {
		return []string{}
	}
	return slices.Clone(items)
}

func cloneFinalized(b models.FinalizedBooking) models.FinalizedBooking {
	return models.FinalizedBooking{
		Origin:          cloneLocation(b.Origin),
		Destination:     cloneLocation(b.Destination),
		SelectedVehicle: cloneVehicle(b.SelectedVehicle),
		DateTime:        cloneDateTime(b.DateTime),
		Distance:        cloneFloat(b.Distance),
		Duration:        cloneFloat(b.Duration),
	}
}
