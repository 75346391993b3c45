package draft

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry hands out one Store per user. It is created by the composition
// root and shared by reference with the handlers that need it.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*entry
	now    func() time.Time
}

type entry struct {
	store    *Store
	lastUsed time.Time
}

func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*entry), now: time.Now}
}

// Get returns the user's store, creating an empty one on first use.
// Every call counts as activity for Sweep.
func (r *Registry) Get(userID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.stores[userID]
	if !ok {
		e = &entry{store: NewStore()}
		r.stores[userID] = e
	}
	e.lastUsed = r.now()
	return e.store
}

// Discard drops the user's store together with its committed bookings.
func (r *Registry) Discard(userID string) {
	r.mu.Lock()
	delete(r.stores, userID)
	r.mu.Unlock()
}

// Sweep discards every store that has not been touched for longer than idle
// and returns the ids it dropped.
func (r *Registry) Sweep(idle time.Duration) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	var dropped []string
	for id, e := range r.stores {
		if e.lastUsed.Before(cutoff) {
			delete(r.stores, id)
			dropped = append(dropped, id)
		}
	}
	return dropped
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval, idle time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := r.Sweep(idle); len(dropped) > 0 {
				logger.Info("idle drafts discarded",
					zap.Int("count", len(dropped)),
					zap.Int("remaining", r.Len()),
				)
			}
		}
	}
}

// Len reports how many users currently hold a store.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
