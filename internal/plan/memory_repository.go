package plan

import (
	"context"
	"sync"
	"time"
)

// InMemoryRepository keeps plans in process memory. Plans do not survive a
// restart.
type InMemoryRepository struct {
	mu    sync.RWMutex
	plans map[string]*Plan
	now   func() time.Time
}

// NewInMemoryRepository creates a new in-memory plan repository. now stamps
// UpdatedAt on every mutation and should be the clock given to the service;
// nil means time.Now.
func NewInMemoryRepository(now func() time.Time) *InMemoryRepository {
	if now == nil {
		now = time.Now
	}
	return &InMemoryRepository{
		plans: make(map[string]*Plan),
		now:   now,
	}
}

// Get retrieves a plan by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plans[id]
	if !ok {
		return nil, ErrPlanNotFound
	}

	// Return a copy
	return p.Clone(), nil
}

// Create stores a new plan.
func (r *InMemoryRepository) Create(_ context.Context, p *Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.plans[p.ID] = p.Clone()
	return nil
}

// Mutate applies fn to a copy of the plan under the write lock and stores it
// when fn succeeds.
func (r *InMemoryRepository) Mutate(_ context.Context, id string, fn MutateFunc) (*Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.plans[id]
	if !ok {
		return nil, ErrPlanNotFound
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = r.now()

	r.plans[id] = next
	return next.Clone(), nil
}

// Delete removes a plan.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[id]; !ok {
		return ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}

// DeleteIdleSince removes plans last updated before cutoff.
func (r *InMemoryRepository) DeleteIdleSince(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, p := range r.plans {
		if p.UpdatedAt.Before(cutoff) {
			delete(r.plans, id)
			removed++
		}
	}
	return removed, nil
}

// Count returns the number of stored plans.
func (r *InMemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plans), nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)
