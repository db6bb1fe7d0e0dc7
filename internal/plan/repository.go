package plan

import (
	"context"
	"time"
)

// MutateFunc changes a plan in place. Returning an error discards the change.
type MutateFunc func(p *Plan) error

// Repository stores plans.
type Repository interface {
	// Get retrieves a plan by ID.
	Get(ctx context.Context, id string) (*Plan, error)

	// Create stores a new plan.
	Create(ctx context.Context, p *Plan) error

	// Mutate loads a plan, applies fn and stores the result atomically.
	Mutate(ctx context.Context, id string, fn MutateFunc) (*Plan, error)

	// Delete removes a plan.
	Delete(ctx context.Context, id string) error

	// DeleteIdleSince removes plans not updated since cutoff and returns how many.
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error)

	// Count returns the number of stored plans.
	Count(ctx context.Context) (int, error)
}
