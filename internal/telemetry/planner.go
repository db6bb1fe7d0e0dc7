package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PlannerMetrics counts planner computations. A nil *PlannerMetrics records nothing.
type PlannerMetrics struct {
	itineraries metric.Int64Counter
	weights     metric.Int64Counter
	budgets     metric.Int64Counter
	plans       metric.Int64UpDownCounter
	swept       metric.Int64Counter
}

// NewPlannerMetrics creates the planner instruments on meter.
func NewPlannerMetrics(meter metric.Meter) (*PlannerMetrics, error) {
	itineraries, err := meter.Int64Counter(
		"planner.itineraries.generated",
		metric.WithDescription("Number of itinerary generations"),
		metric.WithUnit("{itinerary}"),
	)
	if err != nil {
		return nil, err
	}

	weights, err := meter.Int64Counter(
		"planner.weight.computations",
		metric.WithDescription("Number of gear weight computations"),
		metric.WithUnit("{computation}"),
	)
	if err != nil {
		return nil, err
	}

	budgets, err := meter.Int64Counter(
		"planner.budget.computations",
		metric.WithDescription("Number of budget computations"),
		metric.WithUnit("{computation}"),
	)
	if err != nil {
		return nil, err
	}

	plans, err := meter.Int64UpDownCounter(
		"planner.plans.active",
		metric.WithDescription("Number of live plan sessions"),
		metric.WithUnit("{plan}"),
	)
	if err != nil {
		return nil, err
	}

	swept, err := meter.Int64Counter(
		"planner.plans.expired",
		metric.WithDescription("Number of plan sessions removed by the sweeper"),
		metric.WithUnit("{plan}"),
	)
	if err != nil {
		return nil, err
	}

	return &PlannerMetrics{
		itineraries: itineraries,
		weights:     weights,
		budgets:     budgets,
		plans:       plans,
		swept:       swept,
	}, nil
}

// ItineraryGenerated records one generation in the given mode.
func (m *PlannerMetrics) ItineraryGenerated(ctx context.Context, mode string) {
	if m == nil {
		return
	}
	m.itineraries.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", mode)))
}

// WeightComputed records one weight computation for a view.
func (m *PlannerMetrics) WeightComputed(ctx context.Context, view string) {
	if m == nil {
		return
	}
	m.weights.Add(ctx, 1, metric.WithAttributes(attribute.String("view", view)))
}

// BudgetComputed records one budget computation.
func (m *PlannerMetrics) BudgetComputed(ctx context.Context) {
	if m == nil {
		return
	}
	m.budgets.Add(ctx, 1)
}

// PlanCreated increments the live plan gauge.
func (m *PlannerMetrics) PlanCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.plans.Add(ctx, 1)
}

// PlansRemoved decrements the live plan gauge. Expired plans are also counted
// separately.
func (m *PlannerMetrics) PlansRemoved(ctx context.Context, n int, expired bool) {
	if m == nil || n == 0 {
		return
	}
	m.plans.Add(ctx, int64(-n))
	if expired {
		m.swept.Add(ctx, int64(n))
	}
}
