package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ruthgorge/expedition/internal/api/models"
	"github.com/ruthgorge/expedition/internal/itinerary"
	"github.com/ruthgorge/expedition/internal/packing"
	"github.com/ruthgorge/expedition/internal/reference"
	"github.com/ruthgorge/expedition/internal/telemetry"
)

// DefaultSessionTTL is how long an untouched plan lives.
const DefaultSessionTTL = 12 * time.Hour

// ServiceConfig holds dependencies for the plan service.
type ServiceConfig struct {
	Repository Repository
	Store      *reference.Store
	SessionTTL time.Duration
	Logger     zerolog.Logger
	Metrics    *telemetry.PlannerMetrics
	Now        func() time.Time
}

// Service applies user selections to plans. Every mutation is a whole-value
// load, change and store under the repository lock.
type Service struct {
	repo    Repository
	store   *reference.Store
	ttl     time.Duration
	logger  zerolog.Logger
	metrics *telemetry.PlannerMetrics
	now     func() time.Time
	newID   itinerary.IDFunc
}

// NewService creates a new plan service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		repo:    cfg.Repository,
		store:   cfg.Store,
		ttl:     cfg.SessionTTL,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		now:     cfg.Now,
		newID:   itinerary.NewID,
	}
}

// Store returns the reference catalog the service validates against.
func (s *Service) Store() *reference.Store {
	return s.store
}

// Metrics returns the planner metrics, which may be nil.
func (s *Service) Metrics() *telemetry.PlannerMetrics {
	return s.metrics
}

// Create starts a new plan.
func (s *Service) Create(ctx context.Context) (*Plan, error) {
	p := New("pln_"+uuid.New().String()[:22], s.now())
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	s.metrics.PlanCreated(ctx)
	s.logger.Debug().Str("plan_id", p.ID).Msg("plan created")
	return p, nil
}

// Get returns a plan and refreshes its idle timer.
func (s *Service) Get(ctx context.Context, id string) (*Plan, error) {
	return s.repo.Mutate(ctx, id, func(*Plan) error { return nil })
}

// Delete discards a plan.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.PlansRemoved(ctx, 1, false)
	return nil
}

// Count returns the number of live plans.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Sweep removes plans idle for longer than the session TTL.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	n, err := s.repo.DeleteIdleSince(ctx, s.now().Add(-s.ttl))
	if err != nil {
		return 0, err
	}
	s.metrics.PlansRemoved(ctx, n, true)
	return n, nil
}

// SetRoutes replaces the route selection. Duplicates collapse, order is kept.
func (s *Service) SetRoutes(ctx context.Context, id string, routeIDs []string) (*Plan, error) {
	var fieldErrors []models.FieldError
	routes := make([]string, 0, len(routeIDs))
	seen := make(map[string]bool)
	for i, rid := range routeIDs {
		if !s.store.HasRoute(rid) {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:   fmt.Sprintf("routeIds[%d]", i),
				Message: fmt.Sprintf("unknown route %q", rid),
				Code:    "unknown_route",
			})
			continue
		}
		if !seen[rid] {
			seen[rid] = true
			routes = append(routes, rid)
		}
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		p.Routes = routes
		return nil
	})
}

// ToggleRoute adds the route at the end of the selection or removes it.
func (s *Service) ToggleRoute(ctx context.Context, id, routeID string) (*Plan, error) {
	if !s.store.HasRoute(routeID) {
		return nil, reference.ErrRouteNotFound
	}

	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		for i, r := range p.Routes {
			if r == routeID {
				p.Routes = append(p.Routes[:i:i], p.Routes[i+1:]...)
				return nil
			}
		}
		p.Routes = append(p.Routes, routeID)
		return nil
	})
}

// SelectedRoutes resolves the plan's route ids in selection order.
func (s *Service) SelectedRoutes(p *Plan) []reference.Route {
	out := make([]reference.Route, 0, len(p.Routes))
	for _, id := range p.Routes {
		if r, err := s.store.Route(id); err == nil {
			out = append(out, r)
		}
	}
	return out
}

// SetDates replaces the expedition range. Either end may be nil; when both
// are set the end must not precede the start.
func (s *Service) SetDates(ctx context.Context, id string, start, end *time.Time) (*Plan, error) {
	if start != nil {
		d := itinerary.Day(*start)
		start = &d
	}
	if end != nil {
		d := itinerary.Day(*end)
		end = &d
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, &ValidationError{Errors: []models.FieldError{{
			Field:   "end",
			Message: "end date must not be before start date",
			Code:    "date_range",
		}}}
	}

	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		p.Dates.Start = start
		p.Dates.End = end
		return nil
	})
}

// SetTeam replaces the team roster.
func (s *Service) SetTeam(ctx context.Context, id string, climberIDs []int) (*Plan, error) {
	var fieldErrors []models.FieldError
	team := make([]int, 0, len(climberIDs))
	seen := make(map[int]bool)
	for i, cid := range climberIDs {
		if _, err := s.store.Climber(cid); err != nil {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:   fmt.Sprintf("climberIds[%d]", i),
				Message: fmt.Sprintf("unknown climber %d", cid),
				Code:    "unknown_climber",
			})
			continue
		}
		if !seen[cid] {
			seen[cid] = true
			team = append(team, cid)
		}
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		p.Team = team
		resetViewIfRemoved(p)
		return nil
	})
}

// ToggleClimber adds or removes a climber from the team.
func (s *Service) ToggleClimber(ctx context.Context, id string, climberID int) (*Plan, error) {
	if _, err := s.store.Climber(climberID); err != nil {
		return nil, err
	}

	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		for i, c := range p.Team {
			if c == climberID {
				p.Team = append(p.Team[:i:i], p.Team[i+1:]...)
				resetViewIfRemoved(p)
				return nil
			}
		}
		p.Team = append(p.Team, climberID)
		return nil
	})
}

// ActivateClimber switches to the climber's individual view, adding them to
// the team if needed, and checks their preset gear and the shared essentials
// on their key.
func (s *Service) ActivateClimber(ctx context.Context, id string, climberID int) (*Plan, error) {
	preset, err := s.store.PresetGear(climberID)
	if err != nil {
		return nil, err
	}
	essentials := s.store.EssentialGear()

	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		if !p.OnTeam(climberID) {
			p.Team = append(p.Team, climberID)
		}
		p.ViewMode = ViewIndividual
		p.ActiveClimber = climberID
		packing.SelectClimber(&p.Packing, climberID, preset, essentials)
		return nil
	})
}

// ShowTeamView switches to the team view and merges every climber's
// checked items into the team list.
func (s *Service) ShowTeamView(ctx context.Context, id string) (*Plan, error) {
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		p.ViewMode = ViewTeam
		p.ActiveClimber = 0
		packing.MergeIntoTeam(&p.Packing)
		return nil
	})
}

func resetViewIfRemoved(p *Plan) {
	if p.ViewMode == ViewIndividual && !p.OnTeam(p.ActiveClimber) {
		p.ViewMode = ViewTeam
		p.ActiveClimber = 0
		packing.MergeIntoTeam(&p.Packing)
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// IsValidationError reports whether err carries field errors.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
