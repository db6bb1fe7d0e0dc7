package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ruthgorge/expedition/internal/api/models"
	"github.com/ruthgorge/expedition/internal/api/response"
	"github.com/ruthgorge/expedition/internal/calendar"
	"github.com/ruthgorge/expedition/internal/packing"
	"github.com/ruthgorge/expedition/internal/plan"
	"github.com/ruthgorge/expedition/internal/reference"
)

// FeaturedRouteIDs are shown on the dashboard regardless of selection.
var FeaturedRouteIDs = []string{"ham-and-eggs", "blue-collar-beatdown", "right-couloir"}

// PlanHandler handles plan lifecycle, route, date and team endpoints.
type PlanHandler struct {
	service *plan.Service
	logger  zerolog.Logger
	now     func() time.Time
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(service *plan.Service, logger zerolog.Logger) *PlanHandler {
	return &PlanHandler{service: service, logger: logger, now: time.Now}
}

// CreatePlan handles POST /v1/plans - start a planning session.
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Create(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.Created(w, r, "/v1/plans/"+p.ID, toPlan(p))
}

// GetPlan handles GET /v1/plans/{planId}.
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "planId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, toPlan(p))
}

// DeletePlan handles DELETE /v1/plans/{planId} - reset the session.
func (h *PlanHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "planId")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.NoContent(w, r)
}

// SetRoutes handles PUT /v1/plans/{planId}/routes.
func (h *PlanHandler) SetRoutes(w http.ResponseWriter, r *http.Request) {
	var input models.SetRoutesRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	h.respond(w, r)(h.service.SetRoutes(r.Context(), chi.URLParam(r, "planId"), input.RouteIDs))
}

// ToggleRoute handles POST /v1/plans/{planId}/routes/{routeId}/toggle.
func (h *PlanHandler) ToggleRoute(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.service.ToggleRoute(r.Context(), chi.URLParam(r, "planId"), chi.URLParam(r, "routeId")))
}

// SetDates handles PUT /v1/plans/{planId}/dates.
func (h *PlanHandler) SetDates(w http.ResponseWriter, r *http.Request) {
	var input models.SetDatesRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	start, end, fieldErrors := input.Parse()
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}
	h.respond(w, r)(h.service.SetDates(r.Context(), chi.URLParam(r, "planId"), start, end))
}

// SetTeam handles PUT /v1/plans/{planId}/team.
func (h *PlanHandler) SetTeam(w http.ResponseWriter, r *http.Request) {
	var input models.SetTeamRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	h.respond(w, r)(h.service.SetTeam(r.Context(), chi.URLParam(r, "planId"), input.ClimberIDs))
}

// ToggleClimber handles POST /v1/plans/{planId}/team/{climberId}/toggle.
func (h *PlanHandler) ToggleClimber(w http.ResponseWriter, r *http.Request) {
	climberID, ok := intParam(w, r, "climberId", chi.URLParam(r, "climberId"))
	if !ok {
		return
	}
	h.respond(w, r)(h.service.ToggleClimber(r.Context(), chi.URLParam(r, "planId"), climberID))
}

// ActivateClimber handles POST /v1/plans/{planId}/team/{climberId}/activate -
// switch to the climber's individual packing view and check their gear.
func (h *PlanHandler) ActivateClimber(w http.ResponseWriter, r *http.Request) {
	climberID, ok := intParam(w, r, "climberId", chi.URLParam(r, "climberId"))
	if !ok {
		return
	}
	h.respond(w, r)(h.service.ActivateClimber(r.Context(), chi.URLParam(r, "planId"), climberID))
}

// ShowTeamView handles POST /v1/plans/{planId}/team/view - switch to the
// team packing view and merge individual checks into it.
func (h *PlanHandler) ShowTeamView(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.service.ShowTeamView(r.Context(), chi.URLParam(r, "planId")))
}

type dashboardBudget struct {
	Total     float64 `json:"total"`
	Persons   int     `json:"persons"`
	PerPerson float64 `json:"perPerson"`
}

type dashboardPacking struct {
	Total        int     `json:"total"`
	Checked      int     `json:"checked"`
	WeightGrams  int     `json:"weightGrams"`
	WeightPounds float64 `json:"weightPounds"`
}

type dashboardResponse struct {
	Plan           models.Plan                `json:"plan"`
	FeaturedRoutes []reference.Route          `json:"featuredRoutes"`
	SelectedRoutes []reference.Route          `json:"selectedRoutes"`
	Team           []reference.ClimberProfile `json:"team"`
	DaysUntilStart *int                       `json:"daysUntilStart,omitempty"`
	Budget         dashboardBudget            `json:"budget"`
	Packing        dashboardPacking           `json:"packing"`
}

// Dashboard handles GET /v1/plans/{planId}/dashboard.
func (h *PlanHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	planID := chi.URLParam(r, "planId")

	p, err := h.service.Get(ctx, planID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	weights, err := h.service.PackingView(ctx, planID, plan.ViewTeam, packing.TeamClimberID, packing.Filter{})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	store := h.service.Store()
	featured := make([]reference.Route, 0, len(FeaturedRouteIDs))
	for _, id := range FeaturedRouteIDs {
		if route, err := store.Route(id); err == nil {
			featured = append(featured, route)
		}
	}
	team := make([]reference.ClimberProfile, 0, len(p.Team))
	for _, id := range p.Team {
		if c, err := store.Climber(id); err == nil {
			team = append(team, c)
		}
	}

	sum := h.service.BudgetOf(ctx, p)
	response.JSON(w, r, http.StatusOK, dashboardResponse{
		Plan:           toPlan(p),
		FeaturedRoutes: featured,
		SelectedRoutes: h.service.SelectedRoutes(p),
		Team:           team,
		DaysUntilStart: calendar.DaysUntil(p.Dates, h.now()),
		Budget: dashboardBudget{
			Total:     sum.Total,
			Persons:   sum.Persons,
			PerPerson: sum.PerPerson,
		},
		Packing: dashboardPacking{
			Total:        weights.Counts.Total,
			Checked:      weights.Counts.Checked,
			WeightGrams:  weights.WeightGrams,
			WeightPounds: weights.WeightPounds,
		},
	})
}

// respond writes the updated plan or the mapped error.
func (h *PlanHandler) respond(w http.ResponseWriter, r *http.Request) func(*plan.Plan, error) {
	return func(p *plan.Plan, err error) {
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		response.JSON(w, r, http.StatusOK, toPlan(p))
	}
}
