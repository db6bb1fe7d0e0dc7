package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ruthgorge/expedition/internal/api/models"
	"github.com/ruthgorge/expedition/internal/api/response"
	"github.com/ruthgorge/expedition/internal/reference"
)

// CatalogHandler serves the read-only reference catalog.
type CatalogHandler struct {
	store  *reference.Store
	logger zerolog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(store *reference.Store, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{store: store, logger: logger}
}

type routeList struct {
	Items []reference.Route `json:"items"`
	Meta  models.ListMeta   `json:"meta"`
}

// ListRoutes handles GET /v1/routes - filter the route catalog.
func (h *CatalogHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := reference.RouteFilter{
		Peak:     q.Get("peak"),
		Category: q.Get("category"),
		Type:     q.Get("type"),
		Traffic:  q.Get("traffic"),
		GradeMin: q.Get("gradeMin"),
		GradeMax: q.Get("gradeMax"),
		Search:   q.Get("search"),
	}

	var fieldErrors []models.FieldError
	for _, g := range []struct{ field, value string }{{"gradeMin", f.GradeMin}, {"gradeMax", f.GradeMax}} {
		if g.value != "" && !reference.IsGradeOption(g.value) {
			fieldErrors = append(fieldErrors, models.FieldError{
				Field:   g.field,
				Message: "unknown grade " + g.value,
				Code:    "unknown_grade",
			})
		}
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	routes := h.store.FilterRoutes(f)
	response.JSON(w, r, http.StatusOK, routeList{Items: routes, Meta: models.ListMeta{Count: len(routes)}})
}

// RouteFacets handles GET /v1/routes/facets.
func (h *CatalogHandler) RouteFacets(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.store.RouteFacets())
}

// GetRoute handles GET /v1/routes/{routeId}.
func (h *CatalogHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	route, err := h.store.Route(chi.URLParam(r, "routeId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, route)
}

type climberView struct {
	reference.ClimberProfile
	Gear reference.GearResolution `json:"gear"`
}

// ListClimbers handles GET /v1/climbers - profiles with their preset gear
// joined onto the packing catalog.
func (h *CatalogHandler) ListClimbers(w http.ResponseWriter, r *http.Request) {
	climbers := h.store.Climbers()
	out := make([]climberView, 0, len(climbers))
	for _, c := range climbers {
		gear, _ := h.store.PresetGear(c.ID)
		out = append(out, climberView{ClimberProfile: c, Gear: gear})
	}
	response.JSON(w, r, http.StatusOK, out)
}

type packingCatalog struct {
	Categories            []reference.PackingCategory `json:"categories"`
	EssentialGear         reference.GearResolution    `json:"essentialGear"`
	SpecialConsiderations []string                    `json:"specialConsiderations"`
	WeightOptimization    []string                    `json:"weightOptimization"`
}

// PackingCatalog handles GET /v1/packing/catalog.
func (h *CatalogHandler) PackingCatalog(w http.ResponseWriter, r *http.Request) {
	special, weight := h.store.PackingGuidance()
	response.JSON(w, r, http.StatusOK, packingCatalog{
		Categories:            h.store.PackingCategories(),
		EssentialGear:         h.store.EssentialGear(),
		SpecialConsiderations: special,
		WeightOptimization:    weight,
	})
}

type budgetCatalog struct {
	Groups []reference.BudgetGroup `json:"groups"`
	Notes  []string                `json:"notes"`
}

// BudgetItems handles GET /v1/budget/items.
func (h *CatalogHandler) BudgetItems(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, budgetCatalog{
		Groups: h.store.BudgetGroups(),
		Notes:  h.store.BudgetNotes(),
	})
}

type logisticsResponse struct {
	reference.Logistics
	LandingZones []reference.ServedLandingZone `json:"landingZones"`
}

// Logistics handles GET /v1/logistics.
func (h *CatalogHandler) Logistics(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, logisticsResponse{
		Logistics:    h.store.Logistics(),
		LandingZones: h.store.LandingZones(),
	})
}

// Seasonal handles GET /v1/seasonal.
func (h *CatalogHandler) Seasonal(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.store.Seasonal())
}

// ClimateChart handles GET /v1/seasonal/climate-chart - twelve parallel
// monthly series for the chart widget.
func (h *CatalogHandler) ClimateChart(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.store.Seasonal().ClimateChart)
}

// VolcanicRisk handles GET /v1/volcanic-risk.
func (h *CatalogHandler) VolcanicRisk(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.store.VolcanicRisk())
}
