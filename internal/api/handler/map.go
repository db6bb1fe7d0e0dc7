package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ruthgorge/expedition/internal/api/response"
	"github.com/ruthgorge/expedition/internal/mapview"
	"github.com/ruthgorge/expedition/internal/plan"
)

// MapHandler serves the map contract.
type MapHandler struct {
	service *plan.Service
	logger  zerolog.Logger
}

// NewMapHandler creates a new MapHandler.
func NewMapHandler(service *plan.Service, logger zerolog.Logger) *MapHandler {
	return &MapHandler{service: service, logger: logger}
}

// PlanMap handles GET /v1/plans/{planId}/map?showAll=&showLandingZones=.
// Both flags default to true.
func (h *MapHandler) PlanMap(w http.ResponseWriter, r *http.Request) {
	showAll, ok := boolQuery(w, r, "showAll", true)
	if !ok {
		return
	}
	showZones, ok := boolQuery(w, r, "showLandingZones", true)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), chi.URLParam(r, "planId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	view := mapview.Build(h.service.Store(), p.Routes, mapview.Options{
		ShowAllRoutes:    showAll,
		ShowLandingZones: showZones,
	})
	response.JSON(w, r, http.StatusOK, view)
}

// MarkerInfo handles GET /v1/map/markers/{markerId}?planId= - the info panel
// of a clicked marker. With a planId the route's selected flag is filled in.
func (h *MapHandler) MarkerInfo(w http.ResponseWriter, r *http.Request) {
	var selected []string
	if planID := r.URL.Query().Get("planId"); planID != "" {
		p, err := h.service.Get(r.Context(), planID)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		selected = p.Routes
	}

	info, err := mapview.Lookup(h.service.Store(), chi.URLParam(r, "markerId"), selected)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, info)
}
