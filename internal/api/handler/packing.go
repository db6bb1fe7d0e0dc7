package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ruthgorge/expedition/internal/api/models"
	"github.com/ruthgorge/expedition/internal/api/response"
	"github.com/ruthgorge/expedition/internal/export"
	"github.com/ruthgorge/expedition/internal/packing"
	"github.com/ruthgorge/expedition/internal/plan"
	"github.com/ruthgorge/expedition/internal/reference"
)

// PackingHandler handles the packing checklist.
type PackingHandler struct {
	service *plan.Service
	logger  zerolog.Logger
}

// NewPackingHandler creates a new PackingHandler.
func NewPackingHandler(service *plan.Service, logger zerolog.Logger) *PackingHandler {
	return &PackingHandler{service: service, logger: logger}
}

type packingResponse struct {
	ViewMode     plan.ViewMode             `json:"viewMode"`
	Climber      *reference.ClimberProfile `json:"climber,omitempty"`
	Categories   []packing.CategoryView    `json:"categories"`
	Counts       packing.Counts            `json:"counts"`
	WeightGrams  int                       `json:"weightGrams"`
	WeightPounds float64                   `json:"weightPounds"`
	Unresolved   []string                  `json:"unresolvedGear,omitempty"`
	CustomItems  []packing.CustomItem      `json:"customItems"`
}

// GetPacking handles GET /v1/plans/{planId}/packing?view=&climberId=&search=&essentialOnly=.
// Without view the plan's current view is used.
func (h *PackingHandler) GetPacking(w http.ResponseWriter, r *http.Request) {
	sum, ok := h.view(w, r)
	if !ok {
		return
	}
	response.JSON(w, r, http.StatusOK, packingResponse{
		ViewMode:     sum.ViewMode,
		Climber:      sum.Climber,
		Categories:   sum.Categories,
		Counts:       sum.Counts,
		WeightGrams:  sum.WeightGrams,
		WeightPounds: sum.WeightPounds,
		Unresolved:   sum.Unresolved,
		CustomItems:  sum.CustomItems,
	})
}

// ExportCSV handles GET /v1/plans/{planId}/packing/export.csv - the printable
// checklist for the requested view.
func (h *PackingHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	sum, ok := h.view(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WritePackingCSV(&buf, sum.Categories); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.Attachment(w, r, ContentTypeCSV, "expedition-packing-list.csv", buf.Bytes())
}

func (h *PackingHandler) view(w http.ResponseWriter, r *http.Request) (*plan.PackingSummary, bool) {
	q := r.URL.Query()
	mode := plan.ViewMode(q.Get("view"))

	climberID := packing.TeamClimberID
	if v := q.Get("climberId"); v != "" {
		id, ok := intParam(w, r, "climberId", v)
		if !ok {
			return nil, false
		}
		climberID = id
		if mode == "" {
			mode = plan.ViewIndividual
		}
	}

	essentialOnly, ok := boolQuery(w, r, "essentialOnly", false)
	if !ok {
		return nil, false
	}

	sum, err := h.service.PackingView(r.Context(), chi.URLParam(r, "planId"), mode, climberID, packing.Filter{
		Search:        q.Get("search"),
		EssentialOnly: essentialOnly,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return nil, false
	}
	return sum, true
}

type checkResponse struct {
	Key     packing.Key `json:"key"`
	Checked bool        `json:"checked"`
}

// CheckItem handles POST /v1/plans/{planId}/packing/check. The entry is
// named by itemId or by category and item; without checked it is toggled.
func (h *PackingHandler) CheckItem(w http.ResponseWriter, r *http.Request) {
	var input models.CheckItemRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	key := packing.Key{Category: input.Category, Item: input.Item, ClimberID: input.ClimberID}
	if input.ItemID != "" {
		ref, err := h.service.Store().PackingItemRef(input.ItemID)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		key.Category, key.Item = ref.Category, ref.Name
	}
	planID := chi.URLParam(r, "planId")
	var (
		p   *plan.Plan
		err error
	)
	if input.Checked != nil {
		p, err = h.service.CheckItem(r.Context(), planID, key, *input.Checked)
	} else {
		p, err = h.service.ToggleItem(r.Context(), planID, key)
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, checkResponse{Key: key, Checked: p.Packing.IsChecked(key)})
}

// CheckEssentials handles POST /v1/plans/{planId}/packing/essentials.
func (h *PackingHandler) CheckEssentials(w http.ResponseWriter, r *http.Request) {
	var input models.CheckEssentialsRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &input) {
		return
	}
	p, err := h.service.CheckEssentials(r.Context(), chi.URLParam(r, "planId"), input.ClimberID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, toPlan(p))
}

// ClearChecks handles DELETE /v1/plans/{planId}/packing/checks.
func (h *PackingHandler) ClearChecks(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.ClearChecks(r.Context(), chi.URLParam(r, "planId")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.NoContent(w, r)
}

// AddCustomItem handles POST /v1/plans/{planId}/packing/custom-items.
func (h *PackingHandler) AddCustomItem(w http.ResponseWriter, r *http.Request) {
	var input models.PackingItemRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.Weight < 0 {
		response.BadRequest(w, r, "validation failed", []models.FieldError{{
			Field:   "weight",
			Message: "must not be negative, got " + strconv.Itoa(input.Weight),
			Code:    "out_of_range",
		}})
		return
	}

	planID := chi.URLParam(r, "planId")
	item, err := h.service.AddPackingItem(r.Context(), planID, packing.CustomItem{
		Name:      input.Name,
		Category:  input.Category,
		Essential: input.Essential,
		Weight:    input.Weight,
		Notes:     input.Notes,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.Created(w, r, "/v1/plans/"+planID+"/packing/custom-items/"+item.ID, item)
}

// DeleteCustomItem handles DELETE /v1/plans/{planId}/packing/custom-items/{itemId}.
func (h *PackingHandler) DeleteCustomItem(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.DeletePackingItem(r.Context(), chi.URLParam(r, "planId"), chi.URLParam(r, "itemId")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.NoContent(w, r)
}
