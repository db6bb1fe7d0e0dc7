package handler

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ruthgorge/expedition/internal/api/models"
	"github.com/ruthgorge/expedition/internal/api/response"
	"github.com/ruthgorge/expedition/internal/budget"
	"github.com/ruthgorge/expedition/internal/export"
	"github.com/ruthgorge/expedition/internal/plan"
)

// Export media types.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// BudgetHandler handles the budget calculator.
type BudgetHandler struct {
	service *plan.Service
	logger  zerolog.Logger
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(service *plan.Service, logger zerolog.Logger) *BudgetHandler {
	return &BudgetHandler{service: service, logger: logger}
}

type budgetResponse struct {
	budget.Summary
	DurationDays int                 `json:"durationDays"`
	CustomItems  []budget.CustomItem `json:"customItems"`
}

// GetBudget handles GET /v1/plans/{planId}/budget.
func (h *BudgetHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "planId"))
	h.respond(w, r, p, err)
}

// ToggleItem handles POST /v1/plans/{planId}/budget/items/{itemId}/toggle.
func (h *BudgetHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.ToggleBudgetItem(r.Context(), chi.URLParam(r, "planId"), chi.URLParam(r, "itemId"))
	h.respond(w, r, p, err)
}

// SetQuantity handles PUT /v1/plans/{planId}/budget/items/{itemId}/quantity.
// A body with quantity sets it; a body with only delta steps it.
func (h *BudgetHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var input models.QuantityRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	planID, itemID := chi.URLParam(r, "planId"), chi.URLParam(r, "itemId")
	var (
		p   *plan.Plan
		err error
	)
	if input.Quantity != nil {
		p, err = h.service.SetBudgetQuantity(r.Context(), planID, itemID, *input.Quantity)
	} else {
		p, err = h.service.StepBudgetQuantity(r.Context(), planID, itemID, input.Delta)
	}
	h.respond(w, r, p, err)
}

// SetPersons handles PUT /v1/plans/{planId}/budget/persons.
func (h *BudgetHandler) SetPersons(w http.ResponseWriter, r *http.Request) {
	var input models.PersonsRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	p, err := h.service.SetPersons(r.Context(), chi.URLParam(r, "planId"), input.Persons)
	h.respond(w, r, p, err)
}

// AddCustomItem handles POST /v1/plans/{planId}/budget/custom-items.
func (h *BudgetHandler) AddCustomItem(w http.ResponseWriter, r *http.Request) {
	var input models.BudgetItemRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	planID := chi.URLParam(r, "planId")
	item, err := h.service.AddBudgetItem(r.Context(), planID, budget.CustomItem{
		Name:     input.Name,
		Category: input.Category,
		Estimate: input.Estimate,
		Notes:    input.Notes,
	}, input.Quantity)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.Created(w, r, "/v1/plans/"+planID+"/budget/custom-items/"+item.ID, item)
}

// DeleteCustomItem handles DELETE /v1/plans/{planId}/budget/custom-items/{itemId}.
func (h *BudgetHandler) DeleteCustomItem(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.DeleteBudgetItem(r.Context(), chi.URLParam(r, "planId"), chi.URLParam(r, "itemId")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.NoContent(w, r)
}

// ExportCSV handles GET /v1/plans/{planId}/budget/export.csv.
func (h *BudgetHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	sum, err := h.service.Budget(r.Context(), chi.URLParam(r, "planId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteBudgetCSV(&buf, sum.Summary); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.Attachment(w, r, ContentTypeCSV, "expedition-budget.csv", buf.Bytes())
}

// ExportXLSX handles GET /v1/plans/{planId}/budget/export.xlsx.
func (h *BudgetHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	sum, err := h.service.Budget(r.Context(), chi.URLParam(r, "planId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteBudgetXLSX(&buf, sum.Summary, h.service.Store().BudgetNotes()); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.Attachment(w, r, ContentTypeXLSX, "expedition-budget.xlsx", buf.Bytes())
}

func (h *BudgetHandler) respond(w http.ResponseWriter, r *http.Request, p *plan.Plan, err error) {
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	sum := h.service.BudgetOf(r.Context(), p)
	custom := p.Budget.CustomItems
	if custom == nil {
		custom = []budget.CustomItem{}
	}
	response.JSON(w, r, http.StatusOK, budgetResponse{
		Summary:      sum.Summary,
		DurationDays: sum.DurationDays,
		CustomItems:  custom,
	})
}
