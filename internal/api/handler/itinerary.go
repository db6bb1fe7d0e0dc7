package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ruthgorge/expedition/internal/api/models"
	"github.com/ruthgorge/expedition/internal/api/response"
	"github.com/ruthgorge/expedition/internal/calendar"
	"github.com/ruthgorge/expedition/internal/itinerary"
	"github.com/ruthgorge/expedition/internal/plan"
)

// ItineraryHandler handles the calendar, itinerary and activity editor.
type ItineraryHandler struct {
	service *plan.Service
	logger  zerolog.Logger
	now     func() time.Time
}

// NewItineraryHandler creates a new ItineraryHandler.
func NewItineraryHandler(service *plan.Service, logger zerolog.Logger) *ItineraryHandler {
	return &ItineraryHandler{service: service, logger: logger, now: time.Now}
}

type monthRef struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

type calendarResponse struct {
	Year         int              `json:"year"`
	Month        time.Month       `json:"month"`
	MonthName    string           `json:"monthName"`
	Prev         monthRef         `json:"prev"`
	Next         monthRef         `json:"next"`
	Dates        models.DateRange `json:"dates"`
	DurationDays int              `json:"durationDays"`
	Cells        []calendar.Cell  `json:"cells"`
}

// Calendar handles GET /v1/plans/{planId}/calendar?year=&month= - a 42-cell
// month grid. Without parameters it opens on the start month, or the
// current month when no start date is set.
func (h *ItineraryHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "planId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	today := h.now()
	ref := today
	if p.Dates.Start != nil {
		ref = *p.Dates.Start
	}
	year, month := ref.Year(), ref.Month()

	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		y, ok := intParam(w, r, "year", v)
		if !ok {
			return
		}
		year = y
	}
	if v := q.Get("month"); v != "" {
		m, ok := intParam(w, r, "month", v)
		if !ok {
			return
		}
		if m < 1 || m > 12 {
			response.BadRequest(w, r, "validation failed", []models.FieldError{{
				Field:   "month",
				Message: "must be between 1 and 12",
				Code:    "out_of_range",
			}})
			return
		}
		month = time.Month(m)
	}

	py, pm := calendar.Prev(year, month)
	ny, nm := calendar.Next(year, month)
	response.JSON(w, r, http.StatusOK, calendarResponse{
		Year:         year,
		Month:        month,
		MonthName:    month.String(),
		Prev:         monthRef{Year: py, Month: pm},
		Next:         monthRef{Year: ny, Month: nm},
		Dates:        toDateRange(p.Dates),
		DurationDays: calendar.Duration(p.Dates),
		Cells:        calendar.MonthGrid(year, month, today, p.Dates, p.Activities),
	})
}

type itineraryResponse struct {
	Activities []itinerary.Activity `json:"activities"`
	Editor     itinerary.Editor     `json:"editor"`
	Meta       models.ListMeta      `json:"meta"`
}

func newItineraryResponse(p *plan.Plan, activities []itinerary.Activity) itineraryResponse {
	if activities == nil {
		activities = []itinerary.Activity{}
	}
	return itineraryResponse{
		Activities: activities,
		Editor:     p.Editor,
		Meta:       models.ListMeta{Count: len(activities)},
	}
}

// ListActivities handles GET /v1/plans/{planId}/itinerary?day=.
func (h *ItineraryHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "planId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	activities := p.Activities
	if day := r.URL.Query().Get("day"); day != "" {
		if _, err := itinerary.ParseDay(day); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		activities = itinerary.ForDay(p.Activities, day)
	}
	response.JSON(w, r, http.StatusOK, newItineraryResponse(p, activities))
}

// Generate handles POST /v1/plans/{planId}/itinerary/generate. Mode defaults
// to replace; replacing manual activities needs confirm=true.
func (h *ItineraryHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var input models.GenerateItineraryRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &input) {
		return
	}
	p, err := h.service.GenerateItinerary(r.Context(), chi.URLParam(r, "planId"), itinerary.Mode(input.Mode), input.Confirm)
	h.respond(w, r, p, err)
}

// Editor handles GET /v1/plans/{planId}/itinerary/editor.
func (h *ItineraryHandler) Editor(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "planId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, p.Editor)
}

// OpenEditor handles POST /v1/plans/{planId}/itinerary/editor - open a blank
// draft on a day or load an existing activity.
func (h *ItineraryHandler) OpenEditor(w http.ResponseWriter, r *http.Request) {
	var input models.OpenEditorRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	planID := chi.URLParam(r, "planId")
	var (
		p   *plan.Plan
		err error
	)
	switch {
	case input.ActivityID != "" && input.Day == "":
		p, err = h.service.OpenActivityEdit(r.Context(), planID, input.ActivityID)
	case input.Day != "" && input.ActivityID == "":
		p, err = h.service.OpenActivityCreate(r.Context(), planID, input.Day)
	default:
		response.BadRequest(w, r, "validation failed", []models.FieldError{{
			Field:   "day",
			Message: "exactly one of day and activityId is required",
			Code:    "one_of",
		}})
		return
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, p.Editor)
}

// UpdateDraft handles PUT /v1/plans/{planId}/itinerary/editor/draft.
func (h *ItineraryHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var input itinerary.Draft
	if !decodeJSON(w, r, &input) {
		return
	}
	p, err := h.service.UpdateActivityDraft(r.Context(), chi.URLParam(r, "planId"), input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, p.Editor)
}

// SaveActivity handles POST /v1/plans/{planId}/itinerary/editor/save.
func (h *ItineraryHandler) SaveActivity(w http.ResponseWriter, r *http.Request) {
	_, saved, err := h.service.SaveActivity(r.Context(), chi.URLParam(r, "planId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, saved)
}

// CancelEdit handles POST /v1/plans/{planId}/itinerary/editor/cancel.
func (h *ItineraryHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.CancelActivityEdit(r.Context(), chi.URLParam(r, "planId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, p.Editor)
}

// DeleteActivity handles POST /v1/plans/{planId}/itinerary/editor/delete.
func (h *ItineraryHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.DeleteActivity(r.Context(), chi.URLParam(r, "planId"))
	h.respond(w, r, p, err)
}

func (h *ItineraryHandler) respond(w http.ResponseWriter, r *http.Request, p *plan.Plan, err error) {
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, newItineraryResponse(p, p.Activities))
}
