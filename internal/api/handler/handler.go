// Package handler provides HTTP handlers for the expedition planner API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ruthgorge/expedition/internal/api/middleware"
	"github.com/ruthgorge/expedition/internal/api/models"
	"github.com/ruthgorge/expedition/internal/api/response"
	"github.com/ruthgorge/expedition/internal/budget"
	"github.com/ruthgorge/expedition/internal/calendar"
	"github.com/ruthgorge/expedition/internal/document"
	"github.com/ruthgorge/expedition/internal/itinerary"
	"github.com/ruthgorge/expedition/internal/mapview"
	"github.com/ruthgorge/expedition/internal/packing"
	"github.com/ruthgorge/expedition/internal/plan"
	"github.com/ruthgorge/expedition/internal/reference"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// decodeJSON decodes the request body into dest and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return false
	}
	return true
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	if verr, ok := plan.IsValidationError(err); ok {
		response.BadRequest(w, r, "validation failed", verr.Errors)
		return
	}

	switch {
	case errors.Is(err, plan.ErrPlanNotFound),
		errors.Is(err, reference.ErrRouteNotFound),
		errors.Is(err, reference.ErrClimberNotFound),
		errors.Is(err, reference.ErrPackingItemNotFound),
		errors.Is(err, reference.ErrBudgetItemNotFound),
		errors.Is(err, packing.ErrCustomItemNotFound),
		errors.Is(err, budget.ErrCustomItemNotFound),
		errors.Is(err, itinerary.ErrActivityNotFound),
		errors.Is(err, mapview.ErrMarkerNotFound),
		errors.Is(err, document.ErrPageOutOfRange):
		response.NotFound(w, r, err.Error())
	case errors.Is(err, itinerary.ErrConfirmationRequired),
		errors.Is(err, itinerary.ErrInvalidTransition),
		errors.Is(err, budget.ErrItemNotSelected):
		response.Conflict(w, r, err.Error())
	case errors.Is(err, itinerary.ErrInvalidMode),
		errors.Is(err, itinerary.ErrInvalidActivityType),
		errors.Is(err, itinerary.ErrInvalidDate),
		errors.Is(err, packing.ErrNameRequired),
		errors.Is(err, budget.ErrNameRequired):
		response.BadRequest(w, r, err.Error(), nil)
	case errors.Is(err, document.ErrNotReady),
		errors.Is(err, document.ErrNoDocumentSource):
		response.ServiceUnavailable(w, r, err.Error())
	default:
		log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		response.InternalError(w, r, "internal server error")
	}
}

// intParam parses an integer path or query value.
func intParam(w http.ResponseWriter, r *http.Request, field, value string) (int, bool) {
	n, err := strconv.Atoi(value)
	if err != nil {
		response.BadRequest(w, r, "validation failed", []models.FieldError{{
			Field:   field,
			Message: "must be an integer",
			Code:    "invalid_integer",
		}})
		return 0, false
	}
	return n, true
}

// boolQuery parses an optional boolean query parameter.
func boolQuery(w http.ResponseWriter, r *http.Request, name string, def bool) (bool, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		response.BadRequest(w, r, "validation failed", []models.FieldError{{
			Field:   name,
			Message: "must be true or false",
			Code:    "invalid_boolean",
		}})
		return false, false
	}
	return b, true
}

func dayPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := itinerary.FormatDay(*t)
	return &s
}

func toDateRange(d calendar.Dates) models.DateRange {
	return models.DateRange{Start: dayPtr(d.Start), End: dayPtr(d.End)}
}

func toPlan(p *plan.Plan) models.Plan {
	return models.Plan{
		ID:              p.ID,
		RouteIDs:        p.Routes,
		Dates:           toDateRange(p.Dates),
		DurationDays:    calendar.Duration(p.Dates),
		Team:            p.Team,
		ViewMode:        string(p.ViewMode),
		ActiveClimberID: p.ActiveClimber,
		Persons:         p.Persons,
		CheckedItems:    len(p.Packing.CheckedKeys()),
		Activities:      len(p.Activities),
		EditorMode:      string(p.Editor.Mode),
		CreatedAt:       models.Timestamp(p.CreatedAt),
		UpdatedAt:       models.Timestamp(p.UpdatedAt),
	}
}
