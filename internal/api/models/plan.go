package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// SetRoutesRequest replaces the selected routes.
type SetRoutesRequest struct {
	RouteIDs []string `json:"routeIds"`
}

// SetTeamRequest replaces the selected team.
type SetTeamRequest struct {
	ClimberIDs []int `json:"climberIds"`
}

// SetDatesRequest replaces the expedition dates. Either end may be null or
// empty to clear it. Dates are parsed leniently ("2025-05-01",
// "May 1, 2025", "05/01/2025") and truncated to the day in UTC.
type SetDatesRequest struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// Parse converts the request into day-precision times.
func (r SetDatesRequest) Parse() (start, end *time.Time, errs []FieldError) {
	start, errs = parseDay("start", r.Start, errs)
	end, errs = parseDay("end", r.End, errs)
	return start, end, errs
}

func parseDay(field string, s *string, errs []FieldError) (*time.Time, []FieldError) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, errs
	}
	t, err := dateparse.ParseIn(strings.TrimSpace(*s), time.UTC)
	if err != nil {
		return nil, append(errs, FieldError{
			Field:   field,
			Message: fmt.Sprintf("unrecognized date %q", *s),
			Code:    "invalid_date",
		})
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day, errs
}

// DateRange is the expedition range as YYYY-MM-DD strings.
type DateRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// Plan is the selection state of a planning session.
type Plan struct {
	ID              string    `json:"id"`
	RouteIDs        []string  `json:"routeIds"`
	Dates           DateRange `json:"dates"`
	DurationDays    int       `json:"durationDays"`
	Team            []int     `json:"team"`
	ViewMode        string    `json:"viewMode"`
	ActiveClimberID int       `json:"activeClimberId,omitempty"`
	Persons         int       `json:"persons"`
	CheckedItems    int       `json:"checkedItems"`
	Activities      int       `json:"activities"`
	EditorMode      string    `json:"editorMode"`
	CreatedAt       Timestamp `json:"createdAt"`
	UpdatedAt       Timestamp `json:"updatedAt"`
}

// CheckItemRequest sets the checked flag of one packing entry. A nil
// Checked toggles the current value. ItemID, when set, names a catalog item
// and replaces Category and Item.
type CheckItemRequest struct {
	ItemID    string `json:"itemId,omitempty"`
	Category  string `json:"category"`
	Item      string `json:"item"`
	ClimberID int    `json:"climberId"`
	Checked   *bool  `json:"checked"`
}

// CheckEssentialsRequest checks every essential item for one key owner.
type CheckEssentialsRequest struct {
	ClimberID int `json:"climberId"`
}

// PackingItemRequest adds a custom packing item. Weight is in grams.
type PackingItemRequest struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Essential bool   `json:"essential"`
	Weight    int    `json:"weight"`
	Notes     string `json:"notes"`
}

// BudgetItemRequest adds a custom budget item. Estimate is the unit cost in USD.
type BudgetItemRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Estimate float64 `json:"estimate"`
	Notes    string  `json:"notes"`
	Quantity int     `json:"quantity"`
}

// QuantityRequest sets a quantity or steps it by Delta when Quantity is nil.
type QuantityRequest struct {
	Quantity *int `json:"quantity"`
	Delta    int  `json:"delta"`
}

// PersonsRequest sets the number of people sharing the budget.
type PersonsRequest struct {
	Persons int `json:"persons"`
}

// GenerateItineraryRequest regenerates the itinerary.
type GenerateItineraryRequest struct {
	Mode    string `json:"mode"`
	Confirm bool   `json:"confirm"`
}

// OpenEditorRequest opens the activity editor. Day opens a blank draft;
// ActivityID loads an existing activity.
type OpenEditorRequest struct {
	Day        string `json:"day"`
	ActivityID string `json:"activityId"`
}
