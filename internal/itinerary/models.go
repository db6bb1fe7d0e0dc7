// Package itinerary lays out expedition days from selected routes and manages
// the activity editor.
package itinerary

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Itinerary errors.
var (
	ErrActivityNotFound     = errors.New("activity not found")
	ErrInvalidActivityType  = errors.New("invalid activity type")
	ErrInvalidDate          = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidTransition    = errors.New("invalid editor transition")
	ErrConfirmationRequired = errors.New("replacing the itinerary discards manual activities and requires confirmation")
	ErrInvalidMode          = errors.New("invalid regeneration mode")
)

// DayLayout is the wire format of activity dates.
const DayLayout = "2006-01-02"

// ActivityType classifies an activity.
type ActivityType string

// Activity types.
const (
	TypeTravel     ActivityType = "travel"
	TypeClimb      ActivityType = "climb"
	TypeRest       ActivityType = "rest"
	TypeApproach   ActivityType = "approach"
	TypeWeatherDay ActivityType = "weather-day"
	TypeFlyIn      ActivityType = "fly-in"
	TypeFlyOut     ActivityType = "fly-out"
)

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	switch t {
	case TypeTravel, TypeClimb, TypeRest, TypeApproach, TypeWeatherDay, TypeFlyIn, TypeFlyOut:
		return true
	}
	return false
}

// Source records who created an activity.
type Source string

// Activity sources.
const (
	SourceGenerated Source = "generated"
	SourceManual    Source = "manual"
)

// Activity is one entry on the expedition calendar.
type Activity struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	RouteID     string       `json:"routeId,omitempty"`
	Source      Source       `json:"source"`
}

// IDFunc produces activity ids.
type IDFunc func() string

// NewID returns a random activity id.
func NewID() string {
	return "act_" + uuid.New().String()[:22]
}

// ParseDay parses a YYYY-MM-DD string into UTC midnight.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDay formats t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// Day truncates t to UTC midnight of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ForDay returns the activities on day in list order.
func ForDay(activities []Activity, day string) []Activity {
	out := []Activity{}
	for _, a := range activities {
		if a.Date == day {
			out = append(out, a)
		}
	}
	return out
}

// SortByDate orders activities by date, keeping list order within a day.
func SortByDate(activities []Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date < activities[j].Date
	})
}

// HasManual reports whether any activity was created by hand.
func HasManual(activities []Activity) bool {
	for _, a := range activities {
		if a.Source == SourceManual {
			return true
		}
	}
	return false
}
