// Package calendar builds month grids over expedition dates and activities.
package calendar

import (
	"time"

	"github.com/ruthgorge/expedition/internal/itinerary"
)

// GridSize is six weeks of days.
const GridSize = 42

// Dates is the optional expedition range. Both ends are UTC midnights.
type Dates struct {
	Start *time.Time
	End   *time.Time
}

// Complete reports whether both ends are set.
func (d Dates) Complete() bool {
	return d.Start != nil && d.End != nil
}

// Contains reports whether day falls inside the inclusive range.
func (d Dates) Contains(day time.Time) bool {
	if !d.Complete() {
		return false
	}
	day = itinerary.Day(day)
	return !day.Before(itinerary.Day(*d.Start)) && !day.After(itinerary.Day(*d.End))
}

// Cell is one day of the grid.
type Cell struct {
	Date           string               `json:"date"`
	Day            int                  `json:"day"`
	IsCurrentMonth bool                 `json:"isCurrentMonth"`
	InRange        bool                 `json:"inRange"`
	IsToday        bool                 `json:"isToday"`
	Activities     []itinerary.Activity `json:"activities"`
}

// MonthGrid returns 42 cells starting on the Sunday on or before the first of
// the month.
func MonthGrid(year int, month time.Month, today time.Time, dates Dates, activities []itinerary.Activity) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	todayStr := itinerary.FormatDay(today)

	byDay := make(map[string][]itinerary.Activity)
	for _, a := range activities {
		byDay[a.Date] = append(byDay[a.Date], a)
	}

	cells := make([]Cell, 0, GridSize)
	for i := 0; i < GridSize; i++ {
		d := start.AddDate(0, 0, i)
		key := itinerary.FormatDay(d)
		acts := byDay[key]
		if acts == nil {
			acts = []itinerary.Activity{}
		}
		cells = append(cells, Cell{
			Date:           key,
			Day:            d.Day(),
			IsCurrentMonth: d.Month() == first.Month(),
			InRange:        dates.Contains(d),
			IsToday:        key == todayStr,
			Activities:     acts,
		})
	}
	return cells
}

// Prev returns the month before, wrapping the year.
func Prev(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// Next returns the month after, wrapping the year.
func Next(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// Duration returns the inclusive day count of the range, or 0 when either end
// is missing or the end precedes the start.
func Duration(d Dates) int {
	if !d.Complete() {
		return 0
	}
	start, end := itinerary.Day(*d.Start), itinerary.Day(*d.End)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// DaysUntil returns whole days from today to the start date, or nil when no
// start is set. It is negative once the start has passed.
func DaysUntil(d Dates, today time.Time) *int {
	if d.Start == nil {
		return nil
	}
	n := int(itinerary.Day(*d.Start).Sub(itinerary.Day(today)).Hours() / 24)
	return &n
}
