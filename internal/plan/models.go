// Package plan holds one user's expedition planning session.
package plan

import (
	"errors"
	"time"

	"github.com/ruthgorge/expedition/internal/budget"
	"github.com/ruthgorge/expedition/internal/calendar"
	"github.com/ruthgorge/expedition/internal/itinerary"
	"github.com/ruthgorge/expedition/internal/packing"
)

// ErrPlanNotFound is returned for unknown or expired plan ids.
var ErrPlanNotFound = errors.New("plan not found")

// ViewMode selects whose packing list is shown.
type ViewMode string

// View modes.
const (
	ViewTeam       ViewMode = "team"
	ViewIndividual ViewMode = "individual"
)

// Plan is the selection state of a session.
type Plan struct {
	ID            string
	Routes        []string
	Dates         calendar.Dates
	Team          []int
	ViewMode      ViewMode
	ActiveClimber int
	Packing       packing.State
	Budget        budget.Selection
	Persons       int
	Activities    []itinerary.Activity
	Editor        itinerary.Editor
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// New returns an empty plan with default settings.
func New(id string, now time.Time) *Plan {
	return &Plan{
		ID:         id,
		Routes:     []string{},
		Team:       []int{},
		ViewMode:   ViewTeam,
		Packing:    packing.NewState(),
		Budget:     budget.NewSelection(),
		Persons:    1,
		Activities: []itinerary.Activity{},
		Editor:     itinerary.NewEditor(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Clone returns a deep copy.
func (p *Plan) Clone() *Plan {
	cpy := *p
	cpy.Routes = append([]string{}, p.Routes...)
	cpy.Team = append([]int{}, p.Team...)
	cpy.Activities = append([]itinerary.Activity{}, p.Activities...)
	cpy.Packing = p.Packing.Clone()
	cpy.Budget = p.Budget.Clone()
	if p.Dates.Start != nil {
		s := *p.Dates.Start
		cpy.Dates.Start = &s
	}
	if p.Dates.End != nil {
		e := *p.Dates.End
		cpy.Dates.End = &e
	}
	if p.Editor.Draft != nil {
		d := *p.Editor.Draft
		cpy.Editor.Draft = &d
	}
	return &cpy
}

// HasRoute reports whether id is selected.
func (p *Plan) HasRoute(id string) bool {
	for _, r := range p.Routes {
		if r == id {
			return true
		}
	}
	return false
}

// OnTeam reports whether the climber is selected.
func (p *Plan) OnTeam(id int) bool {
	for _, c := range p.Team {
		if c == id {
			return true
		}
	}
	return false
}
