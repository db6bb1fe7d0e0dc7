package itinerary

import (
	"fmt"
	"strings"
	"time"

	"github.com/ruthgorge/expedition/internal/reference"
)

// Mode selects how a generated itinerary is combined with the current one.
type Mode string

// Regeneration modes.
const (
	ModeReplace Mode = "replace"
	ModeMerge   Mode = "merge"
)

const defaultLandingZone = "Ruth Gorge basecamp"

// ClimbDays returns 2 when the grade string contains "VI", else 1.
func ClimbDays(grade string) int {
	if strings.Contains(grade, "VI") {
		return 2
	}
	return 1
}

// Generate lays out the expedition starting on start: arrival, travel to
// Talkeetna, fly-in and an acclimatization day, then approach, climb and rest
// days for each route in order, then a weather day, fly-out and travel home.
// It returns nil when start is zero or routes is empty.
func Generate(start time.Time, routes []reference.Route, ids IDFunc) []Activity {
	if start.IsZero() || len(routes) == 0 {
		return nil
	}
	if ids == nil {
		ids = NewID
	}

	day := Day(start)
	offset := 0
	var out []Activity
	add := func(typ ActivityType, title, desc, routeID string) {
		out = append(out, Activity{
			ID:          ids(),
			Date:        FormatDay(day.AddDate(0, 0, offset)),
			Type:        typ,
			Title:       title,
			Description: desc,
			RouteID:     routeID,
			Source:      SourceGenerated,
		})
		offset++
	}

	zone := routes[0].LandingZone
	if zone == "" {
		zone = defaultLandingZone
	}

	add(TypeTravel, "Arrive in Anchorage",
		"Flight arrival, collect gear and groceries in Anchorage, overnight in town", "")
	add(TypeTravel, "Travel to Talkeetna",
		"Drive or take the train to Talkeetna, check in with the air taxi and weigh gear", "")
	add(TypeFlyIn, "Fly In to the Ruth Gorge",
		fmt.Sprintf("Glacier flight to %s, establish camp", zone), "")
	add(TypeRest, "Acclimatization Day",
		"Settle into camp, scope objectives and check snow conditions", "")

	for _, r := range routes {
		add(TypeApproach, "Approach "+r.Name, approachDescription(r), r.ID)
		for i := 1; i <= ClimbDays(r.Grade); i++ {
			add(TypeClimb, fmt.Sprintf("Climb %s Day %d", r.Name, i), climbDescription(r), r.ID)
		}
		add(TypeRest, "Rest Day", "Recover in camp, dry gear and review the next objective", "")
	}

	add(TypeWeatherDay, "Weather Contingency Day",
		"Buffer for storms or delayed flights", "")
	add(TypeFlyOut, "Fly Out to Talkeetna",
		"Break camp and fly out when the weather allows", "")
	add(TypeTravel, "Travel Home",
		"Return to Anchorage and fly home", "")

	return out
}

func approachDescription(r reference.Route) string {
	if r.Approach != "" {
		return r.Approach
	}
	return "Approach to the base of " + r.Name + " on " + r.Peak
}

func climbDescription(r reference.Route) string {
	desc := fmt.Sprintf("%s, %s on %s", r.Grade, r.TechnicalGrade, r.Peak)
	if r.Crux != "" {
		desc += ". Crux: " + r.Crux
	}
	return desc
}

// Regenerate combines the current activities with a freshly generated set.
// Replace discards everything and needs confirm when manual activities exist.
// Merge keeps manual activities and swaps the generated ones.
func Regenerate(existing, generated []Activity, mode Mode, confirm bool) ([]Activity, error) {
	switch mode {
	case ModeReplace:
		if HasManual(existing) && !confirm {
			return nil, ErrConfirmationRequired
		}
		return append([]Activity{}, generated...), nil

	case ModeMerge:
		out := make([]Activity, 0, len(existing)+len(generated))
		out = append(out, generated...)
		for _, a := range existing {
			if a.Source == SourceManual {
				out = append(out, a)
			}
		}
		SortByDate(out)
		return out, nil

	default:
		return nil, ErrInvalidMode
	}
}
