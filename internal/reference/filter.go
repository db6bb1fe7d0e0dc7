package reference

import (
	"strings"
)

// GradeOptions is the ordered grade scale used for range filtering.
var GradeOptions = []string{
	"Grade I", "Grade II", "Grade III", "Grade IV", "Grade V", "Grade VI",
	"Alaska Grade I", "Alaska Grade II", "Alaska Grade III",
	"Alaska Grade IV", "Alaska Grade V", "Alaska Grade VI",
}

// RouteFilter narrows the route list. Empty fields match everything.
type RouteFilter struct {
	Peak     string
	Category string
	Type     string
	Traffic  string
	GradeMin string
	GradeMax string
	Search   string
}

// RouteFacets lists the distinct values a client can filter on.
type RouteFacets struct {
	Peaks         []string `json:"peaks"`
	Categories    []string `json:"categories"`
	Types         []string `json:"types"`
	TrafficLevels []string `json:"trafficLevels"`
	Grades        []string `json:"grades"`
}

// GradeIndex returns the position of the longest grade option contained in
// grade, or -1 when none matches.
func GradeIndex(grade string) int {
	best, bestLen := -1, 0
	for i, opt := range GradeOptions {
		if strings.Contains(grade, opt) && len(opt) > bestLen {
			best, bestLen = i, len(opt)
		}
	}
	return best
}

// IsGradeOption reports whether s is one of GradeOptions.
func IsGradeOption(s string) bool {
	for _, opt := range GradeOptions {
		if opt == s {
			return true
		}
	}
	return false
}

// FilterRoutes returns the routes matching every set field of f, in catalog order.
func (s *Store) FilterRoutes(f RouteFilter) []Route {
	out := []Route{}
	for _, r := range s.catalog.Routes {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Matches applies the filter to a single route.
func (f RouteFilter) Matches(r Route) bool {
	if f.Peak != "" && r.Peak != f.Peak {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Type != "" && !strings.Contains(r.Type, f.Type) {
		return false
	}
	if f.Traffic != "" && !strings.Contains(strings.ToLower(r.TrafficLevel), strings.ToLower(f.Traffic)) {
		return false
	}

	if f.GradeMin != "" || f.GradeMax != "" {
		idx := GradeIndex(r.Grade)
		if idx < 0 {
			return false
		}
		if f.GradeMin != "" && idx < GradeIndex(f.GradeMin) {
			return false
		}
		if f.GradeMax != "" && idx > GradeIndex(f.GradeMax) {
			return false
		}
	}

	if f.Search != "" {
		q := strings.ToLower(f.Search)
		return strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Peak), q) ||
			strings.Contains(strings.ToLower(r.Characteristics), q) ||
			strings.Contains(strings.ToLower(r.TechnicalGrade), q)
	}

	return true
}

// RouteFacets returns distinct peaks, categories, types and traffic levels in
// first-seen order, plus the grade scale.
func (s *Store) RouteFacets() RouteFacets {
	facets := RouteFacets{Grades: GradeOptions}
	seen := map[string]map[string]bool{
		"peak": {}, "category": {}, "type": {}, "traffic": {},
	}
	add := func(kind, v string, dst *[]string) {
		if v == "" || seen[kind][v] {
			return
		}
		seen[kind][v] = true
		*dst = append(*dst, v)
	}

	for _, r := range s.catalog.Routes {
		add("peak", r.Peak, &facets.Peaks)
		add("category", r.Category, &facets.Categories)
		add("type", r.Type, &facets.Types)
		add("traffic", r.TrafficLevel, &facets.TrafficLevels)
	}

	return facets
}
