package reference_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ruthgorge/expedition/internal/reference"
)

func routeIDs(routes []reference.Route) []string {
	ids := make([]string, 0, len(routes))
	for _, r := range routes {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestGradeIndex(t *testing.T) {
	tests := []struct {
		grade string
		want  int
	}{
		{"Grade I", 0},
		{"Grade IV", 3},
		{"Grade V", 4},
		{"Grade VI", 5},
		{"Alaska Grade III", 8},
		{"Alaska Grade IV", 9},
		{"Alaska Grade VI", 11},
		{"5.10 A2", -1},
	}

	for _, tt := range tests {
		t.Run(tt.grade, func(t *testing.T) {
			assert.Equal(t, tt.want, reference.GradeIndex(tt.grade))
		})
	}
}

func TestStore_FilterRoutes(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name    string
		filter  reference.RouteFilter
		want    []string
		wantLen int
	}{
		{
			name:    "no filter returns all",
			filter:  reference.RouteFilter{},
			wantLen: 22,
		},
		{
			name:   "peak exact",
			filter: reference.RouteFilter{Peak: "Mount Kudlich"},
			want:   []string{"southwest-ridge", "right-couloir"},
		},
		{
			name:   "category and traffic",
			filter: reference.RouteFilter{Category: "Classic", Traffic: "high"},
			want:   []string{"ham-and-eggs"},
		},
		{
			name:   "type substring",
			filter: reference.RouteFilter{Type: "Rock"},
			want:   []string{"right-corner", "east-buttress"},
		},
		{
			name:   "search over technical grade",
			filter: reference.RouteFilter{Search: "m7"},
			want:   []string{"blood-from-the-stone", "moonflower-buttress"},
		},
		{
			name:   "search is case insensitive across name and characteristics",
			filter: reference.RouteFilter{Search: "HAM AND"},
			want:   []string{"ham-and-eggs", "shaken-not-stirred"},
		},
		{
			name:   "grade range within alaska scale",
			filter: reference.RouteFilter{GradeMin: "Alaska Grade VI", GradeMax: "Alaska Grade VI"},
			want:   []string{"moonflower-buttress", "deprivation"},
		},
		{
			name:   "grade vi on the plain scale",
			filter: reference.RouteFilter{GradeMin: "Grade VI", GradeMax: "Grade VI"},
			want:   []string{"wine-bottle", "blood-from-the-stone", "snowpatrol", "heavy-mettle"},
		},
		{
			name:    "no match",
			filter:  reference.RouteFilter{Peak: "Denali"},
			want:    []string{},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.FilterRoutes(tt.filter)
			if tt.want != nil {
				assert.Equal(t, tt.want, routeIDs(got))
				return
			}
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestRouteFilter_AlaskaGradeIVIsNotGradeI(t *testing.T) {
	f := reference.RouteFilter{GradeMin: "Grade II", GradeMax: "Grade II"}
	assert.False(t, f.Matches(reference.Route{Grade: "Alaska Grade IV"}))
}

func TestRouteFilter_UngradedRouteExcludedByAnyBound(t *testing.T) {
	ungraded := reference.Route{Grade: "WI5 M6"}

	tests := []struct {
		name   string
		filter reference.RouteFilter
		want   bool
	}{
		{"no bounds", reference.RouteFilter{}, true},
		{"min only", reference.RouteFilter{GradeMin: "Grade I"}, false},
		{"max only", reference.RouteFilter{GradeMax: "Alaska Grade VI"}, false},
		{"both", reference.RouteFilter{GradeMin: "Grade I", GradeMax: "Alaska Grade VI"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(ungraded))
		})
	}
}

func TestStore_RouteFacets(t *testing.T) {
	store := newTestStore(t)

	facets := store.RouteFacets()
	assert.Equal(t, "Moose's Tooth", facets.Peaks[0])
	assert.Len(t, facets.Peaks, 12)
	assert.ElementsMatch(t, []string{"Classic", "Modern Classic", "Modern", "Elite", "Obscure"}, facets.Categories)
	assert.ElementsMatch(t, []string{"High", "Moderate", "Low", "Very Low"}, facets.TrafficLevels)
	assert.Equal(t, reference.GradeOptions, facets.Grades)
}
