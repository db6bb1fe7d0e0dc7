// Package mapview builds the marker and line contract consumed by the map
// client: route start points colored by category, landing zones, and one
// encoded line per route from start to summit.
package mapview

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ruthgorge/expedition/internal/reference"
	"github.com/ruthgorge/expedition/pkg/polyline"
)

// ErrMarkerNotFound is returned when a marker id does not resolve.
var ErrMarkerNotFound = errors.New("marker not found")

// Default view over the Ruth Gorge.
var (
	DefaultCenter = polyline.Point{Lat: 62.955, Lng: -150.73}
	DefaultZoom   = 11
)

// Marker styling.
const (
	LandingZoneColor = "#ff9800"
	DefaultColor     = "#757575"

	RouteRadius         = 12
	SelectedRouteRadius = 16
	LandingZoneRadius   = 10

	summaryLength = 100
)

var categoryColors = map[string]string{
	reference.CategoryClassic:       "#1976d2",
	reference.CategoryModernClassic: "#00796b",
	reference.CategoryModern:        "#7b1fa2",
	reference.CategoryElite:         "#c62828",
	reference.CategoryObscure:       "#546e7a",
}

// Kind distinguishes marker types.
type Kind string

// Marker kinds.
const (
	KindRoute       Kind = "route"
	KindLandingZone Kind = "landing-zone"
)

// Shape is the marker icon shape.
type Shape string

// Marker shapes.
const (
	ShapeCircle Shape = "circle"
	ShapeSquare Shape = "square"
)

// Marker is one point on the map.
type Marker struct {
	ID       string         `json:"id"`
	Kind     Kind           `json:"kind"`
	Label    string         `json:"label"`
	Title    string         `json:"title"`
	Position polyline.Point `json:"position"`
	Color    string         `json:"color"`
	Radius   int            `json:"radius"`
	Shape    Shape          `json:"shape"`
	Selected bool           `json:"selected"`
	RouteID  string         `json:"routeId,omitempty"`
}

// Line connects a route's start and summit.
type Line struct {
	RouteID      string  `json:"routeId"`
	Color        string  `json:"color"`
	Encoded      string  `json:"encoded"`
	LengthMeters float64 `json:"lengthMeters"`
	Selected     bool    `json:"selected"`
}

// Legend maps a category to its color.
type Legend struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// View is the complete map contract.
type View struct {
	Center  polyline.Point   `json:"center"`
	Zoom    int              `json:"zoom"`
	Bounds  *polyline.Bounds `json:"bounds,omitempty"`
	Markers []Marker         `json:"markers"`
	Lines   []Line           `json:"lines"`
	Legend  []Legend         `json:"legend"`
}

// Options select what the map shows.
type Options struct {
	ShowAllRoutes    bool
	ShowLandingZones bool
}

// ColorFor returns the marker color of a route category.
func ColorFor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return DefaultColor
}

// Build lays out markers for all routes or only the selected ones, in the
// given order, plus the landing zones when requested.
func Build(store *reference.Store, selected []string, opts Options) View {
	isSelected := make(map[string]bool, len(selected))
	for _, id := range selected {
		isSelected[id] = true
	}

	var routes []reference.Route
	if opts.ShowAllRoutes {
		routes = store.Routes()
	} else {
		for _, id := range selected {
			if r, err := store.Route(id); err == nil {
				routes = append(routes, r)
			}
		}
	}

	v := View{
		Center:  DefaultCenter,
		Zoom:    DefaultZoom,
		Markers: []Marker{},
		Lines:   []Line{},
		Legend:  legend(),
	}

	var points []polyline.Point
	for i, r := range routes {
		start := point(r.Start)
		color := ColorFor(r.Category)
		sel := isSelected[r.ID]

		radius := RouteRadius
		if sel {
			radius = SelectedRouteRadius
		}
		v.Markers = append(v.Markers, Marker{
			ID:       routeMarkerID(r.ID),
			Kind:     KindRoute,
			Label:    strconv.Itoa(i + 1),
			Title:    r.Name,
			Position: start,
			Color:    color,
			Radius:   radius,
			Shape:    ShapeCircle,
			Selected: sel,
			RouteID:  r.ID,
		})

		line := []polyline.Point{start, point(r.Summit)}
		v.Lines = append(v.Lines, Line{
			RouteID:      r.ID,
			Color:        color,
			Encoded:      polyline.Encode(line),
			LengthMeters: polyline.Length(line),
			Selected:     sel,
		})
		points = append(points, line...)
	}

	if opts.ShowLandingZones {
		for i, z := range store.LandingZones() {
			v.Markers = append(v.Markers, Marker{
				ID:       landingZoneMarkerID(i),
				Kind:     KindLandingZone,
				Label:    "LZ",
				Title:    z.Name,
				Position: point(z.Coordinate),
				Color:    LandingZoneColor,
				Radius:   LandingZoneRadius,
				Shape:    ShapeSquare,
			})
			points = append(points, point(z.Coordinate))
		}
	}

	if b, ok := polyline.BoundsOf(points); ok {
		v.Bounds = &b
		v.Center = b.Center()
	}
	return v
}

// RouteInfo is the info panel of a route marker.
type RouteInfo struct {
	Route    reference.Route `json:"route"`
	Summary  string          `json:"summary"`
	Selected bool            `json:"selected"`
}

// LandingZoneInfo is the info panel of a landing zone marker.
type LandingZoneInfo struct {
	reference.ServedLandingZone
}

// Info is the panel opened by clicking a marker. Exactly one of Route and
// LandingZone is set.
type Info struct {
	MarkerID    string           `json:"markerId"`
	Kind        Kind             `json:"kind"`
	Route       *RouteInfo       `json:"route,omitempty"`
	LandingZone *LandingZoneInfo `json:"landingZone,omitempty"`
}

// Lookup resolves a marker id into its info panel.
func Lookup(store *reference.Store, markerID string, selected []string) (Info, error) {
	switch {
	case strings.HasPrefix(markerID, "route:"):
		r, err := store.Route(strings.TrimPrefix(markerID, "route:"))
		if err != nil {
			return Info{}, ErrMarkerNotFound
		}
		sel := false
		for _, id := range selected {
			if id == r.ID {
				sel = true
				break
			}
		}
		return Info{
			MarkerID: markerID,
			Kind:     KindRoute,
			Route:    &RouteInfo{Route: r, Summary: summarize(r.Characteristics), Selected: sel},
		}, nil

	case strings.HasPrefix(markerID, "lz:"):
		idx, err := strconv.Atoi(strings.TrimPrefix(markerID, "lz:"))
		zones := store.LandingZones()
		if err != nil || idx < 0 || idx >= len(zones) {
			return Info{}, ErrMarkerNotFound
		}
		z := zones[idx]
		return Info{
			MarkerID:    markerID,
			Kind:        KindLandingZone,
			LandingZone: &LandingZoneInfo{ServedLandingZone: z},
		}, nil
	}
	return Info{}, ErrMarkerNotFound
}

func legend() []Legend {
	order := []string{
		reference.CategoryClassic,
		reference.CategoryModernClassic,
		reference.CategoryModern,
		reference.CategoryElite,
		reference.CategoryObscure,
	}
	out := make([]Legend, 0, len(order)+1)
	for _, c := range order {
		out = append(out, Legend{Label: c, Color: categoryColors[c]})
	}
	return append(out, Legend{Label: "Landing Zones", Color: LandingZoneColor})
}

func summarize(s string) string {
	r := []rune(s)
	if len(r) <= summaryLength {
		return s
	}
	return string(r[:summaryLength]) + "..."
}

func point(c reference.Coordinate) polyline.Point {
	return polyline.Point{Lat: c.Lat, Lng: c.Lng}
}

func routeMarkerID(id string) string {
	return "route:" + id
}

func landingZoneMarkerID(i int) string {
	return fmt.Sprintf("lz:%d", i)
}
