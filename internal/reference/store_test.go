package reference_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruthgorge/expedition/internal/reference"
)

func newTestStore(t *testing.T) *reference.Store {
	t.Helper()
	cat, err := reference.NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)
	store, err := reference.NewStore(cat, zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestEmbeddedSource_Load(t *testing.T) {
	cat, err := reference.NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, cat.Routes, 22)
	assert.Len(t, cat.Climbers, 8)
	assert.Len(t, cat.PackingCategories, 7)
	assert.Len(t, cat.BudgetGroups, 9)
	assert.Len(t, cat.BudgetNotes, 5)
	assert.Len(t, cat.EssentialGear, 13)
	assert.Len(t, cat.Seasonal.ClimateChart.Months, 12)
	assert.Len(t, cat.Seasonal.ClimateChart.HighTemp, 12)
	assert.Len(t, cat.Volcanic.EruptionHistory, 6)
	assert.Equal(t, "ADVISORY", cat.Volcanic.CurrentAlert.AlertLevel)
	assert.Equal(t, "YELLOW", cat.Volcanic.CurrentAlert.AviationColorCode)
	assert.NotEmpty(t, cat.Logistics.AirTaxis)
}

func TestNewStore_DuplicateRouteID(t *testing.T) {
	cat := &reference.Catalog{
		Routes: []reference.Route{{ID: "a"}, {ID: "a"}},
	}

	_, err := reference.NewStore(cat, zerolog.Nop())
	assert.ErrorIs(t, err, reference.ErrDuplicateID)
}

func TestNewStore_DuplicatePackingItem(t *testing.T) {
	cat := &reference.Catalog{
		PackingCategories: []reference.PackingCategory{
			{Name: "One", Items: []reference.PackingItem{{Name: "Rope"}}},
			{Name: "Two", Items: []reference.PackingItem{{Name: "rope"}}},
		},
	}

	_, err := reference.NewStore(cat, zerolog.Nop())
	assert.ErrorIs(t, err, reference.ErrDuplicateID)
}

func TestStore_Route(t *testing.T) {
	store := newTestStore(t)

	r, err := store.Route("ham-and-eggs")
	require.NoError(t, err)
	assert.Equal(t, "Moose's Tooth", r.Peak)
	assert.Equal(t, "Classic", r.Category)

	_, err = store.Route("nope")
	assert.ErrorIs(t, err, reference.ErrRouteNotFound)
	assert.False(t, store.HasRoute("nope"))
}

func TestStore_Climber(t *testing.T) {
	store := newTestStore(t)

	c, err := store.Climber(1)
	require.NoError(t, err)
	assert.Equal(t, "Jesse Villines", c.Name)
	assert.Equal(t, 75000, c.Weight)

	_, err = store.Climber(99)
	assert.ErrorIs(t, err, reference.ErrClimberNotFound)
}

func TestStore_PackingItemIDs(t *testing.T) {
	store := newTestStore(t)

	first := store.PackingCategories()[0].Items[0]
	assert.Equal(t, "ice-tools-2", first.ID)

	ref, err := store.PackingItemRef("ice-tools-2")
	require.NoError(t, err)
	assert.Equal(t, "Technical Climbing Gear", ref.Category)
	assert.Equal(t, "Ice tools (2)", ref.Name)

	item, err := store.PackingItem("Camping & Living", "Sleeping pads")
	require.NoError(t, err)
	assert.Equal(t, 900, item.Weight)

	_, err = store.PackingItem("Camping & Living", "Hot tub")
	assert.ErrorIs(t, err, reference.ErrPackingItemNotFound)
}

func TestStore_BudgetItem(t *testing.T) {
	store := newTestStore(t)

	ref, err := store.BudgetItem("transportation-international-travel-international-flights-to-anchorage")
	require.NoError(t, err)
	assert.Equal(t, "transportation", ref.GroupKey)
	assert.Equal(t, 800.0, ref.Item.Estimate)
	assert.True(t, ref.Item.Required)

	_, err = store.BudgetItem("missing")
	assert.ErrorIs(t, err, reference.ErrBudgetItemNotFound)
}

func TestStore_LandingZones(t *testing.T) {
	store := newTestStore(t)

	zones := store.LandingZones()
	require.NotEmpty(t, zones)

	names := make(map[string]int)
	for _, z := range zones {
		names[z.Name]++
		assert.NotZero(t, z.Coordinate.Lat, z.Name)
		assert.NotZero(t, z.Coordinate.Lng, z.Name)
	}
	for name, n := range names {
		assert.Equal(t, 1, n, name)
	}
}

func TestStore_LandingZones_SharedZoneListsEveryOperator(t *testing.T) {
	cat, err := reference.NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(cat.Logistics.AirTaxis), 2)

	shared := cat.Logistics.AirTaxis[0].LandingZones[0]
	second := &cat.Logistics.AirTaxis[1]
	second.LandingZones = append(second.LandingZones, shared)

	store, err := reference.NewStore(cat, zerolog.Nop())
	require.NoError(t, err)

	zones := store.LandingZones()
	require.Len(t, zones, 7)
	assert.Equal(t, shared.Name, zones[0].Name)
	assert.Equal(t, []string{cat.Logistics.AirTaxis[0].Name, second.Name}, zones[0].Operators)
	for _, z := range zones[1:] {
		assert.Len(t, z.Operators, 1, z.Name)
	}
}
