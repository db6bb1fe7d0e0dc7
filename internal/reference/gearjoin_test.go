package reference_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruthgorge/expedition/internal/reference"
)

func refNames(refs []reference.ItemRef) []string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return names
}

func TestStore_PresetGear_JesseVillines(t *testing.T) {
	store := newTestStore(t)

	res, err := store.PresetGear(1)
	require.NoError(t, err)

	names := refNames(res.Resolved)
	assert.Contains(t, names, "Climbing helmet")
	assert.Contains(t, names, "Ice tools (2)")
	assert.Contains(t, names, "Crampons")
	assert.Contains(t, names, "4-season tent")
	assert.Contains(t, names, "Satellite messenger (InReach/SPOT)")
	assert.Len(t, res.Resolved, 12)

	assert.ElementsMatch(t, []string{
		"Phantom M6 Bindings (pair)",
		"Phantom Solo Cleats",
		"Phantom Slipper HD",
		"Phantom Rocket Risers",
		"Hyperlite Mountain Gear Prism 40",
	}, res.Unresolved)
}

func TestStore_PresetGear_UnknownClimber(t *testing.T) {
	store := newTestStore(t)

	_, err := store.PresetGear(42)
	assert.ErrorIs(t, err, reference.ErrClimberNotFound)
}

func TestStore_EssentialGear(t *testing.T) {
	store := newTestStore(t)

	res := store.EssentialGear()
	assert.Empty(t, res.Unresolved)

	names := refNames(res.Resolved)
	// fuzzy
	assert.Contains(t, names, "Sleeping pads")
	// alias
	assert.Contains(t, names, "Alpine climbing harness")
	assert.Contains(t, names, "Water bottles")
	// exact wins over the near miss
	assert.Contains(t, names, "Locking carabiners")
	assert.Contains(t, names, "Non-locking carabiners")
	assert.Len(t, res.Resolved, 13)
}

func TestGearJoin_MatchOrder(t *testing.T) {
	cat := &reference.Catalog{
		PackingCategories: []reference.PackingCategory{
			{Name: "Gear", Items: []reference.PackingItem{
				{Name: "Helmet", Aliases: []string{"Brain bucket"}},
				{Name: "Headlamp"},
			}},
		},
		Climbers: []reference.ClimberProfile{
			{ID: 1, PresetGear: []string{"HELMET", "brain  bucket", "Headlamps", "Banjo"}},
		},
	}

	store, err := reference.NewStore(cat, zerolog.Nop())
	require.NoError(t, err)

	res, err := store.PresetGear(1)
	require.NoError(t, err)

	// Helmet resolves twice and is collapsed.
	assert.Equal(t, []string{"Helmet", "Headlamp"}, refNames(res.Resolved))
	assert.Equal(t, []string{"Banjo"}, res.Unresolved)
}
