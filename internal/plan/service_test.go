package plan_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruthgorge/expedition/internal/budget"
	"github.com/ruthgorge/expedition/internal/itinerary"
	"github.com/ruthgorge/expedition/internal/packing"
	"github.com/ruthgorge/expedition/internal/plan"
	"github.com/ruthgorge/expedition/internal/reference"
)

const flightsID = "transportation-international-travel-international-flights-to-anchorage"

func newTestService(t *testing.T) *plan.Service {
	t.Helper()
	cat, err := reference.NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)
	store, err := reference.NewStore(cat, zerolog.Nop())
	require.NoError(t, err)

	return plan.NewService(plan.ServiceConfig{
		Repository: plan.NewInMemoryRepository(nil),
		Store:      store,
		Logger:     zerolog.Nop(),
	})
}

func newPlan(t *testing.T, svc *plan.Service) string {
	t.Helper()
	p, err := svc.Create(context.Background())
	require.NoError(t, err)
	return p.ID
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestService_Create(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.ID, "pln_"))
	assert.Equal(t, plan.ViewTeam, p.ViewMode)
	assert.Equal(t, 1, p.Persons)
	assert.Empty(t, p.Routes)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, plan.ErrPlanNotFound)
}

func TestService_ToggleRoute_Twice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := newPlan(t, svc)

	_, err := svc.SetRoutes(ctx, id, []string{"ham-and-eggs"})
	require.NoError(t, err)

	p, err := svc.ToggleRoute(ctx, id, "right-couloir")
	require.NoError(t, err)
	assert.Equal(t, []string{"ham-and-eggs", "right-couloir"}, p.Routes)

	p, err = svc.ToggleRoute(ctx, id, "right-couloir")
	require.NoError(t, err)
	assert.Equal(t, []string{"ham-and-eggs"}, p.Routes)

	_, err = svc.ToggleRoute(ctx, id, "nope")
	assert.ErrorIs(t, err, reference.ErrRouteNotFound)
}

func TestService_SetRoutes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := newPlan(t, svc)

	p, err := svc.SetRoutes(ctx, id, []string{"right-couloir", "ham-and-eggs", "right-couloir"})
	require.NoError(t, err)
	assert.Equal(t, []string{"right-couloir", "ham-and-eggs"}, p.Routes)

	_, err = svc.SetRoutes(ctx, id, []string{"ham-and-eggs", "missing"})
	ve, ok := plan.IsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Errors, 1)
	assert.Equal(t, "routeIds[1]", ve.Errors[0].Field)

	// Rejected input leaves the plan alone.
	p, err = svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"right-couloir", "ham-and-eggs"}, p.Routes)
}

func TestService_SetDates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := newPlan(t, svc)

	p, err := svc.SetDates(ctx, id, date(2025, 5, 1), nil)
	require.NoError(t, err)
	require.NotNil(t, p.Dates.Start)
	assert.Nil(t, p.Dates.End)

	_, err = svc.SetDates(ctx, id, date(2025, 5, 10), date(2025, 5, 1))
	_, ok := plan.IsValidationError(err)
	assert.True(t, ok)

	p, err = svc.SetDates(ctx, id, date(2025, 5, 1), date(2025, 5, 1))
	require.NoError(t, err)
	assert.True(t, p.Dates.Complete())
}

func TestService_ActivateClimberAndTeamView(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := newPlan(t, svc)

	p, err := svc.ActivateClimber(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, plan.ViewIndividual, p.ViewMode)
	assert.Equal(t, 1, p.ActiveClimber)
	assert.True(t, p.OnTeam(1))

	view, err := svc.PackingView(ctx, id, "", 0, packing.Filter{})
	require.NoError(t, err)
	require.NotNil(t, view.Climber)
	assert.Equal(t, "Jesse Villines", view.Climber.Name)
	assert.Equal(t, 20100+75000, view.WeightGrams)
	assert.Len(t, view.Unresolved, 5)

	team, err := svc.PackingView(ctx, id, plan.ViewTeam, 0, packing.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 0, team.WeightGrams)

	p, err = svc.ShowTeamView(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, plan.ViewTeam, p.ViewMode)

	team, err = svc.PackingView(ctx, id, "", 0, packing.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 20100, team.WeightGrams)

	// Leaving the team does not undo the merge.
	p, err = svc.ToggleClimber(ctx, id, 1)
	require.NoError(t, err)
	assert.False(t, p.OnTeam(1))
	team, err = svc.PackingView(ctx, id, "", 0, packing.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 20100, team.WeightGrams)
}

func TestService_ToggleClimber_ResetsIndividualView(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := newPlan(t, svc)

	_, err := svc.ActivateClimber(ctx, id, 2)
	require.NoError(t, err)

	p, err := svc.ToggleClimber(ctx, id, 2)
	require.NoError(t, err)
	assert.Equal(t, plan.ViewTeam, p.ViewMode)
	assert.Equal(t, 0, p.ActiveClimber)

	_, err = svc.ToggleClimber(ctx, id, 99)
	assert.ErrorIs(t, err, reference.ErrClimberNotFound)
}

func TestService_DeselectActiveClimberKeepsChecks(t *testing.T) {
	tests := []struct {
		name         string
		showTeamView bool
	}{
		{"after deselect", false},
		{"after explicit team view", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			ctx := context.Background()
			id := newPlan(t, svc)

			_, err := svc.ActivateClimber(ctx, id, 1)
			require.NoError(t, err)
			p, err := svc.ToggleClimber(ctx, id, 1)
			require.NoError(t, err)
			assert.Equal(t, plan.ViewTeam, p.ViewMode)

			if tt.showTeamView {
				_, err = svc.ShowTeamView(ctx, id)
				require.NoError(t, err)
			}

			team, err := svc.PackingView(ctx, id, "", 0, packing.Filter{})
			require.NoError(t, err)
			assert.Equal(t, plan.ViewTeam, team.ViewMode)
			assert.Positive(t, team.Counts.Checked)
			assert.Equal(t, 20100, team.WeightGrams)
		})
	}
}

func TestService_PackingView_IndividualFallsBackToActiveClimber(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := newPlan(t, svc)

	_, err := svc.PackingView(ctx, id, plan.ViewIndividual, 0, packing.Filter{})
	_, isValidation := plan.IsValidationError(err)
	assert.True(t, isValidation, "no active climber: %v", err)

	_, err = svc.AddPackingItem(ctx, id, packing.CustomItem{Name: "Thermos", Weight: 500})
	require.NoError(t, err)
	_, err = svc.ActivateClimber(ctx, id, 1)
	require.NoError(t, err)

	view, err := svc.PackingView(ctx, id, plan.ViewIndividual, 0, packing.Filter{})
	require.NoError(t, err)
	require.NotNil(t, view.Climber)
	assert.Equal(t, 1, view.Climber.ID)
	assert.Equal(t, 20100+75000, view.WeightGrams)
	require.Len(t, view.CustomItems, 1)
	assert.Equal(t, "Thermos", view.CustomItems[0].Name)
}

func TestService_CheckItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := newPlan(t, svc)

	key := packing.TeamKey("Technical Climbing Gear", "Double ropes")
	p, err := svc.CheckItem(ctx, id, key, true)
	require.NoError(t, err)
	assert.True(t, p.Packing.IsChecked(key))

	view, err := svc.PackingView(ctx, id, plan.ViewTeam, 0, packing.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3600, view.WeightGrams)
	assert.InDelta(t, 7.9, view.WeightPounds, 1e-9)

	_, err = svc.CheckItem(ctx, id, packing.TeamKey("Technical Climbing Gear", "Jetpack"), true)
	assert.ErrorIs(t, err, reference.ErrPackingItemNotFound)

	_, err = svc.CheckItem(ctx, id, packing.CustomKey("pci_missing", 0), true)
	assert.ErrorIs(t, err, packing.ErrCustomItemNotFound)
}

func TestService_ToggleItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := newPlan(t, svc)

	key := packing.Key{Category: "Technical Climbing Gear", Item: "Double ropes", ClimberID: 1}
	p, err := svc.ToggleItem(ctx, id, key)
	require.NoError(t, err)
	assert.True(t, p.Packing.IsChecked(key))
	assert.False(t, p.Packing.IsChecked(packing.TeamKey("Technical Climbing Gear", "Double ropes")))

	p, err = svc.ToggleItem(ctx, id, key)
	require.NoError(t, err)
	assert.False(t, p.Packing.IsChecked(key))

	_, err = svc.ToggleItem(ctx, id, packing.Key{Category: "Technical Climbing Gear", Item: "Double ropes", ClimberID: 99})
	assert.ErrorIs(t, err, reference.ErrClimberNotFound)
}

func TestService_CustomPackingItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := newPlan(t, svc)

	item, err := svc.AddPackingItem(ctx, id, packing.CustomItem{Name: "Kite", Weight: 2000})
	require.NoError(t, err)

	_, err = svc.CheckItem(ctx, id, packing.CustomKey(item.ID, packing.TeamClimberID), true)
	require.NoError(t, err)
	view, err := svc.PackingView(ctx, id, plan.ViewTeam, 0, packing.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2000, view.WeightGrams)
	assert.InDelta(t, 4.4, view.WeightPounds, 1e-9)

	p, err := svc.DeletePackingItem(ctx, id, item.ID)
	require.NoError(t, err)
	assert.Empty(t, p.Packing.CheckedKeys())

	_, err = svc.AddPackingItem(ctx, id, packing.CustomItem{Name: ""})
	assert.ErrorIs(t, err, packing.ErrNameRequired)
}

func TestService_Budget(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := newPlan(t, svc)

	_, err := svc.ToggleBudgetItem(ctx, id, flightsID)
	require.NoError(t, err)
	_, err = svc.SetBudgetQuantity(ctx, id, flightsID, 2)
	require.NoError(t, err)
	_, err = svc.SetPersons(ctx, id, 4)
	require.NoError(t, err)

	custom, err := svc.AddBudgetItem(ctx, id, budget.CustomItem{Name: "Guide tip", Estimate: 200}, 1)
	require.NoError(t, err)

	sum, err := svc.Budget(ctx, id)
	require.NoError(t, err)
	assert.InDelta(t, 1800, sum.Total, 1e-9)
	assert.InDelta(t, 450, sum.PerPerson, 1e-9)
	assert.Equal(t, 4, sum.Persons)

	_, err = svc.StepBudgetQuantity(ctx, id, flightsID, -5)
	require.NoError(t, err)
	_, err = svc.DeleteBudgetItem(ctx, id, custom.ID)
	require.NoError(t, err)
	_, err = svc.SetPersons(ctx, id, 0)
	require.NoError(t, err)

	sum, err = svc.Budget(ctx, id)
	require.NoError(t, err)
	assert.InDelta(t, 800, sum.Total, 1e-9)
	assert.Equal(t, 1, sum.Persons)

	_, err = svc.ToggleBudgetItem(ctx, id, "unknown")
	assert.ErrorIs(t, err, reference.ErrBudgetItemNotFound)
}

func TestService_GenerateItinerary(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := newPlan(t, svc)

	// Nothing to generate yet.
	p, err := svc.GenerateItinerary(ctx, id, itinerary.ModeReplace, false)
	require.NoError(t, err)
	assert.Empty(t, p.Activities)

	_, err = svc.SetRoutes(ctx, id, []string{"ham-and-eggs"})
	require.NoError(t, err)
	_, err = svc.SetDates(ctx, id, date(2025, 5, 1), date(2025, 5, 10))
	require.NoError(t, err)

	p, err = svc.GenerateItinerary(ctx, id, "", false)
	require.NoError(t, err)
	require.Len(t, p.Activities, 10)
	assert.Equal(t, "2025-05-01", p.Activities[0].Date)
	assert.Equal(t, "2025-05-10", p.Activities[9].Date)

	// Add a manual activity through the editor.
	_, err = svc.OpenActivityCreate(ctx, id, "2025-05-03")
	require.NoError(t, err)
	_, err = svc.UpdateActivityDraft(ctx, id, itinerary.Draft{Type: itinerary.TypeRest, Title: "Sauna"})
	require.NoError(t, err)
	p, saved, err := svc.SaveActivity(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, itinerary.SourceManual, saved.Source)
	assert.Len(t, p.Activities, 11)
	assert.Equal(t, itinerary.EditorClosed, p.Editor.Mode)

	_, err = svc.GenerateItinerary(ctx, id, itinerary.ModeReplace, false)
	assert.ErrorIs(t, err, itinerary.ErrConfirmationRequired)

	p, err = svc.GenerateItinerary(ctx, id, itinerary.ModeMerge, false)
	require.NoError(t, err)
	assert.Len(t, p.Activities, 11)

	p, err = svc.GenerateItinerary(ctx, id, itinerary.ModeReplace, true)
	require.NoError(t, err)
	assert.Len(t, p.Activities, 10)
	assert.False(t, itinerary.HasManual(p.Activities))
}

func TestService_EditorDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	id := newPlan(t, svc)

	_, err := svc.OpenActivityCreate(ctx, id, "2025-06-01")
	require.NoError(t, err)
	_, err = svc.UpdateActivityDraft(ctx, id, itinerary.Draft{Title: "Pack"})
	require.NoError(t, err)
	_, saved, err := svc.SaveActivity(ctx, id)
	require.NoError(t, err)

	// Delete only from edit mode.
	_, err = svc.DeleteActivity(ctx, id)
	assert.ErrorIs(t, err, itinerary.ErrInvalidTransition)

	_, err = svc.OpenActivityEdit(ctx, id, saved.ID)
	require.NoError(t, err)
	p, err := svc.DeleteActivity(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, p.Activities)

	_, err = svc.OpenActivityEdit(ctx, id, "act_missing")
	assert.ErrorIs(t, err, itinerary.ErrActivityNotFound)

	_, err = svc.UpdateActivityDraft(ctx, id, itinerary.Draft{RouteID: "missing"})
	_, ok := plan.IsValidationError(err)
	assert.True(t, ok)
}

func TestSweeper_RemovesIdlePlans(t *testing.T) {
	cat, err := reference.NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)
	store, err := reference.NewStore(cat, zerolog.Nop())
	require.NoError(t, err)

	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := plan.NewService(plan.ServiceConfig{
		Repository: plan.NewInMemoryRepository(clock),
		Store:      store,
		SessionTTL: time.Hour,
		Now:        clock,
	})
	ctx := context.Background()

	_, err = svc.Create(ctx)
	require.NoError(t, err)

	sweeper := plan.NewSweeper(plan.SweeperConfig{Service: svc, Logger: zerolog.Nop()})
	result := sweeper.Run(ctx)
	require.NoError(t, result.Err)
	assert.Equal(t, 0, result.Removed)

	now = now.Add(2 * time.Hour)
	result = sweeper.Run(ctx)
	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.Removed)

	_, removed := sweeper.Stats()
	assert.Equal(t, int64(1), removed)
}

func TestService_Sweep_UsesServiceClockForUpdates(t *testing.T) {
	tests := []struct {
		name        string
		touchAfter  time.Duration
		sweepAfter  time.Duration
		wantRemoved int
	}{
		{"idle past ttl after an update", 10 * time.Minute, 2 * time.Hour, 1},
		{"update keeps the plan alive", 50 * time.Minute, 100 * time.Minute, 0},
	}

	cat, err := reference.NewEmbeddedSource().Load(context.Background())
	require.NoError(t, err)
	store, err := reference.NewStore(cat, zerolog.Nop())
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
			now := start
			clock := func() time.Time { return now }
			svc := plan.NewService(plan.ServiceConfig{
				Repository: plan.NewInMemoryRepository(clock),
				Store:      store,
				SessionTTL: time.Hour,
				Logger:     zerolog.Nop(),
				Now:        clock,
			})
			ctx := context.Background()

			p, err := svc.Create(ctx)
			require.NoError(t, err)

			now = start.Add(tt.touchAfter)
			touched, err := svc.ToggleRoute(ctx, p.ID, "ham-and-eggs")
			require.NoError(t, err)
			assert.Equal(t, now, touched.UpdatedAt)

			now = start.Add(tt.sweepAfter)
			removed, err := svc.Sweep(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRemoved, removed)
		})
	}
}
