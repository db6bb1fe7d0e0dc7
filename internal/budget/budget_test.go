package budget_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruthgorge/expedition/internal/budget"
	"github.com/ruthgorge/expedition/internal/reference"
)

var testGroups = []reference.BudgetGroup{
	{Key: "transportation", Label: "Transportation", Categories: []reference.BudgetCategory{
		{Name: "Air Taxi", Items: []reference.BudgetLineItem{
			{ID: "taxi", Name: "Air taxi", Estimate: 650, Required: true},
			{ID: "bags", Name: "Excess weight", Estimate: 150},
		}},
	}},
	{Key: "food", Label: "Food", Categories: []reference.BudgetCategory{
		{Name: "Expedition Food", Items: []reference.BudgetLineItem{
			{ID: "meals", Name: "Freeze-dried meals", Estimate: 350},
		}},
	}},
}

func TestSelection_Toggle(t *testing.T) {
	s := budget.NewSelection()

	assert.True(t, s.Toggle("taxi"))
	assert.Equal(t, 1, s.Quantity("taxi"))
	assert.False(t, s.Toggle("taxi"))
	assert.False(t, s.IsSelected("taxi"))
}

func TestSelection_SetQuantity(t *testing.T) {
	s := budget.NewSelection()

	_, err := s.SetQuantity("taxi", 3)
	assert.ErrorIs(t, err, budget.ErrItemNotSelected)

	s.Toggle("taxi")

	tests := []struct {
		in   int
		want int
	}{
		{3, 3},
		{0, 1},
		{-4, 1},
		{12, 12},
	}
	for _, tt := range tests {
		got, err := s.SetQuantity("taxi", tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestSelection_Step(t *testing.T) {
	s := budget.NewSelection()
	s.Toggle("meals")

	q, err := s.Step("meals", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, q)

	q, err = s.Step("meals", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, q)

	q, err = s.Step("meals", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, q)

	_, err = s.Step("taxi", 1)
	assert.ErrorIs(t, err, budget.ErrItemNotSelected)
}

func TestCompute(t *testing.T) {
	s := budget.NewSelection()
	s.Toggle("taxi")
	s.Toggle("meals")
	_, err := s.SetQuantity("taxi", 2)
	require.NoError(t, err)

	sum := budget.Compute(testGroups, s, 4)

	require.Len(t, sum.Groups, 3)
	assert.Equal(t, 1300.0, sum.Groups[0].Total)
	assert.Equal(t, 350.0, sum.Groups[1].Total)
	assert.Equal(t, 0.0, sum.Groups[2].Total)
	assert.Empty(t, sum.Groups[2].Lines)
	assert.Equal(t, 1650.0, sum.Total)
	assert.Equal(t, 4, sum.Persons)
	assert.InDelta(t, 412.5, sum.PerPerson, 1e-9)
	assert.Len(t, sum.Lines(), 2)
}

func TestCompute_PerPersonIsUnrounded(t *testing.T) {
	s := budget.NewSelection()
	s.Toggle("meals")

	sum := budget.Compute(testGroups, s, 3)
	assert.InDelta(t, 350.0/3.0, sum.PerPerson, 1e-12)
}

func TestCompute_ClampsPersons(t *testing.T) {
	s := budget.NewSelection()
	s.Toggle("bags")

	sum := budget.Compute(testGroups, s, 0)
	assert.Equal(t, 1, sum.Persons)
	assert.Equal(t, 150.0, sum.PerPerson)
}

func TestCustomItems(t *testing.T) {
	s := budget.NewSelection()

	item, err := s.AddCustomItem(budget.CustomItem{Name: "Guide tip", Category: "Misc", Estimate: 75}, 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(item.ID, "bci_"))
	assert.Equal(t, 1, s.Quantity(item.ID))
	assert.True(t, s.HasCustomItem(item.ID))

	_, err = s.SetQuantity(item.ID, 2)
	require.NoError(t, err)

	sum := budget.Compute(testGroups, s, 1)
	custom := sum.Groups[len(sum.Groups)-1]
	assert.Equal(t, budget.CustomGroupKey, custom.Key)
	require.Len(t, custom.Lines, 1)
	assert.True(t, custom.Lines[0].Custom)
	assert.Equal(t, 150.0, sum.Total)

	require.NoError(t, s.DeleteCustomItem(item.ID))
	assert.False(t, s.IsSelected(item.ID))
	assert.Equal(t, 0.0, budget.Compute(testGroups, s, 1).Total)
	assert.ErrorIs(t, s.DeleteCustomItem(item.ID), budget.ErrCustomItemNotFound)

	_, err = s.AddCustomItem(budget.CustomItem{Name: ""}, 1)
	assert.ErrorIs(t, err, budget.ErrNameRequired)
}

func TestClampPersons(t *testing.T) {
	assert.Equal(t, 1, budget.ClampPersons(-3))
	assert.Equal(t, 1, budget.ClampPersons(0))
	assert.Equal(t, 6, budget.ClampPersons(6))
}
