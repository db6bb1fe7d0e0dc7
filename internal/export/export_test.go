package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ruthgorge/expedition/internal/budget"
	"github.com/ruthgorge/expedition/internal/export"
	"github.com/ruthgorge/expedition/internal/packing"
	"github.com/ruthgorge/expedition/internal/reference"
)

var budgetGroups = []reference.BudgetGroup{
	{Key: "transportation", Label: "Transportation", Categories: []reference.BudgetCategory{
		{Name: "Air Taxi", Items: []reference.BudgetLineItem{
			{ID: "taxi", Name: "Air taxi", Estimate: 650, Required: true, Notes: "Round trip"},
		}},
	}},
	{Key: "food", Label: "Food", Categories: []reference.BudgetCategory{
		{Name: "Expedition Food", Items: []reference.BudgetLineItem{
			{ID: "meals", Name: "Freeze-dried meals", Estimate: 350},
		}},
	}},
}

func testSummary(t *testing.T) budget.Summary {
	t.Helper()
	sel := budget.NewSelection()
	sel.Toggle("taxi")
	_, err := sel.SetQuantity("taxi", 2)
	require.NoError(t, err)
	_, err = sel.AddCustomItem(budget.CustomItem{Name: "Guide tip", Estimate: 100}, 1)
	require.NoError(t, err)
	return budget.Compute(budgetGroups, sel, 2)
}

func readCSV(t *testing.T, b []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteBudgetCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteBudgetCSV(&buf, testSummary(t)))

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "group", "category", "item", "unit_cost", "quantity", "total", "required", "custom", "notes"}, records[0])
	assert.Equal(t, []string{"taxi", "transportation", "Air Taxi", "Air taxi", "650", "2", "1300", "true", "false", "Round trip"}, records[1])
	assert.Equal(t, "Guide tip", records[2][3])
	assert.Equal(t, "true", records[2][8])
}

func TestWriteBudgetCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteBudgetCSV(&buf, budget.Compute(budgetGroups, budget.NewSelection(), 1)))

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 1)
	assert.Equal(t, "id", records[0][0])
}

func TestWritePackingCSV(t *testing.T) {
	views := []packing.CategoryView{
		{Name: "Technical", Items: []packing.ItemView{
			{Name: "Double ropes", Essential: true, Weight: 3600, Checked: true, Notes: "2x 60m"},
			{Name: "Ice pitons", Weight: 300},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WritePackingCSV(&buf, views))

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	assert.Equal(t, []string{"category", "item", "essential", "weight_g", "weight_lb", "checked", "notes"}, records[0])
	assert.Equal(t, []string{"Technical", "Double ropes", "true", "3600", "7.9", "true", "2x 60m"}, records[1])
	assert.Equal(t, "false", records[2][5])
}

func TestWriteBudgetXLSX(t *testing.T) {
	var buf bytes.Buffer
	notes := []string{"Prices are estimates", "Bring cash for Talkeetna"}
	require.NoError(t, export.WriteBudgetXLSX(&buf, testSummary(t), notes))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.BudgetSheet, export.NotesSheet}, f.GetSheetList())

	rows, err := f.GetRows(export.BudgetSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)

	// header, taxi, transport subtotal, tip, custom subtotal, blank, total, per person
	require.Len(t, rows, 8)
	assert.Equal(t, "Group", rows[0][0])
	assert.Equal(t, "Air taxi", rows[1][2])
	assert.Equal(t, "1300", rows[1][5])
	assert.Equal(t, "Transportation subtotal", rows[2][0])
	assert.Equal(t, "Custom Items subtotal", rows[4][0])
	assert.Equal(t, "Total", rows[6][0])
	assert.Equal(t, "1400", rows[6][5])
	assert.Equal(t, "Per person (2)", rows[7][0])
	assert.Equal(t, "700", rows[7][5])

	note, err := f.GetCellValue(export.NotesSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Bring cash for Talkeetna", note)
}
