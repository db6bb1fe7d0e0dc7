package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ruthgorge/expedition/internal/budget"
)

// Sheet names of the budget workbook.
const (
	BudgetSheet = "Budget"
	NotesSheet  = "Notes"
)

var budgetHeader = []any{"Group", "Category", "Item", "Unit cost (USD)", "Quantity", "Total (USD)", "Required", "Notes"}

// WriteBudgetXLSX writes the budget as a workbook: one row per selected line,
// a subtotal row per group, then the grand total and the per-person split.
// Budget notes go to a second sheet.
func WriteBudgetXLSX(w io.Writer, sum budget.Summary, notes []string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", BudgetSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	row := 1
	if err := setRow(f, BudgetSheet, row, budgetHeader); err != nil {
		return err
	}
	if err := styleRow(f, BudgetSheet, row, bold); err != nil {
		return err
	}

	for _, g := range sum.Groups {
		if len(g.Lines) == 0 {
			continue
		}
		for _, l := range g.Lines {
			row++
			if err := setRow(f, BudgetSheet, row, []any{
				g.Label, l.Category, l.Name, l.Estimate, l.Quantity, l.Total, yesNo(l.Required), l.Notes,
			}); err != nil {
				return err
			}
		}
		row++
		if err := setRow(f, BudgetSheet, row, []any{g.Label + " subtotal", nil, nil, nil, nil, g.Total}); err != nil {
			return err
		}
		if err := styleRow(f, BudgetSheet, row, bold); err != nil {
			return err
		}
	}

	row += 2
	if err := setRow(f, BudgetSheet, row, []any{"Total", nil, nil, nil, nil, sum.Total}); err != nil {
		return err
	}
	if err := styleRow(f, BudgetSheet, row, bold); err != nil {
		return err
	}
	row++
	perPerson := fmt.Sprintf("Per person (%d)", sum.Persons)
	if err := setRow(f, BudgetSheet, row, []any{perPerson, nil, nil, nil, nil, sum.PerPerson}); err != nil {
		return err
	}

	for _, col := range []string{"D", "F"} {
		if err := f.SetCellStyle(BudgetSheet, col+"2", fmt.Sprintf("%s%d", col, row), money); err != nil {
			return fmt.Errorf("style amounts: %w", err)
		}
	}
	if err := f.SetColWidth(BudgetSheet, "A", "C", 28); err != nil {
		return fmt.Errorf("set width: %w", err)
	}
	if err := f.SetColWidth(BudgetSheet, "H", "H", 48); err != nil {
		return fmt.Errorf("set width: %w", err)
	}

	if len(notes) > 0 {
		if _, err := f.NewSheet(NotesSheet); err != nil {
			return fmt.Errorf("add notes sheet: %w", err)
		}
		for i, n := range notes {
			if err := f.SetCellValue(NotesSheet, cell(1, i+1), n); err != nil {
				return fmt.Errorf("write note: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, style int) error {
	if err := f.SetCellStyle(sheet, cell(1, row), cell(len(budgetHeader), row), style); err != nil {
		return fmt.Errorf("style row %d: %w", row, err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
