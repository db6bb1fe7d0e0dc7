// Package export renders packing lists and budgets as printable CSV and
// spreadsheet files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/ruthgorge/expedition/internal/budget"
	"github.com/ruthgorge/expedition/internal/packing"
)

// PackingRow is one line of the printed packing list.
type PackingRow struct {
	Category     string  `csv:"category"`
	Item         string  `csv:"item"`
	Essential    bool    `csv:"essential"`
	WeightGrams  int     `csv:"weight_g"`
	WeightPounds float64 `csv:"weight_lb"`
	Checked      bool    `csv:"checked"`
	Notes        string  `csv:"notes,omitempty"`
}

// PackingRows flattens checklist categories into rows.
func PackingRows(categories []packing.CategoryView) []PackingRow {
	var rows []PackingRow
	for _, c := range categories {
		for _, item := range c.Items {
			rows = append(rows, PackingRow{
				Category:     c.Name,
				Item:         item.Name,
				Essential:    item.Essential,
				WeightGrams:  item.Weight,
				WeightPounds: packing.GramsToPounds(item.Weight),
				Checked:      item.Checked,
				Notes:        item.Notes,
			})
		}
	}
	return rows
}

// WritePackingCSV writes the checklist as CSV with a header row.
func WritePackingCSV(w io.Writer, categories []packing.CategoryView) error {
	return writeCSV(w, PackingRow{}, PackingRows(categories))
}

// WriteBudgetCSV writes every selected budget line as CSV with a header row.
func WriteBudgetCSV(w io.Writer, sum budget.Summary) error {
	return writeCSV(w, budget.Line{}, sum.Lines())
}

func writeCSV[T any](w io.Writer, header T, rows []T) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(header); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("encode row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
