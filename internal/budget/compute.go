package budget

import (
	"github.com/ruthgorge/expedition/internal/reference"
)

// CustomGroupKey is the group key of custom items in a Summary.
const CustomGroupKey = "custom"

// Line is a selected item with its line total.
type Line struct {
	ID       string  `json:"id" csv:"id"`
	GroupKey string  `json:"groupKey" csv:"group"`
	Category string  `json:"category" csv:"category"`
	Name     string  `json:"name" csv:"item"`
	Estimate float64 `json:"estimate" csv:"unit_cost"`
	Quantity int     `json:"quantity" csv:"quantity"`
	Total    float64 `json:"total" csv:"total"`
	Required bool    `json:"required" csv:"required"`
	Custom   bool    `json:"custom" csv:"custom"`
	Notes    string  `json:"notes,omitempty" csv:"notes"`
}

// GroupTotal is the subtotal of one top-level group.
type GroupTotal struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
	Lines []Line  `json:"lines"`
}

// Summary is the computed budget.
type Summary struct {
	Groups    []GroupTotal `json:"groups"`
	Total     float64      `json:"total"`
	Persons   int          `json:"persons"`
	PerPerson float64      `json:"perPerson"`
}

// Compute totals the selected lines per group. Groups follow catalog order and
// custom items form a trailing group. Every group is present even when empty.
func Compute(groups []reference.BudgetGroup, sel Selection, persons int) Summary {
	persons = ClampPersons(persons)
	sum := Summary{Persons: persons, Groups: make([]GroupTotal, 0, len(groups)+1)}

	for _, g := range groups {
		gt := GroupTotal{Key: g.Key, Label: g.Label, Lines: []Line{}}
		for _, c := range g.Categories {
			for _, item := range c.Items {
				q, ok := sel.Quantities[item.ID]
				if !ok {
					continue
				}
				line := Line{
					ID:       item.ID,
					GroupKey: g.Key,
					Category: c.Name,
					Name:     item.Name,
					Estimate: item.Estimate,
					Quantity: q,
					Total:    item.Estimate * float64(q),
					Required: item.Required,
					Notes:    item.Notes,
				}
				gt.Lines = append(gt.Lines, line)
				gt.Total += line.Total
			}
		}
		sum.Groups = append(sum.Groups, gt)
		sum.Total += gt.Total
	}

	custom := GroupTotal{Key: CustomGroupKey, Label: "Custom Items", Lines: []Line{}}
	for _, item := range sel.CustomItems {
		q, ok := sel.Quantities[item.ID]
		if !ok {
			continue
		}
		line := Line{
			ID:       item.ID,
			GroupKey: CustomGroupKey,
			Category: item.Category,
			Name:     item.Name,
			Estimate: item.Estimate,
			Quantity: q,
			Total:    item.Estimate * float64(q),
			Custom:   true,
			Notes:    item.Notes,
		}
		custom.Lines = append(custom.Lines, line)
		custom.Total += line.Total
	}
	sum.Groups = append(sum.Groups, custom)
	sum.Total += custom.Total

	sum.PerPerson = sum.Total / float64(persons)
	return sum
}

// Lines flattens a summary into its selected lines.
func (s Summary) Lines() []Line {
	var lines []Line
	for _, g := range s.Groups {
		lines = append(lines, g.Lines...)
	}
	return lines
}
