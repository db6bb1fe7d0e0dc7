package packing

import (
	"strings"

	"github.com/ruthgorge/expedition/internal/reference"
)

// CustomItemsCategory is the display name of the custom item group.
const CustomItemsCategory = "Custom Items"

// Filter narrows the items shown in a view. Counts ignore it.
type Filter struct {
	Search        string
	EssentialOnly bool
}

// Matches reports whether an item passes the filter. Search is a
// case-insensitive substring over name and notes.
func (f Filter) Matches(name, notes string, essential bool) bool {
	if f.EssentialOnly && !essential {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(name), q) || strings.Contains(strings.ToLower(notes), q)
}

// ItemView is an item with its checked flag for one key owner.
type ItemView struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Name      string `json:"name"`
	Essential bool   `json:"essential"`
	Weight    int    `json:"weight"`
	Notes     string `json:"notes,omitempty"`
	Custom    bool   `json:"custom"`
	Checked   bool   `json:"checked"`
}

// CategoryView is one category of a rendered checklist.
type CategoryView struct {
	Name    string     `json:"name"`
	Total   int        `json:"total"`
	Checked int        `json:"checked"`
	Items   []ItemView `json:"items"`
}

// Counts holds total and checked item counts.
type Counts struct {
	Total   int `json:"total"`
	Checked int `json:"checked"`
}

// View renders the checklist for climberID (TeamClimberID for the team).
// Category counts cover every item; Items holds only those passing f.
// Categories left empty by the filter are omitted.
func View(categories []reference.PackingCategory, s State, climberID int, f Filter) ([]CategoryView, Counts) {
	var (
		views  []CategoryView
		counts Counts
	)

	for _, c := range categories {
		cv := CategoryView{Name: c.Name, Items: []ItemView{}}
		for _, item := range c.Items {
			checked := s.Checked[Key{Category: c.Name, Item: item.Name, ClimberID: climberID}]
			cv.Total++
			if checked {
				cv.Checked++
			}
			if !f.Matches(item.Name, item.Notes, item.Essential) {
				continue
			}
			cv.Items = append(cv.Items, ItemView{
				ID:        item.ID,
				Category:  c.Name,
				Name:      item.Name,
				Essential: item.Essential,
				Weight:    item.Weight,
				Notes:     item.Notes,
				Checked:   checked,
			})
		}
		counts.Total += cv.Total
		counts.Checked += cv.Checked
		if len(cv.Items) > 0 {
			views = append(views, cv)
		}
	}

	if len(s.CustomItems) > 0 {
		cv := CategoryView{Name: CustomItemsCategory, Items: []ItemView{}}
		for _, item := range s.CustomItems {
			checked := s.Checked[CustomKey(item.ID, climberID)]
			cv.Total++
			if checked {
				cv.Checked++
			}
			if !f.Matches(item.Name, item.Notes, item.Essential) {
				continue
			}
			cv.Items = append(cv.Items, ItemView{
				ID:        item.ID,
				Category:  CustomCategory,
				Name:      item.Name,
				Essential: item.Essential,
				Weight:    item.Weight,
				Notes:     item.Notes,
				Custom:    true,
				Checked:   checked,
			})
		}
		counts.Total += cv.Total
		counts.Checked += cv.Checked
		if len(cv.Items) > 0 {
			views = append(views, cv)
		}
	}

	return views, counts
}
