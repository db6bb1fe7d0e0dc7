// Package budget tracks selected cost line items and computes expedition totals.
package budget

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Budget errors.
var (
	ErrItemNotSelected    = errors.New("budget item not selected")
	ErrCustomItemNotFound = errors.New("custom budget item not found")
	ErrNameRequired       = errors.New("custom budget item name is required")
)

// CustomItem is a user-added cost. Estimate is the unit cost in USD.
type CustomItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Estimate float64 `json:"estimate"`
	Notes    string  `json:"notes,omitempty"`
}

// Selection maps selected item ids (catalog or custom) to quantities.
type Selection struct {
	Quantities  map[string]int
	CustomItems []CustomItem
}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{Quantities: make(map[string]int)}
}

// Clone returns a deep copy.
func (s Selection) Clone() Selection {
	out := Selection{
		Quantities:  make(map[string]int, len(s.Quantities)),
		CustomItems: append([]CustomItem(nil), s.CustomItems...),
	}
	for k, v := range s.Quantities {
		out.Quantities[k] = v
	}
	return out
}

// ClampQuantity returns q, or 1 when q is below 1.
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// ClampPersons returns n, or 1 when n is below 1.
func ClampPersons(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// IsSelected reports whether id is selected.
func (s *Selection) IsSelected(id string) bool {
	_, ok := s.Quantities[id]
	return ok
}

// Quantity returns the selected quantity of id, or 0.
func (s *Selection) Quantity(id string) int {
	return s.Quantities[id]
}

// Toggle selects id with quantity 1 or deselects it. It returns whether id
// is selected afterwards.
func (s *Selection) Toggle(id string) bool {
	if s.Quantities == nil {
		s.Quantities = make(map[string]int)
	}
	if _, ok := s.Quantities[id]; ok {
		delete(s.Quantities, id)
		return false
	}
	s.Quantities[id] = 1
	return true
}

// SetQuantity sets the quantity of a selected item, clamped to at least 1.
func (s *Selection) SetQuantity(id string, q int) (int, error) {
	if !s.IsSelected(id) {
		return 0, ErrItemNotSelected
	}
	q = ClampQuantity(q)
	s.Quantities[id] = q
	return q, nil
}

// Step moves the quantity of a selected item by delta, never below 1.
func (s *Selection) Step(id string, delta int) (int, error) {
	if !s.IsSelected(id) {
		return 0, ErrItemNotSelected
	}
	return s.SetQuantity(id, s.Quantities[id]+delta)
}

// AddCustomItem stores a custom item under a fresh id and selects it with
// the given quantity, clamped to at least 1.
func (s *Selection) AddCustomItem(item CustomItem, quantity int) (CustomItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return CustomItem{}, ErrNameRequired
	}
	if item.Estimate < 0 {
		item.Estimate = 0
	}
	item.ID = "bci_" + uuid.New().String()[:22]

	if s.Quantities == nil {
		s.Quantities = make(map[string]int)
	}
	s.CustomItems = append(s.CustomItems, item)
	s.Quantities[item.ID] = ClampQuantity(quantity)
	return item, nil
}

// HasCustomItem reports whether id is a custom item.
func (s *Selection) HasCustomItem(id string) bool {
	for _, item := range s.CustomItems {
		if item.ID == id {
			return true
		}
	}
	return false
}

// DeleteCustomItem removes a custom item and its selection.
func (s *Selection) DeleteCustomItem(id string) error {
	for i, item := range s.CustomItems {
		if item.ID == id {
			s.CustomItems = append(s.CustomItems[:i:i], s.CustomItems[i+1:]...)
			delete(s.Quantities, id)
			return nil
		}
	}
	return ErrCustomItemNotFound
}
