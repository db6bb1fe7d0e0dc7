// Package packing tracks checked gear for the team and for individual climbers
// and derives weights and counts from it.
package packing

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Packing errors.
var (
	ErrCustomItemNotFound = errors.New("custom item not found")
	ErrNameRequired       = errors.New("custom item name is required")
)

// TeamClimberID is the ClimberID of team-wide keys.
const TeamClimberID = 0

// CustomCategory is the Category of keys that point at custom items.
const CustomCategory = "custom"

// Key identifies a checked entry. Catalog items use category and item name;
// custom items use CustomCategory and the custom item id.
type Key struct {
	Category  string `json:"category"`
	Item      string `json:"item"`
	ClimberID int    `json:"climberId"`
}

// TeamKey returns the team-wide key for a catalog item.
func TeamKey(category, item string) Key {
	return Key{Category: category, Item: item}
}

// CustomKey returns the key for a custom item.
func CustomKey(id string, climberID int) Key {
	return Key{Category: CustomCategory, Item: id, ClimberID: climberID}
}

// CustomItem is a user-added piece of gear. Weight is in grams.
type CustomItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	Essential bool   `json:"essential"`
	Weight    int    `json:"weight"`
	Notes     string `json:"notes,omitempty"`
}

// State is the checklist of one plan.
type State struct {
	Checked     map[Key]bool
	CustomItems []CustomItem
}

// NewState returns an empty checklist.
func NewState() State {
	return State{Checked: make(map[Key]bool)}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := State{
		Checked:     make(map[Key]bool, len(s.Checked)),
		CustomItems: append([]CustomItem(nil), s.CustomItems...),
	}
	for k, v := range s.Checked {
		out.Checked[k] = v
	}
	return out
}

// IsChecked reports whether k is checked.
func (s *State) IsChecked(k Key) bool {
	return s.Checked[k]
}

// Set checks or unchecks k.
func (s *State) Set(k Key, checked bool) {
	if s.Checked == nil {
		s.Checked = make(map[Key]bool)
	}
	if !checked {
		delete(s.Checked, k)
		return
	}
	s.Checked[k] = true
}

// Toggle flips k and returns the new value.
func (s *State) Toggle(k Key) bool {
	v := !s.Checked[k]
	s.Set(k, v)
	return v
}

// Clear unchecks everything. Custom items are kept.
func (s *State) Clear() {
	s.Checked = make(map[Key]bool)
}

// CheckedKeys returns the checked keys in a stable order.
func (s *State) CheckedKeys() []Key {
	keys := make([]Key, 0, len(s.Checked))
	for k, v := range s.Checked {
		if v {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.ClimberID != b.ClimberID {
			return a.ClimberID < b.ClimberID
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Item < b.Item
	})
	return keys
}

// AddCustomItem appends a custom item with a fresh id and returns it.
func (s *State) AddCustomItem(item CustomItem) (CustomItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return CustomItem{}, ErrNameRequired
	}
	if item.Weight < 0 {
		item.Weight = 0
	}
	item.ID = "pci_" + uuid.New().String()[:22]
	s.CustomItems = append(s.CustomItems, item)
	return item, nil
}

// FindCustomItem returns a custom item by id.
func (s *State) FindCustomItem(id string) (CustomItem, bool) {
	for _, item := range s.CustomItems {
		if item.ID == id {
			return item, true
		}
	}
	return CustomItem{}, false
}

// DeleteCustomItem removes a custom item and every checked entry that
// points at it, team-wide and per climber.
func (s *State) DeleteCustomItem(id string) error {
	idx := -1
	for i, item := range s.CustomItems {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCustomItemNotFound
	}

	s.CustomItems = append(s.CustomItems[:idx:idx], s.CustomItems[idx+1:]...)
	for k := range s.Checked {
		if k.Category == CustomCategory && k.Item == id {
			delete(s.Checked, k)
		}
	}
	return nil
}
