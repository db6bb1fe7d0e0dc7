package packing

import (
	"math"

	"github.com/ruthgorge/expedition/internal/reference"
)

const gramsPerPound = 453.59237

// GramsToPounds converts grams to pounds rounded to one decimal.
func GramsToPounds(g int) float64 {
	return math.Round(float64(g)/gramsPerPound*10) / 10
}

// TeamWeight sums the catalog and custom items checked on the team key.
func TeamWeight(categories []reference.PackingCategory, s State) int {
	return checkedWeight(categories, s, TeamClimberID)
}

// ClimberWeight sums the items checked for the climber and adds body weight.
func ClimberWeight(categories []reference.PackingCategory, s State, climber reference.ClimberProfile) int {
	return checkedWeight(categories, s, climber.ID) + climber.Weight
}

func checkedWeight(categories []reference.PackingCategory, s State, climberID int) int {
	total := 0
	for _, c := range categories {
		for _, item := range c.Items {
			if s.Checked[Key{Category: c.Name, Item: item.Name, ClimberID: climberID}] {
				total += item.Weight
			}
		}
	}
	for _, item := range s.CustomItems {
		if s.Checked[CustomKey(item.ID, climberID)] {
			total += item.Weight
		}
	}
	return total
}

// CheckEssentials checks every essential catalog and custom item on the
// given climber's key. Use TeamClimberID for the team list.
func CheckEssentials(categories []reference.PackingCategory, s *State, climberID int) {
	for _, c := range categories {
		for _, item := range c.Items {
			if item.Essential {
				s.Set(Key{Category: c.Name, Item: item.Name, ClimberID: climberID}, true)
			}
		}
	}
	for _, item := range s.CustomItems {
		if item.Essential {
			s.Set(CustomKey(item.ID, climberID), true)
		}
	}
}

// SelectClimber checks the climber's resolved preset gear and the shared
// essentials on that climber's key only.
func SelectClimber(s *State, climberID int, preset, essentials reference.GearResolution) {
	for _, ref := range preset.Resolved {
		s.Set(Key{Category: ref.Category, Item: ref.Name, ClimberID: climberID}, true)
	}
	for _, ref := range essentials.Resolved {
		s.Set(Key{Category: ref.Category, Item: ref.Name, ClimberID: climberID}, true)
	}
}

// MergeIntoTeam copies every checked climber key onto the team key,
// including keys of climbers who have since left the team. Nothing is ever
// unchecked by a merge.
func MergeIntoTeam(s *State) {
	var merged []Key
	for k, v := range s.Checked {
		if v && k.ClimberID != TeamClimberID {
			merged = append(merged, Key{Category: k.Category, Item: k.Item})
		}
	}
	for _, k := range merged {
		s.Set(k, true)
	}
}
