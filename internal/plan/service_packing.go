package plan

import (
	"context"
	"fmt"

	"github.com/ruthgorge/expedition/internal/api/models"
	"github.com/ruthgorge/expedition/internal/packing"
	"github.com/ruthgorge/expedition/internal/reference"
)

// PackingSummary is the packing list as seen from one view.
type PackingSummary struct {
	ViewMode     ViewMode
	Climber      *reference.ClimberProfile
	Categories   []packing.CategoryView
	Counts       packing.Counts
	WeightGrams  int
	WeightPounds float64
	Unresolved   []string
	CustomItems  []packing.CustomItem
}

// PackingView computes the checklist for the team or for one climber. An
// empty mode uses the plan's current view; an individual view without a
// climber id uses the active climber.
func (s *Service) PackingView(ctx context.Context, id string, mode ViewMode, climberID int, f packing.Filter) (*PackingSummary, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if mode == "" {
		mode = p.ViewMode
		climberID = p.ActiveClimber
	}
	if mode == ViewIndividual && climberID == 0 {
		climberID = p.ActiveClimber
	}

	categories := s.store.PackingCategories()
	out := &PackingSummary{ViewMode: mode, CustomItems: p.Packing.CustomItems}
	if out.CustomItems == nil {
		out.CustomItems = []packing.CustomItem{}
	}

	switch mode {
	case ViewTeam:
		out.Categories, out.Counts = packing.View(categories, p.Packing, packing.TeamClimberID, f)
		out.WeightGrams = packing.TeamWeight(categories, p.Packing)
	case ViewIndividual:
		if climberID == 0 {
			return nil, &ValidationError{Errors: []models.FieldError{{
				Field:   "climberId",
				Message: "climberId is required when no climber is active",
				Code:    "required",
			}}}
		}
		climber, err := s.store.Climber(climberID)
		if err != nil {
			return nil, err
		}
		preset, _ := s.store.PresetGear(climberID)
		out.Climber = &climber
		out.Unresolved = preset.Unresolved
		out.Categories, out.Counts = packing.View(categories, p.Packing, climberID, f)
		out.WeightGrams = packing.ClimberWeight(categories, p.Packing, climber)
	default:
		return nil, &ValidationError{Errors: []models.FieldError{{
			Field:   "view",
			Message: "view must be team or individual",
			Code:    "invalid_view",
		}}}
	}

	out.WeightPounds = packing.GramsToPounds(out.WeightGrams)
	s.metrics.WeightComputed(ctx, string(mode))
	return out, nil
}

// CheckItem sets one checklist entry. The key must name a catalog item or a
// custom item of the plan, and its climber must be the team or a known climber.
func (s *Service) CheckItem(ctx context.Context, id string, key packing.Key, checked bool) (*Plan, error) {
	if err := s.checkKey(key); err != nil {
		return nil, err
	}
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		if err := checkCustomKey(p, key); err != nil {
			return err
		}
		p.Packing.Set(key, checked)
		return nil
	})
}

// ToggleItem flips one checklist entry.
func (s *Service) ToggleItem(ctx context.Context, id string, key packing.Key) (*Plan, error) {
	if err := s.checkKey(key); err != nil {
		return nil, err
	}
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		if err := checkCustomKey(p, key); err != nil {
			return err
		}
		p.Packing.Toggle(key)
		return nil
	})
}

func (s *Service) checkKey(key packing.Key) error {
	if key.ClimberID != packing.TeamClimberID {
		if _, err := s.store.Climber(key.ClimberID); err != nil {
			return err
		}
	}
	if key.Category != packing.CustomCategory {
		if _, err := s.store.PackingItem(key.Category, key.Item); err != nil {
			return err
		}
	}
	return nil
}

func checkCustomKey(p *Plan, key packing.Key) error {
	if key.Category != packing.CustomCategory {
		return nil
	}
	if _, ok := p.Packing.FindCustomItem(key.Item); !ok {
		return packing.ErrCustomItemNotFound
	}
	return nil
}

// CheckEssentials checks every essential item for the team or a climber.
func (s *Service) CheckEssentials(ctx context.Context, id string, climberID int) (*Plan, error) {
	if climberID != packing.TeamClimberID {
		if _, err := s.store.Climber(climberID); err != nil {
			return nil, err
		}
	}

	categories := s.store.PackingCategories()
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		packing.CheckEssentials(categories, &p.Packing, climberID)
		return nil
	})
}

// ClearChecks unchecks every entry of the plan.
func (s *Service) ClearChecks(ctx context.Context, id string) (*Plan, error) {
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		p.Packing.Clear()
		return nil
	})
}

// AddPackingItem adds a custom gear item.
func (s *Service) AddPackingItem(ctx context.Context, id string, item packing.CustomItem) (packing.CustomItem, error) {
	var added packing.CustomItem
	_, err := s.repo.Mutate(ctx, id, func(p *Plan) error {
		var err error
		added, err = p.Packing.AddCustomItem(item)
		return err
	})
	if err != nil {
		return packing.CustomItem{}, fmt.Errorf("add packing item: %w", err)
	}
	return added, nil
}

// DeletePackingItem removes a custom gear item and its checks.
func (s *Service) DeletePackingItem(ctx context.Context, id, itemID string) (*Plan, error) {
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		return p.Packing.DeleteCustomItem(itemID)
	})
}
