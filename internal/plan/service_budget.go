package plan

import (
	"context"
	"fmt"

	"github.com/ruthgorge/expedition/internal/budget"
	"github.com/ruthgorge/expedition/internal/calendar"
)

// BudgetSummary is the computed budget of a plan.
type BudgetSummary struct {
	budget.Summary
	DurationDays int
}

// Budget computes the plan's budget totals.
func (s *Service) Budget(ctx context.Context, id string) (*BudgetSummary, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.BudgetOf(ctx, p), nil
}

// BudgetOf computes the budget for an already loaded plan.
func (s *Service) BudgetOf(ctx context.Context, p *Plan) *BudgetSummary {
	sum := budget.Compute(s.store.BudgetGroups(), p.Budget, p.Persons)
	s.metrics.BudgetComputed(ctx)
	return &BudgetSummary{
		Summary:      sum,
		DurationDays: calendar.Duration(p.Dates),
	}
}

// ToggleBudgetItem selects a catalog or custom item with quantity 1, or
// deselects it.
func (s *Service) ToggleBudgetItem(ctx context.Context, id, itemID string) (*Plan, error) {
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		if err := s.checkBudgetItem(p, itemID); err != nil {
			return err
		}
		p.Budget.Toggle(itemID)
		return nil
	})
}

// SetBudgetQuantity sets the quantity of a selected item.
func (s *Service) SetBudgetQuantity(ctx context.Context, id, itemID string, quantity int) (*Plan, error) {
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		if err := s.checkBudgetItem(p, itemID); err != nil {
			return err
		}
		_, err := p.Budget.SetQuantity(itemID, quantity)
		return err
	})
}

// StepBudgetQuantity moves the quantity of a selected item by delta.
func (s *Service) StepBudgetQuantity(ctx context.Context, id, itemID string, delta int) (*Plan, error) {
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		if err := s.checkBudgetItem(p, itemID); err != nil {
			return err
		}
		_, err := p.Budget.Step(itemID, delta)
		return err
	})
}

// SetPersons sets the number of people the budget is split between.
func (s *Service) SetPersons(ctx context.Context, id string, persons int) (*Plan, error) {
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		p.Persons = budget.ClampPersons(persons)
		return nil
	})
}

// AddBudgetItem adds a custom cost line selected with the given quantity.
func (s *Service) AddBudgetItem(ctx context.Context, id string, item budget.CustomItem, quantity int) (budget.CustomItem, error) {
	var added budget.CustomItem
	_, err := s.repo.Mutate(ctx, id, func(p *Plan) error {
		var err error
		added, err = p.Budget.AddCustomItem(item, quantity)
		return err
	})
	if err != nil {
		return budget.CustomItem{}, fmt.Errorf("add budget item: %w", err)
	}
	return added, nil
}

// DeleteBudgetItem removes a custom cost line.
func (s *Service) DeleteBudgetItem(ctx context.Context, id, itemID string) (*Plan, error) {
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		return p.Budget.DeleteCustomItem(itemID)
	})
}

func (s *Service) checkBudgetItem(p *Plan, itemID string) error {
	if p.Budget.HasCustomItem(itemID) {
		return nil
	}
	_, err := s.store.BudgetItem(itemID)
	return err
}
