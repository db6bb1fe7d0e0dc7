package plan

import (
	"context"

	"github.com/ruthgorge/expedition/internal/api/models"
	"github.com/ruthgorge/expedition/internal/itinerary"
)

// GenerateItinerary builds the canned itinerary from the plan's start date
// and selected routes and combines it with the current one. Without a start
// date or routes the plan is returned unchanged.
func (s *Service) GenerateItinerary(ctx context.Context, id string, mode itinerary.Mode, confirm bool) (*Plan, error) {
	if mode == "" {
		mode = itinerary.ModeReplace
	}
	if mode != itinerary.ModeReplace && mode != itinerary.ModeMerge {
		return nil, itinerary.ErrInvalidMode
	}

	generated := false
	p, err := s.repo.Mutate(ctx, id, func(p *Plan) error {
		if p.Dates.Start == nil || len(p.Routes) == 0 {
			return nil
		}
		fresh := itinerary.Generate(*p.Dates.Start, s.SelectedRoutes(p), s.newID)
		activities, err := itinerary.Regenerate(p.Activities, fresh, mode, confirm)
		if err != nil {
			return err
		}
		p.Activities = activities
		generated = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if generated {
		s.metrics.ItineraryGenerated(ctx, string(mode))
		s.logger.Debug().
			Str("plan_id", id).
			Str("mode", string(mode)).
			Int("activities", len(p.Activities)).
			Msg("itinerary generated")
	}
	return p, nil
}

// OpenActivityCreate opens the editor on a blank activity for day.
func (s *Service) OpenActivityCreate(ctx context.Context, id, day string) (*Plan, error) {
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		return p.Editor.OpenCreate(day)
	})
}

// OpenActivityEdit loads an existing activity into the editor.
func (s *Service) OpenActivityEdit(ctx context.Context, id, activityID string) (*Plan, error) {
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		for _, a := range p.Activities {
			if a.ID == activityID {
				return p.Editor.OpenEdit(a)
			}
		}
		return itinerary.ErrActivityNotFound
	})
}

// UpdateActivityDraft replaces the editor's draft fields.
func (s *Service) UpdateActivityDraft(ctx context.Context, id string, d itinerary.Draft) (*Plan, error) {
	if d.RouteID != "" && !s.store.HasRoute(d.RouteID) {
		return nil, &ValidationError{Errors: []models.FieldError{{
			Field:   "routeId",
			Message: "unknown route",
			Code:    "unknown_route",
		}}}
	}
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		return p.Editor.UpdateDraft(d)
	})
}

// SaveActivity writes the draft into the itinerary and closes the editor.
func (s *Service) SaveActivity(ctx context.Context, id string) (*Plan, itinerary.Activity, error) {
	var saved itinerary.Activity
	p, err := s.repo.Mutate(ctx, id, func(p *Plan) error {
		activities, a, err := p.Editor.Save(p.Activities, s.newID)
		if err != nil {
			return err
		}
		itinerary.SortByDate(activities)
		p.Activities = activities
		saved = a
		return nil
	})
	if err != nil {
		return nil, itinerary.Activity{}, err
	}
	return p, saved, nil
}

// CancelActivityEdit discards the draft.
func (s *Service) CancelActivityEdit(ctx context.Context, id string) (*Plan, error) {
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		return p.Editor.Cancel()
	})
}

// DeleteActivity removes the activity open in the editor.
func (s *Service) DeleteActivity(ctx context.Context, id string) (*Plan, error) {
	return s.repo.Mutate(ctx, id, func(p *Plan) error {
		activities, err := p.Editor.Delete(p.Activities)
		if err != nil {
			return err
		}
		p.Activities = activities
		return nil
	})
}
