package reference

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Store serves the catalog. It is immutable after NewStore returns and safe
// for concurrent use.
type Store struct {
	catalog    *Catalog
	routes     map[string]int
	climbers   map[int]int
	packing    map[string]ItemRef
	budget     map[string]BudgetItemRef
	presets    map[int]GearResolution
	essentials GearResolution
	gear       *gearIndex
}

// NewStore indexes a catalog, assigns missing ids and resolves preset gear.
func NewStore(cat *Catalog, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		catalog:  cat,
		routes:   make(map[string]int, len(cat.Routes)),
		climbers: make(map[int]int, len(cat.Climbers)),
		packing:  make(map[string]ItemRef),
		budget:   make(map[string]BudgetItemRef),
		presets:  make(map[int]GearResolution, len(cat.Climbers)),
	}

	for i, r := range cat.Routes {
		if _, ok := s.routes[r.ID]; ok {
			return nil, fmt.Errorf("route %q: %w", r.ID, ErrDuplicateID)
		}
		s.routes[r.ID] = i
	}

	for ci := range cat.PackingCategories {
		c := &cat.PackingCategories[ci]
		for ii := range c.Items {
			item := &c.Items[ii]
			if item.ID == "" {
				item.ID = slugify(item.Name)
			}
			if _, ok := s.packing[item.ID]; ok {
				return nil, fmt.Errorf("packing item %q: %w", item.ID, ErrDuplicateID)
			}
			s.packing[item.ID] = ItemRef{ID: item.ID, Category: c.Name, Name: item.Name}
		}
	}

	for gi := range cat.BudgetGroups {
		g := &cat.BudgetGroups[gi]
		for ci := range g.Categories {
			c := &g.Categories[ci]
			for ii := range c.Items {
				item := &c.Items[ii]
				if item.ID == "" {
					item.ID = g.Key + "-" + slugify(c.Name) + "-" + slugify(item.Name)
				}
				if _, ok := s.budget[item.ID]; ok {
					return nil, fmt.Errorf("budget item %q: %w", item.ID, ErrDuplicateID)
				}
				s.budget[item.ID] = BudgetItemRef{GroupKey: g.Key, Category: c.Name, Item: *item}
			}
		}
	}

	s.gear = newGearIndex(cat.PackingCategories)

	s.essentials = s.gear.resolve(cat.EssentialGear)
	if len(s.essentials.Unresolved) > 0 {
		logger.Warn().
			Strs("unresolved", s.essentials.Unresolved).
			Msg("essential gear not found in packing catalog")
	}

	for i, c := range cat.Climbers {
		if _, ok := s.climbers[c.ID]; ok {
			return nil, fmt.Errorf("climber %d: %w", c.ID, ErrDuplicateID)
		}
		s.climbers[c.ID] = i

		res := s.gear.resolve(c.PresetGear)
		s.presets[c.ID] = res
		if len(res.Unresolved) > 0 {
			logger.Warn().
				Int("climber_id", c.ID).
				Str("climber", c.Name).
				Strs("unresolved", res.Unresolved).
				Msg("preset gear not found in packing catalog")
		}
	}

	logger.Info().
		Int("routes", len(cat.Routes)).
		Int("packing_items", len(s.packing)).
		Int("budget_items", len(s.budget)).
		Int("climbers", len(cat.Climbers)).
		Msg("reference catalog loaded")

	return s, nil
}

// Routes returns every route in catalog order.
func (s *Store) Routes() []Route {
	return s.catalog.Routes
}

// Route returns a route by id.
func (s *Store) Route(id string) (Route, error) {
	i, ok := s.routes[id]
	if !ok {
		return Route{}, ErrRouteNotFound
	}
	return s.catalog.Routes[i], nil
}

// HasRoute reports whether id names a route.
func (s *Store) HasRoute(id string) bool {
	_, ok := s.routes[id]
	return ok
}

// Climbers returns every climber profile.
func (s *Store) Climbers() []ClimberProfile {
	return s.catalog.Climbers
}

// Climber returns a climber profile by id.
func (s *Store) Climber(id int) (ClimberProfile, error) {
	i, ok := s.climbers[id]
	if !ok {
		return ClimberProfile{}, ErrClimberNotFound
	}
	return s.catalog.Climbers[i], nil
}

// PresetGear returns the climber's preset gear joined onto the packing catalog.
func (s *Store) PresetGear(climberID int) (GearResolution, error) {
	res, ok := s.presets[climberID]
	if !ok {
		return GearResolution{}, ErrClimberNotFound
	}
	return res, nil
}

// EssentialGear returns the shared essential gear joined onto the packing catalog.
func (s *Store) EssentialGear() GearResolution {
	return s.essentials
}

// PackingCategories returns the packing catalog.
func (s *Store) PackingCategories() []PackingCategory {
	return s.catalog.PackingCategories
}

// PackingItem finds a catalog item by category and item name.
func (s *Store) PackingItem(category, name string) (PackingItem, error) {
	for _, c := range s.catalog.PackingCategories {
		if c.Name != category {
			continue
		}
		for _, item := range c.Items {
			if item.Name == name {
				return item, nil
			}
		}
	}
	return PackingItem{}, ErrPackingItemNotFound
}

// PackingItemRef returns the category and name for a catalog item id.
func (s *Store) PackingItemRef(id string) (ItemRef, error) {
	ref, ok := s.packing[id]
	if !ok {
		return ItemRef{}, ErrPackingItemNotFound
	}
	return ref, nil
}

// PackingGuidance returns the packing advice lists.
func (s *Store) PackingGuidance() (specialConsiderations, weightOptimization []string) {
	return s.catalog.SpecialConsiderations, s.catalog.WeightOptimization
}

// BudgetGroups returns the budget catalog.
func (s *Store) BudgetGroups() []BudgetGroup {
	return s.catalog.BudgetGroups
}

// BudgetItem returns a budget line item by id.
func (s *Store) BudgetItem(id string) (BudgetItemRef, error) {
	ref, ok := s.budget[id]
	if !ok {
		return BudgetItemRef{}, ErrBudgetItemNotFound
	}
	return ref, nil
}

// BudgetNotes returns the budget calculation notes.
func (s *Store) BudgetNotes() []string {
	return s.catalog.BudgetNotes
}

// Logistics returns the logistics section.
func (s *Store) Logistics() Logistics {
	return s.catalog.Logistics
}

// LandingZones returns every air taxi landing zone once, in catalog order,
// with the operators that fly to it.
func (s *Store) LandingZones() []ServedLandingZone {
	index := make(map[string]int)
	var zones []ServedLandingZone
	for _, t := range s.catalog.Logistics.AirTaxis {
		for _, z := range t.LandingZones {
			if i, ok := index[z.Name]; ok {
				zones[i].Operators = append(zones[i].Operators, t.Name)
				continue
			}
			index[z.Name] = len(zones)
			zones = append(zones, ServedLandingZone{LandingZone: z, Operators: []string{t.Name}})
		}
	}
	return zones
}

// Seasonal returns the seasonal conditions section.
func (s *Store) Seasonal() Seasonal {
	return s.catalog.Seasonal
}

// VolcanicRisk returns the volcanic risk section.
func (s *Store) VolcanicRisk() VolcanicRisk {
	return s.catalog.Volcanic
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
