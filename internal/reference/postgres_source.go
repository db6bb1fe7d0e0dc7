package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads routes, packing items and budget items from PostgreSQL.
// Narrative sections (logistics, seasonal, volcanic, climbers) always come from
// the embedded files.
//
// Expected tables:
//
//	reference_routes(id, name, peak, grade, technical_grade, vertical_gain, category, type,
//	    characteristics, crux, approach, traffic_level, condition_window, notes, landing_zone,
//	    start_lat, start_lng, summit_lat, summit_lng, accuracy, sort_order)
//	reference_packing_items(category, category_order, name, essential, weight_grams, notes,
//	    aliases text[], sort_order)
//	reference_budget_items(group_key, group_label, group_order, category, category_order,
//	    name, estimate, notes, required, sort_order)
type PostgresSource struct {
	pool     *pgxpool.Pool
	fallback Source
}

// NewPostgresSource creates a PostgreSQL catalog source.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool, fallback: NewEmbeddedSource()}
}

// Load reads the tabular collections and merges them over the embedded catalog.
func (s *PostgresSource) Load(ctx context.Context) (*Catalog, error) {
	cat, err := s.fallback.Load(ctx)
	if err != nil {
		return nil, err
	}

	routes, err := s.loadRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	packing, err := s.loadPacking(ctx)
	if err != nil {
		return nil, fmt.Errorf("load packing items: %w", err)
	}
	budget, err := s.loadBudget(ctx)
	if err != nil {
		return nil, fmt.Errorf("load budget items: %w", err)
	}

	cat.Routes = routes
	cat.PackingCategories = packing
	cat.BudgetGroups = budget
	return cat, nil
}

func (s *PostgresSource) loadRoutes(ctx context.Context) ([]Route, error) {
	query := `
		SELECT
			id, name, peak, grade, technical_grade, vertical_gain, category, type,
			characteristics, crux, approach, traffic_level, condition_window, notes,
			COALESCE(landing_zone, ''),
			start_lat, start_lng, summit_lat, summit_lng,
			COALESCE(accuracy, '')
		FROM reference_routes
		ORDER BY sort_order, id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		var r Route
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Peak, &r.Grade, &r.TechnicalGrade, &r.VerticalGain,
			&r.Category, &r.Type, &r.Characteristics, &r.Crux, &r.Approach,
			&r.TrafficLevel, &r.ConditionWindow, &r.Notes, &r.LandingZone,
			&r.Start.Lat, &r.Start.Lng, &r.Summit.Lat, &r.Summit.Lng, &r.Accuracy,
		); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}

	return routes, rows.Err()
}

func (s *PostgresSource) loadPacking(ctx context.Context) ([]PackingCategory, error) {
	query := `
		SELECT category, name, essential, COALESCE(weight_grams, 0), notes,
			COALESCE(aliases, '{}')
		FROM reference_packing_items
		ORDER BY category_order, sort_order, name
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []PackingCategory
	for rows.Next() {
		var (
			category string
			item     PackingItem
		)
		if err := rows.Scan(&category, &item.Name, &item.Essential, &item.Weight, &item.Notes, &item.Aliases); err != nil {
			return nil, err
		}

		if n := len(categories); n == 0 || categories[n-1].Name != category {
			categories = append(categories, PackingCategory{Name: category})
		}
		last := &categories[len(categories)-1]
		last.Items = append(last.Items, item)
	}

	return categories, rows.Err()
}

func (s *PostgresSource) loadBudget(ctx context.Context) ([]BudgetGroup, error) {
	query := `
		SELECT group_key, group_label, category, name, estimate, notes, required
		FROM reference_budget_items
		ORDER BY group_order, category_order, sort_order, name
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []BudgetGroup
	for rows.Next() {
		var (
			key, label, category string
			item                 BudgetLineItem
		)
		if err := rows.Scan(&key, &label, &category, &item.Name, &item.Estimate, &item.Notes, &item.Required); err != nil {
			return nil, err
		}

		if n := len(groups); n == 0 || groups[n-1].Key != key {
			groups = append(groups, BudgetGroup{Key: key, Label: label})
		}
		group := &groups[len(groups)-1]
		if n := len(group.Categories); n == 0 || group.Categories[n-1].Name != category {
			group.Categories = append(group.Categories, BudgetCategory{Name: category})
		}
		cat := &group.Categories[len(group.Categories)-1]
		cat.Items = append(cat.Items, item)
	}

	return groups, rows.Err()
}
