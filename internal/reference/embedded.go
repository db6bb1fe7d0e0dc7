package reference

import (
	"context"
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Source loads a catalog.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

type routesFile struct {
	Routes []Route `yaml:"routes"`
}

type packingFile struct {
	Categories            []PackingCategory `yaml:"categories"`
	SpecialConsiderations []string          `yaml:"specialConsiderations"`
	WeightOptimization    []string          `yaml:"weightOptimization"`
}

type climbersFile struct {
	Climbers      []ClimberProfile `yaml:"climbers"`
	EssentialGear []string         `yaml:"essentialGear"`
}

type budgetFile struct {
	Groups []BudgetGroup `yaml:"groups"`
	Notes  []string      `yaml:"notes"`
}

// EmbeddedSource reads the catalog compiled into the binary.
type EmbeddedSource struct{}

// NewEmbeddedSource creates an embedded catalog source.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// Load parses every embedded data file.
func (s *EmbeddedSource) Load(_ context.Context) (*Catalog, error) {
	var (
		routes   routesFile
		packing  packingFile
		climbers climbersFile
		budget   budgetFile
		cat      Catalog
	)

	files := []struct {
		name string
		dest any
	}{
		{"routes.yaml", &routes},
		{"packing.yaml", &packing},
		{"climbers.yaml", &climbers},
		{"budget.yaml", &budget},
		{"logistics.yaml", &cat.Logistics},
		{"seasonal.yaml", &cat.Seasonal},
		{"volcanic.yaml", &cat.Volcanic},
	}

	for _, f := range files {
		if err := decodeFile(f.name, f.dest); err != nil {
			return nil, err
		}
	}

	cat.Routes = routes.Routes
	cat.PackingCategories = packing.Categories
	cat.SpecialConsiderations = packing.SpecialConsiderations
	cat.WeightOptimization = packing.WeightOptimization
	cat.Climbers = climbers.Climbers
	cat.EssentialGear = climbers.EssentialGear
	cat.BudgetGroups = budget.Groups
	cat.BudgetNotes = budget.Notes

	return &cat, nil
}

func decodeFile(name string, dest any) error {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
