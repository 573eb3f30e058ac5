package transform

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/affordo/internal/domain"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if edits
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Price
	registry.Register(Template{
		Name:        "price_minus_10pct",
		Description: "Buy a home 10% cheaper",
		Transforms:  []ScenarioTransform{&ScalePrice{Factor: 0.9}},
	})
	registry.Register(Template{
		Name:        "price_plus_10pct",
		Description: "Buy a home 10% more expensive",
		Transforms:  []ScenarioTransform{&ScalePrice{Factor: 1.1}},
	})

	// Financing
	registry.Register(Template{
		Name:        "rate_minus_1pt",
		Description: "Mortgage rate one point lower",
		Transforms:  []ScenarioTransform{&AdjustAPR{Delta: -0.01}},
	})
	registry.Register(Template{
		Name:        "rate_plus_1pt",
		Description: "Mortgage rate one point higher",
		Transforms:  []ScenarioTransform{&AdjustAPR{Delta: 0.01}},
	})
	registry.Register(Template{
		Name:        "down_20pct",
		Description: "Put 20% down",
		Transforms:  []ScenarioTransform{&SetDownPayment{Pct: 0.20}},
	})
	registry.Register(Template{
		Name:        "down_40pct",
		Description: "Put 40% down",
		Transforms:  []ScenarioTransform{&SetDownPayment{Pct: 0.40}},
	})
	registry.Register(Template{
		Name:        "term_15yr",
		Description: "Use a 15-year mortgage",
		Transforms:  []ScenarioTransform{&SetTerm{Years: 15}},
	})

	// Household
	registry.Register(Template{
		Name:        "income_minus_10pct",
		Description: "Household income 10% lower",
		Transforms:  []ScenarioTransform{&ScaleIncome{Factor: 0.9}},
	})
	registry.Register(Template{
		Name:        "income_plus_10pct",
		Description: "Household income 10% higher",
		Transforms:  []ScenarioTransform{&ScaleIncome{Factor: 1.1}},
	})
	registry.Register(Template{
		Name:        "pause_savings",
		Description: "Stop pre-tax retirement and after-tax savings",
		Transforms: []ScenarioTransform{
			&SetMonthly{Field: FieldPreTaxRetirement, Amount: 0},
			&SetMonthly{Field: FieldAfterTaxSavings, Amount: 0},
		},
	})
	registry.Register(Template{
		Name:        "move_wa",
		Description: "Move to Washington (no state income tax)",
		Transforms:  []ScenarioTransform{&MoveState{State: "WA"}},
	})
	registry.Register(Template{
		Name:        "move_ca",
		Description: "Move to California",
		Transforms:  []ScenarioTransform{&MoveState{State: "CA"}},
	})

	// Combinations
	registry.Register(Template{
		Name:        "stress_test",
		Description: "Income 10% lower and mortgage rate one point higher",
		Transforms: []ScenarioTransform{
			&ScaleIncome{Factor: 0.9},
			&AdjustAPR{Delta: 0.01},
		},
	})
	registry.Register(Template{
		Name:        "conservative",
		Description: "Home 10% cheaper with 20% down on a 30-year loan",
		Transforms: []ScenarioTransform{
			&ScalePrice{Factor: 0.9},
			&SetDownPayment{Pct: 0.20},
			&SetTerm{Years: 30},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base domain.ScenarioInputs, template Template) (domain.ScenarioInputs, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names,
// dropping blanks
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}
