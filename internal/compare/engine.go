package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/affordo/internal/calculation"
	"github.com/rgehrsitz/affordo/internal/domain"
	"github.com/rgehrsitz/affordo/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine over the built-in templates
func NewCompareEngine(calcEngine *calculation.Engine, threshold float64) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(threshold),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string // Label for the base scenario; "base" when empty
	// Alternatives are template names or transform specs ("scale_price:factor=0.9")
	Alternatives []string
	ConfigPath   string
}

// Compare computes the base scenario and every alternative derived from it
func (ce *CompareEngine) Compare(ctx context.Context, base domain.ScenarioInputs, options CompareOptions) (*ComparisonSet, error) {
	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, ce.CalcEngine.ComputeScenario(base))

	alternatives := make([]ComparisonResult, 0, len(options.Alternatives))
	for _, alt := range options.Alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name, description, transforms, err := ce.resolve(alt)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(base, transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", name, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(name, ce.CalcEngine.ComputeScenario(modified))
		altResult.Description = description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		ConfigPath:         options.ConfigPath,
		SurplusThreshold:   ce.MetricsCalculator.SurplusThreshold,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// resolve turns a template name or a transform spec into transforms
func (ce *CompareEngine) resolve(alt string) (name, description string, transforms []transform.ScenarioTransform, err error) {
	alt = strings.TrimSpace(alt)
	if strings.Contains(alt, ":") {
		t, err := ce.TransformRegistry.ParseTransformSpec(alt)
		if err != nil {
			return "", "", nil, err
		}
		return alt, t.Description(), []transform.ScenarioTransform{t}, nil
	}

	template, ok := ce.TemplateRegistry.Get(alt)
	if !ok {
		return "", "", nil, fmt.Errorf("template %s not found", alt)
	}
	return template.Name, template.Description, template.Transforms, nil
}
