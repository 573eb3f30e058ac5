// Package compare runs what-if alternatives against a base scenario and
// reports how each one moves the monthly surplus.
package compare

import (
	"fmt"

	"github.com/rgehrsitz/affordo/internal/domain"
	"github.com/rgehrsitz/affordo/internal/output"
)

// ComparisonResult represents a single scenario with its key metrics
type ComparisonResult struct {
	ScenarioName string                 `json:"scenarioName"`
	Description  string                 `json:"description,omitempty"`
	Result       *domain.ScenarioResult `json:"result"`

	// Key Metrics
	SurplusMonthly float64           `json:"surplusMonthly"`
	TaxesMonthly   float64           `json:"taxesMonthly"`
	HousingMonthly float64           `json:"housingMonthly"`
	FrontEndRatio  float64           `json:"frontEndRatio"`
	Status         domain.CellStatus `json:"status"`

	// Comparison to Base
	SurplusDiffFromBase float64 `json:"surplusDiffFromBase"`
	TaxDiffFromBase     float64 `json:"taxDiffFromBase"`
	HousingDiffFromBase float64 `json:"housingDiffFromBase"`
	RatioDiffFromBase   float64 `json:"ratioDiffFromBase"`
}

// ComparisonSet represents a base scenario and its alternatives
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	ConfigPath         string             `json:"configPath,omitempty"`
	SurplusThreshold   float64            `json:"surplusThreshold"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
}

// MetricsCalculator extracts key metrics from scenario results
type MetricsCalculator struct {
	SurplusThreshold float64
}

// NewMetricsCalculator creates a metrics calculator classifying against threshold
func NewMetricsCalculator(threshold float64) *MetricsCalculator {
	return &MetricsCalculator{SurplusThreshold: threshold}
}

// CalculateMetrics computes the comparison metrics for one scenario result
func (mc *MetricsCalculator) CalculateMetrics(name string, result domain.ScenarioResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:   name,
		Result:         &result,
		SurplusMonthly: result.SurplusMonthly,
		TaxesMonthly:   result.Tax.TaxesMonthly,
		HousingMonthly: result.Housing.HousingTotalMonthly,
		FrontEndRatio:  result.FrontEndRatio,
		Status:         domain.ClassifySurplus(result.SurplusMonthly, mc.SurplusThreshold),
	}
}

// CalculateComparison fills in scenario's differences from base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.SurplusDiffFromBase = scenario.SurplusMonthly - base.SurplusMonthly
	scenario.TaxDiffFromBase = scenario.TaxesMonthly - base.TaxesMonthly
	scenario.HousingDiffFromBase = scenario.HousingMonthly - base.HousingMonthly
	scenario.RatioDiffFromBase = scenario.FrontEndRatio - base.FrontEndRatio
	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Find best scenario by surplus
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.SurplusMonthly > best.SurplusMonthly {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Best Surplus: %s leaves %s more per month than the base scenario",
				best.ScenarioName, output.FormatCurrency(best.SurplusDiffFromBase)))
	}

	// Find lowest front-end ratio
	lowest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FrontEndRatio < lowest.FrontEndRatio {
			lowest = alt
		}
	}
	if lowest != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Housing Burden: %s brings housing to %s of gross pay",
				lowest.ScenarioName, output.FormatPercentage(lowest.FrontEndRatio)))
	}

	// Status changes
	for _, alt := range compSet.AlternativeResults {
		if alt.Status == base.Status {
			continue
		}
		switch {
		case alt.Status == domain.StatusUnaffordable:
			recommendations = append(recommendations,
				fmt.Sprintf("Warning: %s leaves the household short each month", alt.ScenarioName))
		case base.Status == domain.StatusUnaffordable:
			recommendations = append(recommendations,
				fmt.Sprintf("Fix: %s turns the monthly shortfall into a surplus", alt.ScenarioName))
		case alt.Status == domain.StatusComfortable:
			recommendations = append(recommendations,
				fmt.Sprintf("Buffer: %s restores the %s monthly buffer",
					alt.ScenarioName, output.FormatWholeDollars(compSet.SurplusThreshold)))
		}
	}

	return recommendations
}
