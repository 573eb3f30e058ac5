package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/affordo/internal/domain"
	"github.com/rgehrsitz/affordo/internal/output"
)

// Summary pairs both searches for one base scenario
type Summary struct {
	Base            domain.ScenarioInputs `json:"base"`
	RequiredSurplus float64               `json:"required_surplus"`
	MaxPrice        *OptimizationResult   `json:"max_price"`
	MinIncome       *OptimizationResult   `json:"min_income"`
	Recommendations []string              `json:"recommendations"`
}

// Summarize finds the highest price at the base income and the lowest income
// for the base price
func (s *Solver) Summarize(ctx context.Context, base domain.ScenarioInputs, required float64) (*Summary, error) {
	summary := &Summary{Base: base.Clone(), RequiredSurplus: required}

	for _, target := range []OptimizationTarget{TargetMaxPrice, TargetMinIncome} {
		result, err := s.Optimize(ctx, OptimizationRequest{
			Base:            base,
			Target:          target,
			RequiredSurplus: required,
		})
		if err != nil {
			return nil, err
		}
		if target == TargetMaxPrice {
			summary.MaxPrice = result
		} else {
			summary.MinIncome = result
		}
	}

	summary.Recommendations = summaryRecommendations(summary)
	return summary, nil
}

func summaryRecommendations(s *Summary) []string {
	recs := []string{}
	money := output.FormatWholeDollars

	if mp := s.MaxPrice; mp != nil {
		switch {
		case !mp.Feasible:
			recs = append(recs, fmt.Sprintf("At %s income no home price leaves %s/mo; reduce expenses or savings first",
				money(s.Base.HHIAnnual), money(s.RequiredSurplus)))
		case mp.Value >= s.Base.HomePrice:
			recs = append(recs, fmt.Sprintf("Headroom: the household could carry up to %s, %s above the current price",
				money(mp.Value), money(mp.Value-s.Base.HomePrice)))
		default:
			recs = append(recs, fmt.Sprintf("Over budget: the current price is %s above the %s the household can carry",
				money(s.Base.HomePrice-mp.Value), money(mp.Value)))
		}
	}

	if mi := s.MinIncome; mi != nil && mi.Feasible {
		if mi.Value > s.Base.HHIAnnual {
			recs = append(recs, fmt.Sprintf("Income gap: this home needs %s of household income, %s more than today",
				money(mi.Value), money(mi.Value-s.Base.HHIAnnual)))
		} else {
			recs = append(recs, fmt.Sprintf("Income cushion: income could fall to %s before the buffer is lost",
				money(mi.Value)))
		}
	}

	return recs
}

// FrontierPoint is the highest affordable price at one income
type FrontierPoint struct {
	Income        float64 `json:"income"`
	MaxPrice      float64 `json:"max_price"`
	Feasible      bool    `json:"feasible"`
	Bounded       bool    `json:"bounded"`
	FrontEndRatio float64 `json:"front_end_ratio"`
}

// Frontier solves for the maximum price at each income, tracing the edge of
// the affordable region of the grid
func (s *Solver) Frontier(ctx context.Context, base domain.ScenarioInputs, incomes []float64, required float64) ([]FrontierPoint, error) {
	points := make([]FrontierPoint, 0, len(incomes))
	for _, income := range incomes {
		result, err := s.Optimize(ctx, OptimizationRequest{
			Base:            base.WithIncomeAndPrice(income, base.HomePrice),
			Target:          TargetMaxPrice,
			RequiredSurplus: required,
		})
		if err != nil {
			return nil, err
		}
		points = append(points, FrontierPoint{
			Income:        income,
			MaxPrice:      result.Value,
			Feasible:      result.Feasible,
			Bounded:       result.Bounded,
			FrontEndRatio: result.Scenario.FrontEndRatio,
		})
	}
	return points, nil
}
