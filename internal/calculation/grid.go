package calculation

import (
	"math"

	"github.com/rgehrsitz/affordo/internal/domain"
)

// rangeEpsilon is the fraction of a step by which the last value may exceed hi,
// so accumulated float error never drops the closing boundary
const rangeEpsilon = 0.01

// Range returns lo, lo+step, ... rounded to whole numbers, up to hi.
//
// Callers must supply step > 0 and hi >= lo. For any other range the
// result is empty; it is not repaired.
func Range(lo, hi, step float64) []float64 {
	if !(step > 0) {
		return nil
	}
	var out []float64
	for v := lo; v <= hi+step*rangeEpsilon; v += step {
		out = append(out, math.Round(v))
	}
	return out
}

// maxRangeLen caps RangeLen so products of two lengths cannot overflow
const maxRangeLen = math.MaxInt32

// RangeLen returns len(Range(lo, hi, step)) without building the slice.
// Lengths beyond maxRangeLen are reported as maxRangeLen.
func RangeLen(lo, hi, step float64) int {
	if !(step > 0) || hi+step*rangeEpsilon < lo {
		return 0
	}
	n := math.Floor((hi-lo)/step+rangeEpsilon) + 1
	if !(n < maxRangeLen) {
		return maxRangeLen
	}
	return int(n)
}

// ComputeGrid sweeps household income against home price.
//
// Tax depends only on income and housing only on price, so each calculator runs
// once per axis value into an indexed vector and the matrix is filled by
// combining vector entries. Cost is O(rows+cols) calculator calls plus
// O(rows*cols) arithmetic.
func (e *Engine) ComputeGrid(base domain.ScenarioInputs, cfg domain.GridConfig) domain.GridResult {
	incomes := Range(cfg.IncomeMin, cfg.IncomeMax, cfg.IncomeStep)
	prices := Range(cfg.PriceMin, cfg.PriceMax, cfg.PriceStep)

	taxByIncome := make([]domain.TaxResult, len(incomes))
	for i, income := range incomes {
		in := base
		in.HHIAnnual = income
		taxByIncome[i] = e.TaxCalc.taxesFor(in)
	}

	housingByPrice := make([]domain.HousingResult, len(prices))
	for j, price := range prices {
		in := base
		in.HomePrice = price
		housingByPrice[j] = housingFor(in)
	}

	cells := make([][]domain.GridCell, len(incomes))
	for i, income := range incomes {
		row := make([]domain.GridCell, len(prices))
		for j, price := range prices {
			cf := deriveCashFlow(income, &taxByIncome[i], &housingByPrice[j], &base)
			row[j] = domain.GridCell{
				Income:         income,
				Price:          price,
				SurplusMonthly: cf.surplus,
				FrontEndRatio:  cf.frontEndRatio,
			}
		}
		cells[i] = row
	}

	e.logger.Debugf("grid computed: %d incomes x %d prices (%d tax runs, %d housing runs)",
		len(incomes), len(prices), len(taxByIncome), len(housingByPrice))

	return domain.GridResult{
		Incomes: incomes,
		Prices:  prices,
		Cells:   cells,
	}
}

// ComputeGrid uses the built-in 2026 tax tables
func ComputeGrid(base domain.ScenarioInputs, cfg domain.GridConfig) domain.GridResult {
	return defaultEngine.ComputeGrid(base, cfg)
}
