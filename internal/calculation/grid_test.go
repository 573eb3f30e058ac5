package calculation

import (
	"testing"

	"github.com/rgehrsitz/affordo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	tests := []struct {
		name     string
		lo       float64
		hi       float64
		step     float64
		expected []float64
	}{
		{"default income axis", 100_000, 600_000, 50_000, []float64{100_000, 150_000, 200_000, 250_000, 300_000, 350_000, 400_000, 450_000, 500_000, 550_000, 600_000}},
		{"single value", 500_000, 500_000, 10_000, []float64{500_000}},
		{"hi not on a step", 0, 25, 10, []float64{0, 10, 20}},
		{"values are rounded", 0.4, 2.6, 1.1, []float64{0, 2, 3}},
		{"zero step is empty", 0, 100, 0, nil},
		{"negative step is empty", 0, 100, -10, nil},
		{"hi below lo is empty", 100, 0, 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Range(tt.lo, tt.hi, tt.step))
			assert.Equal(t, len(tt.expected), RangeLen(tt.lo, tt.hi, tt.step))
		})
	}
}

func TestRange_KeepsBoundaryDespiteFloatDrift(t *testing.T) {
	// 0.1 added ten times is 0.9999999999999999
	values := Range(0, 1, 0.1)
	assert.Len(t, values, 11)
	assert.Equal(t, 1.0, values[len(values)-1])
}

func TestRangeLen(t *testing.T) {
	assert.Equal(t, 11, RangeLen(0, 1, 0.1))
	assert.Equal(t, 1, RangeLen(100, 99.95, 10))
	assert.Equal(t, 50_000_001, RangeLen(100_000, 600_000, 0.01))
	assert.Equal(t, maxRangeLen, RangeLen(0, 1e300, 1e-300))
}

func TestComputeGrid_Shape(t *testing.T) {
	grid := ComputeGrid(domain.DefaultScenarioInputs(), domain.DefaultGridConfig())

	require.Len(t, grid.Incomes, 11)
	require.Len(t, grid.Prices, 6)
	require.Len(t, grid.Cells, 11)
	for i, row := range grid.Cells {
		require.Len(t, row, 6)
		for j, cell := range row {
			assert.Equal(t, grid.Incomes[i], cell.Income)
			assert.Equal(t, grid.Prices[j], cell.Price)
		}
	}
}

func TestComputeGrid_MatchesPerCellScenario(t *testing.T) {
	engine := NewEngine()

	bases := []domain.ScenarioInputs{domain.DefaultScenarioInputs()}
	ca := domain.DefaultScenarioInputs()
	ca.State = "CA"
	ca.FilingStatus = domain.FilingSingle
	ca.AfterTaxRetirementMonthly = 750
	ca.OtherPreTaxDeductionsAnnual = 3_000
	ca.HOAMonthly = 425
	bases = append(bases, ca)

	cfg := domain.GridConfig{
		IncomeMin: 0, IncomeMax: 900_000, IncomeStep: 75_000,
		PriceMin: 0, PriceMax: 2_000_000, PriceStep: 250_000,
	}

	for _, base := range bases {
		grid := engine.ComputeGrid(base, cfg)
		for i, income := range grid.Incomes {
			for j, price := range grid.Prices {
				want := engine.ScenarioAt(base, income, price)
				cell, ok := grid.Cell(i, j)
				require.True(t, ok)
				assert.Equal(t, want.SurplusMonthly, cell.SurplusMonthly, "surplus at income=%v price=%v", income, price)
				assert.Equal(t, want.FrontEndRatio, cell.FrontEndRatio, "ratio at income=%v price=%v", income, price)
			}
		}
	}
}

func TestComputeGrid_SurplusOrdering(t *testing.T) {
	grid := ComputeGrid(domain.DefaultScenarioInputs(), domain.DefaultGridConfig())

	// More income never hurts and a pricier home never helps
	for i := range grid.Cells {
		for j := range grid.Cells[i] {
			if i > 0 {
				assert.Greater(t, grid.Cells[i][j].SurplusMonthly, grid.Cells[i-1][j].SurplusMonthly)
			}
			if j > 0 {
				assert.Less(t, grid.Cells[i][j].SurplusMonthly, grid.Cells[i][j-1].SurplusMonthly)
			}
		}
	}
}

func TestComputeGrid_DegenerateConfigIsEmpty(t *testing.T) {
	cfg := domain.DefaultGridConfig()
	cfg.IncomeStep = 0

	grid := ComputeGrid(domain.DefaultScenarioInputs(), cfg)
	assert.Empty(t, grid.Incomes)
	assert.Empty(t, grid.Cells)
	assert.Len(t, grid.Prices, 6)
}
