package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySurplus(t *testing.T) {
	tests := []struct {
		name      string
		surplus   float64
		threshold float64
		expected  CellStatus
	}{
		{"negative", -0.01, 0, StatusUnaffordable},
		{"negative with buffer", -500, 1_000, StatusUnaffordable},
		{"zero with zero threshold", 0, 0, StatusComfortable},
		{"under buffer", 999.99, 1_000, StatusBelowBuffer},
		{"exactly at buffer", 1_000, 1_000, StatusComfortable},
		{"above buffer", 2_500, 1_000, StatusComfortable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifySurplus(tt.surplus, tt.threshold))
		})
	}
}

func TestGridResult_Cell(t *testing.T) {
	g := &GridResult{
		Incomes: []float64{100, 200},
		Prices:  []float64{10},
		Cells: [][]GridCell{
			{{Income: 100, Price: 10, SurplusMonthly: 1}},
			{{Income: 200, Price: 10, SurplusMonthly: 2}},
		},
	}

	c, ok := g.Cell(1, 0)
	assert.True(t, ok)
	assert.Equal(t, 2.0, c.SurplusMonthly)

	for _, idx := range [][2]int{{-1, 0}, {2, 0}, {0, 1}, {0, -1}} {
		_, ok := g.Cell(idx[0], idx[1])
		assert.False(t, ok, "cell %v", idx)
	}

	var nilGrid *GridResult
	_, ok = nilGrid.Cell(0, 0)
	assert.False(t, ok)
}

func TestDefaultGridConfig(t *testing.T) {
	cfg := DefaultGridConfig()
	assert.Equal(t, 100_000.0, cfg.IncomeMin)
	assert.Equal(t, 600_000.0, cfg.IncomeMax)
	assert.Equal(t, 1_500_000.0, cfg.PriceMax)
	assert.Equal(t, 0.0, cfg.SurplusThreshold)
}
