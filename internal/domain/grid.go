package domain

// GridConfig describes the income and price axes of an affordability grid.
// SurplusThreshold is only used to classify cells for display.
type GridConfig struct {
	IncomeMin        float64 `yaml:"income_min" json:"income_min" validate:"gte=0"`
	IncomeMax        float64 `yaml:"income_max" json:"income_max" validate:"gtefield=IncomeMin"`
	IncomeStep       float64 `yaml:"income_step" json:"income_step" validate:"gt=0"`
	PriceMin         float64 `yaml:"price_min" json:"price_min" validate:"gte=0"`
	PriceMax         float64 `yaml:"price_max" json:"price_max" validate:"gtefield=PriceMin"`
	PriceStep        float64 `yaml:"price_step" json:"price_step" validate:"gt=0"`
	SurplusThreshold float64 `yaml:"surplus_threshold" json:"surplus_threshold"`
}

// DefaultGridConfig returns the default sweep: $100k-$600k income by $50k
// against $1.0M-$1.5M homes by $100k
func DefaultGridConfig() GridConfig {
	return GridConfig{
		IncomeMin:        100_000,
		IncomeMax:        600_000,
		IncomeStep:       50_000,
		PriceMin:         1_000_000,
		PriceMax:         1_500_000,
		PriceStep:        100_000,
		SurplusThreshold: 0,
	}
}

// GridCell is one (income, price) combination
type GridCell struct {
	Income         float64 `yaml:"income" json:"income"`
	Price          float64 `yaml:"price" json:"price"`
	SurplusMonthly float64 `yaml:"surplus_monthly" json:"surplus_monthly"`
	FrontEndRatio  float64 `yaml:"front_end_ratio" json:"front_end_ratio"`
}

// GridResult holds both axes and a row-major matrix of cells:
// Cells[i][j] corresponds to Incomes[i] and Prices[j].
type GridResult struct {
	Incomes []float64    `yaml:"incomes" json:"incomes"`
	Prices  []float64    `yaml:"prices" json:"prices"`
	Cells   [][]GridCell `yaml:"cells" json:"cells"`
}

// Cell returns the cell at row i, column j and whether it exists
func (g *GridResult) Cell(i, j int) (GridCell, bool) {
	if g == nil || i < 0 || i >= len(g.Cells) || j < 0 || j >= len(g.Cells[i]) {
		return GridCell{}, false
	}
	return g.Cells[i][j], true
}

// CellStatus buckets a cell's surplus against the comfort threshold
type CellStatus string

const (
	StatusUnaffordable CellStatus = "unaffordable"
	StatusBelowBuffer  CellStatus = "below_buffer"
	StatusComfortable  CellStatus = "comfortable"
)

// ClassifySurplus returns unaffordable for a negative surplus, below_buffer for a
// surplus under the threshold, and comfortable otherwise
func ClassifySurplus(surplus, threshold float64) CellStatus {
	if surplus < 0 {
		return StatusUnaffordable
	}
	if surplus < threshold {
		return StatusBelowBuffer
	}
	return StatusComfortable
}
