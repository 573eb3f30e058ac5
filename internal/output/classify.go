package output

import "github.com/rgehrsitz/affordo/internal/domain"

// ClassifiedCell is a grid cell with its comfort status
type ClassifiedCell struct {
	domain.GridCell
	Status domain.CellStatus `json:"status"`
}

// ClassifiedGrid is a grid result with every cell bucketed against a threshold
type ClassifiedGrid struct {
	Incomes          []float64          `json:"incomes"`
	Prices           []float64          `json:"prices"`
	SurplusThreshold float64            `json:"surplus_threshold"`
	Cells            [][]ClassifiedCell `json:"cells"`
}

// ClassifyGrid tags each cell of g using domain.ClassifySurplus
func ClassifyGrid(g *domain.GridResult, threshold float64) *ClassifiedGrid {
	if g == nil {
		return nil
	}
	out := &ClassifiedGrid{
		Incomes:          g.Incomes,
		Prices:           g.Prices,
		SurplusThreshold: threshold,
		Cells:            make([][]ClassifiedCell, len(g.Cells)),
	}
	for i, row := range g.Cells {
		out.Cells[i] = make([]ClassifiedCell, len(row))
		for j, cell := range row {
			out.Cells[i][j] = ClassifiedCell{
				GridCell: cell,
				Status:   domain.ClassifySurplus(cell.SurplusMonthly, threshold),
			}
		}
	}
	return out
}

// Counts tallies cells per status
func (g *ClassifiedGrid) Counts() map[domain.CellStatus]int {
	counts := map[domain.CellStatus]int{}
	if g == nil {
		return counts
	}
	for _, row := range g.Cells {
		for _, c := range row {
			counts[c.Status]++
		}
	}
	return counts
}
