package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/affordo/internal/output"
	"github.com/rgehrsitz/affordo/internal/tui/components"
	"github.com/rgehrsitz/affordo/internal/tui/tuimsg"
	"github.com/rgehrsitz/affordo/internal/tui/tuistyles"
)

// GridModel represents the income × price heatmap scene
type GridModel struct {
	grid *output.ClassifiedGrid
	row  int
	col  int

	width  int
	height int
}

// NewGridModel creates an empty grid scene
func NewGridModel() *GridModel {
	return &GridModel{}
}

// SetGrid replaces the grid, keeping the cursor inside it
func (m *GridModel) SetGrid(g *output.ClassifiedGrid) {
	m.grid = g
	m.row = clamp(m.row, m.rows()-1)
	m.col = clamp(m.col, m.cols()-1)
}

// Cursor returns the selected row and column
func (m *GridModel) Cursor() (row, col int) {
	return m.row, m.col
}

// Selected returns the cell under the cursor
func (m *GridModel) Selected() (output.ClassifiedCell, bool) {
	if m.rows() == 0 || m.cols() == 0 {
		return output.ClassifiedCell{}, false
	}
	return m.grid.Cells[m.row][m.col], true
}

// SetSize updates the scene dimensions
func (m *GridModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *GridModel) rows() int {
	if m.grid == nil {
		return 0
	}
	return len(m.grid.Cells)
}

func (m *GridModel) cols() int {
	if m.grid == nil {
		return 0
	}
	return len(m.grid.Prices)
}

// Update handles messages for the grid scene
func (m *GridModel) Update(msg tea.Msg) (*GridModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		m.row = clamp(m.row-1, m.rows()-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		m.row = clamp(m.row+1, m.rows()-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left", "h"))):
		m.col = clamp(m.col-1, m.cols()-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right", "l"))):
		m.col = clamp(m.col+1, m.cols()-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		cell, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return tuimsg.CellSelectedMsg{Income: cell.Income, Price: cell.Price}
		}
	}
	return m, nil
}

// View renders the grid scene
func (m *GridModel) View() string {
	heatmap := components.Heatmap{Grid: m.grid, CursorRow: m.row, CursorCol: m.col}

	detail := ""
	if cell, ok := m.Selected(); ok {
		detail = components.NewMetricCard(
			fmt.Sprintf("%s income · %s home", output.FormatWholeDollars(cell.Income), output.FormatWholeDollars(cell.Price)),
			output.FormatCurrency(cell.SurplusMonthly)+" /mo",
		).
			WithTrend(cell.SurplusMonthly >= 0, string(cell.Status)).
			WithDescription("front-end ratio " + output.FormatPercentage(cell.FrontEndRatio)).
			WithWidth(44).
			Render()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Monthly surplus by household income and home price"),
		"",
		heatmap.Render(),
		"",
		detail,
		tuistyles.SubtitleStyle.Render("arrows move • enter open scenario"),
	)
}

// clamp limits v to [0, hi]; an empty range yields 0
func clamp(v, hi int) int {
	if v > hi {
		v = hi
	}
	if v < 0 {
		v = 0
	}
	return v
}
