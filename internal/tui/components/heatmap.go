package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/affordo/internal/domain"
	"github.com/rgehrsitz/affordo/internal/output"
	"github.com/rgehrsitz/affordo/internal/tui/tuistyles"
)

const (
	heatmapRowHeader = 9
	heatmapCellWidth = 11
)

// Heatmap renders a classified grid as colored surplus values with one
// highlighted cell
type Heatmap struct {
	Grid      *output.ClassifiedGrid
	CursorRow int
	CursorCol int
}

// Render returns the heatmap table and its legend
func (h Heatmap) Render() string {
	if h.Grid == nil || len(h.Grid.Cells) == 0 || len(h.Grid.Prices) == 0 {
		return tuistyles.SubtitleStyle.Render("(empty grid)")
	}

	header := tuistyles.TableHeaderStyle
	var b strings.Builder

	b.WriteString(header.Width(heatmapRowHeader).Render("income"))
	for j, p := range h.Grid.Prices {
		style := header.Width(heatmapCellWidth).Align(lipgloss.Right)
		if j == h.CursorCol {
			style = style.Foreground(tuistyles.ColorAccent)
		}
		b.WriteString(style.Render(output.FormatCompact(p)))
	}
	b.WriteString("\n")

	for i, row := range h.Grid.Cells {
		label := header.Width(heatmapRowHeader)
		if i == h.CursorRow {
			label = label.Foreground(tuistyles.ColorAccent)
		}
		b.WriteString(label.Render(output.FormatCompact(h.Grid.Incomes[i])))
		for j, cell := range row {
			selected := i == h.CursorRow && j == h.CursorCol
			style := tuistyles.CellStyle(cell.Status, selected).Width(heatmapCellWidth).Align(lipgloss.Right)
			b.WriteString(style.Render(output.FormatWholeDollars(cell.SurplusMonthly)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(h.legend())
	return b.String()
}

func (h Heatmap) legend() string {
	counts := h.Grid.Counts()
	item := func(status domain.CellStatus, label string) string {
		swatch := lipgloss.NewStyle().Foreground(tuistyles.StatusColor(status)).Render("■")
		return fmt.Sprintf("%s %s (%d)", swatch, label, counts[status])
	}
	return strings.Join([]string{
		item(domain.StatusUnaffordable, "unaffordable"),
		item(domain.StatusBelowBuffer, "below "+output.FormatWholeDollars(h.Grid.SurplusThreshold)+" buffer"),
		item(domain.StatusComfortable, "comfortable"),
	}, "   ")
}
