// Package tuistyles holds the shared lipgloss palette and styles so that
// scenes and components can use them without importing the root tui package.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/affordo/internal/domain"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A9BD5")
	ColorAccent    = lipgloss.Color("#F4A259")
	ColorSuccess   = lipgloss.Color("#43BF6D")
	ColorWarning   = lipgloss.Color("#E8C547")
	ColorDanger    = lipgloss.Color("#E5534B")
	ColorInfo      = lipgloss.Color("#4FB3D9")

	ColorForeground = lipgloss.Color("#E6E6E6")
	ColorMuted      = lipgloss.Color("#8A8A8A")
	ColorBorder     = lipgloss.Color("#444444")
	ColorDark       = lipgloss.Color("#1A1A1A")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorBorder).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	ParameterValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorSecondary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorMuted)
)

// MetricTrendStyle colors a value green when good and red when bad
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// TrendIndicator returns an arrow for the direction of a change
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// StatusColor maps a grid cell status to its heatmap color
func StatusColor(status domain.CellStatus) lipgloss.Color {
	switch status {
	case domain.StatusUnaffordable:
		return ColorDanger
	case domain.StatusBelowBuffer:
		return ColorWarning
	default:
		return ColorSuccess
	}
}

// CellStyle renders a heatmap cell; the selected cell is inverted
func CellStyle(status domain.CellStatus, selected bool) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(StatusColor(status))
	if selected {
		s = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDark).
			Background(StatusColor(status))
	}
	return s
}

// StatusColorFor is the good/bad color pair used by metric trends
func StatusColorFor(isPositive bool) lipgloss.Color {
	if isPositive {
		return ColorSuccess
	}
	return ColorDanger
}
