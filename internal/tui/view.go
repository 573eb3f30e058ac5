package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/affordo/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(m.renderError())
	}
	if m.loading {
		return m.renderApp(BorderStyle.Render("Loading configuration..."))
	}

	var content string
	switch m.currentScene {
	case SceneScenario:
		content = m.scenarioModel.View()
	case SceneGrid:
		content = m.gridModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4 // Title (2) + status (1) + padding (1)
	if contentHeight < 0 {
		contentHeight = 0
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("affordo · household affordability")

	crumb := m.currentScene.String()
	if m.configPath != "" {
		crumb += " · " + m.configPath
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	return StatusBarStyle.Width(m.width).Render(m.help.View(m.keys))
}

// renderError renders an error message
func (m Model) renderError() string {
	hint := "Press any key to continue..."
	if m.config == nil {
		hint = "Press any key to exit."
	}
	return ErrorStyle.Render(fmt.Sprintf("Error: %s\n\n%s", m.err, hint))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	threshold := 0.0
	if m.config != nil {
		threshold = m.config.Grid.SurplusThreshold
	}

	text := fmt.Sprintf(`KEYBOARD SHORTCUTS
  tab        switch between scenario and grid
  s / g      go to scenario / grid
  ?          toggle this help
  esc        back
  q, ctrl+c  quit

SCENARIO
  ↑/↓        select an input
  ←/→        adjust by one step (shift for ten)
  r          reset to the loaded scenario

GRID
  arrows     move the cursor
  enter      open the selected cell as a scenario

Cells are red when the monthly surplus is negative, yellow when it is
below the %s buffer and green otherwise.`, output.FormatWholeDollars(threshold))

	return lipgloss.JoinVertical(lipgloss.Left, BorderStyle.Render(text), "", m.help.FullHelpView(m.keys.FullHelp()))
}
