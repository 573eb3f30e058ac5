package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/affordo/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.scenarioModel != nil {
			m.scenarioModel.SetSize(msg.Width, msg.Height)
		}
		m.gridModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case ConfigLoadedMsg:
		m.applyConfig(msg.Config)
		return m, nil

	case tuimsg.ScenarioChangedMsg:
		m.refreshGrid()
		return m, nil

	case tuimsg.CellSelectedMsg:
		if m.scenarioModel == nil {
			return m, nil
		}
		m.scenarioModel.SetInputs(m.scenarioModel.Inputs().WithIncomeAndPrice(msg.Income, msg.Price))
		return m, navigate(SceneScenario)
	}

	return m.updateCurrentScene(msg)
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: s} }
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return m, tea.Quit
	}

	// Any key dismisses an error; without a loaded config there is nothing to return to
	if m.err != nil {
		if m.config == nil {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}
	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.currentScene == SceneHelp {
			return m, navigate(m.previousScene)
		}
		return m, navigate(SceneHelp)

	case key.Matches(msg, m.keys.Back):
		if m.currentScene != m.previousScene {
			return m, navigate(m.previousScene)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextScene):
		if m.currentScene == SceneGrid {
			return m, navigate(SceneScenario)
		}
		return m, navigate(SceneGrid)

	case key.Matches(msg, m.keys.Scenario):
		return m, navigate(SceneScenario)

	case key.Matches(msg, m.keys.Grid):
		return m, navigate(SceneGrid)
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.currentScene {
	case SceneScenario:
		if m.scenarioModel != nil {
			updated, cmd := m.scenarioModel.Update(msg)
			m.scenarioModel = updated
			return m, cmd
		}
	case SceneGrid:
		updated, cmd := m.gridModel.Update(msg)
		m.gridModel = updated
		return m, cmd
	}
	return m, nil
}
