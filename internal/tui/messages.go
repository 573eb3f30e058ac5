package tui

import (
	"github.com/rgehrsitz/affordo/internal/config"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneScenario Scene = iota
	SceneGrid
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneScenario:
		return "Scenario"
	case SceneGrid:
		return "Grid"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *config.Configuration
}
