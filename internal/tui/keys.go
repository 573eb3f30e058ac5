package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the global bindings; scenes match their own keys
type keyMap struct {
	NextScene key.Binding
	Scenario  key.Binding
	Grid      key.Binding
	Help      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextScene: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		Scenario:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scenario")),
		Grid:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextScene, k.Scenario, k.Grid, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextScene, k.Scenario, k.Grid},
		{k.Help, k.Back, k.Quit},
	}
}
