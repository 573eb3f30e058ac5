package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/affordo/internal/calculation"
	"github.com/rgehrsitz/affordo/internal/config"
	"github.com/rgehrsitz/affordo/internal/output"
	"github.com/rgehrsitz/affordo/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	config     *config.Configuration
	engine     *calculation.Engine
	logger     calculation.Logger

	scenarioModel *scenes.ScenarioModel
	gridModel     *scenes.GridModel

	keys keyMap
	help help.Model

	err     error
	loading bool
}

// NewModel creates a new application model. An empty configPath starts from
// the built-in defaults.
func NewModel(configPath string, logger calculation.Logger) Model {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return Model{
		currentScene: SceneScenario,
		configPath:   configPath,
		logger:       logger,
		gridModel:    scenes.NewGridModel(),
		keys:         defaultKeyMap(),
		help:         help.New(),
		loading:      true,
		width:        100,
		height:       30,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return ConfigLoadedMsg{Config: config.DefaultConfiguration()}
		}
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// applyConfig builds the engine and both scenes from a loaded configuration
func (m *Model) applyConfig(cfg *config.Configuration) {
	m.config = cfg
	m.engine = cfg.NewEngine(m.logger)
	m.scenarioModel = scenes.NewScenarioModel(m.engine, cfg.Scenario, cfg.Grid.SurplusThreshold)
	m.scenarioModel.SetSize(m.width, m.height)
	m.gridModel.SetSize(m.width, m.height)
	m.refreshGrid()
	m.loading = false
}

// refreshGrid recomputes the heatmap around the scenario being edited
func (m *Model) refreshGrid() {
	if m.engine == nil || m.scenarioModel == nil {
		return
	}
	grid := m.engine.ComputeGrid(m.scenarioModel.Inputs(), m.config.Grid)
	m.gridModel.SetGrid(output.ClassifyGrid(&grid, m.config.Grid.SurplusThreshold))
}
