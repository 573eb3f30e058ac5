package scenes

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/affordo/internal/calculation"
	"github.com/rgehrsitz/affordo/internal/domain"
	"github.com/rgehrsitz/affordo/internal/output"
	"github.com/rgehrsitz/affordo/internal/tui/tuimsg"
)

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newScenario() *ScenarioModel {
	return NewScenarioModel(calculation.NewEngine(), domain.DefaultScenarioInputs(), 2_000)
}

func changedInputs(t *testing.T, cmd tea.Cmd) domain.ScenarioInputs {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.ScenarioChangedMsg)
	require.True(t, ok, "expected ScenarioChangedMsg")
	return msg.Inputs
}

func TestScenarioModelAdjustsFocusedInput(t *testing.T) {
	m := newScenario()
	assert.Equal(t, "Household income", m.Focused())
	before := m.Result().SurplusMonthly

	m, cmd := m.Update(keyRight)
	in := changedInputs(t, cmd)
	assert.Equal(t, 510_000.0, in.HHIAnnual)
	assert.Equal(t, 510_000.0, m.Inputs().HHIAnnual)
	assert.Greater(t, m.Result().SurplusMonthly, before)

	m, _ = m.Update(keyDown)
	assert.Equal(t, "Home price", m.Focused())
	m, cmd = m.Update(runes("H"))
	assert.Equal(t, 1_150_000.0, changedInputs(t, cmd).HomePrice)
}

func TestScenarioModelPercentInputsAreFractions(t *testing.T) {
	m := newScenario()
	m, _ = m.Update(keyDown)
	m, _ = m.Update(keyDown)
	require.Equal(t, "Down payment", m.Focused())

	m, cmd := m.Update(keyRight)
	assert.InDelta(t, 0.31, changedInputs(t, cmd).DownPaymentPct, 1e-9)

	m, _ = m.Update(keyDown)
	m, cmd = m.Update(keyLeft)
	assert.InDelta(t, 0.06375, changedInputs(t, cmd).APR, 1e-9)
	assert.InDelta(t, 0.06375, m.Result().Inputs.APR, 1e-9)
}

func TestScenarioModelFocusStopsAtEnds(t *testing.T) {
	m := newScenario()
	m, _ = m.Update(keyUp)
	assert.Equal(t, "Household income", m.Focused())

	for i := 0; i < 20; i++ {
		m, _ = m.Update(keyDown)
	}
	assert.Equal(t, "Living expenses /mo", m.Focused())
}

func TestScenarioModelNoChangeAtBound(t *testing.T) {
	m := newScenario()
	m.SetInputs(m.Inputs().WithIncomeAndPrice(0, 1_000_000))

	_, cmd := m.Update(keyLeft)
	assert.Nil(t, cmd)
	assert.Equal(t, 0.0, m.Inputs().HHIAnnual)
}

func TestScenarioModelReset(t *testing.T) {
	m := newScenario()
	m, _ = m.Update(keyRight)
	m, _ = m.Update(keyRight)
	require.Equal(t, 520_000.0, m.Inputs().HHIAnnual)

	m, cmd := m.Update(runes("r"))
	assert.Equal(t, 500_000.0, changedInputs(t, cmd).HHIAnnual)
	assert.Equal(t, 500_000.0, m.Inputs().HHIAnnual)
}

func TestScenarioModelIgnoresOtherMessages(t *testing.T) {
	m := newScenario()
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)
}

func TestScenarioModelView(t *testing.T) {
	out := newScenario().View()
	for _, want := range []string{"Household income", "$500,000", "Monthly surplus", "Married Filing Jointly", "WA"} {
		assert.Contains(t, out, want)
	}
}

func newGrid(t *testing.T) *GridModel {
	t.Helper()
	cfg := domain.DefaultGridConfig()
	grid := calculation.ComputeGrid(domain.DefaultScenarioInputs(), cfg)
	m := NewGridModel()
	m.SetGrid(output.ClassifyGrid(&grid, 2_000))
	return m
}

func TestScenarioModelMaxPrice(t *testing.T) {
	in := domain.DefaultScenarioInputs().WithIncomeAndPrice(300_000, 1_000_000)
	m := NewScenarioModel(calculation.NewEngine(), in, 0)

	mp := m.MaxPrice()
	require.NotNil(t, mp)
	assert.True(t, mp.Feasible)
	assert.Greater(t, mp.Value, 1_000_000.0)
	assert.Less(t, mp.Value, 1_100_000.0)
	assert.Contains(t, m.View(), "Max price")

	// more income raises the ceiling
	m.Update(keyRight)
	require.NotNil(t, m.MaxPrice())
	assert.Greater(t, m.MaxPrice().Value, mp.Value)
}

type recordingLogger struct {
	calculation.NopLogger
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestScenarioModelMaxPriceLogsThroughEngine(t *testing.T) {
	rec := &recordingLogger{}
	engine := calculation.NewEngine()
	engine.SetLogger(rec)

	m := NewScenarioModel(engine, domain.DefaultScenarioInputs(), 0)
	require.NotNil(t, m.MaxPrice())

	var steps int
	for _, line := range rec.lines {
		if strings.HasPrefix(line, "max_price step") {
			steps++
		}
	}
	assert.Equal(t, m.MaxPrice().Iterations, steps)
}

func TestGridModelCursorAndSelection(t *testing.T) {
	m := newGrid(t)

	m, _ = m.Update(keyUp)
	m, _ = m.Update(keyLeft)
	row, col := m.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	m, _ = m.Update(keyDown)
	m, _ = m.Update(runes("j"))
	m, _ = m.Update(keyRight)

	m, cmd := m.Update(keyEnter)
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.CellSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, 200_000.0, msg.Income)
	assert.Equal(t, 1_100_000.0, msg.Price)

	for i := 0; i < 30; i++ {
		m, _ = m.Update(keyDown)
		m, _ = m.Update(keyRight)
	}
	row, col = m.Cursor()
	assert.Equal(t, 10, row)
	assert.Equal(t, 5, col)
}

func TestGridModelSetGridClampsCursor(t *testing.T) {
	m := newGrid(t)
	for i := 0; i < 5; i++ {
		m, _ = m.Update(keyDown)
	}

	cfg := domain.GridConfig{
		IncomeMin: 100_000, IncomeMax: 200_000, IncomeStep: 100_000,
		PriceMin: 1_000_000, PriceMax: 1_000_000, PriceStep: 100_000,
	}
	grid := calculation.ComputeGrid(domain.DefaultScenarioInputs(), cfg)
	m.SetGrid(output.ClassifyGrid(&grid, 0))

	row, _ := m.Cursor()
	assert.Equal(t, 1, row)
	cell, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 200_000.0, cell.Income)
}

func TestGridModelEmpty(t *testing.T) {
	m := NewGridModel()
	_, ok := m.Selected()
	assert.False(t, ok)

	_, cmd := m.Update(keyEnter)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "(empty grid)")
}
