package scenes

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/affordo/internal/breakeven"
	"github.com/rgehrsitz/affordo/internal/calculation"
	"github.com/rgehrsitz/affordo/internal/domain"
	"github.com/rgehrsitz/affordo/internal/output"
	"github.com/rgehrsitz/affordo/internal/tui/components"
	"github.com/rgehrsitz/affordo/internal/tui/tuimsg"
	"github.com/rgehrsitz/affordo/internal/tui/tuistyles"
)

// coarseSteps is how many slider steps shift+arrow moves at once
const coarseSteps = 10

// sliderBinding ties a slider to the input field it edits. scale converts
// between the stored value and the displayed one (fractions shown as percent).
type sliderBinding struct {
	slider *components.ParameterSlider
	set    func(*domain.ScenarioInputs, float64)
	scale  float64
}

// ScenarioModel represents the single-scenario editing scene
type ScenarioModel struct {
	engine    *calculation.Engine
	base      domain.ScenarioInputs
	inputs    domain.ScenarioInputs
	result    domain.ScenarioResult
	maxPrice  *breakeven.OptimizationResult
	threshold float64

	bindings []sliderBinding
	focused  int

	width  int
	height int
}

// NewScenarioModel creates the scene over base inputs; r resets to them
func NewScenarioModel(engine *calculation.Engine, base domain.ScenarioInputs, threshold float64) *ScenarioModel {
	m := &ScenarioModel{
		engine:    engine,
		base:      base.Clone(),
		threshold: threshold,
	}
	m.SetInputs(base)
	return m
}

// SetInputs replaces the edited inputs, rebuilding sliders and recomputing
func (m *ScenarioModel) SetInputs(in domain.ScenarioInputs) {
	m.inputs = in.Clone()
	m.buildSliders()
	m.recompute()
}

// Inputs returns a copy of the inputs being edited
func (m *ScenarioModel) Inputs() domain.ScenarioInputs {
	return m.inputs.Clone()
}

// Result returns the scenario computed from the current inputs
func (m *ScenarioModel) Result() domain.ScenarioResult {
	return m.result
}

// Focused returns the label of the focused slider
func (m *ScenarioModel) Focused() string {
	return m.bindings[m.focused].slider.Label
}

// SetSize updates the scene dimensions
func (m *ScenarioModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ScenarioModel) buildSliders() {
	whole := output.FormatWholeDollars
	pct := func(label string, value, hi, step float64) *components.ParameterSlider {
		return components.NewParameterSlider(label, value, 0, hi, step).WithFormat("%.4g").WithUnit("%")
	}

	m.bindings = []sliderBinding{
		{
			slider: components.NewParameterSlider("Household income", m.inputs.HHIAnnual, 0, 1_500_000, 10_000).WithDisplay(whole),
			set:    func(in *domain.ScenarioInputs, v float64) { in.HHIAnnual = v },
		},
		{
			slider: components.NewParameterSlider("Home price", m.inputs.HomePrice, 0, 4_000_000, 25_000).WithDisplay(whole),
			set:    func(in *domain.ScenarioInputs, v float64) { in.HomePrice = v },
		},
		{
			slider: pct("Down payment", m.inputs.DownPaymentPct*100, 100, 1),
			set:    func(in *domain.ScenarioInputs, v float64) { in.DownPaymentPct = v },
			scale:  100,
		},
		{
			slider: pct("Mortgage APR", m.inputs.APR*100, 15, 0.125),
			set:    func(in *domain.ScenarioInputs, v float64) { in.APR = v },
			scale:  100,
		},
		{
			slider: components.NewParameterSlider("Pre-tax retirement /mo", m.inputs.PreTaxRetirementMonthly, 0, 6_000, 100).WithDisplay(whole),
			set:    func(in *domain.ScenarioInputs, v float64) { in.PreTaxRetirementMonthly = v },
		},
		{
			slider: components.NewParameterSlider("After-tax savings /mo", m.inputs.AfterTaxRetirementMonthly, 0, 10_000, 100).WithDisplay(whole),
			set:    func(in *domain.ScenarioInputs, v float64) { in.AfterTaxRetirementMonthly = v },
		},
		{
			slider: components.NewParameterSlider("Living expenses /mo", m.inputs.LivingExpensesMonthly, 0, 30_000, 250).WithDisplay(whole),
			set:    func(in *domain.ScenarioInputs, v float64) { in.LivingExpensesMonthly = v },
		},
	}

	if m.focused >= len(m.bindings) {
		m.focused = 0
	}
	m.bindings[m.focused].slider.SetFocused(true)
}

func (m *ScenarioModel) recompute() {
	m.result = m.engine.ComputeScenario(m.inputs)

	// highest price that still leaves the buffer at the current income
	solver := breakeven.NewDefaultSolver(m.engine)
	solver.SetLogger(m.engine.Logger())
	mp, err := solver.Optimize(context.Background(), breakeven.OptimizationRequest{
		Base:            m.inputs,
		Target:          breakeven.TargetMaxPrice,
		RequiredSurplus: m.threshold,
	})
	if err != nil {
		m.engine.Logger().Warnf("max price search failed: %v", err)
	}
	m.maxPrice = mp
}

// MaxPrice returns the solved maximum price, or nil if the search failed
func (m *ScenarioModel) MaxPrice() *breakeven.OptimizationResult {
	return m.maxPrice
}

// Update handles messages for the scenario scene
func (m *ScenarioModel) Update(msg tea.Msg) (*ScenarioModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocus(-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		m.moveFocus(1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right", "l"))):
		return m, m.adjust(1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left", "h"))):
		return m, m.adjust(-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("shift+right", "L"))):
		return m, m.adjust(coarseSteps)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("shift+left", "H"))):
		return m, m.adjust(-coarseSteps)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("r"))):
		m.SetInputs(m.base)
		return m, m.changed()
	}
	return m, nil
}

func (m *ScenarioModel) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= len(m.bindings) {
		return
	}
	m.bindings[m.focused].slider.SetFocused(false)
	m.focused = next
	m.bindings[m.focused].slider.SetFocused(true)
}

// adjust moves the focused slider by steps and writes the value back
func (m *ScenarioModel) adjust(steps int) tea.Cmd {
	b := m.bindings[m.focused]
	before := b.slider.Value
	b.slider.SetValue(before + float64(steps)*b.slider.Step)
	if b.slider.Value == before {
		return nil
	}

	v := b.slider.Value
	if b.scale != 0 {
		v /= b.scale
	}
	b.set(&m.inputs, v)
	m.recompute()
	return m.changed()
}

func (m *ScenarioModel) changed() tea.Cmd {
	in := m.Inputs()
	return func() tea.Msg {
		return tuimsg.ScenarioChangedMsg{Inputs: in}
	}
}

// View renders the scenario scene
func (m *ScenarioModel) View() string {
	sliders := make([]string, 0, len(m.bindings))
	for _, b := range m.bindings {
		sliders = append(sliders, b.slider.RenderCompact())
	}
	left := lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Inputs"),
		"",
		strings.Join(sliders, "\n"),
		"",
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s · %s · %g-year term",
			m.inputs.FilingStatus.Label(), strings.ToUpper(m.inputs.State), m.inputs.TermYears)),
	)

	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderCards(),
		"",
		m.renderBreakdown(),
	)

	help := tuistyles.SubtitleStyle.Render("↑/↓ select • ←/→ adjust • shift+←/→ ×10 • r reset")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right),
		"",
		help,
	)
}

func (m *ScenarioModel) renderCards() string {
	r := m.result
	status := domain.ClassifySurplus(r.SurplusMonthly, m.threshold)

	surplus := components.NewMetricCard("Monthly surplus", output.FormatCurrency(r.SurplusMonthly)).
		WithTrend(status == domain.StatusComfortable, string(status))
	cards := []*components.MetricCard{
		components.NewMetricCard("Net pay /mo", output.FormatCurrency(r.NetPayMonthly)).
			WithDescription("of " + output.FormatCurrency(r.GrossMonthly) + " gross"),
		components.NewMetricCard("Taxes /mo", output.FormatCurrency(r.Tax.TaxesMonthly)).
			WithDescription(output.FormatCurrency(r.Tax.TaxesAnnual) + " /yr"),
		components.NewMetricCard("Housing /mo", output.FormatCurrency(r.Housing.HousingTotalMonthly)).
			WithDescription(output.FormatPercentage(r.FrontEndRatio) + " of gross"),
		surplus,
	}
	if mp := m.maxPrice; mp != nil {
		value := "none"
		if mp.Feasible {
			value = output.FormatWholeDollars(mp.Value)
			if mp.Bounded {
				value = ">= " + value
			}
		}
		cards = append(cards, components.NewMetricCard("Max price", value).
			WithDescription("keeps "+output.FormatWholeDollars(m.threshold)+"/mo surplus"))
	}
	return components.MetricGrid(cards, 2)
}

func (m *ScenarioModel) renderBreakdown() string {
	r := m.result
	rows := [][2]string{
		{"Federal income tax", output.FormatCurrency(r.Tax.FederalTaxAnnual)},
		{"Payroll tax", output.FormatCurrency(r.Tax.PayrollTaxAnnual)},
		{"State tax (" + output.FormatPercentage(r.Tax.StateEffectiveRate) + ")", output.FormatCurrency(r.Tax.StateTaxAnnual)},
		{"Principal & interest", output.FormatCurrency(r.Housing.PIMonthly)},
		{"Property tax + insurance", output.FormatCurrency(r.Housing.PropertyTaxMonthly + r.Housing.InsuranceMonthly)},
		{"Maintenance + HOA", output.FormatCurrency(r.Housing.MaintenanceMonthly + r.Housing.HOAMonthly)},
	}

	label := tuistyles.MetricLabelStyle.Width(30)
	value := tuistyles.MetricValueStyle.Width(14).Align(lipgloss.Right)
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = label.Render(row[0]) + value.Render(row[1])
	}
	return strings.Join(lines, "\n")
}
