package calculation

import (
	"fmt"
	"testing"

	"github.com/rgehrsitz/affordo/internal/domain"
	"github.com/stretchr/testify/assert"
)

// Tolerances for golden scenarios: annual money within $1, monthly money
// within 50 cents, ratios within 0.0001
const (
	annualTol  = 1.0
	monthlyTol = 0.5
	ratioTol   = 0.0001
)

type goldenScenario struct {
	name   string
	inputs domain.ScenarioInputs

	grossMonthly   float64
	taxableIncome  float64
	federalTax     float64
	payrollTax     float64
	stateTax       float64
	taxesMonthly   float64
	netPayMonthly  float64
	piMonthly      float64
	housingMonthly float64
	surplus        float64
	frontEndRatio  float64
}

func goldenScenarios() []goldenScenario {
	base := domain.DefaultScenarioInputs()

	stress := base
	stress.HHIAnnual = 350_000
	stress.PreTaxRetirementMonthly = 3_000
	stress.LivingExpensesMonthly = 8_500

	higher := base
	higher.HHIAnnual = 600_000
	higher.PreTaxRetirementMonthly = 5_000
	higher.LivingExpensesMonthly = 11_000
	higher.HomePrice = 1_800_000
	higher.HOAMonthly = 300

	california := base
	california.State = "CA"
	california.StateRateOverride = domain.Float64Ptr(0.06)
	california.PropertyTaxRateAnnual = 0.012
	california.InsuranceRateAnnual = 0.006

	return []goldenScenario{
		{"base WA 500k income 1.4M home", base, 41_666.67, 419_800, 87_248, 20_939, 0, 9_015.58, 32_651.08, 6_194.27, 9_110.93, 10_040.15, 0.2187},
		{"stress WA 350k income 1.4M home", stress, 29_166.67, 281_800, 52_828, 17_414, 0, 5_853.50, 23_313.17, 6_194.27, 9_110.93, 2_702.23, 0.3124},
		{"higher price WA 600k income 1.8M home with HOA", higher, 50_000, 507_800, 115_408, 23_289, 0, 11_558.08, 38_441.92, 7_964.06, 12_014.06, 10_427.86, 0.2403},
		{"CA 6% override 500k income 1.4M home", california, 41_666.67, 419_800, 87_248, 20_939, 27_120, 11_275.58, 30_391.08, 6_194.27, 9_460.93, 7_430.15, 0.2271},
	}
}

func TestComputeScenario_Golden(t *testing.T) {
	for _, g := range goldenScenarios() {
		t.Run(g.name, func(t *testing.T) {
			r := ComputeScenario(g.inputs)

			assert.InDelta(t, g.grossMonthly, r.GrossMonthly, monthlyTol, "gross monthly")
			assert.InDelta(t, g.taxableIncome, r.Tax.TaxableIncomeFederal, annualTol, "taxable income")
			assert.InDelta(t, g.federalTax, r.Tax.FederalTaxAnnual, annualTol, "federal tax")
			assert.InDelta(t, g.payrollTax, r.Tax.PayrollTaxAnnual, annualTol, "payroll tax")
			assert.InDelta(t, g.stateTax, r.Tax.StateTaxAnnual, annualTol, "state tax")
			assert.InDelta(t, g.taxesMonthly, r.Tax.TaxesMonthly, monthlyTol, "taxes monthly")
			assert.InDelta(t, g.netPayMonthly, r.NetPayMonthly, monthlyTol, "net pay")
			assert.InDelta(t, g.piMonthly, r.Housing.PIMonthly, monthlyTol, "P&I")
			assert.InDelta(t, g.housingMonthly, r.Housing.HousingTotalMonthly, monthlyTol, "housing total")
			assert.InDelta(t, g.surplus, r.SurplusMonthly, monthlyTol, "surplus")
			assert.InDelta(t, g.frontEndRatio, r.FrontEndRatio, ratioTol, "front-end ratio")
		})
	}
}

func TestComputeScenario_NoStateTaxStatesAreExactlyZero(t *testing.T) {
	r := ComputeScenario(domain.DefaultScenarioInputs())
	assert.Equal(t, 0.0, r.Tax.StateTaxAnnual)
}

func TestComputeScenario_Invariants(t *testing.T) {
	r := ComputeScenario(domain.DefaultScenarioInputs())

	assert.Equal(t, r.GrossMonthly-r.Tax.TaxesMonthly, r.NetPayMonthly)
	assert.Equal(t, r.Housing.HousingTotalMonthly/r.GrossMonthly, r.FrontEndRatio)
	assert.Equal(t, r.Inputs.AfterTaxRetirementMonthly, r.AfterTaxRetirementMonthly)
	assert.Equal(t, r.Inputs.LivingExpensesMonthly, r.LivingExpensesMonthly)
}

func TestComputeScenario_ZeroIncomeGuardsRatio(t *testing.T) {
	in := domain.DefaultScenarioInputs()
	in.HHIAnnual = 0

	r := ComputeScenario(in)
	assert.Equal(t, 0.0, r.GrossMonthly)
	assert.Equal(t, 0.0, r.FrontEndRatio)
	assert.Less(t, r.SurplusMonthly, 0.0)
}

func TestComputeScenario_AfterTaxSavingsHasNoTaxEffect(t *testing.T) {
	base := domain.DefaultScenarioInputs()
	more := base
	more.AfterTaxRetirementMonthly += 1_000

	a := ComputeScenario(base)
	b := ComputeScenario(more)

	assert.InDelta(t, a.Tax.TaxesMonthly, b.Tax.TaxesMonthly, 1e-9)
	assert.InDelta(t, 1_000, a.SurplusMonthly-b.SurplusMonthly, 1e-9)
}

func TestComputeScenario_PreTaxRetirementLowersTax(t *testing.T) {
	base := domain.DefaultScenarioInputs()
	more := base
	more.PreTaxRetirementMonthly += 1_000

	a := ComputeScenario(base)
	b := ComputeScenario(more)

	assert.Less(t, b.Tax.TaxesMonthly, a.Tax.TaxesMonthly)
	drop := a.SurplusMonthly - b.SurplusMonthly
	assert.Greater(t, drop, 0.0)
	assert.Less(t, drop, 1_000.0)
}

func TestComputeScenario_DoesNotAliasOverride(t *testing.T) {
	in := domain.DefaultScenarioInputs()
	in.StateRateOverride = domain.Float64Ptr(0.04)

	r := NewEngine().ScenarioAt(in, 250_000, 900_000)
	*in.StateRateOverride = 0.5

	assert.Equal(t, 0.04, *r.Inputs.StateRateOverride)
	assert.Equal(t, 0.04, r.Tax.StateEffectiveRate)
}

type recordingLogger struct {
	NopLogger
	debug []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine()
	rec := &recordingLogger{}
	engine.SetLogger(rec)

	engine.ComputeScenario(domain.DefaultScenarioInputs())
	engine.ComputeGrid(domain.DefaultScenarioInputs(), domain.DefaultGridConfig())

	if assert.Len(t, rec.debug, 2) {
		assert.Contains(t, rec.debug[0], "surplus/mo=")
		assert.Contains(t, rec.debug[1], "11 incomes x 6 prices")
	}

	assert.Same(t, rec, engine.Logger())

	engine.SetLogger(nil)
	assert.Equal(t, NopLogger{}, engine.Logger())
	assert.NotPanics(t, func() { engine.ComputeScenario(domain.DefaultScenarioInputs()) })
}

func TestEngine_CustomRules(t *testing.T) {
	rules := DefaultTaxRules()
	rules.StateRates["WA"] = 0.01

	r := NewEngineWithRules(rules).ComputeScenario(domain.DefaultScenarioInputs())
	assert.InDelta(t, 4_520, r.Tax.StateTaxAnnual, 1e-6)
}
