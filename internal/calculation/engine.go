package calculation

import (
	"github.com/rgehrsitz/affordo/internal/domain"
)

// Engine composes the tax and housing calculators into scenario and grid results.
// It holds no mutable calculation state; one Engine may serve concurrent callers
// as long as SetLogger is not called concurrently.
type Engine struct {
	TaxCalc *TaxCalculator
	logger  Logger
}

// NewEngine creates an engine over the built-in 2026 tax tables
func NewEngine() *Engine {
	return &Engine{
		TaxCalc: NewDefaultTaxCalculator(),
		logger:  NopLogger{},
	}
}

// NewEngineWithRules creates an engine over custom tax tables
func NewEngineWithRules(rules TaxRules) *Engine {
	return &Engine{
		TaxCalc: NewTaxCalculator(rules),
		logger:  NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.logger = l
}

// Logger returns the logger the engine reports through
func (e *Engine) Logger() Logger {
	return e.logger
}

// cashFlow holds the monthly figures derived from one tax and one housing result
type cashFlow struct {
	grossMonthly  float64
	netPayMonthly float64
	surplus       float64
	frontEndRatio float64
}

// deriveCashFlow is shared by scenarios and grid cells so both paths produce
// identical numbers for the same inputs
func deriveCashFlow(hhiAnnual float64, tax *domain.TaxResult, housing *domain.HousingResult, in *domain.ScenarioInputs) cashFlow {
	gross := hhiAnnual / 12
	net := gross - tax.TaxesMonthly
	surplus := net -
		in.PreTaxRetirementMonthly -
		in.AfterTaxRetirementMonthly -
		in.LivingExpensesMonthly -
		housing.HousingTotalMonthly

	var ratio float64
	if gross > 0 {
		ratio = housing.HousingTotalMonthly / gross
	}

	return cashFlow{
		grossMonthly:  gross,
		netPayMonthly: net,
		surplus:       surplus,
		frontEndRatio: ratio,
	}
}

// ComputeScenario calculates taxes, housing and monthly cash flow for one input set
func (e *Engine) ComputeScenario(in domain.ScenarioInputs) domain.ScenarioResult {
	tax := e.TaxCalc.taxesFor(in)
	housing := housingFor(in)
	cf := deriveCashFlow(in.HHIAnnual, &tax, &housing, &in)

	e.logger.Debugf("scenario income=%.0f price=%.0f taxes/mo=%.2f housing/mo=%.2f surplus/mo=%.2f",
		in.HHIAnnual, in.HomePrice, tax.TaxesMonthly, housing.HousingTotalMonthly, cf.surplus)

	return domain.ScenarioResult{
		Inputs:                    in,
		Tax:                       tax,
		Housing:                   housing,
		GrossMonthly:              cf.grossMonthly,
		NetPayMonthly:             cf.netPayMonthly,
		AfterTaxRetirementMonthly: in.AfterTaxRetirementMonthly,
		LivingExpensesMonthly:     in.LivingExpensesMonthly,
		SurplusMonthly:            cf.surplus,
		FrontEndRatio:             cf.frontEndRatio,
	}
}

// ScenarioAt computes the full scenario behind one grid cell
func (e *Engine) ScenarioAt(base domain.ScenarioInputs, income, price float64) domain.ScenarioResult {
	return e.ComputeScenario(base.WithIncomeAndPrice(income, price))
}

var defaultEngine = NewEngine()

// ComputeScenario uses the built-in 2026 tax tables
func ComputeScenario(in domain.ScenarioInputs) domain.ScenarioResult {
	return defaultEngine.ComputeScenario(in)
}
