package calculation

import (
	"math"

	"github.com/rgehrsitz/affordo/internal/domain"
)

// TaxCalculator computes federal, payroll and state taxes from a TaxRules table
type TaxCalculator struct {
	rules TaxRules
}

// NewTaxCalculator creates a tax calculator over a private copy of rules
func NewTaxCalculator(rules TaxRules) *TaxCalculator {
	return &TaxCalculator{rules: rules.Clone()}
}

// NewDefaultTaxCalculator creates a tax calculator over the built-in 2026 tables
func NewDefaultTaxCalculator() *TaxCalculator {
	return &TaxCalculator{rules: DefaultTaxRules()}
}

// Rules returns a copy of the calculator's tables
func (tc *TaxCalculator) Rules() TaxRules {
	return tc.rules.Clone()
}

// StandardDeduction returns the standard deduction for a filing status
func (tc *TaxCalculator) StandardDeduction(fs domain.FilingStatus) float64 {
	return tc.rules.StandardDeduction[fs]
}

// FederalTax applies the progressive bracket table to taxable income.
// Income at or below zero owes nothing.
func (tc *TaxCalculator) FederalTax(taxableIncome float64, fs domain.FilingStatus) float64 {
	var tax, prevCap float64
	for _, b := range tc.rules.FederalBrackets[fs] {
		if taxableIncome <= prevCap {
			break
		}
		tax += (math.Min(taxableIncome, b.Cap) - prevCap) * b.Rate
		prevCap = b.Cap
	}
	return tax
}

// PayrollTax computes Social Security (capped at the wage base), Medicare
// (uncapped) and Additional Medicare (above the filing-status threshold)
func (tc *TaxCalculator) PayrollTax(wagesAnnual float64, fs domain.FilingStatus) domain.PayrollTax {
	r := tc.rules
	ss := math.Min(wagesAnnual, r.SSWageBase) * r.SSRate
	medicare := wagesAnnual * r.MedicareRate
	addl := math.Max(0, wagesAnnual-r.AddlMedicareThreshold[fs]) * r.AddlMedicareRate
	return domain.PayrollTax{
		SS:           ss,
		Medicare:     medicare,
		AddlMedicare: addl,
		Total:        ss + medicare + addl,
	}
}

// StateEffectiveRate returns override when present (0 included), else the
// table rate for state, else the default rate for unlisted states
func (tc *TaxCalculator) StateEffectiveRate(state string, override *float64) float64 {
	if override != nil {
		return *override
	}
	if rate, ok := tc.rules.StateRates[normalizeState(state)]; ok {
		return rate
	}
	return tc.rules.StateDefaultRate
}

// AllTaxes computes the full tax breakdown for one household income.
//
// Pre-tax retirement and other deductions reduce federal and state wages but
// not payroll wages. The state base excludes the standard deduction.
// After-tax savings never enter here.
func (tc *TaxCalculator) AllTaxes(
	fs domain.FilingStatus,
	state string,
	hhiAnnual float64,
	preTaxRetirementMonthly float64,
	otherPreTaxDeductionsAnnual float64,
	stateRateOverride *float64,
) domain.TaxResult {
	wages := hhiAnnual
	preTaxRetirementAnnual := preTaxRetirementMonthly * 12
	standardDeduction := tc.StandardDeduction(fs)

	taxableFederal := math.Max(0, wages-preTaxRetirementAnnual-otherPreTaxDeductionsAnnual-standardDeduction)
	federalTax := tc.FederalTax(taxableFederal, fs)
	payroll := tc.PayrollTax(wages, fs)

	adjWagesForState := math.Max(0, wages-preTaxRetirementAnnual-otherPreTaxDeductionsAnnual)
	stateRate := tc.StateEffectiveRate(state, stateRateOverride)
	stateTax := adjWagesForState * stateRate

	taxesAnnual := federalTax + payroll.Total + stateTax

	return domain.TaxResult{
		WagesAnnual:                 wages,
		PreTaxRetirementAnnual:      preTaxRetirementAnnual,
		OtherPreTaxDeductionsAnnual: otherPreTaxDeductionsAnnual,
		StandardDeduction:           standardDeduction,
		TaxableIncomeFederal:        taxableFederal,
		FederalTaxAnnual:            federalTax,
		SSTaxAnnual:                 payroll.SS,
		MedicareTaxAnnual:           payroll.Medicare,
		AddlMedicareTaxAnnual:       payroll.AddlMedicare,
		PayrollTaxAnnual:            payroll.Total,
		AdjWagesForState:            adjWagesForState,
		StateEffectiveRate:          stateRate,
		StateTaxAnnual:              stateTax,
		TaxesAnnual:                 taxesAnnual,
		TaxesMonthly:                taxesAnnual / 12,
	}
}

// taxesFor runs AllTaxes with the tax fields of a scenario
func (tc *TaxCalculator) taxesFor(in domain.ScenarioInputs) domain.TaxResult {
	return tc.AllTaxes(
		in.FilingStatus,
		in.State,
		in.HHIAnnual,
		in.PreTaxRetirementMonthly,
		in.OtherPreTaxDeductionsAnnual,
		in.StateRateOverride,
	)
}

var defaultTaxCalc = NewDefaultTaxCalculator()

// ComputeFederalTax uses the built-in 2026 tables
func ComputeFederalTax(taxableIncome float64, fs domain.FilingStatus) float64 {
	return defaultTaxCalc.FederalTax(taxableIncome, fs)
}

// ComputePayrollTax uses the built-in 2026 tables
func ComputePayrollTax(wagesAnnual float64, fs domain.FilingStatus) domain.PayrollTax {
	return defaultTaxCalc.PayrollTax(wagesAnnual, fs)
}

// GetStateEffectiveRate uses the built-in state table
func GetStateEffectiveRate(state string, override *float64) float64 {
	return defaultTaxCalc.StateEffectiveRate(state, override)
}

// ComputeAllTaxes uses the built-in 2026 tables
func ComputeAllTaxes(fs domain.FilingStatus, state string, hhiAnnual, preTaxRetirementMonthly, otherPreTaxDeductionsAnnual float64, stateRateOverride *float64) domain.TaxResult {
	return defaultTaxCalc.AllTaxes(fs, state, hhiAnnual, preTaxRetirementMonthly, otherPreTaxDeductionsAnnual, stateRateOverride)
}
