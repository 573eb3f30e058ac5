package output

import "github.com/rgehrsitz/affordo/internal/domain"

type valueKind int

const (
	kindMoney valueKind = iota
	kindRatio
)

// auditLine is one row of the scenario breakdown shared by the console and CSV formatters
type auditLine struct {
	section string
	key     string
	label   string
	value   float64
	kind    valueKind
	places  int
}

func moneyLine(section, key, label string, v float64) auditLine {
	return auditLine{section: section, key: key, label: label, value: v, kind: kindMoney, places: 2}
}

func ratioLine(section, key, label string, v float64) auditLine {
	return auditLine{section: section, key: key, label: label, value: v, kind: kindRatio, places: 4}
}

func auditLines(r *domain.ScenarioResult) []auditLine {
	t, h := r.Tax, r.Housing
	return []auditLine{
		moneyLine("taxes", "wages_annual", "Wages", t.WagesAnnual),
		moneyLine("taxes", "pre_tax_retirement_annual", "Pre-tax retirement", t.PreTaxRetirementAnnual),
		moneyLine("taxes", "other_pre_tax_deductions_annual", "Other pre-tax deductions", t.OtherPreTaxDeductionsAnnual),
		moneyLine("taxes", "standard_deduction", "Standard deduction", t.StandardDeduction),
		moneyLine("taxes", "taxable_income_federal", "Federal taxable income", t.TaxableIncomeFederal),
		moneyLine("taxes", "federal_tax_annual", "Federal income tax", t.FederalTaxAnnual),
		moneyLine("taxes", "ss_tax_annual", "Social Security", t.SSTaxAnnual),
		moneyLine("taxes", "medicare_tax_annual", "Medicare", t.MedicareTaxAnnual),
		moneyLine("taxes", "addl_medicare_tax_annual", "Additional Medicare", t.AddlMedicareTaxAnnual),
		moneyLine("taxes", "payroll_tax_annual", "Payroll tax", t.PayrollTaxAnnual),
		moneyLine("taxes", "adj_wages_for_state", "State taxable wages", t.AdjWagesForState),
		ratioLine("taxes", "state_effective_rate", "State effective rate", t.StateEffectiveRate),
		moneyLine("taxes", "state_tax_annual", "State income tax", t.StateTaxAnnual),
		moneyLine("taxes", "taxes_annual", "Total taxes (annual)", t.TaxesAnnual),
		moneyLine("taxes", "taxes_monthly", "Total taxes (monthly)", t.TaxesMonthly),

		moneyLine("housing", "loan_amount", "Loan amount", h.LoanAmount),
		moneyLine("housing", "pi_monthly", "Principal & interest", h.PIMonthly),
		moneyLine("housing", "property_tax_monthly", "Property tax", h.PropertyTaxMonthly),
		moneyLine("housing", "insurance_monthly", "Insurance", h.InsuranceMonthly),
		moneyLine("housing", "maintenance_monthly", "Maintenance", h.MaintenanceMonthly),
		moneyLine("housing", "hoa_monthly", "HOA", h.HOAMonthly),
		moneyLine("housing", "housing_total_monthly", "Housing total", h.HousingTotalMonthly),

		moneyLine("cash_flow", "gross_monthly", "Gross pay", r.GrossMonthly),
		moneyLine("cash_flow", "taxes_monthly", "Taxes", t.TaxesMonthly),
		moneyLine("cash_flow", "net_pay_monthly", "Net pay", r.NetPayMonthly),
		moneyLine("cash_flow", "pre_tax_retirement_monthly", "Pre-tax retirement", r.Inputs.PreTaxRetirementMonthly),
		moneyLine("cash_flow", "after_tax_retirement_monthly", "After-tax savings", r.AfterTaxRetirementMonthly),
		moneyLine("cash_flow", "living_expenses_monthly", "Living expenses", r.LivingExpensesMonthly),
		moneyLine("cash_flow", "housing_total_monthly", "Housing", h.HousingTotalMonthly),
		moneyLine("cash_flow", "surplus_monthly", "Surplus", r.SurplusMonthly),
		ratioLine("cash_flow", "front_end_ratio", "Front-end ratio", r.FrontEndRatio),
	}
}

func (l auditLine) display() string {
	if l.kind == kindRatio {
		return FormatPercentage(l.value)
	}
	return FormatCurrency(l.value)
}
