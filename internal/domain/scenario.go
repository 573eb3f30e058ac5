package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilingStatus is returned when a filing status string is not recognized
var ErrInvalidFilingStatus = errors.New("invalid filing status")

// FilingStatus selects the bracket table, standard deduction and additional
// Medicare threshold used for a household
type FilingStatus string

const (
	FilingJoint  FilingStatus = "joint"
	FilingSingle FilingStatus = "single"
)

// FilingStatuses lists the supported filing statuses in display order
var FilingStatuses = []FilingStatus{FilingJoint, FilingSingle}

// ParseFilingStatus accepts the canonical names plus the common IRS abbreviations
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "joint", "mfj", "married_filing_jointly", "married":
		return FilingJoint, nil
	case "single", "s":
		return FilingSingle, nil
	}
	return "", fmt.Errorf("%w: %q (valid: joint, single)", ErrInvalidFilingStatus, s)
}

// UnmarshalText lets YAML and JSON decoders accept any spelling ParseFilingStatus does
func (fs *FilingStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseFilingStatus(string(text))
	if err != nil {
		return err
	}
	*fs = parsed
	return nil
}

// Label returns a human-readable name
func (fs FilingStatus) Label() string {
	switch fs {
	case FilingJoint:
		return "Married Filing Jointly"
	case FilingSingle:
		return "Single"
	default:
		return string(fs)
	}
}

// ScenarioInputs is the complete input record for one affordability calculation.
// Monetary fields are dollars; rates and fractions are decimals (0.065 = 6.5%).
type ScenarioInputs struct {
	// Household / tax
	FilingStatus                FilingStatus `yaml:"filing_status" json:"filing_status" validate:"required,oneof=joint single"`
	State                       string       `yaml:"state" json:"state" validate:"required,alpha,len=2"`
	HHIAnnual                   float64      `yaml:"hhi_annual" json:"hhi_annual" validate:"gte=0"`
	PreTaxRetirementMonthly     float64      `yaml:"pre_tax_retirement_monthly" json:"pre_tax_retirement_monthly" validate:"gte=0"`
	AfterTaxRetirementMonthly   float64      `yaml:"after_tax_retirement_monthly" json:"after_tax_retirement_monthly" validate:"gte=0"`
	LivingExpensesMonthly       float64      `yaml:"living_expenses_monthly" json:"living_expenses_monthly" validate:"gte=0"`
	OtherPreTaxDeductionsAnnual float64      `yaml:"other_pre_tax_deductions_annual" json:"other_pre_tax_deductions_annual" validate:"gte=0"`
	// StateRateOverride bypasses the state table when set, including when set to 0
	StateRateOverride *float64 `yaml:"state_effective_rate_override,omitempty" json:"state_effective_rate_override,omitempty" validate:"omitempty,gte=0,lte=1"`

	// Home / mortgage
	HomePrice             float64 `yaml:"home_price" json:"home_price" validate:"gte=0"`
	DownPaymentPct        float64 `yaml:"down_payment_pct" json:"down_payment_pct" validate:"gte=0,lte=1"`
	APR                   float64 `yaml:"apr" json:"apr" validate:"gte=0,lte=1"`
	TermYears             float64 `yaml:"term_years" json:"term_years" validate:"gt=0,lte=50"`
	PropertyTaxRateAnnual float64 `yaml:"property_tax_rate_annual" json:"property_tax_rate_annual" validate:"gte=0,lte=1"`
	InsuranceRateAnnual   float64 `yaml:"insurance_rate_annual" json:"insurance_rate_annual" validate:"gte=0,lte=1"`
	MaintenanceRateAnnual float64 `yaml:"maintenance_rate_annual" json:"maintenance_rate_annual" validate:"gte=0,lte=1"`
	HOAMonthly            float64 `yaml:"hoa_monthly" json:"hoa_monthly" validate:"gte=0"`
}

// DefaultScenarioInputs returns the baseline household used when no file is supplied
func DefaultScenarioInputs() ScenarioInputs {
	return ScenarioInputs{
		FilingStatus:                FilingJoint,
		State:                       "WA",
		HHIAnnual:                   500_000,
		PreTaxRetirementMonthly:     4_000,
		AfterTaxRetirementMonthly:   0,
		LivingExpensesMonthly:       9_500,
		OtherPreTaxDeductionsAnnual: 0,

		HomePrice:             1_400_000,
		DownPaymentPct:        0.30,
		APR:                   0.065,
		TermYears:             30,
		PropertyTaxRateAnnual: 0.01,
		InsuranceRateAnnual:   0.005,
		MaintenanceRateAnnual: 0.01,
		HOAMonthly:            0,
	}
}

// WithIncomeAndPrice returns a copy with household income and home price replaced.
// The override pointer is copied so the result shares no mutable state with the receiver.
func (in ScenarioInputs) WithIncomeAndPrice(income, price float64) ScenarioInputs {
	out := in.Clone()
	out.HHIAnnual = income
	out.HomePrice = price
	return out
}

// Clone returns a copy that shares no pointers with in
func (in ScenarioInputs) Clone() ScenarioInputs {
	out := in
	if in.StateRateOverride != nil {
		v := *in.StateRateOverride
		out.StateRateOverride = &v
	}
	return out
}

// Float64Ptr is a small helper for building optional rate overrides
func Float64Ptr(v float64) *float64 { return &v }

// TaxResult is the annual and monthly tax breakdown for one income level
type TaxResult struct {
	WagesAnnual                 float64 `yaml:"wages_annual" json:"wages_annual"`
	PreTaxRetirementAnnual      float64 `yaml:"pre_tax_retirement_annual" json:"pre_tax_retirement_annual"`
	OtherPreTaxDeductionsAnnual float64 `yaml:"other_pre_tax_deductions_annual" json:"other_pre_tax_deductions_annual"`
	StandardDeduction           float64 `yaml:"standard_deduction" json:"standard_deduction"`
	TaxableIncomeFederal        float64 `yaml:"taxable_income_federal" json:"taxable_income_federal"`
	FederalTaxAnnual            float64 `yaml:"federal_tax_annual" json:"federal_tax_annual"`

	SSTaxAnnual           float64 `yaml:"ss_tax_annual" json:"ss_tax_annual"`
	MedicareTaxAnnual     float64 `yaml:"medicare_tax_annual" json:"medicare_tax_annual"`
	AddlMedicareTaxAnnual float64 `yaml:"addl_medicare_tax_annual" json:"addl_medicare_tax_annual"`
	PayrollTaxAnnual      float64 `yaml:"payroll_tax_annual" json:"payroll_tax_annual"`

	AdjWagesForState   float64 `yaml:"adj_wages_for_state" json:"adj_wages_for_state"`
	StateEffectiveRate float64 `yaml:"state_effective_rate" json:"state_effective_rate"`
	StateTaxAnnual     float64 `yaml:"state_tax_annual" json:"state_tax_annual"`

	TaxesAnnual  float64 `yaml:"taxes_annual" json:"taxes_annual"`
	TaxesMonthly float64 `yaml:"taxes_monthly" json:"taxes_monthly"`
}

// PayrollTax holds the three payroll components and their sum
type PayrollTax struct {
	SS           float64 `json:"ss"`
	Medicare     float64 `json:"medicare"`
	AddlMedicare float64 `json:"addl_medicare"`
	Total        float64 `json:"total"`
}

// HousingResult is the monthly cost of owning one home at one price
type HousingResult struct {
	LoanAmount          float64 `yaml:"loan_amount" json:"loan_amount"`
	PIMonthly           float64 `yaml:"pi_monthly" json:"pi_monthly"`
	PropertyTaxMonthly  float64 `yaml:"property_tax_monthly" json:"property_tax_monthly"`
	InsuranceMonthly    float64 `yaml:"insurance_monthly" json:"insurance_monthly"`
	MaintenanceMonthly  float64 `yaml:"maintenance_monthly" json:"maintenance_monthly"`
	HOAMonthly          float64 `yaml:"hoa_monthly" json:"hoa_monthly"`
	HousingTotalMonthly float64 `yaml:"housing_total_monthly" json:"housing_total_monthly"`
}

// ScenarioResult is the top-level output of a single scenario calculation
type ScenarioResult struct {
	Inputs  ScenarioInputs `yaml:"inputs" json:"inputs"`
	Tax     TaxResult      `yaml:"tax" json:"tax"`
	Housing HousingResult  `yaml:"housing" json:"housing"`

	GrossMonthly              float64 `yaml:"gross_monthly" json:"gross_monthly"`
	NetPayMonthly             float64 `yaml:"net_pay_monthly" json:"net_pay_monthly"`
	AfterTaxRetirementMonthly float64 `yaml:"after_tax_retirement_monthly" json:"after_tax_retirement_monthly"`
	LivingExpensesMonthly     float64 `yaml:"living_expenses_monthly" json:"living_expenses_monthly"`
	SurplusMonthly            float64 `yaml:"surplus_monthly" json:"surplus_monthly"`
	FrontEndRatio             float64 `yaml:"front_end_ratio" json:"front_end_ratio"`
}
