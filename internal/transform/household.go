package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/affordo/internal/domain"
)

// ScaleIncome multiplies household income by Factor
type ScaleIncome struct {
	Factor float64
}

func (t *ScaleIncome) Name() string { return "scale_income" }

func (t *ScaleIncome) Description() string {
	return fmt.Sprintf("Scale household income by %s", factorLabel(t.Factor))
}

func (t *ScaleIncome) Validate(base domain.ScenarioInputs) error {
	if t.Factor < 0 {
		return invalid(t.Name(), "factor cannot be negative")
	}
	return nil
}

func (t *ScaleIncome) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base.Clone()
	out.HHIAnnual = base.HHIAnnual * t.Factor
	return out, nil
}

// SetIncome replaces household income
type SetIncome struct {
	Income float64
}

func (t *SetIncome) Name() string { return "set_income" }

func (t *SetIncome) Description() string {
	return fmt.Sprintf("Set household income to $%.0f", t.Income)
}

func (t *SetIncome) Validate(base domain.ScenarioInputs) error {
	if t.Income < 0 {
		return invalid(t.Name(), "income cannot be negative")
	}
	return nil
}

func (t *SetIncome) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base.Clone()
	out.HHIAnnual = t.Income
	return out, nil
}

// MonthlyField names a monthly dollar input SetMonthly can replace
type MonthlyField string

const (
	FieldPreTaxRetirement MonthlyField = "pre_tax_retirement"
	FieldAfterTaxSavings  MonthlyField = "after_tax_savings"
	FieldLivingExpenses   MonthlyField = "living_expenses"
	FieldHOA              MonthlyField = "hoa"
)

// SetMonthly replaces one monthly dollar input
type SetMonthly struct {
	Field  MonthlyField
	Amount float64
}

func (t *SetMonthly) Name() string { return "set_monthly" }

func (t *SetMonthly) Description() string {
	return fmt.Sprintf("Set %s to $%.0f/mo", strings.ReplaceAll(string(t.Field), "_", " "), t.Amount)
}

func (t *SetMonthly) Validate(base domain.ScenarioInputs) error {
	if t.Amount < 0 {
		return invalid(t.Name(), "amount cannot be negative")
	}
	if t.target(&base) == nil {
		return invalid(t.Name(), fmt.Sprintf("unknown field %q", t.Field))
	}
	return nil
}

func (t *SetMonthly) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base.Clone()
	dst := t.target(&out)
	if dst == nil {
		return base, invalid(t.Name(), fmt.Sprintf("unknown field %q", t.Field))
	}
	*dst = t.Amount
	return out, nil
}

func (t *SetMonthly) target(in *domain.ScenarioInputs) *float64 {
	switch t.Field {
	case FieldPreTaxRetirement:
		return &in.PreTaxRetirementMonthly
	case FieldAfterTaxSavings:
		return &in.AfterTaxRetirementMonthly
	case FieldLivingExpenses:
		return &in.LivingExpensesMonthly
	case FieldHOA:
		return &in.HOAMonthly
	default:
		return nil
	}
}

// MoveState replaces the state and drops any flat-rate override so the
// new state's table rate applies
type MoveState struct {
	State string
}

func (t *MoveState) Name() string { return "move_state" }

func (t *MoveState) Description() string {
	return "Move to " + strings.ToUpper(t.State)
}

func (t *MoveState) Validate(base domain.ScenarioInputs) error {
	if len(strings.TrimSpace(t.State)) != 2 {
		return invalid(t.Name(), "state must be a two-letter code")
	}
	return nil
}

func (t *MoveState) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base.Clone()
	out.State = strings.ToUpper(strings.TrimSpace(t.State))
	out.StateRateOverride = nil
	return out, nil
}

// SetFilingStatus replaces the filing status
type SetFilingStatus struct {
	Status domain.FilingStatus
}

func (t *SetFilingStatus) Name() string { return "set_filing_status" }

func (t *SetFilingStatus) Description() string {
	return "File as " + t.Status.Label()
}

func (t *SetFilingStatus) Validate(base domain.ScenarioInputs) error {
	if _, err := domain.ParseFilingStatus(string(t.Status)); err != nil {
		return NewTransformError(t.Name(), "validate", "unsupported filing status", err)
	}
	return nil
}

func (t *SetFilingStatus) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base.Clone()
	out.FilingStatus = t.Status
	return out, nil
}
