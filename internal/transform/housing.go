package transform

import (
	"fmt"

	"github.com/rgehrsitz/affordo/internal/domain"
)

// ScalePrice multiplies the home price by Factor (0.9 = 10% cheaper)
type ScalePrice struct {
	Factor float64
}

func (t *ScalePrice) Name() string { return "scale_price" }

func (t *ScalePrice) Description() string {
	return fmt.Sprintf("Scale home price by %s", factorLabel(t.Factor))
}

func (t *ScalePrice) Validate(base domain.ScenarioInputs) error {
	if t.Factor <= 0 {
		return invalid(t.Name(), "factor must be positive")
	}
	return nil
}

func (t *ScalePrice) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base.Clone()
	out.HomePrice = base.HomePrice * t.Factor
	return out, nil
}

// SetPrice replaces the home price
type SetPrice struct {
	Price float64
}

func (t *SetPrice) Name() string { return "set_price" }

func (t *SetPrice) Description() string {
	return fmt.Sprintf("Set home price to $%.0f", t.Price)
}

func (t *SetPrice) Validate(base domain.ScenarioInputs) error {
	if t.Price < 0 {
		return invalid(t.Name(), "price cannot be negative")
	}
	return nil
}

func (t *SetPrice) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base.Clone()
	out.HomePrice = t.Price
	return out, nil
}

// SetDownPayment replaces the down payment fraction
type SetDownPayment struct {
	Pct float64
}

func (t *SetDownPayment) Name() string { return "set_down_payment" }

func (t *SetDownPayment) Description() string {
	return fmt.Sprintf("Put %g%% down", t.Pct*100)
}

func (t *SetDownPayment) Validate(base domain.ScenarioInputs) error {
	if t.Pct < 0 || t.Pct > 1 {
		return invalid(t.Name(), "down payment must be between 0 and 1")
	}
	return nil
}

func (t *SetDownPayment) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base.Clone()
	out.DownPaymentPct = t.Pct
	return out, nil
}

// AdjustAPR shifts the mortgage rate by Delta (-0.01 = one point lower)
type AdjustAPR struct {
	Delta float64
}

func (t *AdjustAPR) Name() string { return "adjust_apr" }

func (t *AdjustAPR) Description() string {
	return fmt.Sprintf("Move mortgage rate %+g points", t.Delta*100)
}

func (t *AdjustAPR) Validate(base domain.ScenarioInputs) error {
	next := base.APR + t.Delta
	if next < 0 || next > 1 {
		return invalid(t.Name(), fmt.Sprintf("resulting APR %.4f is outside [0, 1]", next))
	}
	return nil
}

func (t *AdjustAPR) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base.Clone()
	out.APR = base.APR + t.Delta
	return out, nil
}

// SetAPR replaces the mortgage rate
type SetAPR struct {
	Rate float64
}

func (t *SetAPR) Name() string { return "set_apr" }

func (t *SetAPR) Description() string {
	return fmt.Sprintf("Set mortgage rate to %g%%", t.Rate*100)
}

func (t *SetAPR) Validate(base domain.ScenarioInputs) error {
	if t.Rate < 0 || t.Rate > 1 {
		return invalid(t.Name(), "rate must be between 0 and 1")
	}
	return nil
}

func (t *SetAPR) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base.Clone()
	out.APR = t.Rate
	return out, nil
}

// SetTerm replaces the loan term
type SetTerm struct {
	Years float64
}

func (t *SetTerm) Name() string { return "set_term" }

func (t *SetTerm) Description() string {
	return fmt.Sprintf("Use a %g-year mortgage", t.Years)
}

func (t *SetTerm) Validate(base domain.ScenarioInputs) error {
	if t.Years <= 0 {
		return invalid(t.Name(), "term must be positive")
	}
	return nil
}

func (t *SetTerm) Apply(base domain.ScenarioInputs) (domain.ScenarioInputs, error) {
	out := base.Clone()
	out.TermYears = t.Years
	return out, nil
}

func factorLabel(f float64) string {
	return fmt.Sprintf("%+g%%", (f-1)*100)
}
