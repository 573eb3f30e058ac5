package calculation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rgehrsitz/affordo/internal/domain"
)

// TAX RULE ASSUMPTIONS (tax year 2026):
//
// 1. Federal brackets and standard deduction by filing status, no indexing.
// 2. Payroll: Social Security capped at the wage base, Medicare uncapped,
//    Additional Medicare on wages above a filing-status threshold.
// 3. State: one flat effective rate per state applied to wages less pre-tax
//    deductions. Unlisted states use StateDefaultRate, which is not zero.

// Bracket is one marginal band. Cap is the upper bound of the band; the
// terminal band uses +Inf (".inf" in YAML).
type Bracket struct {
	Cap  float64 `yaml:"cap" json:"cap"`
	Rate float64 `yaml:"rate" json:"rate"`
}

// bracketsPerStatus is the number of federal bands every filing status carries
const bracketsPerStatus = 7

// TaxRules holds the read-only lookup tables used by TaxCalculator
type TaxRules struct {
	Year                  int                               `yaml:"year" json:"year"`
	StandardDeduction     map[domain.FilingStatus]float64   `yaml:"standard_deduction" json:"standard_deduction"`
	FederalBrackets       map[domain.FilingStatus][]Bracket `yaml:"federal_brackets" json:"-"`
	SSRate                float64                           `yaml:"ss_rate" json:"ss_rate"`
	SSWageBase            float64                           `yaml:"ss_wage_base" json:"ss_wage_base"`
	MedicareRate          float64                           `yaml:"medicare_rate" json:"medicare_rate"`
	AddlMedicareRate      float64                           `yaml:"addl_medicare_rate" json:"addl_medicare_rate"`
	AddlMedicareThreshold map[domain.FilingStatus]float64   `yaml:"addl_medicare_threshold" json:"addl_medicare_threshold"`
	StateRates            map[string]float64                `yaml:"state_rates" json:"state_rates"`
	StateDefaultRate      float64                           `yaml:"state_default_rate" json:"state_default_rate"`
}

var inf = math.Inf(1)

// defaultRules is built once at start-up and never mutated; DefaultTaxRules hands out copies.
var defaultRules = TaxRules{
	Year: 2026,
	StandardDeduction: map[domain.FilingStatus]float64{
		domain.FilingJoint:  32_200,
		domain.FilingSingle: 16_100,
	},
	FederalBrackets: map[domain.FilingStatus][]Bracket{
		domain.FilingJoint: {
			{24_800, 0.10},
			{100_800, 0.12},
			{211_400, 0.22},
			{403_550, 0.24},
			{512_450, 0.32},
			{768_700, 0.35},
			{inf, 0.37},
		},
		domain.FilingSingle: {
			{12_400, 0.10},
			{50_400, 0.12},
			{105_700, 0.22},
			{201_775, 0.24},
			{256_225, 0.32},
			{640_600, 0.35},
			{inf, 0.37},
		},
	},
	SSRate:           0.062,
	SSWageBase:       184_500,
	MedicareRate:     0.0145,
	AddlMedicareRate: 0.009,
	AddlMedicareThreshold: map[domain.FilingStatus]float64{
		domain.FilingJoint:  250_000,
		domain.FilingSingle: 200_000,
	},
	StateRates: map[string]float64{
		"WA": 0,
		"TX": 0,
		"FL": 0,
		"NV": 0,
		"TN": 0,
		"WY": 0,
		"SD": 0,
		"AK": 0,
		"NH": 0,
		"CA": 0.093,
		"NY": 0.0685,
		"NJ": 0.0637,
		"OR": 0.09,
		"HI": 0.0825,
		"MN": 0.0785,
		"CT": 0.0699,
		"IL": 0.0495,
		"MA": 0.05,
		"CO": 0.044,
		"PA": 0.0307,
	},
	StateDefaultRate: 0.05,
}

// DefaultTaxRules returns a copy of the built-in 2026 tables
func DefaultTaxRules() TaxRules {
	return defaultRules.Clone()
}

// Clone returns a deep copy so callers cannot mutate shared tables
func (r TaxRules) Clone() TaxRules {
	out := r
	out.StandardDeduction = make(map[domain.FilingStatus]float64, len(r.StandardDeduction))
	for k, v := range r.StandardDeduction {
		out.StandardDeduction[k] = v
	}
	out.FederalBrackets = make(map[domain.FilingStatus][]Bracket, len(r.FederalBrackets))
	for k, v := range r.FederalBrackets {
		out.FederalBrackets[k] = append([]Bracket(nil), v...)
	}
	out.AddlMedicareThreshold = make(map[domain.FilingStatus]float64, len(r.AddlMedicareThreshold))
	for k, v := range r.AddlMedicareThreshold {
		out.AddlMedicareThreshold[k] = v
	}
	out.StateRates = make(map[string]float64, len(r.StateRates))
	for k, v := range r.StateRates {
		out.StateRates[normalizeState(k)] = v
	}
	return out
}

// Validate checks that every filing status has a complete, strictly increasing
// bracket table ending in an unbounded band, and that all rates are fractions
func (r TaxRules) Validate() error {
	for _, fs := range domain.FilingStatuses {
		if _, ok := r.StandardDeduction[fs]; !ok {
			return fmt.Errorf("standard deduction missing for %s", fs)
		}
		if _, ok := r.AddlMedicareThreshold[fs]; !ok {
			return fmt.Errorf("additional medicare threshold missing for %s", fs)
		}
		brackets := r.FederalBrackets[fs]
		if len(brackets) != bracketsPerStatus {
			return fmt.Errorf("%s: expected %d federal brackets, got %d", fs, bracketsPerStatus, len(brackets))
		}
		prev := 0.0
		for i, b := range brackets {
			if b.Cap <= prev {
				return fmt.Errorf("%s: bracket %d cap %.2f must exceed previous cap %.2f", fs, i, b.Cap, prev)
			}
			if err := checkRate(fmt.Sprintf("%s bracket %d", fs, i), b.Rate); err != nil {
				return err
			}
			prev = b.Cap
		}
		if !math.IsInf(prev, 1) {
			return fmt.Errorf("%s: terminal bracket must be unbounded (cap .inf)", fs)
		}
	}
	if r.SSWageBase < 0 {
		return fmt.Errorf("social security wage base must be non-negative")
	}
	for name, rate := range map[string]float64{
		"ss_rate":            r.SSRate,
		"medicare_rate":      r.MedicareRate,
		"addl_medicare_rate": r.AddlMedicareRate,
		"state_default_rate": r.StateDefaultRate,
	} {
		if err := checkRate(name, rate); err != nil {
			return err
		}
	}
	for state, rate := range r.StateRates {
		if err := checkRate("state "+state, rate); err != nil {
			return err
		}
	}
	return nil
}

// States returns the state codes in the rate table, sorted
func (r TaxRules) States() []string {
	out := make([]string, 0, len(r.StateRates))
	for s := range r.StateRates {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func checkRate(name string, rate float64) error {
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return fmt.Errorf("%s: rate %v must be between 0 and 1", name, rate)
	}
	return nil
}

func normalizeState(state string) string {
	return strings.ToUpper(strings.TrimSpace(state))
}
