package calculation

import (
	"math"
	"testing"

	"github.com/rgehrsitz/affordo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFederalTax_NonPositiveIncome(t *testing.T) {
	for _, fs := range domain.FilingStatuses {
		for _, income := range []float64{0, -1, -50_000, -1e9} {
			assert.Equal(t, 0.0, ComputeFederalTax(income, fs), "status=%s income=%v", fs, income)
		}
	}
}

func TestComputeFederalTax_Brackets(t *testing.T) {
	tests := []struct {
		name     string
		income   float64
		status   domain.FilingStatus
		expected float64
	}{
		{"joint first bracket partial", 10_000, domain.FilingJoint, 1_000},
		{"joint first bracket boundary", 24_800, domain.FilingJoint, 2_480},
		{"joint into second bracket", 30_000, domain.FilingJoint, 2_480 + 5_200*0.12},
		// 2480 + 9120 + 24332 + 46116 + 16250*0.32
		{"joint golden taxable income", 419_800, domain.FilingJoint, 87_248},
		{"single first bracket boundary", 12_400, domain.FilingSingle, 1_240},
		// 1240 + 4560 + 12166 + 23058 + 17424 + (640600-256225)*0.35 + 359400*0.37
		{"single top bracket", 1_000_000, domain.FilingSingle, 1_240 + 4_560 + 12_166 + 23_058 + 17_424 + 134_531.25 + 132_978},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ComputeFederalTax(tt.income, tt.status), 1e-6)
		})
	}
}

func TestComputeFederalTax_Monotonic(t *testing.T) {
	prev := 0.0
	for income := 0.0; income <= 1_000_000; income += 7_500 {
		tax := ComputeFederalTax(income, domain.FilingJoint)
		assert.GreaterOrEqual(t, tax, prev, "tax must not decrease at income %v", income)
		prev = tax
	}
}

func TestComputePayrollTax(t *testing.T) {
	rules := DefaultTaxRules()
	capped := rules.SSWageBase * rules.SSRate

	t.Run("social security capped at wage base", func(t *testing.T) {
		for _, wages := range []float64{184_500, 184_501, 250_000, 1_000_000} {
			p := ComputePayrollTax(wages, domain.FilingJoint)
			assert.Equal(t, capped, p.SS, "wages=%v", wages)
		}
	})

	t.Run("below wage base is proportional", func(t *testing.T) {
		p := ComputePayrollTax(100_000, domain.FilingSingle)
		assert.InDelta(t, 6_200, p.SS, 1e-9)
		assert.InDelta(t, 1_450, p.Medicare, 1e-9)
		assert.Equal(t, 0.0, p.AddlMedicare)
		assert.InDelta(t, 7_650, p.Total, 1e-9)
	})

	t.Run("additional medicare threshold by filing status", func(t *testing.T) {
		joint := ComputePayrollTax(300_000, domain.FilingJoint)
		single := ComputePayrollTax(300_000, domain.FilingSingle)
		assert.InDelta(t, 50_000*0.009, joint.AddlMedicare, 1e-9)
		assert.InDelta(t, 100_000*0.009, single.AddlMedicare, 1e-9)
	})

	t.Run("golden joint payroll", func(t *testing.T) {
		p := ComputePayrollTax(500_000, domain.FilingJoint)
		assert.InDelta(t, 20_939, p.Total, 1e-6)
		assert.InDelta(t, p.SS+p.Medicare+p.AddlMedicare, p.Total, 1e-9)
	})
}

func TestGetStateEffectiveRate(t *testing.T) {
	tests := []struct {
		name     string
		state    string
		override *float64
		expected float64
	}{
		{"table no-tax state", "WA", nil, 0},
		{"table state", "CA", nil, 0.093},
		{"case and whitespace insensitive", " ca ", nil, 0.093},
		{"unknown state uses default", "ZZ", nil, 0.05},
		{"empty state uses default", "", nil, 0.05},
		{"override wins over table", "CA", domain.Float64Ptr(0.06), 0.06},
		{"zero override is honored", "CA", domain.Float64Ptr(0), 0},
		{"override wins over default", "ZZ", domain.Float64Ptr(0.01), 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetStateEffectiveRate(tt.state, tt.override))
		})
	}
}

func TestComputeAllTaxes(t *testing.T) {
	t.Run("golden WA joint", func(t *testing.T) {
		r := ComputeAllTaxes(domain.FilingJoint, "WA", 500_000, 4_000, 0, nil)
		assert.Equal(t, 48_000.0, r.PreTaxRetirementAnnual)
		assert.Equal(t, 32_200.0, r.StandardDeduction)
		assert.InDelta(t, 419_800, r.TaxableIncomeFederal, 1e-9)
		assert.InDelta(t, 87_248, r.FederalTaxAnnual, 1e-6)
		assert.InDelta(t, 20_939, r.PayrollTaxAnnual, 1e-6)
		assert.Equal(t, 0.0, r.StateTaxAnnual)
		assert.InDelta(t, 9_015.58, r.TaxesMonthly, 0.01)
	})

	t.Run("state base excludes standard deduction", func(t *testing.T) {
		r := ComputeAllTaxes(domain.FilingJoint, "CA", 500_000, 4_000, 2_000, domain.Float64Ptr(0.06))
		assert.InDelta(t, 450_000, r.AdjWagesForState, 1e-9)
		assert.InDelta(t, 27_000, r.StateTaxAnnual, 1e-9)
		assert.InDelta(t, 417_800, r.TaxableIncomeFederal, 1e-9)
	})

	t.Run("payroll ignores pre-tax retirement", func(t *testing.T) {
		without := ComputeAllTaxes(domain.FilingJoint, "WA", 300_000, 0, 0, nil)
		with := ComputeAllTaxes(domain.FilingJoint, "WA", 300_000, 2_000, 0, nil)
		assert.Equal(t, without.PayrollTaxAnnual, with.PayrollTaxAnnual)
		assert.Less(t, with.FederalTaxAnnual, without.FederalTaxAnnual)
	})

	t.Run("taxable income floors at zero", func(t *testing.T) {
		r := ComputeAllTaxes(domain.FilingSingle, "NY", 20_000, 1_500, 5_000, nil)
		assert.Equal(t, 0.0, r.TaxableIncomeFederal)
		assert.Equal(t, 0.0, r.FederalTaxAnnual)
		assert.Equal(t, 0.0, r.AdjWagesForState)
		assert.Equal(t, 0.0, r.StateTaxAnnual)
		assert.Greater(t, r.PayrollTaxAnnual, 0.0)
	})

	t.Run("totals are the sum of categories", func(t *testing.T) {
		for _, income := range []float64{0, 75_000, 250_000, 900_000} {
			for _, fs := range domain.FilingStatuses {
				r := ComputeAllTaxes(fs, "OR", income, 1_500, 3_000, nil)
				assert.Equal(t, r.FederalTaxAnnual+r.PayrollTaxAnnual+r.StateTaxAnnual, r.TaxesAnnual)
				assert.Equal(t, r.TaxesAnnual/12, r.TaxesMonthly)
				assert.GreaterOrEqual(t, r.TaxableIncomeFederal, 0.0)
			}
		}
	})
}

func TestTaxRules_DefaultsAreValid(t *testing.T) {
	require.NoError(t, DefaultTaxRules().Validate())
}

func TestTaxRules_CloneIsIndependent(t *testing.T) {
	a := DefaultTaxRules()
	a.StateRates["WA"] = 0.5
	a.FederalBrackets[domain.FilingJoint][0].Rate = 0.99

	b := DefaultTaxRules()
	assert.Equal(t, 0.0, b.StateRates["WA"])
	assert.Equal(t, 0.10, b.FederalBrackets[domain.FilingJoint][0].Rate)
}

func TestTaxRules_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *TaxRules)
		errMsg string
	}{
		{"missing deduction", func(r *TaxRules) { delete(r.StandardDeduction, domain.FilingSingle) }, "standard deduction missing"},
		{"short bracket table", func(r *TaxRules) {
			r.FederalBrackets[domain.FilingJoint] = r.FederalBrackets[domain.FilingJoint][:6]
		}, "expected 7 federal brackets"},
		{"non increasing caps", func(r *TaxRules) { r.FederalBrackets[domain.FilingJoint][2].Cap = 50_000 }, "must exceed previous cap"},
		{"bounded terminal band", func(r *TaxRules) { r.FederalBrackets[domain.FilingSingle][6].Cap = 1e7 }, "terminal bracket must be unbounded"},
		{"rate above one", func(r *TaxRules) { r.StateRates["CA"] = 9.3 }, "must be between 0 and 1"},
		{"negative wage base", func(r *TaxRules) { r.SSWageBase = -1 }, "wage base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultTaxRules()
			tt.mutate(&r)
			err := r.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestTaxCalculator_CustomRules(t *testing.T) {
	rules := DefaultTaxRules()
	rules.StateDefaultRate = 0.02
	rules.StateRates = map[string]float64{"wa": 0.01}

	tc := NewTaxCalculator(rules)
	assert.Equal(t, 0.01, tc.StateEffectiveRate("WA", nil), "keys are normalized on copy")
	assert.Equal(t, 0.02, tc.StateEffectiveRate("CA", nil))

	rules.StateDefaultRate = 0.9
	assert.Equal(t, 0.02, tc.StateEffectiveRate("CA", nil), "calculator keeps its own copy")
}

func TestTaxRules_States(t *testing.T) {
	states := DefaultTaxRules().States()
	assert.Len(t, states, 20)
	assert.Equal(t, "AK", states[0])
	assert.True(t, math.IsInf(DefaultTaxRules().FederalBrackets[domain.FilingJoint][6].Cap, 1))
}
