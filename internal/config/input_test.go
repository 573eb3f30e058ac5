package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rgehrsitz/affordo/internal/calculation"
	"github.com/rgehrsitz/affordo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile_MergesOverDefaults(t *testing.T) {
	cfg, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "stress.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 350_000.0, cfg.Scenario.HHIAnnual)
	assert.Equal(t, 3_000.0, cfg.Scenario.PreTaxRetirementMonthly)
	assert.Equal(t, 8_500.0, cfg.Scenario.LivingExpensesMonthly)
	// untouched fields keep their defaults
	assert.Equal(t, 1_400_000.0, cfg.Scenario.HomePrice)
	assert.Equal(t, 30.0, cfg.Scenario.TermYears)

	assert.Equal(t, 200_000.0, cfg.Grid.IncomeMin)
	assert.Equal(t, 1_500.0, cfg.Grid.SurplusThreshold)
	assert.Equal(t, domain.DefaultGridConfig().PriceMin, cfg.Grid.PriceMin)

	assert.Equal(t, calculation.DefaultTaxRules(), cfg.TaxRules)

	result := cfg.NewEngine(nil).ComputeScenario(cfg.Scenario)
	assert.InDelta(t, 2_702.23, result.SurplusMonthly, 0.5)
}

func TestLoadFromFile_TaxRuleOverride(t *testing.T) {
	cfg, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "california_rules.yaml"))
	require.NoError(t, err)

	assert.Equal(t, domain.FilingSingle, cfg.Scenario.FilingStatus)
	require.NotNil(t, cfg.Scenario.StateRateOverride)
	assert.Equal(t, 0.0, *cfg.Scenario.StateRateOverride)

	assert.Equal(t, 0.08, cfg.TaxRules.StateRates["CA"])
	assert.Equal(t, 0.0, cfg.TaxRules.StateRates["WA"], "default table entries survive a partial override")
	assert.Equal(t, 0.04, cfg.TaxRules.StateDefaultRate)
	assert.Len(t, cfg.TaxRules.FederalBrackets[domain.FilingJoint], 7)

	engine := cfg.NewEngine(nil)
	assert.Equal(t, 0.0, engine.ComputeScenario(cfg.Scenario).Tax.StateTaxAnnual)

	cfg.Scenario.StateRateOverride = nil
	assert.Equal(t, 0.08, engine.ComputeScenario(cfg.Scenario).Tax.StateEffectiveRate)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParse(t *testing.T) {
	parser := NewInputParser()

	t.Run("empty document yields defaults", func(t *testing.T) {
		cfg, err := parser.Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfiguration(), cfg)
	})

	t.Run("filing status aliases", func(t *testing.T) {
		cfg, err := parser.Parse([]byte("scenario:\n  filing_status: MFJ\n"))
		require.NoError(t, err)
		assert.Equal(t, domain.FilingJoint, cfg.Scenario.FilingStatus)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := parser.Parse([]byte("scenario:\n  hhi: 100000\n"))
		assert.ErrorContains(t, err, "failed to parse YAML")
	})

	t.Run("unknown filing status", func(t *testing.T) {
		_, err := parser.Parse([]byte("scenario:\n  filing_status: widowed\n"))
		assert.ErrorIs(t, err, domain.ErrInvalidFilingStatus)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := parser.Parse([]byte("scenario: [\n"))
		assert.Error(t, err)
	})

	t.Run("bad tax rules", func(t *testing.T) {
		doc := "tax_rules:\n  federal_brackets:\n    single:\n      - {cap: 10000, rate: 0.1}\n"
		_, err := parser.Parse([]byte(doc))
		assert.ErrorContains(t, err, "tax rules validation failed")
	})
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"zero term", "scenario:\n  term_years: 0\n", "term_years"},
		{"down payment over 100%", "scenario:\n  down_payment_pct: 1.5\n", "down_payment_pct"},
		{"state too long", "scenario:\n  state: WAS\n", "state"},
		{"negative income", "scenario:\n  hhi_annual: -1\n", "hhi_annual"},
		{"override over 1", "scenario:\n  state_effective_rate_override: 2\n", "state_effective_rate_override"},
		{"zero income step", "grid:\n  income_step: 0\n", "income_step"},
		{"price max below min", "grid:\n  price_min: 2000000\n  price_max: 1000000\n", "price_max"},
		{"grid too large", "grid:\n  income_min: 0\n  income_max: 1000000\n  income_step: 100\n", "grid"},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.doc))
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Fields)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.NotEmpty(t, verr.Fields[0].Message)
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "term_years", Message: "must be greater than 0"},
		{Field: "state", Message: "is required"},
	}}
	assert.Equal(t, "invalid input: term_years: must be greater than 0; state: is required", err.Error())
}

func TestValidateGrid_RejectsOversizedAxisWithoutBuildingIt(t *testing.T) {
	g := domain.DefaultGridConfig()
	g.IncomeStep = 0.01

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	err := NewInputParser().ValidateGrid(&g)
	runtime.ReadMemStats(&after)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Contains(t, err.Error(), "exceeds the limit of 20000")
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
}

func TestValidateGrid_AcceptsGridAtLimit(t *testing.T) {
	g := domain.GridConfig{
		IncomeMin: 0, IncomeMax: 199, IncomeStep: 1,
		PriceMin: 0, PriceMax: 99, PriceStep: 1,
	}
	assert.NoError(t, NewInputParser().ValidateGrid(&g))

	g.PriceMax = 100
	assert.Error(t, NewInputParser().ValidateGrid(&g))
}
