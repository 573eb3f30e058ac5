package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"scenario",
		"type",
		"surplus_monthly",
		"taxes_monthly",
		"housing_monthly",
		"front_end_ratio",
		"status",
		"surplus_diff",
		"tax_diff",
		"housing_diff",
		"ratio_diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		money(result.SurplusMonthly),
		money(result.TaxesMonthly),
		money(result.HousingMonthly),
		strconv.FormatFloat(result.FrontEndRatio, 'f', 4, 64),
		string(result.Status),
		money(result.SurplusDiffFromBase),
		money(result.TaxDiffFromBase),
		money(result.HousingDiffFromBase),
		strconv.FormatFloat(result.RatioDiffFromBase, 'f', 4, 64),
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
