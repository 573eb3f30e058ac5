package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/affordo/internal/output"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("AFFORDABILITY SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString(fmt.Sprintf("Buffer:        %s/mo\n", output.FormatWholeDollars(compSet.SurplusThreshold)))
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Surplus/mo",
		numWidth, "Taxes/mo",
		numWidth, "Housing/mo",
		numWidth, "Front-end"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(" " + alt.Description)
			}
			sb.WriteString("\n")
			sb.WriteString(fmt.Sprintf("  Surplus:    %s/mo\n", tf.signed(alt.SurplusDiffFromBase)))
			if alt.TaxDiffFromBase != 0 {
				sb.WriteString(fmt.Sprintf("  Taxes:      %s/mo\n", tf.signed(alt.TaxDiffFromBase)))
			}
			if alt.HousingDiffFromBase != 0 {
				sb.WriteString(fmt.Sprintf("  Housing:    %s/mo\n", tf.signed(alt.HousingDiffFromBase)))
			}
			if alt.Status != compSet.BaseResult.Status {
				sb.WriteString(fmt.Sprintf("  Status:     %s -> %s\n", compSet.BaseResult.Status, alt.Status))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, output.FormatWholeDollars(result.SurplusMonthly),
		numWidth, output.FormatWholeDollars(result.TaxesMonthly),
		numWidth, output.FormatWholeDollars(result.HousingMonthly),
		numWidth, output.FormatPercentage(result.FrontEndRatio))
}

// signed renders a delta with an explicit sign
func (tf *TableFormatter) signed(delta float64) string {
	if delta > 0 {
		return "+" + output.FormatCurrency(delta)
	}
	return output.FormatCurrency(delta)
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of surplus changes
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s", compSet.BaseScenarioName))
	for _, alt := range compSet.AlternativeResults {
		change := "="
		if alt.SurplusDiffFromBase != 0 {
			change = tf.signed(alt.SurplusDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf(" | %s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
