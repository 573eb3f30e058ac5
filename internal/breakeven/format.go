package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/affordo/internal/output"
)

// TableFormatter formats solver results for the console
type TableFormatter struct{}

var targetLabels = map[OptimizationTarget]string{
	TargetMaxPrice:  "Maximum home price",
	TargetMinIncome: "Minimum household income",
}

// Format generates a formatted report for one solver result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("AFFORDABILITY BREAK-EVEN\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Target:           %s\n", targetLabels[result.Target]))
	sb.WriteString(fmt.Sprintf("Required surplus: %s/mo\n", output.FormatWholeDollars(result.RequiredSurplus)))
	sb.WriteString(fmt.Sprintf("Search range:     %s to %s\n", output.FormatWholeDollars(result.Lower), output.FormatWholeDollars(result.Upper)))
	sb.WriteString(fmt.Sprintf("Status:           %s\n", tf.formatStatus(result)))
	sb.WriteString(fmt.Sprintf("Iterations:       %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:      %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if result.Feasible {
		sb.WriteString("RESULT\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("%s: %s\n", targetLabels[result.Target], output.FormatWholeDollars(result.Value)))
		r := result.Scenario
		sb.WriteString(fmt.Sprintf("  Household income: %s\n", output.FormatWholeDollars(r.Inputs.HHIAnnual)))
		sb.WriteString(fmt.Sprintf("  Home price:       %s\n", output.FormatWholeDollars(r.Inputs.HomePrice)))
		sb.WriteString(fmt.Sprintf("  Housing /mo:      %s\n", output.FormatCurrency(r.Housing.HousingTotalMonthly)))
		sb.WriteString(fmt.Sprintf("  Surplus /mo:      %s\n", output.FormatCurrency(r.SurplusMonthly)))
		sb.WriteString(fmt.Sprintf("  Front-end ratio:  %s\n", output.FormatPercentage(r.FrontEndRatio)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatStatus(result *OptimizationResult) string {
	switch {
	case !result.Feasible:
		return "✗ Not achievable"
	case result.Bounded:
		return "✓ Met at search limit"
	default:
		return "✓ Solved"
	}
}

// FormatSummary formats both searches and their recommendations
func (tf *TableFormatter) FormatSummary(summary *Summary) string {
	var sb strings.Builder
	if summary.MaxPrice != nil {
		sb.WriteString(tf.Format(summary.MaxPrice))
	}
	if summary.MinIncome != nil {
		sb.WriteString(tf.Format(summary.MinIncome))
	}

	if len(summary.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, rec := range summary.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatFrontier formats the income to maximum price table
func (tf *TableFormatter) FormatFrontier(points []FrontierPoint, required float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("AFFORDABILITY FRONTIER (surplus >= %s/mo)\n", output.FormatWholeDollars(required)))
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %18s %14s\n", "Income", "Max price", "Front-end"))
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, p := range points {
		price := output.FormatWholeDollars(p.MaxPrice)
		switch {
		case !p.Feasible:
			price = "none"
		case p.Bounded:
			price = ">= " + price
		}
		ratio := output.FormatPercentage(p.FrontEndRatio)
		if !p.Feasible {
			ratio = "-"
		}
		sb.WriteString(fmt.Sprintf("%-16s %18s %14s\n", output.FormatWholeDollars(p.Income), price, ratio))
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for any solver result
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
