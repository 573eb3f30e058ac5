package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/affordo/internal/domain"
)

// ConsoleFormatter renders the scenario audit breakdown and a text grid.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

var sectionTitles = map[string]string{
	"taxes":     "TAXES",
	"housing":   "HOUSING (MONTHLY)",
	"cash_flow": "MONTHLY CASH FLOW",
}

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	if r.Scenario != nil {
		writeScenario(&buf, r.Scenario)
	}
	if g := ClassifyGrid(r.Grid, r.SurplusThreshold); g != nil {
		if r.Scenario != nil {
			fmt.Fprintln(&buf)
		}
		writeGrid(&buf, g)
	}
	return buf.Bytes(), nil
}

func writeScenario(buf *bytes.Buffer, s *domain.ScenarioResult) {
	in := s.Inputs
	fmt.Fprintln(buf, strings.Repeat("=", 60))
	fmt.Fprintln(buf, "HOUSEHOLD AFFORDABILITY SCENARIO")
	fmt.Fprintln(buf, strings.Repeat("=", 60))
	fmt.Fprintf(buf, "Household income: %s  (%s, %s)\n", FormatWholeDollars(in.HHIAnnual), in.FilingStatus.Label(), strings.ToUpper(in.State))
	fmt.Fprintf(buf, "Home price:       %s  (%s down, %s APR, %g years)\n",
		FormatWholeDollars(in.HomePrice), FormatPercentage(in.DownPaymentPct), FormatPercentage(in.APR), in.TermYears)

	section := ""
	for _, line := range auditLines(s) {
		if line.section != section {
			section = line.section
			fmt.Fprintln(buf)
			fmt.Fprintln(buf, sectionTitles[section])
			fmt.Fprintln(buf, strings.Repeat("-", len(sectionTitles[section])))
		}
		fmt.Fprintf(buf, "  %-28s %16s\n", line.label+":", line.display())
	}

	fmt.Fprintln(buf)
	switch {
	case s.SurplusMonthly < 0:
		fmt.Fprintf(buf, "Short by %s per month.\n", FormatCurrency(-s.SurplusMonthly))
	default:
		fmt.Fprintf(buf, "%s left over per month.\n", FormatCurrency(s.SurplusMonthly))
	}

	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "ASSUMPTIONS")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(buf, "  - %s\n", a)
	}
}

var statusMarks = map[domain.CellStatus]string{
	domain.StatusUnaffordable: "!",
	domain.StatusBelowBuffer:  "~",
	domain.StatusComfortable:  " ",
}

func writeGrid(buf *bytes.Buffer, g *ClassifiedGrid) {
	const width = 11

	fmt.Fprintln(buf, "MONTHLY SURPLUS BY INCOME (rows) AND HOME PRICE (columns)")
	fmt.Fprintln(buf, strings.Repeat("=", 60))
	if len(g.Incomes) == 0 || len(g.Prices) == 0 {
		fmt.Fprintln(buf, "(empty grid)")
		return
	}

	fmt.Fprintf(buf, "%-9s", "")
	for _, p := range g.Prices {
		fmt.Fprintf(buf, " %*s", width, FormatCompact(p))
	}
	fmt.Fprintln(buf)

	for i, row := range g.Cells {
		fmt.Fprintf(buf, "%-9s", FormatCompact(g.Incomes[i]))
		for _, cell := range row {
			fmt.Fprintf(buf, " %*s", width, FormatWholeDollars(cell.SurplusMonthly)+statusMarks[cell.Status])
		}
		fmt.Fprintln(buf)
	}

	counts := g.Counts()
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "! unaffordable (%d)   ~ below %s buffer (%d)   comfortable (%d)\n",
		counts[domain.StatusUnaffordable], FormatWholeDollars(g.SurplusThreshold),
		counts[domain.StatusBelowBuffer], counts[domain.StatusComfortable])
}
