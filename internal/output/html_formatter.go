package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/affordo/internal/domain"
)

// HTMLFormatter produces a standalone HTML page with the scenario breakdown
// and the grid rendered as a heatmap.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"whole":   FormatWholeDollars,
	"compact": FormatCompact,
	"pct":     FormatPercentage,
}).Parse(htmlTemplateSource))

type htmlRow struct {
	Label string
	Value string
}

type htmlSection struct {
	Title string
	Rows  []htmlRow
}

func (h HTMLFormatter) Format(r *Report) ([]byte, error) {
	var sections []htmlSection
	if r.Scenario != nil {
		for _, line := range auditLines(r.Scenario) {
			title := sectionTitles[line.section]
			if len(sections) == 0 || sections[len(sections)-1].Title != title {
				sections = append(sections, htmlSection{Title: title})
			}
			last := &sections[len(sections)-1]
			last.Rows = append(last.Rows, htmlRow{Label: line.label, Value: line.display()})
		}
	}

	var assumptions []string
	if r.Scenario != nil {
		assumptions = DefaultAssumptions
	}

	data := struct {
		Scenario    *domain.ScenarioResult
		Sections    []htmlSection
		Grid        *ClassifiedGrid
		Assumptions []string
	}{r.Scenario, sections, ClassifyGrid(r.Grid, r.SurplusThreshold), assumptions}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
