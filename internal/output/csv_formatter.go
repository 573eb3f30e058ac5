package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter writes one row per scenario metric, then one row per grid cell.
// The two tables are separated by a blank line when both are present.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if r.Scenario != nil {
		if err := w.Write([]string{"section", "metric", "value"}); err != nil {
			return nil, err
		}
		for _, line := range auditLines(r.Scenario) {
			if err := w.Write([]string{line.section, line.key, fixed(line.value, line.places)}); err != nil {
				return nil, err
			}
		}
	}

	if g := ClassifyGrid(r.Grid, r.SurplusThreshold); g != nil {
		if r.Scenario != nil {
			w.Flush()
			buf.WriteByte('\n')
		}
		if err := w.Write([]string{"income", "price", "surplus_monthly", "front_end_ratio", "status"}); err != nil {
			return nil, err
		}
		for _, row := range g.Cells {
			for _, cell := range row {
				rec := []string{
					fixed(cell.Income, 0),
					fixed(cell.Price, 0),
					fixed(cell.SurplusMonthly, 2),
					fixed(cell.FrontEndRatio, 4),
					string(cell.Status),
				}
				if err := w.Write(rec); err != nil {
					return nil, err
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fixed(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}
