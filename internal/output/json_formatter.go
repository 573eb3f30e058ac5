package output

import (
	"encoding/json"

	"github.com/rgehrsitz/affordo/internal/domain"
)

// JSONFormatter serializes the report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *Report) ([]byte, error) {
	doc := struct {
		Scenario *domain.ScenarioResult `json:"scenario,omitempty"`
		Grid     *ClassifiedGrid        `json:"grid,omitempty"`
	}{
		Scenario: r.Scenario,
		Grid:     ClassifyGrid(r.Grid, r.SurplusThreshold),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
