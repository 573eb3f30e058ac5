// Package tuimsg holds messages that scenes send to the root model.
package tuimsg

import "github.com/rgehrsitz/affordo/internal/domain"

// ScenarioChangedMsg signals that the base scenario was edited
type ScenarioChangedMsg struct {
	Inputs domain.ScenarioInputs
}

// CellSelectedMsg asks to open the scenario behind one grid cell
type CellSelectedMsg struct {
	Income float64
	Price  float64
}
