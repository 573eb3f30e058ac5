// Package breakeven searches for the home price or household income at which
// a scenario's monthly surplus just meets a required buffer.
package breakeven

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/affordo/internal/domain"
)

// OptimizationTarget defines which input the solver moves
type OptimizationTarget string

const (
	// TargetMaxPrice finds the highest home price the household can carry
	TargetMaxPrice OptimizationTarget = "max_price"
	// TargetMinIncome finds the lowest household income that carries the home
	TargetMinIncome OptimizationTarget = "min_income"
)

// ParseTarget accepts the target names with dashes or underscores
func ParseTarget(s string) (OptimizationTarget, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case string(TargetMaxPrice), "price":
		return TargetMaxPrice, nil
	case string(TargetMinIncome), "income":
		return TargetMinIncome, nil
	default:
		return "", &BreakEvenError{
			Operation: "parse_target",
			Message:   fmt.Sprintf("unsupported target %q (use max_price or min_income)", s),
		}
	}
}

// Default search bounds when a request leaves them unset
const (
	DefaultMaxPrice  = 20_000_000.0
	DefaultMaxIncome = 10_000_000.0
)

// OptimizationRequest defines the parameters for one solver run
type OptimizationRequest struct {
	Base   domain.ScenarioInputs `json:"scenario"`
	Target OptimizationTarget    `json:"target"`

	// RequiredSurplus is the monthly surplus the answer must leave (0 = break even)
	RequiredSurplus float64 `json:"required_surplus"`

	// Search bounds; Upper 0 selects the target's default
	Lower float64 `json:"lower,omitempty"`
	Upper float64 `json:"upper,omitempty"`

	MaxIterations int     `json:"max_iterations,omitempty"`
	Tolerance     float64 `json:"tolerance,omitempty"` // dollars
}

// Validate checks that the request is internally consistent
func (r *OptimizationRequest) Validate() error {
	if r.Target != TargetMaxPrice && r.Target != TargetMinIncome {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("unsupported optimization target: %s", r.Target),
		}
	}
	if r.Lower < 0 {
		return &BreakEvenError{Operation: "validate_request", Message: "lower bound cannot be negative"}
	}
	if r.Upper != 0 && r.Upper <= r.Lower {
		return &BreakEvenError{Operation: "validate_request", Message: "upper bound must exceed lower bound"}
	}
	if r.Tolerance < 0 {
		return &BreakEvenError{Operation: "validate_request", Message: "tolerance cannot be negative"}
	}
	return nil
}

// OptimizationResult contains the outcome of one solver run
type OptimizationResult struct {
	Target          OptimizationTarget `json:"target"`
	RequiredSurplus float64            `json:"required_surplus"`
	Lower           float64            `json:"lower"`
	Upper           float64            `json:"upper"`

	// Feasible is false when no value inside the bounds meets the requirement
	Feasible bool `json:"feasible"`
	// Bounded is true when the requirement still holds at the far bound
	Bounded         bool   `json:"bounded"`
	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergence_info"`

	// Value is the price or income found, in whole dollars
	Value    float64               `json:"value"`
	Scenario domain.ScenarioResult `json:"scenario"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     float64 // Convergence tolerance in dollars
	MaxIterations int     // Maximum bisection steps
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     100,
		MaxIterations: 100,
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
