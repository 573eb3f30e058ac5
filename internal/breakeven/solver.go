package breakeven

import (
	"context"
	"fmt"
	"math"

	"github.com/rgehrsitz/affordo/internal/calculation"
	"github.com/rgehrsitz/affordo/internal/domain"
)

// Solver bisects on one scenario input. Surplus falls as price rises and
// rises with income, so each target is a monotone search.
type Solver struct {
	Engine  *calculation.Engine
	Options SolverOptions
	logger  calculation.Logger
}

// NewSolver creates a new break-even solver
func NewSolver(engine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		Engine:  engine,
		Options: options,
		logger:  calculation.NopLogger{},
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.Engine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// SetLogger sets the logger for solver progress
func (s *Solver) SetLogger(l calculation.Logger) {
	if l == nil {
		s.logger = calculation.NopLogger{}
		return
	}
	s.logger = l
}

// Optimize runs the search described by req
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance == 0 {
		req.Tolerance = s.Options.Tolerance
	}
	if req.Upper == 0 {
		req.Upper = DefaultMaxPrice
		if req.Target == TargetMinIncome {
			req.Upper = DefaultMaxIncome
		}
	}

	switch req.Target {
	case TargetMaxPrice:
		return s.search(ctx, req, func(v float64) domain.ScenarioResult {
			return s.Engine.ScenarioAt(req.Base, req.Base.HHIAnnual, v)
		}, true)
	default:
		return s.search(ctx, req, func(v float64) domain.ScenarioResult {
			return s.Engine.ScenarioAt(req.Base, v, req.Base.HomePrice)
		}, false)
	}
}

// search bisects between the bounds. feasibleLow says which end meets the
// requirement: the low end for price, the high end for income.
func (s *Solver) search(ctx context.Context, req OptimizationRequest, at func(float64) domain.ScenarioResult, feasibleLow bool) (*OptimizationResult, error) {
	ok := func(r domain.ScenarioResult) bool { return r.SurplusMonthly >= req.RequiredSurplus }

	result := &OptimizationResult{
		Target:          req.Target,
		RequiredSurplus: req.RequiredSurplus,
		Lower:           req.Lower,
		Upper:           req.Upper,
	}

	good, bad := req.Lower, req.Upper
	if !feasibleLow {
		good, bad = req.Upper, req.Lower
	}

	goodResult := at(good)
	if !ok(goodResult) {
		result.Value = good
		result.Scenario = goodResult
		result.ConvergenceInfo = fmt.Sprintf("Requirement not met anywhere in [%.0f, %.0f]", req.Lower, req.Upper)
		s.logger.Infof("%s infeasible: surplus/mo=%.2f at %.0f", req.Target, goodResult.SurplusMonthly, good)
		return result, nil
	}
	result.Feasible = true

	if badResult := at(bad); ok(badResult) {
		result.Bounded = true
		result.Value = bad
		result.Scenario = badResult
		result.ConvergenceInfo = "Requirement met across the whole search range"
		return result, nil
	}

	for math.Abs(bad-good) > req.Tolerance {
		if result.Iterations >= req.MaxIterations {
			result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
			break
		}
		select {
		case <-ctx.Done():
			return nil, &BreakEvenError{Operation: string(req.Target), Message: "search cancelled", Cause: ctx.Err()}
		default:
		}

		result.Iterations++
		mid := (good + bad) / 2
		r := at(mid)
		if ok(r) {
			good, goodResult = mid, r
		} else {
			bad = mid
		}
		s.logger.Debugf("%s step %d: good=%.0f bad=%.0f surplus/mo=%.2f", req.Target, result.Iterations, good, bad, r.SurplusMonthly)
	}
	if result.ConvergenceInfo == "" {
		result.ConvergenceInfo = fmt.Sprintf("Converged within $%.0f after %d steps", req.Tolerance, result.Iterations)
	}

	// round toward the feasible side so the reported value still qualifies
	value := math.Floor(good)
	if !feasibleLow {
		value = math.Ceil(good)
	}
	result.Value = value
	result.Scenario = at(value)
	if !ok(result.Scenario) {
		result.Value = good
		result.Scenario = goodResult
	}
	return result, nil
}
