package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/affordo/internal/breakeven"
	"github.com/rgehrsitz/affordo/internal/calculation"
	"github.com/rgehrsitz/affordo/internal/compare"
	"github.com/rgehrsitz/affordo/internal/domain"
	"github.com/rgehrsitz/affordo/internal/transform"
	"go.uber.org/zap"
)

// maxAlternatives caps one comparison request
const maxAlternatives = 50

// CompareRequest is the body of POST /api/v1/compare
type CompareRequest struct {
	Scenario         domain.ScenarioInputs `json:"scenario"`
	Alternatives     []string              `json:"alternatives"`
	SurplusThreshold float64               `json:"surplus_threshold"`
}

// SolveRequest is the body of POST /api/v1/solve. An empty target runs both
// searches and returns a summary.
type SolveRequest struct {
	Scenario        domain.ScenarioInputs `json:"scenario"`
	Target          string                `json:"target"`
	RequiredSurplus float64               `json:"required_surplus"`
	Lower           float64               `json:"lower"`
	Upper           float64               `json:"upper"`
}

// FrontierRequest is the body of POST /api/v1/frontier. The grid's income
// axis selects the incomes to solve at.
type FrontierRequest struct {
	Scenario        domain.ScenarioInputs `json:"scenario"`
	Grid            domain.GridConfig     `json:"grid"`
	RequiredSurplus float64               `json:"required_surplus"`
}

// TemplateInfo describes one built-in what-if template
type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TemplatesResponse is the body of GET /api/v1/templates
type TemplatesResponse struct {
	Templates  []TemplateInfo `json:"templates"`
	Transforms []string       `json:"transforms"`
}

func (s *Server) templates(c *gin.Context) {
	registry := transform.CreateBuiltInTemplates()
	names := registry.List()
	resp := TemplatesResponse{
		Templates:  make([]TemplateInfo, 0, len(names)),
		Transforms: transform.NewTransformRegistry().List(),
	}
	for _, name := range names {
		t, _ := registry.Get(name)
		resp.Templates = append(resp.Templates, TemplateInfo{Name: name, Description: t.Description})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) compare(c *gin.Context) {
	req := CompareRequest{
		Scenario:         s.defaultsCfg.Scenario.Clone(),
		SurplusThreshold: s.defaultsCfg.Grid.SurplusThreshold,
	}
	if !s.bind(c, &req) {
		return
	}
	if err := s.parser.ValidateScenario(&req.Scenario); err != nil {
		s.rejectInvalid(c, err)
		return
	}
	if len(req.Alternatives) == 0 {
		abortWithError(c, http.StatusBadRequest, ErrCodeValidation, "Validation failed for one or more fields",
			map[string]any{"alternatives": "at least one template or transform is required"})
		return
	}
	if len(req.Alternatives) > maxAlternatives {
		abortWithError(c, http.StatusBadRequest, ErrCodeValidation, "Validation failed for one or more fields",
			map[string]any{"alternatives": "too many alternatives"})
		return
	}

	engine := compare.NewCompareEngine(s.engine, req.SurplusThreshold)
	set, err := engine.Compare(c.Request.Context(), req.Scenario, compare.CompareOptions{Alternatives: req.Alternatives})
	if err != nil {
		_ = c.Error(err)
		abortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	GetLogger(c).Debug("comparison computed", zap.Int("alternatives", len(set.AlternativeResults)))
	c.JSON(http.StatusOK, set)
}

func (s *Server) solve(c *gin.Context) {
	req := SolveRequest{Scenario: s.defaultsCfg.Scenario.Clone()}
	if !s.bind(c, &req) {
		return
	}
	if err := s.parser.ValidateScenario(&req.Scenario); err != nil {
		s.rejectInvalid(c, err)
		return
	}

	solver := s.newSolver(c)
	if req.Target == "" {
		summary, err := solver.Summarize(c.Request.Context(), req.Scenario, req.RequiredSurplus)
		if err != nil {
			s.solveFailed(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
		return
	}

	target, err := breakeven.ParseTarget(req.Target)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, ErrCodeValidation, "Validation failed for one or more fields",
			map[string]any{"target": err.Error()})
		return
	}
	result, err := solver.Optimize(c.Request.Context(), breakeven.OptimizationRequest{
		Base:            req.Scenario,
		Target:          target,
		RequiredSurplus: req.RequiredSurplus,
		Lower:           req.Lower,
		Upper:           req.Upper,
	})
	if err != nil {
		s.solveFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) frontier(c *gin.Context) {
	req := FrontierRequest{Scenario: s.defaultsCfg.Scenario.Clone(), Grid: s.defaultsCfg.Grid}
	if !s.bind(c, &req) {
		return
	}
	if err := s.parser.ValidateScenario(&req.Scenario); err != nil {
		s.rejectInvalid(c, err)
		return
	}
	if err := s.parser.ValidateGrid(&req.Grid); err != nil {
		s.rejectInvalid(c, err)
		return
	}

	incomes := calculation.Range(req.Grid.IncomeMin, req.Grid.IncomeMax, req.Grid.IncomeStep)
	points, err := s.newSolver(c).Frontier(c.Request.Context(), req.Scenario, incomes, req.RequiredSurplus)
	if err != nil {
		s.solveFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

func (s *Server) newSolver(c *gin.Context) *breakeven.Solver {
	solver := breakeven.NewDefaultSolver(s.engine)
	solver.SetLogger(GetLogger(c).Sugar())
	return solver
}

func (s *Server) solveFailed(c *gin.Context, err error) {
	_ = c.Error(err)
	var be *breakeven.BreakEvenError
	if errors.As(err, &be) && be.Cause == nil {
		abortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	abortWithError(c, http.StatusInternalServerError, ErrCodeInternal, "Solver did not complete", nil)
}
