package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/affordo/internal/config"
	"github.com/rgehrsitz/affordo/internal/domain"
	"github.com/rgehrsitz/affordo/internal/output"
	"go.uber.org/zap"
)

// GridRequest is the body of POST /api/v1/grid. Both parts are partial and
// merged over the server defaults.
type GridRequest struct {
	Scenario domain.ScenarioInputs `json:"scenario"`
	Grid     domain.GridConfig     `json:"grid"`
}

// DefaultsResponse is the body of GET /api/v1/defaults
type DefaultsResponse struct {
	Scenario domain.ScenarioInputs `json:"scenario"`
	Grid     domain.GridConfig     `json:"grid"`
}

// StateRate is one entry of the state table
type StateRate struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}

// StatesResponse is the body of GET /api/v1/states
type StatesResponse struct {
	Year        int         `json:"year"`
	DefaultRate float64     `json:"default_rate"`
	States      []StateRate `json:"states"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Version: s.version})
}

func (s *Server) defaults(c *gin.Context) {
	c.JSON(http.StatusOK, DefaultsResponse{Scenario: s.defaultsCfg.Scenario, Grid: s.defaultsCfg.Grid})
}

func (s *Server) states(c *gin.Context) {
	rules := s.engine.TaxCalc.Rules()
	codes := rules.States()
	out := StatesResponse{
		Year:        rules.Year,
		DefaultRate: rules.StateDefaultRate,
		States:      make([]StateRate, 0, len(codes)),
	}
	for _, code := range codes {
		out.States = append(out.States, StateRate{Code: code, Rate: rules.StateRates[code]})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) scenario(c *gin.Context) {
	in := s.defaultsCfg.Scenario.Clone()
	if !s.bind(c, &in) {
		return
	}
	if err := s.parser.ValidateScenario(&in); err != nil {
		s.rejectInvalid(c, err)
		return
	}

	result := s.engine.ComputeScenario(in)
	GetLogger(c).Debug("scenario computed",
		zap.Float64("hhi_annual", in.HHIAnnual),
		zap.Float64("home_price", in.HomePrice),
		zap.Float64("surplus_monthly", result.SurplusMonthly))
	c.JSON(http.StatusOK, result)
}

func (s *Server) grid(c *gin.Context) {
	req := GridRequest{Scenario: s.defaultsCfg.Scenario.Clone(), Grid: s.defaultsCfg.Grid}
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

	grid := s.engine.ComputeGrid(req.Scenario, req.Grid)
	c.JSON(http.StatusOK, output.ClassifyGrid(&grid, req.Grid.SurplusThreshold))
}

// bind decodes a JSON body over the values already in dst. An empty body keeps them.
func (s *Server) bind(c *gin.Context, dst any) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(err)
		details := map[string]any{"cause": err.Error()}
		if errors.Is(err, domain.ErrInvalidFilingStatus) {
			abortWithError(c, http.StatusBadRequest, ErrCodeValidation, "Validation failed for one or more fields",
				map[string]any{"filing_status": err.Error()})
			return false
		}
		abortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, "Request body is not valid JSON for this endpoint", details)
		return false
	}
	return true
}

func (s *Server) rejectInvalid(c *gin.Context, err error) {
	_ = c.Error(err)
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		abortWithError(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	details := make(map[string]any, len(verr.Fields))
	for _, f := range verr.Fields {
		details[f.Field] = f.Message
	}
	abortWithError(c, http.StatusBadRequest, ErrCodeValidation, "Validation failed for one or more fields", details)
}

func (s *Server) notFound(c *gin.Context) {
	abortWithError(c, http.StatusNotFound, ErrCodeNotFound, "No route for "+c.Request.Method+" "+c.Request.URL.Path, nil)
}
