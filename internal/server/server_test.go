package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/affordo/internal/config"
	"github.com/rgehrsitz/affordo/internal/domain"
	"github.com/rgehrsitz/affordo/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return New(opts)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Options{Version: "1.2.3"})
	w := do(t, s, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestScenario_DefaultsWhenBodyEmpty(t *testing.T) {
	s := newTestServer(t, Options{})
	w := do(t, s, http.MethodPost, "/api/v1/scenario", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result domain.ScenarioResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.InDelta(t, 10_040.15, result.SurplusMonthly, 0.5)
	assert.InDelta(t, 0.2187, result.FrontEndRatio, 0.0001)
}

func TestScenario_PartialBodyMergesOverDefaults(t *testing.T) {
	s := newTestServer(t, Options{})
	body := `{"state":"CA","state_effective_rate_override":0.06,"property_tax_rate_annual":0.012,"insurance_rate_annual":0.006}`
	w := do(t, s, http.MethodPost, "/api/v1/scenario", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result domain.ScenarioResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 500_000.0, result.Inputs.HHIAnnual)
	assert.InDelta(t, 27_120, result.Tax.StateTaxAnnual, 1)
	assert.InDelta(t, 7_430.15, result.SurplusMonthly, 0.5)
}

func TestScenario_Errors(t *testing.T) {
	s := newTestServer(t, Options{})

	t.Run("malformed json", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/v1/scenario", `{"hhi_annual":`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		e := decodeError(t, w)
		assert.Equal(t, ErrCodeBadRequest, e.Code)
		assert.Equal(t, w.Header().Get(RequestIDHeader), e.RequestID)
	})

	t.Run("unknown field", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/v1/scenario", `{"income":1}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrCodeBadRequest, decodeError(t, w).Code)
	})

	t.Run("invalid filing status", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/v1/scenario", `{"filing_status":"widowed"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		e := decodeError(t, w)
		assert.Equal(t, ErrCodeValidation, e.Code)
		assert.Contains(t, e.Details, "filing_status")
	})

	t.Run("field validation", func(t *testing.T) {
		w := do(t, s, http.MethodPost, "/api/v1/scenario", `{"term_years":0,"down_payment_pct":2}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		e := decodeError(t, w)
		assert.Equal(t, ErrCodeValidation, e.Code)
		assert.Contains(t, e.Details, "term_years")
		assert.Contains(t, e.Details, "down_payment_pct")
	})
}

func TestScenario_DoesNotMutateDefaults(t *testing.T) {
	defaults := config.DefaultConfiguration()
	defaults.Scenario.StateRateOverride = domain.Float64Ptr(0.03)
	s := newTestServer(t, Options{Defaults: defaults})

	w := do(t, s, http.MethodPost, "/api/v1/scenario", `{"state_effective_rate_override":0.09}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.03, *defaults.Scenario.StateRateOverride)
}

func TestGrid(t *testing.T) {
	s := newTestServer(t, Options{})
	body := `{"grid":{"income_min":300000,"income_max":400000,"income_step":50000,"surplus_threshold":2000}}`
	w := do(t, s, http.MethodPost, "/api/v1/grid", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var grid output.ClassifiedGrid
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))

	assert.Equal(t, []float64{300_000, 350_000, 400_000}, grid.Incomes)
	assert.Len(t, grid.Prices, 6)
	assert.Equal(t, 2_000.0, grid.SurplusThreshold)
	require.Len(t, grid.Cells, 3)
	assert.Equal(t, domain.StatusBelowBuffer, grid.Cells[0][0].Status)
	assert.Equal(t, domain.StatusUnaffordable, grid.Cells[0][1].Status)
	assert.Equal(t, domain.StatusComfortable, grid.Cells[2][0].Status)
}

func TestGrid_Validation(t *testing.T) {
	s := newTestServer(t, Options{})

	w := do(t, s, http.MethodPost, "/api/v1/grid", `{"grid":{"price_step":0}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Details, "price_step")

	w = do(t, s, http.MethodPost, "/api/v1/grid", `{"grid":{"income_min":0,"income_max":5000000,"income_step":10}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Details, "grid")

	w = do(t, s, http.MethodPost, "/api/v1/grid", `{"scenario":{"state":""}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Details, "state")
}

func TestDefaults(t *testing.T) {
	s := newTestServer(t, Options{})
	w := do(t, s, http.MethodGet, "/api/v1/defaults", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp DefaultsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.DefaultScenarioInputs(), resp.Scenario)
	assert.Equal(t, domain.DefaultGridConfig(), resp.Grid)
}

func TestStates(t *testing.T) {
	defaults := config.DefaultConfiguration()
	defaults.TaxRules.StateRates["UT"] = 0.0455
	s := newTestServer(t, Options{Defaults: defaults})

	w := do(t, s, http.MethodGet, "/api/v1/states", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp StatesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2026, resp.Year)
	assert.Equal(t, 0.05, resp.DefaultRate)
	assert.Len(t, resp.States, 21)
	assert.Contains(t, resp.States, StateRate{Code: "CA", Rate: 0.093})
	assert.Contains(t, resp.States, StateRate{Code: "UT", Rate: 0.0455})
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, Options{})
	w := do(t, s, http.MethodGet, "/api/v2/nothing", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrCodeNotFound, decodeError(t, w).Code)
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := newTestServer(t, Options{Logger: zap.New(core)})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scenario", bytes.NewBufferString(`{"term_years":0}`))
	req.Header.Set(RequestIDHeader, "req-42")
	s.Handler().ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("Request completed with client error").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, int64(http.StatusBadRequest), fields["status"])
	assert.Contains(t, fields["errors"], "term_years")
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(t, Options{CORSOrigins: []string{"http://localhost:3000"}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
