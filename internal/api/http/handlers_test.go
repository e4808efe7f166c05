package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GriffinCanCode/errprop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/errprop/internal/propagation"
	"github.com/GriffinCanCode/errprop/internal/providers/uncertainty"
	"github.com/GriffinCanCode/errprop/internal/service"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVals = `{"x": 1.2, "dx": 0.05, "y": 2.3, "dy": 0.01, "z": 0.5, "dz": 0.001}`

func setupRouter(t *testing.T) (*gin.Engine, *monitoring.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	calc := uncertainty.NewCalculator(propagation.Limits{MaxFormulaLen: 200, MaxParams: 8})
	registry := service.NewRegistry()
	require.NoError(t, registry.Register(uncertainty.NewProvider(calc)))
	metrics := monitoring.NewMetrics()
	h := NewHandlers(calc, registry, metrics, nil)

	router := gin.New()
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.POST("/calculate", h.Calculate)
	router.GET("/services", h.ListServices)
	router.POST("/services/discover", h.DiscoverServices)
	router.POST("/services/execute", h.ExecuteService)
	router.GET("/metrics/json", h.MetricsJSON)
	return router, metrics
}

func do(router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	_ = sonic.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func TestCalculate(t *testing.T) {
	router, metrics := setupRouter(t)

	body := `{"formula": " 3 * x ** 2 + 4 * y ** 3 + 1 / z ", "params": ["x", " y ", "", "z", 7],
		"vals": "x: 1.2, dx: 0.05, y: 2.3, dy: 0.01, z: 0.5, dz: 0.001"}`
	w, resp := do(router, "POST", "/calculate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "3 * x ** 2 + 4 * y ** 3 + 1 / z", resp["formula"])
	assert.Equal(t, []interface{}{"x", "y", "z"}, resp["params"])
	assert.Equal(t, "0.729785612354752", resp["result"])
	assert.Equal(t, "relaxed", resp["format"])
	assert.Equal(t, `3 x^{2} + 4 y^{3} + \frac{1}{z}`, resp["tex_originformula"])
	assert.Equal(t,
		`\sqrt{\left(6 x dx\right)^2 + \left(12 y^{2} dy\right)^2 + \left(- \frac{1}{z^{2}} dz\right)^2}`,
		resp["tex_formula"])
	assert.Equal(t, "sqrt((6*dx*x)**2 + (12*dy*y**2)**2 + (-dz/z**2)**2)", resp["error_expression"])
	assert.InDelta(t, 0.7297856123547517, resp["uncertainty"].(float64), 1e-12)
	assert.InDelta(t, 54.988, resp["value"].(float64), 1e-9)

	vals := resp["vals"].(map[string]interface{})
	assert.InDelta(t, 0.05, vals["dx"].(float64), 1e-15)
	assert.Len(t, resp["contributions"], 3)

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Calculations)
	assert.Equal(t, int64(0), snap.CalculationErrors)
}

func TestCalculateValueForms(t *testing.T) {
	router, _ := setupRouter(t)

	tests := []struct {
		name   string
		vals   string
		format string
	}{
		{"json text", `"{\"x\": 2, \"dx\": 0.1}"`, "json"},
		{"relaxed text", `"x: 2, dx: 0.1"`, "relaxed"},
		{"object", `{"x": 2, "dx": 0.1}`, "object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := do(router, "POST", "/calculate", `{"formula": "x**2", "params": ["x"], "vals": `+tt.vals+`}`)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.format, resp["format"])
			assert.Equal(t, "0.4", resp["result"])
		})
	}
}

func TestCalculateWithoutValues(t *testing.T) {
	router, _ := setupRouter(t)

	w, resp := do(router, "POST", "/calculate", `{"formula": "x*y", "params": ["x", "y"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "empty", resp["format"])
	assert.Contains(t, resp["result"], "dx")
	assert.Contains(t, resp["result"], "dy")
	assert.NotContains(t, resp, "uncertainty")
	assert.NotContains(t, resp, "value")
	assert.NotContains(t, resp, "contributions")
}

func TestCalculateErrors(t *testing.T) {
	router, metrics := setupRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{"params not a list", `{"formula": "x", "params": "x", "vals": ""}`, 400, "invalid_input_shape"},
		{"params object", `{"formula": "x", "params": {"x": 1}}`, 400, "invalid_input_shape"},
		{"params null", `{"formula": "x", "params": null}`, 400, "invalid_input_shape"},
		{"vals number", `{"formula": "x", "params": ["x"], "vals": 3}`, 400, "invalid_input_shape"},
		{"formula number", `{"formula": 3, "params": []}`, 400, "invalid_input_shape"},
		{"not json", `formula=x`, 400, "invalid_input_shape"},
		{"missing symbols", `{"formula": "x*y", "params": ["x"]}`, 400, "missing_symbols"},
		{"parse error", `{"formula": "3*x +", "params": ["x"]}`, 400, "parse_error"},
		{"invalid parameter", `{"formula": "x", "params": ["1x"]}`, 400, "invalid_parameter"},
		{"invalid pair", `{"formula": "x", "params": ["x"], "vals": "x: 1, y"}`, 400, "invalid_pair"},
		{"invalid key", `{"formula": "x", "params": ["x"], "vals": "1x: 1"}`, 400, "invalid_key"},
		{"empty value", `{"formula": "x", "params": ["x"], "vals": "x:"}`, 400, "empty_value"},
		{"invalid number", `{"formula": "x", "params": ["x"], "vals": "x: abc"}`, 400, "invalid_number"},
		{"infinite value", `{"formula": "x", "params": ["x"], "vals": "x: inf, dx: 0.1"}`, 400, "invalid_number"},
		{"nan value", `{"formula": "x", "params": ["x"], "vals": "x: nan, dx: 0.1"}`, 400, "invalid_number"},
		{"hex value", `{"formula": "x", "params": ["x"], "vals": "x: 0x1p-2, dx: 0.1"}`, 400, "invalid_number"},
		{"json values not numbers", `{"formula": "x", "params": ["x"], "vals": "{\"x\": \"1\"}"}`, 400, "invalid_input_shape"},
		{"formula too long", `{"formula": "` + strings.Repeat("x+", 120) + `x", "params": ["x"]}`, 400, "formula_too_long"},
		{"too many params", `{"formula": "x", "params": ["a","b","c","d","e","f","g","h","x"]}`, 400, "too_many_params"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := do(router, "POST", "/calculate", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.kind, resp["kind"])
			assert.NotEmpty(t, resp["error"])
		})
	}

	snap := metrics.Snapshot()
	assert.Equal(t, int64(len(tests)), snap.CalculationErrors)
}

func TestRootAndHealth(t *testing.T) {
	router, _ := setupRouter(t)

	w, resp := do(router, "GET", "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", resp["status"])
	assert.Equal(t, Version, resp["version"])

	w, resp = do(router, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", resp["status"])
	limits := resp["limits"].(map[string]interface{})
	assert.Equal(t, float64(200), limits["max_formula_len"])
	stats := resp["service_registry"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_services"])
}

func TestListServices(t *testing.T) {
	router, _ := setupRouter(t)

	w, resp := do(router, "GET", "/services", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["services"], 1)

	w, resp = do(router, "GET", "/services?category=math", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["services"])

	w, resp = do(router, "GET", "/services?category=astrology", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_input_shape", resp["kind"])
}

func TestDiscoverServices(t *testing.T) {
	router, _ := setupRouter(t)

	w, resp := do(router, "POST", "/services/discover", `{"query": "propagate measurement uncertainty"}`)
	require.Equal(t, http.StatusOK, w.Code)
	services := resp["services"].([]interface{})
	require.Len(t, services, 1)
	assert.Equal(t, "uncertainty", services[0].(map[string]interface{})["id"])

	w, _ = do(router, "POST", "/services/discover", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExecuteService(t *testing.T) {
	router, metrics := setupRouter(t)

	body := `{"tool_id": "uncertainty.propagate", "params": {"formula": "3 * x ** 2 + 4 * y ** 3 + 1 / z",
		"params": ["x", "y", "z"], "vals": ` + sampleVals + `}}`
	w, resp := do(router, "POST", "/services/execute", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "0.729785612354752", data["result"])
	assert.Equal(t, "object", data["format"])

	w, resp = do(router, "POST", "/services/execute", `{"tool_id": "uncertainty.propagate", "params": {"formula": "x*y", "params": ["x"]}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "missing_symbols", resp["kind"])

	w, _ = do(router, "POST", "/services/execute", `{"tool_id": "nowhere.tool", "params": {}}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w, _ = do(router, "POST", "/services/execute", `{"params": {}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.NotNil(t, metrics.Registry())
}

func TestMetricsJSON(t *testing.T) {
	router, _ := setupRouter(t)

	do(router, "POST", "/calculate", `{"formula": "x", "params": ["x"], "vals": "x: 1, dx: 0.5"}`)
	w, resp := do(router, "GET", "/metrics/json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["calculations"])
	assert.Contains(t, resp, "uptime_seconds")
}
