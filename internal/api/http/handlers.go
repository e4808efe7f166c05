package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/GriffinCanCode/errprop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/errprop/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/errprop/internal/providers/uncertainty"
	"github.com/GriffinCanCode/errprop/internal/service"
	"github.com/GriffinCanCode/errprop/internal/types"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by the root and health endpoints.
const Version = "0.3.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	calc     *uncertainty.Calculator
	registry *service.Registry
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	calc *uncertainty.Calculator,
	registry *service.Registry,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		calc:     calc,
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Uncertainty Propagation Service",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	limits := h.calc.Limits()
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"version":          Version,
		"service_registry": h.registry.Stats(),
		"limits": gin.H{
			"max_formula_len": limits.MaxFormulaLen,
			"max_params":      limits.MaxParams,
		},
	})
}

// Calculate propagates uncertainty through a formula
func (h *Handlers) Calculate(c *gin.Context) {
	timer := monitoring.NewTimer(h.metrics, "http", "calculate")

	var req types.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.reject(c, timer, &uncertainty.InputShapeError{Field: "body", Expected: "a JSON object", Got: bindFailure(err)}, 0)
		return
	}

	in, err := decodeInput(req)
	if err != nil {
		h.reject(c, timer, err, 0)
		return
	}

	h.logger.Debug("Calculation request",
		zap.String("trace_id", string(tracing.GetTraceID(c.Request.Context()))),
		zap.String("span_id", string(tracing.GetSpanID(c.Request.Context()))),
		zap.String("formula", in.Formula))

	out, err := h.calc.Calculate(c.Request.Context(), in)
	if err != nil {
		h.reject(c, timer, err, paramCount(in.Params))
		return
	}

	h.metrics.RecordCalculation("http", "", len(out.Params), timer.Elapsed())
	h.metrics.RecordValueFormat(string(out.Format))
	h.logger.Debug("Calculation complete",
		zap.String("trace_id", string(tracing.GetTraceID(c.Request.Context()))),
		zap.String("result", out.Result),
		zap.String("format", string(out.Format)),
		zap.Duration("elapsed", timer.Elapsed()))

	c.JSON(http.StatusOK, out)
}

// reject writes the error response for a failed calculation
func (h *Handlers) reject(c *gin.Context, timer *monitoring.Timer, err error, params int) {
	kind := uncertainty.Kind(err)
	h.metrics.RecordCalculation("http", kind, params, timer.Elapsed())
	_ = c.Error(err)

	status := http.StatusBadRequest
	if !uncertainty.IsClientError(err) {
		status = http.StatusInternalServerError
		h.logger.Error("Calculation failed", zap.String("kind", kind), zap.Error(err))
	} else {
		h.logger.Warn("Calculation rejected", zap.String("kind", kind), zap.Error(err))
	}
	c.JSON(status, types.ErrorResponse{Error: err.Error(), Kind: kind})
}

// decodeInput unpacks the raw params and vals fields. An absent field
// decodes to nil; an explicit null params is not a list.
func decodeInput(req types.CalculateRequest) (uncertainty.Input, error) {
	in := uncertainty.Input{Formula: req.Formula}

	if len(req.Params) > 0 {
		if isNull(req.Params) {
			return in, &uncertainty.InputShapeError{Field: "params", Expected: "a list", Got: "null"}
		}
		if err := sonic.Unmarshal(req.Params, &in.Params); err != nil {
			return in, &uncertainty.InputShapeError{Field: "params", Expected: "a list", Got: "malformed JSON"}
		}
	}
	if len(req.Vals) > 0 && !isNull(req.Vals) {
		if err := sonic.Unmarshal(req.Vals, &in.Vals); err != nil {
			return in, &uncertainty.InputShapeError{Field: "vals", Expected: "a string or an object", Got: "malformed JSON"}
		}
		if s, ok := in.Vals.(string); ok {
			in.Vals = strings.TrimSpace(s)
		}
	}
	return in, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func paramCount(raw interface{}) int {
	if items, ok := raw.([]interface{}); ok {
		return len(items)
	}
	return 0
}

// bindFailure describes why the request body could not be bound
func bindFailure(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Value + " for " + typeErr.Field
	}
	return "malformed JSON"
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		if !cat.Valid() {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error: "unknown category: " + categoryStr,
				Kind:  uncertainty.KindInvalidInputShape,
			})
			return
		}
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverServices ranks services against a free-text query
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error(), Kind: uncertainty.KindInvalidInputShape})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.Discover(req.Query, limit),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error(), Kind: uncertainty.KindInvalidInputShape})
		return
	}

	timer := monitoring.NewTimer(h.metrics, "service_registry", req.ToolID)
	appCtx := &types.Context{ClientIP: stringPtr(c.ClientIP())}
	if traceID := tracing.GetTraceID(c.Request.Context()); traceID != "" {
		appCtx.RequestID = stringPtr(string(traceID))
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		timer.Stop("error")
		h.logger.Warn("Tool execution failed", zap.String("tool_id", req.ToolID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: err.Error(), Kind: uncertainty.KindInternal})
		return
	}

	if result.Success {
		timer.Stop("success")
	} else {
		timer.Stop("failure")
	}
	c.JSON(http.StatusOK, result)
}

// MetricsJSON returns a JSON summary of the collected metrics
func (h *Handlers) MetricsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

func stringPtr(s string) *string {
	return &s
}
