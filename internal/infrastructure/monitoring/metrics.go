package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Calculation metrics
	Calculations        *prometheus.CounterVec
	CalculationDuration *prometheus.HistogramVec
	CalculationErrors   *prometheus.CounterVec
	ValueFormats        *prometheus.CounterVec
	FormulaParams       prometheus.Histogram

	// Service metrics
	ServiceCalls    *prometheus.CounterVec
	ServiceDuration *prometheus.HistogramVec

	registry  *prometheus.Registry
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot
	mu       sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	Calculations      int64   `json:"calculations"`
	CalculationErrors int64   `json:"calculation_errors"`
	AvgRequestSeconds float64 `json:"avg_request_seconds"`
	UptimeSeconds     float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a metrics collector on its own registry, so several
// collectors can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "errprop_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "errprop_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "errprop_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "errprop_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Calculation metrics
		Calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "errprop_calculations_total",
				Help: "Total number of propagation calculations",
			},
			[]string{"source", "outcome"},
		),
		CalculationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "errprop_calculation_duration_seconds",
				Help:    "Time spent deriving and evaluating error expressions",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"source"},
		),
		CalculationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "errprop_calculation_errors_total",
				Help: "Rejected calculations by error kind",
			},
			[]string{"source", "kind"},
		),
		ValueFormats: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "errprop_value_formats_total",
				Help: "Value payloads by the format they were read in",
			},
			[]string{"format"},
		),
		FormulaParams: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "errprop_formula_params",
				Help:    "Number of parameters per calculation",
				Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 16, 32},
			},
		),

		// Service metrics
		ServiceCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "errprop_service_calls_total",
				Help: "Total number of service tool calls",
			},
			[]string{"service", "method", "status"},
		),
		ServiceDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "errprop_service_duration_seconds",
				Help:    "Service tool call duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"service", "method"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "errprop_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Handler serves the Prometheus exposition of this collector's registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordCalculation records one calculation. An empty kind marks success.
func (m *Metrics) RecordCalculation(source, kind string, params int, duration time.Duration) {
	outcome := "success"
	if kind != "" {
		outcome = "error"
		m.CalculationErrors.WithLabelValues(source, kind).Inc()
	}
	m.Calculations.WithLabelValues(source, outcome).Inc()
	m.CalculationDuration.WithLabelValues(source).Observe(duration.Seconds())
	m.FormulaParams.Observe(float64(params))

	m.mu.Lock()
	m.snapshot.Calculations++
	if kind != "" {
		m.snapshot.CalculationErrors++
	}
	m.mu.Unlock()
}

// RecordValueFormat counts how a value payload was read
func (m *Metrics) RecordValueFormat(format string) {
	m.ValueFormats.WithLabelValues(format).Inc()
}

// RecordServiceCall records a service tool call
func (m *Metrics) RecordServiceCall(service, method, status string, duration time.Duration) {
	m.ServiceCalls.WithLabelValues(service, method, status).Inc()
	m.ServiceDuration.WithLabelValues(service, method).Observe(duration.Seconds())
}

// Snapshot returns the current counters for the JSON API
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	snap := m.snapshot
	m.mu.RUnlock()

	if snap.TotalRequests > 0 {
		snap.AvgRequestSeconds = snap.totalDuration / float64(snap.TotalRequests)
	}
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
