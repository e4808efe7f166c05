package server

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/errprop/internal/api/http"
	"github.com/GriffinCanCode/errprop/internal/api/middleware"
	"github.com/GriffinCanCode/errprop/internal/infrastructure/config"
	"github.com/GriffinCanCode/errprop/internal/infrastructure/logging"
	"github.com/GriffinCanCode/errprop/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/errprop/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/errprop/internal/providers/uncertainty"
	"github.com/GriffinCanCode/errprop/internal/service"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *stdhttp.Server
	registry *service.Registry
	calc     *uncertainty.Calculator
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	return NewServerWithLogger(cfg, logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development))
}

// NewServerWithLogger creates a server that logs through logger
func NewServerWithLogger(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Initializing uncertainty server",
		zap.String("addr", cfg.Server.Addr()),
		zap.Int("max_formula_len", cfg.Engine.MaxFormulaLen),
		zap.Int("max_params", cfg.Engine.MaxParams),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()
	tracer := tracing.New("errprop", logger.Logger)

	calc := uncertainty.NewCalculator(cfg.Engine.Limits())
	serviceRegistry := service.NewRegistry()
	if err := serviceRegistry.Register(uncertainty.NewProvider(calc)); err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to register uncertainty provider: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.CORSConfigForOrigins(cfg.CORS.Origins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := http.NewHandlers(calc, serviceRegistry, metrics, logger.Logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	router.POST("/calculate", handlers.Calculate)

	// Service management
	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)

	// Metrics endpoints
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", handlers.MetricsJSON)

	logger.Info("Server initialized successfully")

	return &Server{
		router: router,
		http: &stdhttp.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		registry: serviceRegistry,
		calc:     calc,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		tracer:   tracer,
	}, nil
}

// Handler exposes the router for in-process use
func (s *Server) Handler() stdhttp.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("Graceful shutdown failed", zap.Error(err))
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// Close flushes the tracer and the logger
func (s *Server) Close() error {
	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()
	return nil
}
