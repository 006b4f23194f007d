// Package api serves the prediction service over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/metrics"
	"github.com/clinical-risk-gateway/internal/middleware"
)

// HealthChecker is a dependency probed by the health endpoint.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// breakerReporter is implemented by services that expose engine circuit breakers.
type breakerReporter interface {
	BreakerStates() map[string]string
}

// Server represents the HTTP server
type Server struct {
	config  *domain.Config
	service domain.PredictionService
	logger  *logrus.Logger
	metrics *metrics.Manager
	checks  map[string]HealthChecker
	router  *gin.Engine
	server  *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request logs.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records request metrics in m and exposes them on the metrics path.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithHealthCheck adds a dependency to the health report.
func WithHealthCheck(name string, checker HealthChecker) Option {
	return func(s *Server) {
		s.checks[name] = checker
	}
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *domain.Config, service domain.PredictionService, opts ...Option) (*Server, error) {
	s := &Server{
		config:  cfg,
		service: service,
		logger:  logrus.StandardLogger(),
		checks:  make(map[string]HealthChecker),
	}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.AuditLogger(s.logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	if s.metrics != nil {
		router.Use(middleware.Metrics(s.metrics))
	}
	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limiter: %w", err)
		}
		router.Use(limiter.Middleware())
	}
	router.Use(middleware.RequestTimeout(cfg.Server.RequestTimeout))

	s.router = router
	s.setupRoutes()

	return s, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.CorrelationIDHeader},
		ExposeHeaders: []string{middleware.CorrelationIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.config.Server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	if s.metrics != nil && s.config.Metrics.Enabled {
		path := s.config.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		s.router.GET(path, gin.WrapH(s.metrics.Handler()))
	}

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/AvailableScores", s.handleAvailableScores)
		v1.POST("/Prediction", s.handlePredict)
		v1.GET("/Prediction/:id", s.handleGetPrediction)
		v1.POST("/Postcode/normalize", s.handleNormalizePostcode)
	}
}
