package api

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/middleware"
	"github.com/clinical-risk-gateway/internal/service"
)

const healthCheckTimeout = 2 * time.Second

// PostcodeRequest is the body of POST /api/v1/Postcode/normalize.
type PostcodeRequest struct {
	Postcode string `json:"postcode"`
}

// PostcodeResponse reports the canonical form of a postcode.
type PostcodeResponse struct {
	Postcode   string `json:"postcode"`
	Normalized string `json:"normalized"`
	Valid      bool   `json:"valid"`
}

// handleHealth reports the status of the service and its dependencies
func (s *Server) handleHealth(c *gin.Context) {
	status := http.StatusOK
	dependencies := make(map[string]string, len(s.checks))

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		err := s.checks[name].Health(ctx)
		cancel()
		if err != nil {
			dependencies[name] = "unhealthy: " + err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		dependencies[name] = "healthy"
	}

	body := gin.H{
		"status":       "healthy",
		"timestamp":    time.Now().UTC(),
		"version":      s.config.Service.Version,
		"engines":      len(s.service.AvailableScores().Scores),
		"dependencies": dependencies,
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if br, ok := s.service.(breakerReporter); ok {
		body["breakers"] = br.BreakerStates()
	}

	c.JSON(status, body)
}

// handleAvailableScores returns the engine catalog
func (s *Server) handleAvailableScores(c *gin.Context) {
	c.JSON(http.StatusOK, s.service.AvailableScores())
}

// handlePredict runs a prediction request
func (s *Server) handlePredict(c *gin.Context) {
	var in domain.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		s.writeError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Request body is not a valid prediction input", err)
		return
	}

	ctx := service.ContextWithRequestID(c.Request.Context(), c.GetString(middleware.CorrelationIDKey))
	prediction, err := s.service.Predict(ctx, &in)
	if err != nil {
		s.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, prediction)
}

// handleGetPrediction returns a recorded prediction
func (s *Server) handleGetPrediction(c *gin.Context) {
	record, err := s.service.GetPrediction(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// handleNormalizePostcode canonicalizes a UK postcode
func (s *Server) handleNormalizePostcode(c *gin.Context) {
	var req PostcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput, "Request body must be {\"postcode\": string}", err)
		return
	}

	normalized := domain.NormalizePostcode(req.Postcode)
	c.JSON(http.StatusOK, PostcodeResponse{
		Postcode:   req.Postcode,
		Normalized: normalized,
		Valid:      normalized != domain.PostcodeInvalid,
	})
}

// handleServiceError maps service errors onto HTTP responses
func (s *Server) handleServiceError(c *gin.Context, err error) {
	var verrs domain.ValidationErrors
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verrs), errors.As(err, &verr):
		s.writeError(c, http.StatusBadRequest, domain.ErrCodeValidation, "Prediction input failed validation", err)
	case errors.Is(err, domain.ErrEngineNotFound):
		s.writeError(c, http.StatusNotImplemented, domain.ErrCodeEngineNotFound, "Requested engine is not installed", err)
	case errors.Is(err, domain.ErrNotFound):
		s.writeError(c, http.StatusNotFound, domain.ErrCodeNotFound, "Prediction not found", err)
	case errors.Is(err, context.DeadlineExceeded):
		s.writeError(c, http.StatusGatewayTimeout, domain.ErrCodeTimeout, "Request timeout", err)
	default:
		s.logger.WithError(err).WithField(middleware.CorrelationIDKey, c.GetString(middleware.CorrelationIDKey)).
			Error("Prediction service failed")
		s.writeError(c, http.StatusInternalServerError, domain.ErrCodeInternalServer, "Internal server error", nil)
	}
}

func (s *Server) writeError(c *gin.Context, status int, code, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, domain.NewAPIError(code, message, details, c.GetString(middleware.CorrelationIDKey)))
}
