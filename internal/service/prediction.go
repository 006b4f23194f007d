package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/clinical-risk-gateway/internal/cache"
	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
	"github.com/clinical-risk-gateway/internal/metrics"
)

// DefaultServiceVersion is reported in envelope metadata when none is configured.
const DefaultServiceVersion = "1.0.0"

type requestIDKey struct{}

// ContextWithRequestID attaches the caller's correlation id to ctx so that it is
// stored with the audit record of any prediction made under ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation id attached by ContextWithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// PredictionService runs canonical inputs through the installed engines and assembles
// the prediction envelope
type PredictionService struct {
	registry      *engine.Registry
	guard         *engine.Guard
	cache         domain.ResultCache
	repository    domain.PredictionRepository
	metrics       *metrics.Manager
	logger        *logrus.Logger
	now           func() time.Time
	newID         func() string
	version       string
	failurePolicy string
}

// Option configures a PredictionService.
type Option func(*PredictionService)

// WithGuard runs engines under guard instead of a default one.
func WithGuard(guard *engine.Guard) Option {
	return func(s *PredictionService) {
		s.guard = guard
	}
}

// WithCache memoizes engine results in c.
func WithCache(c domain.ResultCache) Option {
	return func(s *PredictionService) {
		s.cache = c
	}
}

// WithRepository records every prediction in repo.
func WithRepository(repo domain.PredictionRepository) Option {
	return func(s *PredictionService) {
		s.repository = repo
	}
}

// WithMetrics records engine outcomes in m.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *PredictionService) {
		s.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *PredictionService) {
		s.logger = logger
	}
}

// WithClock replaces time.Now for envelope timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *PredictionService) {
		s.now = now
	}
}

// WithIDGenerator replaces the generator of prediction ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *PredictionService) {
		s.newID = newID
	}
}

// WithServiceVersion sets the version reported in envelope metadata.
func WithServiceVersion(version string) Option {
	return func(s *PredictionService) {
		if version != "" {
			s.version = version
		}
	}
}

// WithFailurePolicy selects what happens to an engine that fails:
// domain.FailurePolicyOmit drops it from the envelope, domain.FailurePolicyReport
// (the default) emits a NO_CALCULATION record carrying the error.
func WithFailurePolicy(policy string) Option {
	return func(s *PredictionService) {
		if policy != "" {
			s.failurePolicy = policy
		}
	}
}

// NewPredictionService creates a prediction service over the engines in registry.
func NewPredictionService(registry *engine.Registry, opts ...Option) *PredictionService {
	s := &PredictionService{
		registry:      registry,
		logger:        logrus.StandardLogger(),
		now:           time.Now,
		newID:         uuid.NewString,
		version:       DefaultServiceVersion,
		failurePolicy: domain.FailurePolicyReport,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.guard == nil {
		s.guard = engine.NewGuard(domain.CircuitBreakerConfig{}, 0, s.logger)
	}
	return s
}

// Predict validates in, runs every requested engine and returns the envelope.
//
// Validation failures are returned as domain.ValidationErrors and a requested engine
// that is not installed as *domain.ConfigurationError; in both cases no engine runs.
// An engine that fails at run time never suppresses the results of the others.
func (s *PredictionService) Predict(ctx context.Context, in *domain.Input) (*domain.Prediction, error) {
	if in == nil {
		return nil, domain.ValidationErrors{domain.NewValidationError("input", "request body is required", nil)}
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	request := in.Clone()
	request.ApplyDefaults()

	adapters := make([]engine.Adapter, len(request.RequestedEngines))
	for i, name := range request.RequestedEngines {
		a, err := s.registry.Adapter(name)
		if err != nil {
			s.logger.WithField("engine", name).Error("Requested engine is not installed")
			return nil, err
		}
		adapters[i] = a
	}

	requestTime := s.now().UTC()

	type outcome struct {
		result *domain.EngineResult
		err    error
	}
	outcomes := make([]outcome, len(adapters))

	var wg sync.WaitGroup
	for i, a := range adapters {
		wg.Add(1)
		go func(i int, a engine.Adapter) {
			defer wg.Done()
			result, err := s.runEngine(ctx, a, request)
			outcomes[i] = outcome{result: result, err: err}
		}(i, a)
	}
	wg.Wait()

	prediction := &domain.Prediction{
		EngineResults: make([]domain.EngineResult, 0, len(outcomes)),
		Meta: domain.ServiceMeta{
			ServiceVersion:      s.version,
			RequestTimeStampUTC: requestTime,
			RequestID:           s.newID(),
		},
		EPInputModel: in.Clone(),
	}
	for _, o := range outcomes {
		if o.err != nil {
			return nil, o.err
		}
		if o.result != nil {
			prediction.EngineResults = append(prediction.EngineResults, *o.result)
		}
	}

	s.record(ctx, prediction)

	s.logger.WithFields(logrus.Fields{
		"prediction_id": prediction.Meta.RequestID,
		"engines":       len(adapters),
		"results":       len(prediction.EngineResults),
	}).Info("Prediction completed")

	return prediction, nil
}

// runEngine returns the normalized result of one engine. Engine failures are turned
// into a failure record or dropped according to the failure policy; only a missing
// registration is returned as an error.
func (s *PredictionService) runEngine(ctx context.Context, a engine.Adapter, in *domain.Input) (*domain.EngineResult, error) {
	desc := a.Descriptor()
	logger := s.logger.WithFields(logrus.Fields{
		"engine":         desc.Name,
		"engine_version": desc.Version,
	})

	key, keyErr := cache.Key(desc.Name, desc.Version, a.Project(in))
	if keyErr != nil {
		logger.WithError(keyErr).Warn("Failed to fingerprint engine input, bypassing cache")
	}
	if s.cache != nil && keyErr == nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.metrics.RecordPrediction(string(desc.Name), string(cached.CalculationMeta.EngineResultStatus))
			logger.Debug("Engine result served from cache")
			return cached, nil
		}
	}

	start := time.Now()
	result, err := s.guard.Execute(ctx, desc.Name, func() (*domain.EngineResult, error) {
		return a.Run(s.registry, in)
	})
	duration := time.Since(start)
	s.metrics.ObserveEngineLatency(string(desc.Name), duration)

	if err != nil {
		if errors.Is(err, domain.ErrEngineNotFound) {
			return nil, err
		}
		s.metrics.RecordEngineFailure(string(desc.Name))
		logger.WithError(err).WithField("duration", duration).Warn("Engine failed")

		if s.failurePolicy == domain.FailurePolicyOmit {
			return nil, nil
		}
		failed := engine.Failed(desc, a.Reconcile(in), err)
		s.metrics.RecordPrediction(string(desc.Name), string(failed.CalculationMeta.EngineResultStatus))
		return failed, nil
	}

	s.metrics.RecordPrediction(string(desc.Name), string(result.CalculationMeta.EngineResultStatus))
	logger.WithFields(logrus.Fields{
		"status":   result.CalculationMeta.EngineResultStatus,
		"reason":   result.CalculationMeta.EngineResultStatusReason,
		"duration": duration,
	}).Debug("Engine completed")

	if s.cache != nil && keyErr == nil {
		if err := s.cache.Set(ctx, key, result); err != nil {
			logger.WithError(err).Warn("Failed to cache engine result")
		}
	}
	return result, nil
}

func (s *PredictionService) record(ctx context.Context, prediction *domain.Prediction) {
	if s.repository == nil {
		return
	}

	engines := make([]domain.EngineName, 0, len(prediction.EngineResults))
	for _, r := range prediction.EngineResults {
		engines = append(engines, r.EngineName)
	}
	record := &domain.PredictionRecord{
		ID:         prediction.Meta.RequestID,
		RequestID:  RequestIDFromContext(ctx),
		Engines:    engines,
		Prediction: prediction,
		CreatedAt:  prediction.Meta.RequestTimeStampUTC,
	}

	// The audit trail is best effort; the caller still gets the prediction.
	if err := s.repository.Save(ctx, record); err != nil {
		s.logger.WithError(err).WithField("prediction_id", record.ID).Error("Failed to record prediction")
	}
}

// AvailableScores returns the catalog of installed engines.
func (s *PredictionService) AvailableScores() *domain.AvailableScores {
	return s.registry.AvailableScores()
}

// GetPrediction returns a recorded prediction by the id reported in its envelope.
func (s *PredictionService) GetPrediction(ctx context.Context, id string) (*domain.PredictionRecord, error) {
	if s.repository == nil {
		return nil, fmt.Errorf("prediction audit trail is disabled: %w", domain.ErrNotFound)
	}
	record, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// BreakerStates reports the circuit breaker state of every engine invoked so far.
func (s *PredictionService) BreakerStates() map[string]string {
	return s.guard.States()
}
