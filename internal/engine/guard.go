package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/clinical-risk-gateway/internal/domain"
)

// ErrEnginePanic marks an engine invocation that panicked.
var ErrEnginePanic = errors.New("engine panicked")

// Guard isolates engine invocations. Each engine gets its own circuit breaker; panics
// are recovered into errors and every call is bounded by a timeout.
type Guard struct {
	settings domain.CircuitBreakerConfig
	timeout  time.Duration
	logger   *logrus.Logger

	mu       sync.Mutex
	breakers map[domain.EngineName]*gobreaker.CircuitBreaker
}

// NewGuard creates a guard. Zero breaker settings fall back to 5 half-open requests,
// a 30s counting interval, a 60s open period, and tripping at 60% failures over at
// least 3 requests. A zero timeout disables the per-call deadline.
func NewGuard(cfg domain.CircuitBreakerConfig, timeout time.Duration, logger *logrus.Logger) *Guard {
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 5
	}
	if cfg.Interval == 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MinRequests == 0 {
		cfg.MinRequests = 3
	}
	if cfg.FailureRatio == 0 {
		cfg.FailureRatio = 0.6
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Guard{
		settings: cfg,
		timeout:  timeout,
		logger:   logger,
		breakers: make(map[domain.EngineName]*gobreaker.CircuitBreaker),
	}
}

// Execute runs fn for the named engine under its breaker and the guard's timeout.
// When the breaker is open the call fails fast with gobreaker.ErrOpenState.
func (g *Guard) Execute(ctx context.Context, name domain.EngineName, fn func() (*domain.EngineResult, error)) (*domain.EngineResult, error) {
	out, err := g.breaker(name).Execute(func() (interface{}, error) {
		return g.call(ctx, name, fn)
	})
	if err != nil {
		return nil, err
	}
	return out.(*domain.EngineResult), nil
}

// States reports the breaker state of every engine that has been invoked.
func (g *Guard) States() map[string]string {
	g.mu.Lock()
	defer g.mu.Unlock()

	states := make(map[string]string, len(g.breakers))
	for name, cb := range g.breakers {
		states[string(name)] = cb.State().String()
	}
	return states
}

func (g *Guard) breaker(name domain.EngineName) *gobreaker.CircuitBreaker {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cb, ok := g.breakers[name]; ok {
		return cb
	}

	cfg := g.settings
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        string(name),
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			g.logger.WithFields(logrus.Fields{
				"engine": name,
				"from":   from.String(),
				"to":     to.String(),
			}).Warn("Engine circuit breaker changed state")
		},
		IsSuccessful: func(err error) bool {
			// A missing registration is a deployment fault, not an engine fault.
			return err == nil || errors.Is(err, domain.ErrEngineNotFound)
		},
	})
	g.breakers[name] = cb
	return cb
}

type callOutcome struct {
	result *domain.EngineResult
	err    error
}

func (g *Guard) call(ctx context.Context, name domain.EngineName, fn func() (*domain.EngineResult, error)) (*domain.EngineResult, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	done := make(chan callOutcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- callOutcome{err: fmt.Errorf("%w: %s: %v", ErrEnginePanic, name, p)}
			}
		}()
		result, err := fn()
		done <- callOutcome{result: result, err: err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-ctx.Done():
		return nil, fmt.Errorf("engine %s: %w", name, ctx.Err())
	}
}
