// Package app assembles the prediction service and its dependencies from configuration.
// The HTTP server, the MCP server and the command-line tools all start from here.
package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/clinical-risk-gateway/internal/audit"
	"github.com/clinical-risk-gateway/internal/cache"
	"github.com/clinical-risk-gateway/internal/database"
	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/engine"
	"github.com/clinical-risk-gateway/internal/engine/builtin"
	"github.com/clinical-risk-gateway/internal/metrics"
	"github.com/clinical-risk-gateway/internal/service"
)

// Checker is a dependency that can report its health.
type Checker interface {
	Health(ctx context.Context) error
}

// App holds the wired components. Optional components are nil when disabled.
type App struct {
	Config   *domain.Config
	Logger   *logrus.Logger
	Metrics  *metrics.Manager
	Registry *engine.Registry
	Guard    *engine.Guard
	Cache    *cache.ResultCache
	Audit    audit.Store
	DB       *database.DB
	Service  *service.PredictionService

	checks map[string]Checker
}

// Option configures New.
type Option func(*options)

type options struct {
	licensed    []engine.Adapter
	databaseURL string
	skipMigrate bool
}

// WithLicensedAdapters installs calculator adapters in place of the locked ones.
func WithLicensedAdapters(adapters ...engine.Adapter) Option {
	return func(o *options) {
		o.licensed = append(o.licensed, adapters...)
	}
}

// WithDatabaseURL sets the URL used for migrations and the postgres audit store.
func WithDatabaseURL(url string) Option {
	return func(o *options) {
		o.databaseURL = url
	}
}

// WithoutMigrations skips applying migrations before opening the postgres audit store.
func WithoutMigrations() Option {
	return func(o *options) {
		o.skipMigrate = true
	}
}

// New builds every component enabled in cfg. On error, anything already opened is closed.
func New(ctx context.Context, cfg *domain.Config, logger *logrus.Logger, opts ...Option) (_ *App, err error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	a := &App{
		Config: cfg,
		Logger: logger,
		checks: make(map[string]Checker),
	}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.NewManager(metrics.WithNamespace(cfg.Metrics.Namespace))
	}

	a.Registry, err = builtin.NewRegistry(cfg.Engines, o.licensed...)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine registry: %w", err)
	}
	a.Guard = engine.NewGuard(cfg.Engines.Breaker, cfg.Engines.Timeout, logger)

	svcOpts := []service.Option{
		service.WithGuard(a.Guard),
		service.WithLogger(logger),
		service.WithMetrics(a.Metrics),
		service.WithServiceVersion(cfg.Service.Version),
		service.WithFailurePolicy(cfg.Engines.FailurePolicy),
	}

	if cfg.Cache.Enabled {
		a.Cache, err = cache.New(cfg.Cache, logger, cache.WithHitObserver(a.Metrics.RecordCacheHit))
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		svcOpts = append(svcOpts, service.WithCache(a.Cache))
		if cfg.Cache.RedisURL != "" {
			a.checks["redis"] = a.Cache
		}
	}

	if cfg.Audit.Backend == domain.AuditBackendPostgres {
		if err = a.openDatabase(ctx, o); err != nil {
			return nil, err
		}
	}

	a.Audit, err = audit.Open(cfg.Audit, cfg.Database, o.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit store: %w", err)
	}
	if a.Audit != nil {
		svcOpts = append(svcOpts, service.WithRepository(a.Audit))
		a.checks["audit"] = auditCheck{a.Audit}
	}

	a.Service = service.NewPredictionService(a.Registry, svcOpts...)

	logger.WithFields(logrus.Fields{
		"engines":        a.Registry.Len(),
		"failure_policy": cfg.Engines.FailurePolicy,
		"cache":          cfg.Cache.Enabled,
		"audit":          cfg.Audit.Backend,
	}).Info("Prediction service initialized")

	return a, nil
}

func (a *App) openDatabase(ctx context.Context, o *options) error {
	if o.databaseURL == "" {
		return fmt.Errorf("audit backend %q needs a database URL", domain.AuditBackendPostgres)
	}

	if !o.skipMigrate {
		if err := database.Migrate(ctx, o.databaseURL, a.Config.Database.MigrationsPath, a.Logger); err != nil {
			return fmt.Errorf("failed to migrate audit database: %w", err)
		}
	}

	db, err := database.NewConnection(ctx, a.Config.Database, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.DB = db
	a.checks["database"] = db
	return nil
}

// Checks returns the health checks of the enabled dependencies, keyed by name.
func (a *App) Checks() map[string]Checker {
	out := make(map[string]Checker, len(a.checks))
	for k, v := range a.checks {
		out[k] = v
	}
	return out
}

// Close releases every opened component.
func (a *App) Close() error {
	var firstErr error
	if a.Audit != nil {
		if err := a.Audit.Close(); err != nil {
			a.Logger.WithError(err).Error("Failed to close audit store")
			firstErr = err
		}
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Logger.WithError(err).Error("Failed to close result cache")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
	return firstErr
}

type auditCheck struct {
	store audit.Store
}

func (c auditCheck) Health(ctx context.Context) error {
	_, err := c.store.Count(ctx)
	return err
}
