package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinical-risk-gateway/internal/domain"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return logger
}

func liteConfig(t *testing.T) *domain.Config {
	t.Helper()
	return &domain.Config{
		Service: domain.ServiceConfig{Name: "clinical-risk-gateway", Version: "3.0.0"},
		Engines: domain.EnginesConfig{FailurePolicy: domain.FailurePolicyReport},
		Audit: domain.AuditConfig{
			Backend:    domain.AuditBackendSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "audit.db"),
		},
		Cache:   domain.CacheConfig{Enabled: true, MemorySize: 10},
		Metrics: domain.MetricsConfig{Enabled: true},
	}
}

func TestNewWiresAuditTrail(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, liteConfig(t), quietLogger())
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.Audit)
	require.NotNil(t, a.Cache)
	require.NotNil(t, a.Metrics)
	assert.Nil(t, a.DB)
	assert.Equal(t, 4, a.Registry.Len())

	prediction, err := a.Service.Predict(ctx, &domain.Input{
		RequestedEngines: []domain.EngineName{domain.EngineQRisk3},
		Sex:              domain.GenderMale,
		Age:              60,
	})
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", prediction.Meta.ServiceVersion)

	record, err := a.Service.GetPrediction(ctx, prediction.Meta.RequestID)
	require.NoError(t, err)
	assert.Equal(t, []domain.EngineName{domain.EngineQRisk3}, record.Engines)

	checks := a.Checks()
	require.Contains(t, checks, "audit")
	assert.NoError(t, checks["audit"].Health(ctx))
	assert.NotContains(t, checks, "redis")
}

func TestNewWithoutOptionalComponents(t *testing.T) {
	cfg := &domain.Config{Engines: domain.EnginesConfig{Enabled: []string{"X05"}}}

	a, err := New(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Audit)
	assert.Nil(t, a.Cache)
	assert.Nil(t, a.Metrics)
	assert.Empty(t, a.Checks())
	assert.Equal(t, 1, a.Registry.Len())

	_, err = a.Service.GetPrediction(context.Background(), "anything")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Config)
		opts   []Option
		want   string
	}{
		{
			name:   "unknown engine",
			mutate: func(c *domain.Config) { c.Engines.Enabled = []string{"QStroke"} },
			want:   "engine registry",
		},
		{
			name:   "unknown audit backend",
			mutate: func(c *domain.Config) { c.Audit.Backend = "mongo" },
			want:   "unknown audit backend",
		},
		{
			name:   "postgres without url",
			mutate: func(c *domain.Config) { c.Audit.Backend = domain.AuditBackendPostgres },
			want:   "needs a database URL",
		},
		{
			name:   "bad redis url",
			mutate: func(c *domain.Config) { c.Cache.RedisURL = "not-a-url" },
			want:   "result cache",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := liteConfig(t)
			tt.mutate(cfg)
			a, err := New(context.Background(), cfg, quietLogger(), tt.opts...)
			assert.Nil(t, a)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
