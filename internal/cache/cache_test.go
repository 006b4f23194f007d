package cache

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/clinical-risk-gateway/internal/domain"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func sampleResult() *domain.EngineResult {
	return &domain.EngineResult{
		EngineName:    domain.EngineQRisk3,
		EngineVersion: "locked",
		Results: []domain.PredictionResult{
			{ID: "http://endhealth.info/im#Qrisk3", Score: 4.2, PredictionYears: 10},
		},
		Quality: []domain.DataQuality{{Parameter: "BMI", Quality: domain.QualityOK}},
		CalculationMeta: domain.CalculationMeta{
			EngineResultStatus:       domain.CALCULATED_USING_PATIENTS_OWN_DATA,
			EngineResultStatusReason: domain.VALID,
		},
		EngineInputModel: &domain.Input{RequestedEngines: []domain.EngineName{domain.EngineQRisk3}, Age: 45},
	}
}

func TestKey(t *testing.T) {
	type projection struct {
		Age int      `json:"age"`
		BMI *float64 `json:"BMI"`
	}

	k1, err := Key(domain.EngineQRisk3, "1.0", projection{Age: 45, BMI: domain.Float(23.4)})
	require.NoError(t, err)
	k2, err := Key(domain.EngineQRisk3, "1.0", projection{Age: 45, BMI: domain.Float(23.4)})
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 64)

	other, err := Key(domain.EngineQRisk3, "1.0", projection{Age: 46, BMI: domain.Float(23.4)})
	require.NoError(t, err)
	assert.NotEqual(t, k1, other)

	newVersion, err := Key(domain.EngineQRisk3, "2.0", projection{Age: 45, BMI: domain.Float(23.4)})
	require.NoError(t, err)
	assert.NotEqual(t, k1, newVersion)

	otherEngine, err := Key(domain.EngineQDiabetes, "1.0", projection{Age: 45, BMI: domain.Float(23.4)})
	require.NoError(t, err)
	assert.NotEqual(t, k1, otherEngine)

	_, err = Key(domain.EngineX05, "1.0", make(chan int))
	assert.Error(t, err)
}

func TestMemoryTier(t *testing.T) {
	var hits []string
	c, err := New(domain.CacheConfig{MemorySize: 2, MemoryTTL: time.Minute}, quietLogger(),
		WithHitObserver(func(tier string) { hits = append(hits, tier) }))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "a", sampleResult()))
	got, ok := c.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, sampleResult(), got)

	require.NoError(t, c.Set(ctx, "b", sampleResult()))
	require.NoError(t, c.Set(ctx, "c", sampleResult()))
	assert.Equal(t, 2, c.Len(), "least recently used entry is evicted")

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.MemoryHits)
	assert.Equal(t, int64(1), stats.MemoryMisses)
	assert.Equal(t, []string{TierMemory}, hits)
	assert.NoError(t, c.Health(ctx))
}

func TestMemoryTierExpires(t *testing.T) {
	c, err := New(domain.CacheConfig{MemorySize: 10, MemoryTTL: 20 * time.Millisecond}, quietLogger())
	require.NoError(t, err)

	require.NoError(t, c.Set(context.Background(), "k", sampleResult()))
	time.Sleep(60 * time.Millisecond)

	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
}

func TestUnreachableRedisDegradesToMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c, err := New(domain.CacheConfig{}, quietLogger(), WithRedisClient(client))
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
	assert.Equal(t, int64(1), c.Stats().ErrorCount)

	assert.Error(t, c.Set(context.Background(), "k", sampleResult()))
	// The memory tier still serves the entry.
	_, ok = c.Get(context.Background(), "k")
	assert.True(t, ok)
	assert.Error(t, c.Health(context.Background()))
}

func TestNewRejectsBadRedisURL(t *testing.T) {
	_, err := New(domain.CacheConfig{RedisURL: "not-a-url"}, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Redis URL")
}

func TestRedisTier(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Redis integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	cfg := domain.CacheConfig{RedisURL: "redis://" + endpoint, DefaultTTL: time.Minute, PoolSize: 5}
	writer, err := New(cfg, quietLogger())
	require.NoError(t, err)
	defer writer.Close()

	var hits []string
	reader, err := New(cfg, quietLogger(), WithHitObserver(func(tier string) { hits = append(hits, tier) }))
	require.NoError(t, err)
	defer reader.Close()

	require.NoError(t, writer.Set(ctx, "shared", sampleResult()))

	got, ok := reader.Get(ctx, "shared")
	require.True(t, ok)
	assert.Equal(t, sampleResult(), got)

	// Second read is served from the reader's memory tier.
	_, ok = reader.Get(ctx, "shared")
	require.True(t, ok)
	assert.Equal(t, []string{TierRedis, TierMemory}, hits)

	_, ok = reader.Get(ctx, "absent")
	assert.False(t, ok)
	assert.Equal(t, int64(1), reader.Stats().RedisMisses)
}
