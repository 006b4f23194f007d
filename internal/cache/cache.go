// Package cache memoizes normalized engine results. Calculators are deterministic for a
// given engine version and projected input, so a result can be reused across requests
// that project to the same engine input.
//
// Two tiers are used: an in-process expiring LRU for hot entries and, when configured,
// Redis shared between gateway instances.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/clinical-risk-gateway/internal/domain"
)

// Cache tiers, as reported to hit observers.
const (
	TierMemory = "memory"
	TierRedis  = "redis"
)

const keyPrefix = "riskgw:result:"

// Stats represents cache performance counters.
type Stats struct {
	MemoryHits   int64 `json:"memory_hits"`
	MemoryMisses int64 `json:"memory_misses"`
	RedisHits    int64 `json:"redis_hits"`
	RedisMisses  int64 `json:"redis_misses"`
	ErrorCount   int64 `json:"error_count"`
}

// CachedResult is the Redis representation of a cached engine result.
type CachedResult struct {
	Result    *domain.EngineResult `json:"result"`
	CachedAt  time.Time            `json:"cached_at"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// ResultCache is a two-tier engine result cache. It is safe for concurrent use.
type ResultCache struct {
	memory   *expirable.LRU[string, *domain.EngineResult]
	redis    *redis.Client
	redisTTL time.Duration
	logger   *logrus.Logger
	onHit    func(tier string)

	statsMu sync.Mutex
	stats   Stats
}

// Option configures a ResultCache.
type Option func(*ResultCache)

// WithRedisClient uses client as the shared tier instead of dialing cfg.RedisURL.
func WithRedisClient(client *redis.Client) Option {
	return func(c *ResultCache) {
		c.redis = client
	}
}

// WithHitObserver registers fn to be called with the tier of every cache hit.
func WithHitObserver(fn func(tier string)) Option {
	return func(c *ResultCache) {
		c.onHit = fn
	}
}

// New creates a result cache. The Redis tier is enabled when cfg.RedisURL is set or a
// client is supplied with WithRedisClient.
func New(cfg domain.CacheConfig, logger *logrus.Logger, opts ...Option) (*ResultCache, error) {
	if cfg.MemorySize <= 0 {
		cfg.MemorySize = 1000
	}
	if cfg.MemoryTTL <= 0 {
		cfg.MemoryTTL = 15 * time.Minute
	}
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	c := &ResultCache{
		memory:   expirable.NewLRU[string, *domain.EngineResult](cfg.MemorySize, nil, cfg.MemoryTTL),
		redisTTL: cfg.DefaultTTL,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.redis == nil && cfg.RedisURL != "" {
		client, err := dialRedis(cfg)
		if err != nil {
			return nil, err
		}
		c.redis = client
	}

	return c, nil
}

func dialRedis(cfg domain.CacheConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.PoolTimeout > 0 {
		opts.PoolTimeout = cfg.PoolTimeout
	}
	if cfg.MaxRetries > 0 {
		opts.MaxRetries = cfg.MaxRetries
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Key fingerprints an engine invocation: the engine, its version and its projected input.
func Key(name domain.EngineName, version string, projection any) (string, error) {
	data, err := json.Marshal(projection)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint %s input: %w", name, err)
	}
	h := sha256.New()
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(version))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get returns the cached result for key. Redis failures are logged and treated as misses.
func (c *ResultCache) Get(ctx context.Context, key string) (*domain.EngineResult, bool) {
	if result, ok := c.memory.Get(key); ok {
		c.hit(TierMemory)
		return result, true
	}
	c.count(func(s *Stats) { s.MemoryMisses++ })

	if c.redis == nil {
		return nil, false
	}

	result, err := c.getFromRedis(ctx, key)
	if err != nil {
		c.count(func(s *Stats) { s.ErrorCount++ })
		c.logger.WithError(err).WithField("cache_key", key).Warn("Redis cache lookup failed")
		return nil, false
	}
	if result == nil {
		c.count(func(s *Stats) { s.RedisMisses++ })
		return nil, false
	}

	c.hit(TierRedis)
	c.memory.Add(key, result)
	return result, true
}

func (c *ResultCache) getFromRedis(ctx context.Context, key string) (*domain.EngineResult, error) {
	val, err := c.redis.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached result: %w", err)
	}

	var cached CachedResult
	if err := json.Unmarshal([]byte(val), &cached); err != nil || cached.Result == nil {
		c.redis.Del(ctx, keyPrefix+key)
		return nil, nil
	}
	if time.Now().After(cached.ExpiresAt) {
		c.redis.Del(ctx, keyPrefix+key)
		return nil, nil
	}
	return cached.Result, nil
}

// Set stores result under key in every tier.
func (c *ResultCache) Set(ctx context.Context, key string, result *domain.EngineResult) error {
	c.memory.Add(key, result)

	if c.redis == nil {
		return nil
	}

	now := time.Now()
	data, err := json.Marshal(CachedResult{
		Result:    result,
		CachedAt:  now,
		ExpiresAt: now.Add(c.redisTTL),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cached result: %w", err)
	}
	if err := c.redis.Set(ctx, keyPrefix+key, data, c.redisTTL).Err(); err != nil {
		c.count(func(s *Stats) { s.ErrorCount++ })
		return fmt.Errorf("failed to store cached result: %w", err)
	}
	return nil
}

// Len returns the number of entries in the memory tier.
func (c *ResultCache) Len() int {
	return c.memory.Len()
}

// Stats returns a snapshot of the cache counters.
func (c *ResultCache) Stats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// Health pings the Redis tier, if any.
func (c *ResultCache) Health(ctx context.Context) error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Ping(ctx).Err()
}

// Close releases the Redis connection pool.
func (c *ResultCache) Close() error {
	c.memory.Purge()
	if c.redis == nil {
		return nil
	}
	return c.redis.Close()
}

func (c *ResultCache) hit(tier string) {
	c.count(func(s *Stats) {
		if tier == TierMemory {
			s.MemoryHits++
		} else {
			s.RedisHits++
		}
	})
	if c.onHit != nil {
		c.onHit(tier)
	}
}

func (c *ResultCache) count(fn func(*Stats)) {
	c.statsMu.Lock()
	fn(&c.stats)
	c.statsMu.Unlock()
}
