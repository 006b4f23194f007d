// Package config provides configuration management for the gateway.
// This file contains the lightweight configuration for the standalone MCP server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clinical-risk-gateway/internal/domain"
)

// LiteConfig is a simplified configuration for standalone operation.
// It requires no external services and is read from the environment only.
type LiteConfig struct {
	// Data storage
	DataDir string // Base directory for the audit database
	Audit   bool   // Record predictions in DataDir

	// Cache settings
	CacheMaxItems int           // Maximum items in memory cache
	CacheTTL      time.Duration // Memory cache TTL

	// Engine settings
	Engines       []string      // Enabled engines, empty for all
	FailurePolicy string        // omit or report
	EngineTimeout time.Duration // Per-invocation deadline

	// Logging
	LogLevel  string // Log level: debug, info, warn, error
	LogFormat string // Log format: json, text
}

// DefaultLiteConfig returns a configuration with sensible defaults.
func DefaultLiteConfig() *LiteConfig {
	homeDir, _ := os.UserHomeDir()

	return &LiteConfig{
		DataDir:       filepath.Join(homeDir, ".clinical-risk-gateway"),
		CacheMaxItems: 1000,
		CacheTTL:      15 * time.Minute,
		FailurePolicy: domain.FailurePolicyReport,
		EngineTimeout: 5 * time.Second,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

func env(name string) string {
	return os.Getenv(EnvPrefix + "_" + name)
}

// LoadLiteConfig loads configuration from RISK_GATEWAY_* environment variables.
// Falls back to defaults if not set.
func LoadLiteConfig() *LiteConfig {
	cfg := DefaultLiteConfig()

	if v := env("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := env("AUDIT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Audit = b
		}
	}

	if v := env("CACHE_MAX_ITEMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheMaxItems = n
		}
	}
	if v := env("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CacheTTL = d
		}
	}

	if v := env("ENGINES"); v != "" {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Engines = append(cfg.Engines, name)
			}
		}
	}
	if v := env("FAILURE_POLICY"); v != "" {
		cfg.FailurePolicy = v
	}
	if v := env("ENGINE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.EngineTimeout = d
		}
	}

	if v := env("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := env("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return cfg
}

// AuditDBPath returns the path to the audit SQLite database.
func (c *LiteConfig) AuditDBPath() string {
	return filepath.Join(c.DataDir, "audit.db")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *LiteConfig) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// ToConfig expands the lite settings into a full configuration. Logging goes to
// stderr because stdout carries the MCP stdio transport.
func (c *LiteConfig) ToConfig() *domain.Config {
	cfg := &domain.Config{
		Service: domain.ServiceConfig{Name: "clinical-risk-gateway", Version: "1.0.0"},
		Engines: domain.EnginesConfig{
			Enabled:       c.Engines,
			FailurePolicy: c.FailurePolicy,
			Timeout:       c.EngineTimeout,
		},
		Audit: domain.AuditConfig{Backend: domain.AuditBackendNone},
		Cache: domain.CacheConfig{
			Enabled:    true,
			MemorySize: c.CacheMaxItems,
			MemoryTTL:  c.CacheTTL,
		},
		Logging: domain.LoggingConfig{
			Level:  c.LogLevel,
			Format: c.LogFormat,
			Output: "stderr",
		},
		MCP: domain.MCPConfig{
			ServerName:    "clinical-risk-gateway",
			ServerVersion: "1.0.0",
		},
	}
	if c.Audit {
		cfg.Audit = domain.AuditConfig{Backend: domain.AuditBackendSQLite, SQLitePath: c.AuditDBPath()}
	}
	return cfg
}

// Validate checks the settings the standalone server reads from the environment.
func (c *LiteConfig) Validate() error {
	switch c.FailurePolicy {
	case domain.FailurePolicyOmit, domain.FailurePolicyReport:
	default:
		return fmt.Errorf("invalid engine failure policy: %q", c.FailurePolicy)
	}
	for _, name := range c.Engines {
		if _, err := domain.ParseEngineName(name); err != nil {
			return fmt.Errorf("%s_ENGINES: %w", EnvPrefix, err)
		}
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	if f := strings.ToLower(c.LogFormat); f != "json" && f != "text" {
		return fmt.Errorf("invalid log format: %s", c.LogFormat)
	}
	return nil
}
