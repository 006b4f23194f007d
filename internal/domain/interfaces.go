package domain

import (
	"context"
)

// PredictionService runs canonical inputs through the installed engines
type PredictionService interface {
	Predict(ctx context.Context, in *Input) (*Prediction, error)
	AvailableScores() *AvailableScores
	GetPrediction(ctx context.Context, id string) (*PredictionRecord, error)
}

// PredictionRepository defines the interface for prediction audit persistence
type PredictionRepository interface {
	Save(ctx context.Context, record *PredictionRecord) error
	Get(ctx context.Context, id string) (*PredictionRecord, error)
	List(ctx context.Context, limit, offset int) ([]*PredictionRecord, error)
	Count(ctx context.Context) (int64, error)
	Close() error
}

// ResultCache memoizes normalized engine results by projection fingerprint
type ResultCache interface {
	Get(ctx context.Context, key string) (*EngineResult, bool)
	Set(ctx context.Context, key string, result *EngineResult) error
}

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetEnginesConfig() *EnginesConfig
	GetDatabaseConfig() *DatabaseConfig
	GetCacheConfig() *CacheConfig
	Reload() error
	Validate() error
	GetDatabaseConnectionString() string
	GetDatabaseURL() string
	IsProduction() bool
}
