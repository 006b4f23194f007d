// Package audit records served predictions so that any envelope can be retrieved later
// by the id reported in its metadata.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/clinical-risk-gateway/internal/domain"
)

// Store is a prediction audit trail.
type Store interface {
	domain.PredictionRepository

	// ExportJSON writes every recorded prediction to writer, newest first.
	ExportJSON(ctx context.Context, writer io.Writer) error
}

// Export represents the JSON export format.
type Export struct {
	Version     string                     `json:"version"`
	ExportedAt  time.Time                  `json:"exported_at"`
	Count       int                        `json:"count"`
	Predictions []*domain.PredictionRecord `json:"predictions"`
}

const exportPageSize = 500

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func validateRecord(record *domain.PredictionRecord) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("prediction record id is required")
	}
	if record.Prediction == nil {
		return fmt.Errorf("prediction record %s has no prediction", record.ID)
	}
	return nil
}

func engineNames(names []string) []domain.EngineName {
	out := make([]domain.EngineName, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, domain.EngineName(n))
		}
	}
	return out
}

func engineStrings(names []domain.EngineName) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}

func decodePrediction(data []byte) (*domain.Prediction, error) {
	var p domain.Prediction
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode stored prediction: %w", err)
	}
	return &p, nil
}

// exportJSON pages through repo and writes an Export document.
func exportJSON(ctx context.Context, repo domain.PredictionRepository, writer io.Writer) error {
	var all []*domain.PredictionRecord
	for offset := 0; ; offset += exportPageSize {
		page, err := repo.List(ctx, exportPageSize, offset)
		if err != nil {
			return fmt.Errorf("failed to list predictions: %w", err)
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			break
		}
	}
	if all == nil {
		all = []*domain.PredictionRecord{}
	}

	export := &Export{
		Version:     "1.0",
		ExportedAt:  time.Now().UTC(),
		Count:       len(all),
		Predictions: all,
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}

// Open returns the store selected by cfg.Backend, or nil when auditing is disabled.
// databaseURL is used by the postgres backend.
func Open(cfg domain.AuditConfig, db domain.DatabaseConfig, databaseURL string) (Store, error) {
	switch cfg.Backend {
	case "", domain.AuditBackendNone:
		return nil, nil
	case domain.AuditBackendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = "data/audit.db"
		}
		store, err := NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case domain.AuditBackendPostgres:
		store, err := NewPostgresStoreFromURL(databaseURL, db)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown audit backend %q", cfg.Backend)
	}
}
