package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/lib/pq"

	"github.com/clinical-risk-gateway/internal/domain"
)

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL audit store.
// It expects the schema to already exist (created via migrations).
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromURL opens databaseURL and creates a PostgreSQL audit store on it.
func NewPostgresStoreFromURL(databaseURL string, cfg domain.DatabaseConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen, maxIdle, lifetime := cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime
	if maxOpen <= 0 {
		maxOpen = 25
	}
	if maxIdle <= 0 {
		maxIdle = 5
	}
	if lifetime <= 0 {
		lifetime = 5 * time.Minute
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(lifetime)

	store, err := NewPostgresStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func scanPostgresRecord(s scanner) (*domain.PredictionRecord, error) {
	record := &domain.PredictionRecord{}
	var engines []string
	var prediction []byte

	if err := s.Scan(&record.ID, &record.RequestID, pq.Array(&engines), &prediction, &record.CreatedAt); err != nil {
		return nil, err
	}

	record.Engines = engineNames(engines)
	p, err := decodePrediction(prediction)
	if err != nil {
		return nil, err
	}
	record.Prediction = p
	return record, nil
}

// Save stores a prediction record, replacing any record with the same id.
func (s *PostgresStore) Save(ctx context.Context, record *domain.PredictionRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	data, err := json.Marshal(record.Prediction)
	if err != nil {
		return fmt.Errorf("failed to encode prediction: %w", err)
	}

	query := `
		INSERT INTO predictions (id, request_id, engines, prediction, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			request_id = EXCLUDED.request_id,
			engines = EXCLUDED.engines,
			prediction = EXCLUDED.prediction
	`

	_, err = s.db.ExecContext(ctx, query,
		record.ID,
		record.RequestID,
		pq.Array(engineStrings(record.Engines)),
		data,
		record.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}
	return nil
}

// Get retrieves a prediction record by id.
func (s *PostgresStore) Get(ctx context.Context, id string) (*domain.PredictionRecord, error) {
	query := `
		SELECT id, request_id, engines, prediction, created_at
		FROM predictions
		WHERE id = $1
	`

	record, err := scanPostgresRecord(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("prediction %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return record, nil
}

// List returns prediction records with pagination, newest first.
func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]*domain.PredictionRecord, error) {
	query := `
		SELECT id, request_id, engines, prediction, created_at
		FROM predictions
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	var result []*domain.PredictionRecord
	for rows.Next() {
		record, err := scanPostgresRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, record)
	}

	return result, rows.Err()
}

// Count returns the total number of recorded predictions.
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM predictions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count predictions: %w", err)
	}
	return count, nil
}

// ExportJSON exports every recorded prediction to writer.
func (s *PostgresStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	return exportJSON(ctx, s, writer)
}

// Close closes the store and releases resources.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
