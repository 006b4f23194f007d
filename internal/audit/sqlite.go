package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/clinical-risk-gateway/internal/domain"
)

// SQLiteStore implements Store using an embedded SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite audit store.
// It creates the database file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// createSchema creates the predictions table and indexes.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS predictions (
		id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL DEFAULT '',
		engines TEXT NOT NULL DEFAULT '',
		prediction TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_predictions_request_id ON predictions(request_id);
	CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

func scanSQLiteRecord(s scanner) (*domain.PredictionRecord, error) {
	record := &domain.PredictionRecord{}
	var engines, prediction string

	if err := s.Scan(&record.ID, &record.RequestID, &engines, &prediction, &record.CreatedAt); err != nil {
		return nil, err
	}

	record.Engines = engineNames(strings.Split(engines, ","))
	p, err := decodePrediction([]byte(prediction))
	if err != nil {
		return nil, err
	}
	record.Prediction = p
	return record, nil
}

// Save stores a prediction record, replacing any record with the same id.
func (s *SQLiteStore) Save(ctx context.Context, record *domain.PredictionRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	data, err := json.Marshal(record.Prediction)
	if err != nil {
		return fmt.Errorf("failed to encode prediction: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO predictions (id, request_id, engines, prediction, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			request_id = excluded.request_id,
			engines = excluded.engines,
			prediction = excluded.prediction
	`,
		record.ID,
		record.RequestID,
		strings.Join(engineStrings(record.Engines), ","),
		string(data),
		record.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}
	return nil
}

// Get retrieves a prediction record by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.PredictionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, request_id, engines, prediction, created_at
		FROM predictions
		WHERE id = ?
	`, id)

	record, err := scanSQLiteRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("prediction %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return record, nil
}

// List returns prediction records with pagination, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*domain.PredictionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, request_id, engines, prediction, created_at
		FROM predictions
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var result []*domain.PredictionRecord
	for rows.Next() {
		record, err := scanSQLiteRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

// Count returns the total number of recorded predictions.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM predictions").Scan(&count)
	return count, err
}

// ExportJSON exports every recorded prediction to writer.
func (s *SQLiteStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	return exportJSON(ctx, s, writer)
}

// Close closes the store and releases resources.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
