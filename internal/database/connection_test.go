package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/clinical-risk-gateway/internal/domain"
)

func TestDSN(t *testing.T) {
	cfg := domain.DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		Database: "risk",
		Username: "gw",
		Password: "secret",
	}
	assert.Equal(t, "host=db.internal port=5433 dbname=risk user=gw password=secret sslmode=disable", DSN(cfg))

	cfg.SSLMode = "require"
	assert.Contains(t, DSN(cfg), "sslmode=require")
}

func TestNewMigrationRunner_BadURL(t *testing.T) {
	_, err := NewMigrationRunner("notadb://x", "../../migrations", logrus.New())
	assert.Error(t, err)
}

func TestDatabaseConnectionAndMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping PostgreSQL integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate PostgreSQL container: %v", err)
		}
	}()

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := domain.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		Database:        "testdb",
		Username:        "testuser",
		Password:        "testpass",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	db, err := NewConnection(ctx, cfg, logger)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Health(ctx))
	assert.Positive(t, db.Stats()["total"])

	url := fmt.Sprintf("postgres://testuser:testpass@%s:%d/testdb?sslmode=disable", host, port.Int())
	require.NoError(t, Migrate(ctx, url, "../../migrations", logger))
	// Applying again is a no-op.
	require.NoError(t, Migrate(ctx, url, "../../migrations", logger))

	var table string
	err = db.Pool.QueryRow(ctx, "SELECT to_regclass('public.predictions')::text").Scan(&table)
	require.NoError(t, err)
	assert.Equal(t, "predictions", table)

	runner, err := NewMigrationRunner(url, "../../migrations", logger)
	require.NoError(t, err)
	defer runner.Close()

	version, dirty, err := runner.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	require.NoError(t, runner.Down(ctx))
	var dropped *string
	err = db.Pool.QueryRow(ctx, "SELECT to_regclass('public.predictions')::text").Scan(&dropped)
	require.NoError(t, err)
	assert.Nil(t, dropped)
}
