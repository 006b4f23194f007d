package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/clinical-risk-gateway/internal/api"
	"github.com/clinical-risk-gateway/internal/app"
	"github.com/clinical-risk-gateway/internal/config"
	"github.com/clinical-risk-gateway/internal/logging"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	if configManager.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	components, err := app.New(ctx, cfg, logger, app.WithDatabaseURL(configManager.GetDatabaseURL()))
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize prediction service")
	}
	defer components.Close()

	opts := []api.Option{api.WithLogger(logger), api.WithMetrics(components.Metrics)}
	for name, check := range components.Checks() {
		opts = append(opts, api.WithHealthCheck(name, check))
	}

	server, err := api.NewServer(cfg, components.Service, opts...)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create HTTP server")
	}

	logger.WithField("port", cfg.Server.Port).Info("Starting clinical risk gateway")
	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Error("Server failed")
		return
	}

	logger.Info("Server stopped")
}
