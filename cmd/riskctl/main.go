// Command riskctl is the operator tool for the clinical risk gateway: it runs reference
// test packs through the engines, inspects the audit trail and manages migrations.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clinical-risk-gateway/internal/app"
	"github.com/clinical-risk-gateway/internal/config"
	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/logging"
)

type globalFlags struct {
	configDir string
	logLevel  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "riskctl",
		Short:         "Clinical risk gateway operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "Directory containing config.yaml")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(testpackCmd(flags))
	rootCmd.AddCommand(auditCmd(flags))
	rootCmd.AddCommand(migrateCmd(flags))
	rootCmd.AddCommand(enginesCmd(flags))
	rootCmd.AddCommand(postcodeCmd())

	return rootCmd
}

// load reads the configuration and builds a logger writing to stderr, so that
// command output on stdout stays machine readable.
func (f *globalFlags) load() (*config.Manager, *logrus.Logger, error) {
	var paths []string
	if f.configDir != "" {
		paths = append(paths, f.configDir)
	}
	manager, err := config.NewManager(paths...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg := manager.GetConfig()
	cfg.Logging.Output = "stderr"
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return manager, logger, nil
}

// build wires the prediction service; mutate adjusts the configuration first.
func (f *globalFlags) build(ctx context.Context, mutate func(*domain.Config)) (*app.App, error) {
	manager, logger, err := f.load()
	if err != nil {
		return nil, err
	}
	cfg := manager.GetConfig()
	if mutate != nil {
		mutate(cfg)
	}
	return app.New(ctx, cfg, logger, app.WithDatabaseURL(manager.GetDatabaseURL()), app.WithoutMigrations())
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
