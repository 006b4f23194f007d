// Command mcp-server serves the risk engines to MCP clients over stdio. It needs no
// external services and is configured from RISK_GATEWAY_* environment variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clinical-risk-gateway/internal/app"
	"github.com/clinical-risk-gateway/internal/config"
	"github.com/clinical-risk-gateway/internal/logging"
	"github.com/clinical-risk-gateway/internal/mcp"
	"github.com/clinical-risk-gateway/internal/setup"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "mcp-server",
		Short:         "Clinical risk gateway MCP server (stdio)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
	rootCmd.AddCommand(setupCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runServer() error {
	lite := config.LoadLiteConfig()
	if err := lite.Validate(); err != nil {
		return err
	}
	if lite.Audit {
		if err := lite.EnsureDataDir(); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	cfg := lite.ToConfig()
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	components, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer components.Close()

	server := mcp.NewServer(cfg.MCP, components.Service, logger)
	if err := server.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	logger.Info("MCP server stopped")
	return nil
}

func setupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Register this server with desktop MCP clients",
	}

	var opts setup.Options
	desktopCmd := &cobra.Command{
		Use:   "claude-desktop",
		Short: "Add or update the server entry in the Claude Desktop config",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := setup.Register(opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s in %s\nRestart Claude Desktop to load it.\n", setup.ServerKey, path)
			return nil
		},
	}
	desktopCmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Client config file (platform default when empty)")
	desktopCmd.Flags().StringVar(&opts.BinaryPath, "binary", "", "Path to the mcp-server binary")
	desktopCmd.Flags().StringVar(&opts.DataDir, "data-dir", "", "Data directory for the audit trail")
	desktopCmd.Flags().BoolVar(&opts.Audit, "audit", false, "Record predictions in the data directory")
	cmd.AddCommand(desktopCmd)

	var statusPath string
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the server is registered",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := setup.GetStatus(statusPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config:     %s\n", status.ConfigPath)
			fmt.Fprintf(out, "Registered: %t\n", status.Registered)
			if status.Registered {
				fmt.Fprintf(out, "Command:    %s\n", status.Entry.Command)
			}
			for _, issue := range status.Issues {
				fmt.Fprintf(out, "  - %s\n", issue)
			}
			return nil
		},
	}
	statusCmd.Flags().StringVar(&statusPath, "config", "", "Client config file (platform default when empty)")
	cmd.AddCommand(statusCmd)

	return cmd
}
