package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clinical-risk-gateway/internal/database"
)

func migrateCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL audit schema",
	}

	var dir string
	open := func() (*database.MigrationRunner, error) {
		manager, logger, err := flags.load()
		if err != nil {
			return nil, err
		}
		path := dir
		if path == "" {
			path = manager.GetDatabaseConfig().MigrationsPath
		}
		return database.NewMigrationRunner(manager.GetDatabaseURL(), path, logger)
	}

	cmd.PersistentFlags().StringVar(&dir, "dir", "", "Migrations directory (database.migrations_path when empty)")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := open()
			if err != nil {
				return err
			}
			defer runner.Close()
			return runner.Up(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := open()
			if err != nil {
				return err
			}
			defer runner.Close()
			return runner.Down(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := open()
			if err != nil {
				return err
			}
			defer runner.Close()

			version, dirty, err := runner.Version()
			if err != nil {
				return fmt.Errorf("failed to read migration version: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	})

	return cmd
}
