package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/clinical-risk-gateway/internal/domain"
)

var errAuditDisabled = errors.New("audit trail is disabled; set audit.backend to sqlite or postgres")

func auditCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect recorded predictions",
	}

	var output string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export every recorded prediction as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := flags.build(cmd.Context(), withoutCache)
			if err != nil {
				return err
			}
			defer components.Close()
			if components.Audit == nil {
				return errAuditDisabled
			}

			out := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				out = file
			}
			return components.Audit.ExportJSON(cmd.Context(), out)
		},
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "Write the export to this file instead of stdout")
	cmd.AddCommand(exportCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "show ID",
		Short: "Print one recorded prediction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := flags.build(cmd.Context(), withoutCache)
			if err != nil {
				return err
			}
			defer components.Close()
			if components.Audit == nil {
				return errAuditDisabled
			}

			record, err := components.Service.GetPrediction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), record)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "count",
		Short: "Print the number of recorded predictions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := flags.build(cmd.Context(), withoutCache)
			if err != nil {
				return err
			}
			defer components.Close()
			if components.Audit == nil {
				return errAuditDisabled
			}

			n, err := components.Audit.Count(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]int64{"count": n})
		},
	})

	return cmd
}

// withoutCache disables the result cache for commands that never predict.
func withoutCache(cfg *domain.Config) {
	cfg.Cache.Enabled = false
}
