package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clinical-risk-gateway/internal/domain"
)

func enginesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List the engines enabled by the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := flags.build(cmd.Context(), func(cfg *domain.Config) {
				withoutCache(cfg)
				cfg.Audit.Backend = domain.AuditBackendNone
			})
			if err != nil {
				return err
			}
			defer components.Close()
			return writeJSON(cmd.OutOrStdout(), components.Service.AvailableScores())
		},
	}
}

func postcodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "postcode POSTCODE...",
		Short: "Print the canonical form of UK postcodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, p := range args {
				fmt.Fprintf(out, "%s\t%s\n", p, domain.NormalizePostcode(p))
			}
			return nil
		},
	}
}
