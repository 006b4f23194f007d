package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clinical-risk-gateway/internal/domain"
	"github.com/clinical-risk-gateway/internal/testpack"
)

// RowOutcome is written to the output, one JSON object per line, for every row.
type RowOutcome struct {
	RowID      string             `json:"rowId"`
	Line       int                `json:"line"`
	Prediction *domain.Prediction `json:"prediction,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Summary counts the rows of one test-pack run.
type Summary struct {
	Rows      int `json:"rows"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

func testpackCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testpack",
		Short: "Run reference test packs through the engines",
	}

	var (
		positional bool
		strict     bool
		audit      bool
		output     string
	)
	runCmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Score every row of a QRISK3 test pack, writing one JSON line per row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			out := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				out = file
			}

			components, err := flags.build(ctx, func(cfg *domain.Config) {
				if !audit {
					cfg.Audit.Backend = domain.AuditBackendNone
				}
			})
			if err != nil {
				return err
			}
			defer components.Close()

			var opts []testpack.ReaderOption
			if positional {
				opts = append(opts, testpack.Positional())
			}

			summary, err := runTestPack(ctx, components.Service, testpack.NewReader(f, opts...), out, components.Logger)
			if err != nil {
				return err
			}
			components.Logger.WithFields(logrus.Fields{
				"rows":      summary.Rows,
				"succeeded": summary.Succeeded,
				"failed":    summary.Failed,
			}).Info("Test pack finished")

			if strict && summary.Failed > 0 {
				return fmt.Errorf("%d of %d rows failed", summary.Failed, summary.Rows)
			}
			return nil
		},
	}
	runCmd.Flags().BoolVar(&positional, "positional", false, "File has no header; columns are in the fixed QRISK3 order")
	runCmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero if any row fails")
	runCmd.Flags().BoolVar(&audit, "audit", false, "Record each prediction in the configured audit trail")
	runCmd.Flags().StringVarP(&output, "output", "o", "", "Write results to this file instead of stdout")
	cmd.AddCommand(runCmd)

	return cmd
}

// runTestPack predicts every row read from reader. Rows that fail to parse or validate
// are reported in their outcome and do not stop the run.
func runTestPack(ctx context.Context, svc domain.PredictionService, reader *testpack.Reader, w io.Writer, logger *logrus.Logger) (Summary, error) {
	var summary Summary
	encoder := json.NewEncoder(w)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		if err != nil {
			return summary, err
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.Rows++
		outcome := RowOutcome{RowID: row.ID, Line: row.Line}

		err = row.Err
		if err == nil {
			outcome.Prediction, err = svc.Predict(ctx, row.Input)
		}
		if err != nil {
			summary.Failed++
			outcome.Error = err.Error()
			logger.WithError(err).WithFields(logrus.Fields{
				"row":  row.ID,
				"line": row.Line,
			}).Warn("Test pack row failed")
		} else {
			summary.Succeeded++
		}

		if err := encoder.Encode(outcome); err != nil {
			return summary, fmt.Errorf("failed to write row %s: %w", row.ID, err)
		}
	}
}
