package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jjfhwang/QuantumMind/internal/output"
	"github.com/jjfhwang/QuantumMind/pkg/quantummind"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Construct a QuantumMind instance and run it",
		Long: `Construct a QuantumMind instance and run it once.

The run is bounded by QUANTUMMIND_TIMEOUT. The command exits non-zero
when the run does not succeed.

Examples:
  quantummind run
  quantummind run --output json
  QUANTUMMIND_TIMEOUT=5s quantummind run --log-level debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, logger, err := a.settings(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			mind := quantummind.New(
				quantummind.WithLogger(logger),
				// Placeholder precondition: settings were already validated above,
				// so this only records the config check in the run report.
				quantummind.WithCheck("config", func(ctx context.Context) error {
					_, err := a.cfg.Settings()
					return err
				}),
			)

			formatter := a.formatter(cmd)
			if s.DryRun {
				logger.Info("Dry run, skipping run", zap.String("instance_id", mind.ID()))
				return formatter.Print(&output.Result{
					Success: true,
					Message: fmt.Sprintf("Dry run: instance %s constructed, run skipped", mind.ID()),
				})
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), s.Timeout)
			defer cancel()

			report, runErr := mind.RunContext(ctx)
			if err := formatter.Print(output.FromReport(report, runErr)); err != nil {
				return err
			}
			if runErr != nil || !report.OK {
				if runErr == nil {
					runErr = errors.New("run did not succeed")
				}
				return ExitCodeError{Code: exitFailure, Err: runErr}
			}
			return nil
		},
	}
}
