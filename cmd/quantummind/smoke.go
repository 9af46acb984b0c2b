package main

import (
	"errors"
	"fmt"

	"github.com/jjfhwang/QuantumMind/internal/output"
	"github.com/jjfhwang/QuantumMind/pkg/quantummind"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// smokeCase is a named basic-operability check against a fresh instance
type smokeCase struct {
	name string
	run  func(opts ...quantummind.Option) error
}

var smokeCases = []smokeCase{
	{
		name: "initialization",
		run: func(opts ...quantummind.Option) error {
			mind := quantummind.New(opts...)
			if mind == nil {
				return errors.New("constructor returned nil")
			}
			if mind.ID() == "" {
				return errors.New("instance has no ID")
			}
			return nil
		},
	},
	{
		name: "run",
		run: func(opts ...quantummind.Option) error {
			if !quantummind.New(opts...).Run() {
				return errors.New("run reported failure")
			}
			return nil
		},
	},
}

// runSmoke executes every case in order and stops at the first failure
func runSmoke(cases []smokeCase, logger *zap.Logger) (map[string]interface{}, error) {
	results := make(map[string]interface{}, len(cases))
	for _, tc := range cases {
		logger.Debug("Running smoke case", zap.String("case", tc.name))
		if err := tc.run(quantummind.WithLogger(logger)); err != nil {
			results["smoke."+tc.name] = "fail"
			return results, fmt.Errorf("smoke test '%s' failed: %w", tc.name, err)
		}
		results["smoke."+tc.name] = "pass"
	}
	return results, nil
}

func (a *app) newSmokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smoke",
		Short: "Check that QuantumMind can be constructed and run",
		Long: `Run the basic operability checks:

  initialization  a new instance can be constructed
  run             Run() on a new instance reports success

Examples:
  quantummind smoke
  quantummind smoke --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := a.settings(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			results, smokeErr := runSmoke(smokeCases, logger)

			result := &output.Result{Success: smokeErr == nil, Data: results}
			if smokeErr != nil {
				result.Error = smokeErr.Error()
			} else {
				result.Message = fmt.Sprintf("Smoke test passed (%d cases)", len(smokeCases))
			}

			if err := a.formatter(cmd).Print(result); err != nil {
				return err
			}
			if smokeErr != nil {
				return ExitCodeError{Code: exitFailure, Err: smokeErr}
			}
			logger.Info("Smoke test complete", zap.Int("cases", len(smokeCases)))
			return nil
		},
	}
}
