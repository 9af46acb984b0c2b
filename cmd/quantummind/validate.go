package main

import (
	"github.com/jjfhwang/QuantumMind/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			errs := a.cfg.Validate()
			if err := a.formatter(cmd).PrintValidation(output.FromValidation(errs)); err != nil {
				return err
			}
			if errs.HasErrors() {
				return ExitCodeError{Code: exitConfig}
			}
			return nil
		},
	}
}
