package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jjfhwang/QuantumMind/internal/config"
	"github.com/jjfhwang/QuantumMind/internal/logging"
	"github.com/jjfhwang/QuantumMind/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

// Exit codes returned through ExitCodeError
const (
	exitFailure = 1
	exitConfig  = 2
)

// ExitCodeError carries the process exit code for a command failure.
// Err may be nil when the failure has already been reported on stdout.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e ExitCodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e ExitCodeError) Unwrap() error {
	return e.Err
}

// app holds state shared by the commands of one invocation
type app struct {
	cfg *config.Config

	configFile string
	envFile    string
	logLevel   string
	outputFmt  string
	dryRun     bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "quantummind",
		Short: "Construct and run a QuantumMind instance",
		Long: `quantummind constructs a QuantumMind instance and runs it.

Configuration is read from command-line flags, QUANTUMMIND_* environment
variables, an env file and a YAML config file, in that order of precedence.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// version never reads configuration
			if cmd.Name() == "version" {
				return nil
			}
			return a.loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Path to YAML config file (default: config/quantummind.yaml if exists)")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Path to environment file (default: config/quantummind.env if exists)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&a.outputFmt, "output", "o", "", "Output format: text, json")
	rootCmd.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, "Construct the instance but skip the run")

	rootCmd.AddCommand(a.newRunCmd())
	rootCmd.AddCommand(a.newSmokeCmd())
	rootCmd.AddCommand(a.newValidateCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig builds the configuration in precedence order (highest first):
// flags, environment, env-file, YAML config file, defaults.
func (a *app) loadConfig() error {
	a.cfg = config.New()

	a.cfg.SetFromFlags(config.KeyLogLevel, a.logLevel)
	a.cfg.SetFromFlags(config.KeyOutput, a.outputFmt)
	if a.dryRun {
		a.cfg.SetFlag(config.KeyDryRun, "true")
	}

	a.cfg.LoadFromEnvironment()

	envFile := defaultPath(a.envFile, filepath.Join("config", "quantummind.env"))
	if envFile != "" {
		if err := a.cfg.LoadEnvFile(envFile); err != nil {
			return ExitCodeError{Code: exitConfig, Err: fmt.Errorf("failed to load env file: %w", err)}
		}
	}

	configFile := defaultPath(a.configFile, filepath.Join("config", "quantummind.yaml"))
	if configFile != "" {
		if err := a.cfg.LoadYAMLFile(configFile); err != nil {
			return ExitCodeError{Code: exitConfig, Err: err}
		}
	}

	return nil
}

// settings validates the loaded configuration and builds the logger for a command
func (a *app) settings(cmd *cobra.Command) (config.Settings, *zap.Logger, error) {
	s, err := a.cfg.Settings()
	if err != nil {
		return config.Settings{}, nil, ExitCodeError{Code: exitConfig, Err: err}
	}

	logger, err := logging.New(s.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return config.Settings{}, nil, ExitCodeError{Code: exitConfig, Err: err}
	}
	return s, logger, nil
}

func (a *app) formatter(cmd *cobra.Command) *output.Formatter {
	format, _ := output.ParseFormat(strings.ToLower(a.cfg.Get(config.KeyOutput)))
	f := output.New(format)
	f.SetWriter(cmd.OutOrStdout())
	return f
}

// defaultPath returns explicit if set, otherwise fallback when it exists on disk
func defaultPath(explicit, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(fallback); err == nil {
		return fallback
	}
	return ""
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exitErr ExitCodeError
		if errors.As(err, &exitErr) {
			if exitErr.Err != nil {
				fmt.Fprintln(os.Stderr, exitErr.Err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}
}
