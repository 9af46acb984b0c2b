package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jjfhwang/QuantumMind/internal/validation"
	"gopkg.in/yaml.v3"
)

// Prefix is the namespace for every recognised configuration key
const Prefix = "QUANTUMMIND_"

// Recognised configuration keys
const (
	KeyLogLevel = Prefix + "LOG_LEVEL"
	KeyOutput   = Prefix + "OUTPUT"
	KeyTimeout  = Prefix + "TIMEOUT"
	KeyDryRun   = Prefix + "DRY_RUN"
)

// Allowed values for enumerated keys
var (
	LogLevels     = []string{"debug", "info", "warn", "error"}
	OutputFormats = []string{"text", "json"}
)

var defaults = map[string]string{
	KeyLogLevel: "info",
	KeyOutput:   "text",
	KeyTimeout:  "30s",
	KeyDryRun:   "false",
}

// Config holds the raw key/value configuration for quantummind commands
type Config struct {
	Env map[string]string
}

// Settings is the validated, typed view of a Config
type Settings struct {
	LogLevel string
	Output   string
	Timeout  time.Duration
	DryRun   bool
}

// fileConfig is the YAML config file layout
type fileConfig struct {
	LogLevel string `yaml:"log_level"`
	Output   string `yaml:"output"`
	Timeout  string `yaml:"timeout"`
	DryRun   *bool  `yaml:"dry_run"`
}

// New creates a new Config instance
func New() *Config {
	return &Config{
		Env: make(map[string]string),
	}
}

// LoadEnvFile loads KEY=value pairs from a file.
// Returns nil if the file doesn't exist (not an error)
func (c *Config) LoadEnvFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open env file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		value = c.expandVars(value)

		c.setIfMissing(key, value)
	}

	return scanner.Err()
}

// LoadYAMLFile loads settings from a YAML config file.
// Returns nil if the file doesn't exist (not an error)
func (c *Config) LoadYAMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.setIfMissing(KeyLogLevel, fc.LogLevel)
	c.setIfMissing(KeyOutput, fc.Output)
	c.setIfMissing(KeyTimeout, fc.Timeout)
	if fc.DryRun != nil {
		c.setIfMissing(KeyDryRun, fmt.Sprintf("%t", *fc.DryRun))
	}
	return nil
}

// LoadFromEnvironment loads QUANTUMMIND_* variables from the current process
func (c *Config) LoadFromEnvironment() {
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 || !strings.HasPrefix(parts[0], Prefix) {
			continue
		}
		c.setIfMissing(parts[0], parts[1])
	}
}

// SetFromFlags sets a value from a command-line flag if it was provided
func (c *Config) SetFromFlags(key, value string) {
	if value != "" {
		c.Env[key] = value
	}
}

// SetFlag sets a configuration flag (overrides anything else)
func (c *Config) SetFlag(key, value string) {
	c.Env[key] = value
}

// Get returns the value for key, falling back to its default
func (c *Config) Get(key string) string {
	if v, ok := c.Env[key]; ok && v != "" {
		return v
	}
	return defaults[key]
}

// Validate checks every recognised key and returns all problems found
func (c *Config) Validate() validation.Errors {
	var errs validation.Errors
	errs.Add(validation.OneOf(KeyLogLevel, c.Get(KeyLogLevel), LogLevels))
	errs.Add(validation.OneOf(KeyOutput, c.Get(KeyOutput), OutputFormats))
	errs.Add(validation.Duration(KeyTimeout, c.Get(KeyTimeout)))
	errs.Add(validation.Bool(KeyDryRun, c.Get(KeyDryRun)))
	return errs
}

// Settings validates the configuration and returns its typed form
func (c *Config) Settings() (Settings, error) {
	if errs := c.Validate(); errs.HasErrors() {
		return Settings{}, errs
	}

	timeout, _ := time.ParseDuration(c.Get(KeyTimeout))
	dryRun, _ := validation.ParseBool(c.Get(KeyDryRun))

	return Settings{
		LogLevel: strings.ToLower(c.Get(KeyLogLevel)),
		Output:   strings.ToLower(c.Get(KeyOutput)),
		Timeout:  timeout,
		DryRun:   dryRun,
	}, nil
}

func (c *Config) setIfMissing(key, value string) {
	if value == "" {
		return
	}
	if _, exists := c.Env[key]; !exists {
		c.Env[key] = value
	}
}

// expandVars performs simple variable expansion for ${VAR} syntax
func (c *Config) expandVars(value string) string {
	result := value

	for {
		start := strings.Index(result, "${")
		if start == -1 {
			break
		}

		end := strings.Index(result[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := result[start+2 : end]

		varValue := ""
		if val, exists := c.Env[varName]; exists {
			varValue = val
		} else if val := os.Getenv(varName); val != "" {
			varValue = val
		}

		result = result[:start] + varValue + result[end+1:]
	}

	return result
}
