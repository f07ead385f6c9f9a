package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"filecabinet/validation"
)

// Storage kinds
const (
	StorageMemory = "memory"
	StorageFile   = "file"
)

// Config is the application configuration
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	Validation ValidationConfig `yaml:"validation"`
	Log        LogConfig        `yaml:"log"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	HTTP       HTTPConfig       `yaml:"http"`
}

// StorageConfig selects the record store
type StorageConfig struct {
	Kind string `yaml:"kind"` // memory or file
	Path string `yaml:"path"` // data file for the file store
}

// ValidationConfig selects the validation policy. Rules entries replace the
// built-in policy of the same name as a whole.
type ValidationConfig struct {
	Policy string              `yaml:"policy"`
	Rules  validation.RuleSet `yaml:"rules"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
	Calls  bool   `yaml:"calls"`  // log every store call
}

// MetricsConfig configures store timing
type MetricsConfig struct {
	Enabled   bool `yaml:"enabled"`   // time store calls into the metrics histograms
	Stopwatch bool `yaml:"stopwatch"` // also print each call's duration
}

// HTTPConfig configures the optional REST front
type HTTPConfig struct {
	Addr string `yaml:"addr"` // empty disables the server
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Kind: StorageMemory,
			Path: "cabinet.db",
		},
		Validation: ValidationConfig{
			Policy: validation.PolicyDefault,
			Rules:  validation.DefaultRuleSet(),
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// LoadConfig reads the YAML file at path over the defaults, rejecting
// unknown keys. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings that cannot be defaulted
func (c Config) Validate() error {
	switch c.Storage.Kind {
	case StorageMemory:
	case StorageFile:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the file store")
		}
	default:
		return fmt.Errorf("unknown storage.kind '%s', expected memory or file", c.Storage.Kind)
	}

	if _, ok := c.Validation.Rules[c.Validation.Policy]; !ok {
		return fmt.Errorf("unknown validation.policy '%s'", c.Validation.Policy)
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log.format '%s', expected json or console", c.Log.Format)
	}
	return nil
}

// Validator builds the validator for the configured policy
func (c Config) Validator() (validation.Validator, error) {
	return c.Validation.Rules.Validator(c.Validation.Policy, nil)
}
