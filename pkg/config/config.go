// Package config loads and validates the harness's own configuration —
// logging, default scheduling behavior, safety gates, injector parameter
// overrides, and the Prometheus exposition port.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root harness configuration.
type Config struct {
	Logging    LoggingConfig             `yaml:"logging"`
	Execution  ExecutionConfig           `yaml:"execution"`
	Safety     SafetyConfig              `yaml:"safety"`
	Prometheus PrometheusConfig          `yaml:"prometheus"`
	Reporting  ReportingConfig           `yaml:"reporting"`
	Injectors  map[string]map[string]any `yaml:"injectors"`
}

// LoggingConfig describes the structured logger's settings. The CLI builds
// its logger from the -v/-q flags and does not read this section.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ExecutionConfig holds default scheduling settings. The runner picks its
// mode from the scenario's phases and does not read this section.
type ExecutionConfig struct {
	DefaultMode string `yaml:"default_mode"`
	DefaultSeed int64  `yaml:"default_seed"`
}

// SafetyConfig holds safety settings for destructive injectors. No injector
// and no part of the runner reads them.
type SafetyConfig struct {
	MaxDuration         time.Duration `yaml:"max_duration"`
	RequireConfirmation bool          `yaml:"require_confirmation"`
	AllowNonLoopback    bool          `yaml:"allow_non_loopback"`
}

// PrometheusConfig describes the live metrics exposition endpoint.
// `chaos run` takes its port from --prometheus-port and does not read this
// section.
type PrometheusConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// ReportingConfig describes where and in which formats run reports land.
// `chaos run` takes its report output from its flags and does not read this
// section.
type ReportingConfig struct {
	OutputDir string   `yaml:"output_dir"`
	KeepLastN int      `yaml:"keep_last_n"`
	Formats   []string `yaml:"formats"`
}

// DefaultConfig returns the harness's built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Execution: ExecutionConfig{
			DefaultMode: "sequential",
			DefaultSeed: 0,
		},
		Safety: SafetyConfig{
			MaxDuration:         1 * time.Hour,
			RequireConfirmation: true,
			AllowNonLoopback:    false,
		},
		Prometheus: PrometheusConfig{
			Enabled: false,
			Port:    9091,
			Path:    "/metrics",
		},
		Reporting: ReportingConfig{
			OutputDir: "./reports",
			KeepLastN: 50,
			Formats:   []string{"json", "markdown"},
		},
		Injectors: map[string]map[string]any{},
	}
}

// Load reads configuration from a YAML file, falling back to defaults when
// the file is absent. Environment variables are expanded in the raw bytes
// before unmarshalling with os.ExpandEnv; unlike in scenario documents, a
// reference to an unset variable expands to the empty string.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))
	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for internally inconsistent settings.
func (c *Config) Validate() error {
	if c.Reporting.OutputDir == "" {
		return fmt.Errorf("reporting.output_dir is required")
	}
	if c.Prometheus.Enabled && c.Prometheus.Port <= 0 {
		return fmt.Errorf("prometheus.port must be positive when prometheus.enabled is true")
	}
	switch c.Execution.DefaultMode {
	case "sequential", "randomized", "parallel":
	default:
		return fmt.Errorf("execution.default_mode must be one of sequential, randomized, parallel")
	}
	return nil
}
