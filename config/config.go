// Package config provides configuration parsing for port-pulse.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the port-pulse configuration.
type Config struct {
	// Sampling holds measurement settings.
	Sampling SamplingConfig `yaml:"sampling"`

	// Display holds dashboard rendering settings.
	Display DisplayConfig `yaml:"display"`

	// Insights holds snapshot analysis settings.
	Insights InsightsConfig `yaml:"insights"`

	// Logging holds log output settings.
	Logging LoggingConfig `yaml:"logging"`
}

// SamplingConfig holds measurement settings.
type SamplingConfig struct {
	// SettleInterval is a duration string (e.g. "200ms") for the pause
	// between the two CPU-time reads of one sample.
	SettleInterval string `yaml:"settle_interval"`

	// CPUScale selects the CPU percentage clamp: "cores" caps at
	// core_count x 100, "single" caps at 100.
	CPUScale string `yaml:"cpu_scale"`
}

// DisplayConfig holds dashboard rendering settings.
type DisplayConfig struct {
	// MemoryScaleMB is the memory gauge saturation point in decimal
	// megabytes. Readings beyond it fill the bar completely.
	MemoryScaleMB int `yaml:"memory_scale_mb"`
}

// InsightsConfig holds snapshot analysis settings.
type InsightsConfig struct {
	// Enabled controls whether single-snapshot runs request an analysis.
	Enabled bool `yaml:"enabled"`

	// Model is the generative model identifier.
	Model string `yaml:"model"`

	// APIKeyEnv is the environment variable holding the API key.
	// Analysis is skipped when the variable is empty or unset.
	APIKeyEnv string `yaml:"api_key_env"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// LogFile is the path for log output in watch mode, where the
	// terminal belongs to the dashboard.
	LogFile string `yaml:"log_file"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		Sampling: SamplingConfig{
			SettleInterval: "200ms",
			CPUScale:       "cores",
		},
		Display: DisplayConfig{
			MemoryScaleMB: 2048,
		},
		Insights: InsightsConfig{
			Enabled:   true,
			Model:     "gemini-1.5-flash",
			APIKeyEnv: "GEMINI_API_KEY",
		},
		Logging: LoggingConfig{
			LogFile: filepath.Join(home, ".local", "log", "port-pulse.log"),
		},
	}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "port-pulse", "config.yaml")
}

// LoadConfig loads configuration from a YAML file, merging with
// defaults. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for required fields and logical
// consistency.
func (c *Config) Validate() error {
	if c.Sampling.SettleInterval == "" {
		return fmt.Errorf("sampling.settle_interval is required")
	}
	if _, err := time.ParseDuration(c.Sampling.SettleInterval); err != nil {
		return fmt.Errorf("sampling.settle_interval is not a valid duration: %v", err)
	}

	if c.Sampling.CPUScale != "cores" && c.Sampling.CPUScale != "single" {
		return fmt.Errorf("sampling.cpu_scale must be 'cores' or 'single', got %q", c.Sampling.CPUScale)
	}

	if c.Display.MemoryScaleMB <= 0 {
		return fmt.Errorf("display.memory_scale_mb must be positive, got %d", c.Display.MemoryScaleMB)
	}

	if c.Insights.Enabled && c.Insights.Model == "" {
		return fmt.Errorf("insights.model is required when insights are enabled")
	}

	return nil
}

// SettleInterval returns the parsed settle interval. Call Validate first;
// an unparseable value falls back to zero.
func (c *Config) SettleInterval() time.Duration {
	d, _ := time.ParseDuration(c.Sampling.SettleInterval)
	return d
}

// MemoryScaleBytes returns the memory gauge saturation point in bytes.
func (c *Config) MemoryScaleBytes() uint64 {
	return uint64(c.Display.MemoryScaleMB) * 1_000_000
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
