// Package config provides configuration loading for instinctd.
package config

import (
	"fmt"
	"time"
)

// Duration wraps time.Duration for text unmarshaling (YAML, env vars).
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if parsed < 0 {
		return fmt.Errorf("duration cannot be negative: %s", text)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration().String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the root instinctd configuration.
type Config struct {
	Store   StoreConfig   `koanf:"store"`
	Logging LoggingConfig `koanf:"logging"`
	Decay   DecayConfig   `koanf:"decay"`
}

// StoreConfig locates the instinct data file.
type StoreConfig struct {
	// Path is the instinct store's data file.
	Path string `koanf:"path"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `koanf:"level"`

	// Format is the log encoding (json or console).
	Format string `koanf:"format"`
}

// DecayConfig controls the background decay scheduler.
type DecayConfig struct {
	// Interval is the time between scheduled decay passes.
	Interval Duration `koanf:"interval"`

	// ThresholdDays is the unused age in days after which confidence decays.
	ThresholdDays int `koanf:"threshold_days"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("store path cannot be empty")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging format must be 'json' or 'console', got %q", c.Logging.Format)
	}

	if c.Decay.Interval.Duration() <= 0 {
		return fmt.Errorf("decay interval must be > 0")
	}
	if c.Decay.ThresholdDays < 1 {
		return fmt.Errorf("decay threshold_days must be >= 1, got %d", c.Decay.ThresholdDays)
	}

	return nil
}
