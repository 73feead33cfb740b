// Package config loads engine settings from YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete engine configuration
type Config struct {
	TickIntervalMS int    `yaml:"tick_interval_ms"` // loop cadence (default: 10)
	RunDurationMS  int    `yaml:"run_duration_ms"`  // producer run length (default: 10000)
	Iterations     int    `yaml:"iterations"`       // records per run, overrides run_duration_ms when > 0
	PageThreshold  int    `yaml:"page_threshold"`   // notifications per pane before a clear (default: 70)
	ValueRange     int    `yaml:"value_range"`      // payload upper bound, exclusive (default: 100)
	Consumers      int    `yaml:"consumers"`        // consumer goroutines (default: 2)
	WakeOnEnqueue  bool   `yaml:"wake_on_enqueue"`  // consumers wake on enqueue instead of waiting a full tick
	EventBuffer    int    `yaml:"event_buffer"`     // event ring capacity (default: 4096)
	LogLevel       string `yaml:"log_level"`        // debug, info, warn, error
}

// Default returns the stock settings: 10ms ticks for 10 seconds, pages of
// 70, two consumers.
func Default() Config {
	return Config{
		TickIntervalMS: 10,
		RunDurationMS:  10000,
		PageThreshold:  70,
		ValueRange:     100,
		Consumers:      2,
		EventBuffer:    4096,
		LogLevel:       "info",
	}
}

// Load reads and parses a YAML configuration file.
// Keys missing from the file keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// TickInterval returns the loop cadence.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// RunDuration returns the producer run length.
func (c Config) RunDuration() time.Duration {
	return time.Duration(c.RunDurationMS) * time.Millisecond
}

// RunIterations returns the number of records a full run produces.
func (c Config) RunIterations() int {
	if c.Iterations > 0 {
		return c.Iterations
	}
	if c.TickIntervalMS <= 0 {
		return 0
	}
	return c.RunDurationMS / c.TickIntervalMS
}

// SlogLevel maps LogLevel to a slog.Level. Unknown values map to Info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
