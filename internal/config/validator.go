package config

import (
	"fmt"
	"strings"
)

var logLevels = map[string]bool{
	"":        true,
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks if the configuration is valid
func Validate(cfg *Config) error {
	if cfg.TickIntervalMS <= 0 {
		return fmt.Errorf("tick_interval_ms must be > 0")
	}

	if cfg.Iterations < 0 {
		return fmt.Errorf("iterations must be >= 0")
	}
	if cfg.Iterations == 0 {
		if cfg.RunDurationMS <= 0 {
			return fmt.Errorf("run_duration_ms must be > 0 when iterations is not set")
		}
		if cfg.RunDurationMS < cfg.TickIntervalMS {
			return fmt.Errorf("run_duration_ms (%d) must be >= tick_interval_ms (%d)",
				cfg.RunDurationMS, cfg.TickIntervalMS)
		}
	}

	if cfg.PageThreshold <= 0 {
		return fmt.Errorf("page_threshold must be > 0")
	}

	if cfg.ValueRange <= 0 {
		return fmt.Errorf("value_range must be > 0")
	}

	if cfg.Consumers < 1 {
		return fmt.Errorf("consumers must be >= 1")
	}

	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = 4096 // default
	}

	if !logLevels[strings.ToLower(cfg.LogLevel)] {
		return fmt.Errorf("log_level %q must be one of debug, info, warn, error", cfg.LogLevel)
	}

	return nil
}
