package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jecc/alumnex/pkg/sheet"
)

// Default values for configuration.
const (
	DefaultWorkers        = 1
	DefaultLogLevel       = "info"
	DefaultFormat         = "text"
	DefaultPreview        = 10
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvSheet     = "ALUMNEX_SHEET"
	EnvHeaderRow = "ALUMNEX_HEADER_ROW"
	EnvWorkers   = "ALUMNEX_WORKERS"
	EnvLogLevel  = "ALUMNEX_LOG_LEVEL"
)

// DefaultConfig returns a configuration matching the standard alumni export.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			HeaderRow: sheet.DefaultHeaderRow,
			Columns:   sheet.DefaultColumnNames(),
		},
		Output: OutputConfig{
			Sheet:   sheet.DefaultOutputSheet,
			Format:  DefaultFormat,
			Preview: DefaultPreview,
		},
		Workers:  DefaultWorkers,
		LogLevel: DefaultLogLevel,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	if s := os.Getenv(EnvSheet); s != "" {
		c.Input.Sheet = s
	}

	if s := os.Getenv(EnvHeaderRow); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHeaderRow, err)
		}
		c.Input.HeaderRow = n
	}

	if s := os.Getenv(EnvWorkers); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}

	if s := os.Getenv(EnvLogLevel); s != "" {
		c.LogLevel = s
	}

	return nil
}
