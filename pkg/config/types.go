// Package config provides configuration loading and validation for alumnex.
package config

import (
	"time"

	"github.com/jecc/alumnex/pkg/sheet"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Input    InputConfig     `yaml:"input"`
	Output   OutputConfig    `yaml:"output"`
	Workers  int             `yaml:"workers,omitempty"`
	LogLevel string          `yaml:"log_level,omitempty"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// InputConfig describes the layout of the input spreadsheets.
type InputConfig struct {
	// Sheet is the worksheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet,omitempty"`

	// HeaderRow is the 1-based row holding the column names.
	HeaderRow int `yaml:"header_row"`

	// Columns names the last name, first name and experiences columns.
	Columns sheet.ColumnNames `yaml:"columns"`
}

// OutputConfig controls where and how results are written.
type OutputConfig struct {
	// Path is the exported table (.xlsx or .csv). Empty disables the export.
	Path string `yaml:"path,omitempty"`

	// Sheet is the worksheet name used for .xlsx exports.
	Sheet string `yaml:"sheet,omitempty"`

	// Format is the report format printed to stdout (text or json).
	Format string `yaml:"format,omitempty"`

	// Preview is how many records the text report lists.
	Preview int `yaml:"preview,omitempty"`
}

// SheetOptions returns the reader options for the input layout.
func (c *Config) SheetOptions() sheet.Options {
	return sheet.Options{
		Sheet:     c.Input.Sheet,
		HeaderRow: c.Input.HeaderRow,
		Columns:   c.Input.Columns,
	}
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnRecords fires only when records were extracted (default).
	WebhookTriggerOnRecords WebhookTrigger = "on_records"
	// WebhookTriggerAlways fires after every extraction.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines an endpoint that receives extraction reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token. ${VAR} and $VAR are expanded.
	Token string `yaml:"token,omitempty"`

	// Trigger defaults to "on_records".
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout defaults to 10s.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
