package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jecc/alumnex/pkg/logging"
	"github.com/jecc/alumnex/pkg/sheet"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return finish(cfg)
}

// FromEnvironment returns the default configuration with environment
// overrides applied, for runs without a config file.
func FromEnvironment() (*Config, error) {
	return finish(DefaultConfig())
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Validate checks a configuration for errors and fills in defaults.
func Validate(cfg *Config) error {
	if err := validateInput(&cfg.Input); err != nil {
		return fmt.Errorf("input: %w", err)
	}

	if err := validateOutput(&cfg.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	if cfg.Workers < 0 {
		return fmt.Errorf("workers: must be >= 0, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateInput(in *InputConfig) error {
	if in.HeaderRow < 1 {
		return fmt.Errorf("header_row must be >= 1, got %d", in.HeaderRow)
	}

	cols := map[string]string{
		"last_name":   in.Columns.LastName,
		"first_name":  in.Columns.FirstName,
		"experiences": in.Columns.Experiences,
	}
	for _, key := range []string{"last_name", "first_name", "experiences"} {
		if strings.TrimSpace(cols[key]) == "" {
			return fmt.Errorf("columns.%s is required", key)
		}
	}

	if in.Columns.LastName == in.Columns.FirstName ||
		in.Columns.LastName == in.Columns.Experiences ||
		in.Columns.FirstName == in.Columns.Experiences {
		return errors.New("columns must name three different columns")
	}

	return nil
}

func validateOutput(out *OutputConfig) error {
	if out.Path != "" {
		if _, err := sheet.FormatFromPath(out.Path); err != nil {
			return fmt.Errorf("path: %w", err)
		}
	}

	if out.Sheet == "" {
		out.Sheet = sheet.DefaultOutputSheet
	}

	switch out.Format {
	case "":
		out.Format = DefaultFormat
	case "text", "json":
	default:
		return fmt.Errorf("invalid format %q (must be text or json)", out.Format)
	}

	if out.Preview < 0 {
		return fmt.Errorf("preview must be >= 0, got %d", out.Preview)
	}

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	if wh.Trigger != "" {
		switch wh.Trigger {
		case WebhookTriggerOnRecords, WebhookTriggerAlways, WebhookTriggerNever:
		default:
			return fmt.Errorf("invalid trigger %q (must be on_records, always, or never)", wh.Trigger)
		}
	} else {
		wh.Trigger = WebhookTriggerOnRecords
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}

	return s
}
