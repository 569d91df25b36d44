package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jecc/alumnex/pkg/sheet"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
input:
  sheet: Alumni
  header_row: 1
  columns:
    last_name: Last
    first_name: First
    experiences: History
output:
  path: out.csv
  format: json
  preview: 5
workers: 4
log_level: debug
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Input.Sheet != "Alumni" {
		t.Errorf("Input.Sheet = %q, want Alumni", cfg.Input.Sheet)
	}
	if cfg.Input.HeaderRow != 1 {
		t.Errorf("Input.HeaderRow = %d, want 1", cfg.Input.HeaderRow)
	}
	if cfg.Input.Columns.Experiences != "History" {
		t.Errorf("Columns.Experiences = %q, want History", cfg.Input.Columns.Experiences)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want json", cfg.Output.Format)
	}
	if cfg.Output.Sheet != sheet.DefaultOutputSheet {
		t.Errorf("Output.Sheet = %q, want default", cfg.Output.Sheet)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}

	opts := cfg.SheetOptions()
	if opts.Sheet != "Alumni" || opts.HeaderRow != 1 || opts.Columns.LastName != "Last" {
		t.Errorf("SheetOptions() = %+v", opts)
	}
}

func TestLoad_PartialColumnsKeepDefaults(t *testing.T) {
	content := `
input:
  columns:
    experiences: PARCOURS
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Input.Columns.LastName != sheet.DefaultLastNameColumn {
		t.Errorf("LastName = %q, want default", cfg.Input.Columns.LastName)
	}
	if cfg.Input.Columns.Experiences != "PARCOURS" {
		t.Errorf("Experiences = %q, want PARCOURS", cfg.Input.Columns.Experiences)
	}
	if cfg.Input.HeaderRow != sheet.DefaultHeaderRow {
		t.Errorf("HeaderRow = %d, want %d", cfg.Input.HeaderRow, sheet.DefaultHeaderRow)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTempFile(t, "invalid.yaml", `invalid: yaml: content: [`)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvSheet, "Feuil2")
	t.Setenv(EnvHeaderRow, "2")
	t.Setenv(EnvWorkers, "8")
	t.Setenv(EnvLogLevel, "warn")

	path := writeTempFile(t, "config.yaml", "input:\n  header_row: 5\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Input.Sheet != "Feuil2" {
		t.Errorf("Sheet = %q, want Feuil2", cfg.Input.Sheet)
	}
	if cfg.Input.HeaderRow != 2 {
		t.Errorf("HeaderRow = %d, want 2", cfg.Input.HeaderRow)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestFromEnvironment_InvalidNumber(t *testing.T) {
	t.Setenv(EnvHeaderRow, "three")
	if _, err := FromEnvironment(); err == nil {
		t.Error("FromEnvironment() expected error for non-numeric header row")
	}
}

func TestFromEnvironment_Defaults(t *testing.T) {
	cfg, err := FromEnvironment()
	if err != nil {
		t.Fatalf("FromEnvironment() error = %v", err)
	}
	if cfg.Input.HeaderRow != sheet.DefaultHeaderRow {
		t.Errorf("HeaderRow = %d, want %d", cfg.Input.HeaderRow, sheet.DefaultHeaderRow)
	}
	if cfg.Output.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", cfg.Output.Format, DefaultFormat)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeTempFile(t, ".env", "ALUMNEX_TEST_DOTENV=from-file\n")
	t.Setenv("ALUMNEX_TEST_DOTENV", "")
	os.Unsetenv("ALUMNEX_TEST_DOTENV")

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("ALUMNEX_TEST_DOTENV"); got != "from-file" {
		t.Errorf("ALUMNEX_TEST_DOTENV = %q, want from-file", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"header row zero", func(c *Config) { c.Input.HeaderRow = 0 }, true},
		{"empty experiences column", func(c *Config) { c.Input.Columns.Experiences = " " }, true},
		{"duplicate columns", func(c *Config) { c.Input.Columns.FirstName = c.Input.Columns.LastName }, true},
		{"xlsx output", func(c *Config) { c.Output.Path = "out.xlsx" }, false},
		{"unsupported output", func(c *Config) { c.Output.Path = "out.ods" }, true},
		{"bad format", func(c *Config) { c.Output.Format = "yaml" }, true},
		{"negative preview", func(c *Config) { c.Output.Preview = -1 }, true},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_FillsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 0
	cfg.LogLevel = ""
	cfg.Output.Format = ""
	cfg.Output.Sheet = ""

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", cfg.Workers, DefaultWorkers)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.Output.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", cfg.Output.Format, DefaultFormat)
	}
	if cfg.Output.Sheet != sheet.DefaultOutputSheet {
		t.Errorf("Sheet = %q, want %q", cfg.Output.Sheet, sheet.DefaultOutputSheet)
	}
}

// ============================================================================
// Webhook Validation Tests
// ============================================================================

func TestValidate_Webhook(t *testing.T) {
	tests := []struct {
		name    string
		webhook WebhookConfig
		wantErr bool
	}{
		{"https", WebhookConfig{URL: "https://example.com/hook", Trigger: WebhookTriggerOnRecords}, false},
		{"http", WebhookConfig{URL: "http://localhost:8080/hook"}, false},
		{"always", WebhookConfig{URL: "https://example.com/hook", Trigger: WebhookTriggerAlways}, false},
		{"never", WebhookConfig{URL: "https://example.com/hook", Trigger: WebhookTriggerNever}, false},
		{"missing url", WebhookConfig{Name: "no-url"}, true},
		{"ftp scheme", WebhookConfig{URL: "ftp://example.com/hook"}, true},
		{"no host", WebhookConfig{URL: "https:///hook"}, true},
		{"bad trigger", WebhookConfig{URL: "https://example.com/hook", Trigger: "sometimes"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Webhooks = []WebhookConfig{tt.webhook}
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Webhook_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Webhooks = []WebhookConfig{{URL: "https://example.com/hook"}}

	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Webhooks[0].Trigger != WebhookTriggerOnRecords {
		t.Errorf("Trigger = %v, want %v", cfg.Webhooks[0].Trigger, WebhookTriggerOnRecords)
	}
	if cfg.Webhooks[0].Timeout != DefaultWebhookTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Webhooks[0].Timeout, DefaultWebhookTimeout)
	}
}

func TestLoad_WithWebhooks(t *testing.T) {
	t.Setenv("TEST_ALUMNEX_TOKEN", "secret-value")

	content := `
webhooks:
  - name: crm
    url: "https://example.com/webhook"
    token: "${TEST_ALUMNEX_TOKEN}"
    trigger: always
    timeout: 30s
  - url: "https://backup.example.com/webhook"
`
	path := writeTempFile(t, "config-with-webhooks.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Webhooks) != 2 {
		t.Fatalf("Webhooks = %d, want 2", len(cfg.Webhooks))
	}
	if cfg.Webhooks[0].Token != "secret-value" {
		t.Errorf("Webhook[0].Token = %q, want secret-value", cfg.Webhooks[0].Token)
	}
	if cfg.Webhooks[0].Timeout != 30*time.Second {
		t.Errorf("Webhook[0].Timeout = %v, want 30s", cfg.Webhooks[0].Timeout)
	}
	if cfg.Webhooks[1].Trigger != WebhookTriggerOnRecords {
		t.Errorf("Webhook[1].Trigger = %v, want %v", cfg.Webhooks[1].Trigger, WebhookTriggerOnRecords)
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_TOKEN", "secret-value")

	tests := []struct {
		input string
		want  string
	}{
		{"${TEST_WEBHOOK_TOKEN}", "secret-value"},
		{"$TEST_WEBHOOK_TOKEN", "secret-value"},
		{"plain-value", "plain-value"},
		{"", ""},
		{"${NONEXISTENT_ALUMNEX_VAR}", ""},
	}

	for _, tt := range tests {
		got := expandEnvVar(tt.input)
		if got != tt.want {
			t.Errorf("expandEnvVar(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}
