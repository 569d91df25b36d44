package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jecc/alumnex/pkg/config"
	"github.com/jecc/alumnex/pkg/experience"
	"github.com/jecc/alumnex/pkg/logging"
	"github.com/jecc/alumnex/pkg/output"
	"github.com/jecc/alumnex/pkg/sheet"
	"github.com/jecc/alumnex/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ExtractOptions holds command-line options for the extract command.
type ExtractOptions struct {
	ConfigFile string
	OutputPath string
	Format     string
	Sheet      string
	HeaderRow  int
	Workers    int
	Preview    int
	Verbose    bool
	Quiet      bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
	WebhookRecords bool
}

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	opts := &ExtractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <input-file>...",
		Short: "Extract work experiences from alumni spreadsheets",
		Long: `Extract structured work experiences from the experiences column of one or
more spreadsheets (.xlsx or .csv). Glob patterns are accepted.

Each experience is expected on three lines:
  Role - Company
  DD/MM/YYYY - DD/MM/YYYY
  Location

Results are written as a seven-column table (ID, Nom, Prénom, Rôle,
Entreprise, Localisation, Durée) when --out is given, and summarized on stdout.

Exit codes:
  0 - Experiences extracted
  1 - No experience extracted
  2 - Configuration or runtime error (including missing columns)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringVarP(&opts.OutputPath, "out", "O", "", "Write extracted table to file (.xlsx or .csv)")
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Report format (text|json)")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	cmd.Flags().IntVar(&opts.HeaderRow, "header-row", 0, "1-based row holding the column names (default 3)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Rows processed concurrently (default 1)")
	cmd.Flags().IntVar(&opts.Preview, "preview", 0, "Records listed in the text report (default 10)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show run details and debug logs")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_records", "When to fire webhook (on_records|always|never)")
	cmd.Flags().BoolVar(&opts.WebhookRecords, "webhook-records", false, "Include every record in the webhook payload")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string, opts *ExtractOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()

	cfg, err := loadConfig(ctx, opts.ConfigFile)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg, opts); err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

	files, err := sheet.ExpandInputs(args)
	if err != nil {
		return fmt.Errorf("expanding inputs: %w", err)
	}

	rows, skipped, err := readInputs(ctx, logger, files, cfg.SheetOptions())
	if err != nil {
		return err
	}

	builder := experience.NewBuilder(experience.WithWorkers(cfg.Workers))
	records, err := builder.Build(ctx, rows)
	if err != nil {
		return fmt.Errorf("extracting experiences: %w", err)
	}
	logger.Info("extraction finished", "rows", len(rows), "records", len(records))

	if cfg.Output.Path != "" {
		if err := sheet.Write(cfg.Output.Path, cfg.Output.Sheet, records); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		logger.Info("table written", "path", cfg.Output.Path)
	}

	report := output.NewReport(records, output.Run{
		Sources:     files,
		RowsRead:    len(rows),
		RowsSkipped: skipped,
		OutputPath:  cfg.Output.Path,
		StartedAt:   started,
		FinishedAt:  time.Now(),
	})

	formatter, err := createFormatter(cfg.Output.Format, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
		Preview: cfg.Output.Preview,
	})
	if err != nil {
		return err
	}
	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Send webhooks (errors logged but don't fail the extraction)
	sendWebhooks(ctx, logger, cfg, opts, report)

	if !report.HasRecords() {
		ExitCode = 1
	}
	return nil
}

func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		cfg, err := config.FromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyFlags overrides configuration values with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *ExtractOptions) error {
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Output.Path = opts.OutputPath
	}
	if flags.Changed("output") {
		cfg.Output.Format = opts.Format
	}
	if flags.Changed("sheet") {
		cfg.Input.Sheet = opts.Sheet
	}
	if flags.Changed("header-row") {
		cfg.Input.HeaderRow = opts.HeaderRow
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.Workers
	}
	if flags.Changed("preview") {
		cfg.Output.Preview = opts.Preview
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// readInputs reads every file as one batch. Row indices continue across
// files so record identifiers stay unique. Any failing file fails the batch.
func readInputs(ctx context.Context, logger *slog.Logger, files []string, opts sheet.Options) ([]experience.Row, int, error) {
	var rows []experience.Row
	skipped := 0

	for _, file := range files {
		opts.FirstIndex = len(rows)
		table, err := sheet.Read(ctx, file, opts)
		if err != nil {
			return nil, 0, fmt.Errorf("loading %s: %w", file, err)
		}
		logger.Debug("input read", "file", file, "rows", len(table.Rows), "skipped", table.Skipped())

		rows = append(rows, table.Rows...)
		skipped += table.Skipped()
	}

	return rows, skipped, nil
}

func createFormatter(format string, opts output.FormatOptions) (output.Formatter, error) {
	switch format {
	case "", "text":
		return output.NewTextFormatter(opts), nil
	case "json":
		return output.NewJSONFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", format)
	}
}

// sendWebhooks sends the report to all configured webhooks.
func sendWebhooks(ctx context.Context, logger *slog.Logger, cfg *config.Config, opts *ExtractOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient("alumnex/" + Version)

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasRecords()) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:            wh.URL,
			Token:          wh.Token,
			Timeout:        wh.Timeout,
			IncludeRecords: opts.WebhookRecords,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}
		if resp.Success() {
			logger.Info("webhook sent", "webhook", name, "status", resp.StatusCode, "duration", resp.Duration.String())
		} else {
			logger.Warn("webhook failed", "webhook", name, "status", resp.StatusCode, "error", fmt.Sprint(resp.Error))
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *ExtractOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnRecords
		}
		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire based on trigger and results.
func shouldFireWebhook(trigger config.WebhookTrigger, hasRecords bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasRecords
	}
}
