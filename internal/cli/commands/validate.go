package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jecc/alumnex/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate an alumnex configuration file without reading any spreadsheet.

Checks:
  - YAML syntax
  - Header row and column names
  - Output path extension and report format
  - Log level and worker count
  - Webhook URLs and triggers`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	sheetName := cfg.Input.Sheet
	if sheetName == "" {
		sheetName = "(first sheet)"
	}
	fmt.Fprintf(out, "  Sheet:       %s\n", sheetName)
	fmt.Fprintf(out, "  Header row:  %d\n", cfg.Input.HeaderRow)
	fmt.Fprintf(out, "  Columns:     %s, %s, %s\n",
		cfg.Input.Columns.LastName, cfg.Input.Columns.FirstName, cfg.Input.Columns.Experiences)
	fmt.Fprintf(out, "  Workers:     %d\n", cfg.Workers)
	if cfg.Output.Path != "" {
		fmt.Fprintf(out, "  Output:      %s\n", cfg.Output.Path)
	}

	if len(cfg.Webhooks) > 0 {
		fmt.Fprintf(out, "\nWebhooks:\n")
		for i, wh := range cfg.Webhooks {
			name := wh.Name
			if name == "" {
				name = wh.URL
			}
			fmt.Fprintf(out, "  %d. %s (%s)\n", i+1, name, wh.Trigger)
		}
	}

	return nil
}
