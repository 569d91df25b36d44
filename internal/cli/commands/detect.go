package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jecc/alumnex/pkg/config"
	"github.com/jecc/alumnex/pkg/sheet"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	ConfigFile  string
	Sheet       string
	Scan        int
	Preview     int
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <input-file>",
		Short: "Locate the header row of an alumni spreadsheet",
		Long: `Scan the first rows of a spreadsheet for the row holding the last name,
first name and experiences columns, then preview the first data rows.

Prints a configuration snippet with the detected header row and can write it
as a starter config with --write-config.

Example:
  alumnex detect alumni.xlsx
  alumnex detect --sheet Promo2015 alumni.xlsx
  alumnex detect -w alumnex.yaml alumni.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file holding custom column names")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "Worksheet to scan (default: first sheet)")
	cmd.Flags().IntVarP(&opts.Scan, "scan", "n", 20, "Number of rows to scan for the header")
	cmd.Flags().IntVar(&opts.Preview, "preview", 3, "Number of data rows to preview")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	input := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(ctx, opts.ConfigFile)
	if err != nil {
		return err
	}
	if opts.Sheet != "" {
		cfg.Input.Sheet = opts.Sheet
	}

	grid, err := sheet.ReadGrid(ctx, input, cfg.Input.Sheet)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	fmt.Fprintln(out, "=== Header Row Detection ===")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "File: %s\n", input)
	fmt.Fprintf(out, "Rows: %d\n", len(grid))
	fmt.Fprintf(out, "Looking for: %s\n", strings.Join(cfg.Input.Columns.Required(), ", "))
	fmt.Fprintln(out)

	headerRow := sheet.DetectHeaderRow(grid, cfg.Input.Columns, opts.Scan)
	if headerRow == 0 {
		fmt.Fprintf(out, "No header row found in the first %d rows.\n", opts.Scan)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Tip: check the column names, or set input.columns in a config file.")
		ExitCode = 1
		return nil
	}

	cfg.Input.HeaderRow = headerRow
	table, err := sheet.FromGrid(grid, cfg.SheetOptions())
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	fmt.Fprintf(out, "Header row: %d\n", headerRow)
	fmt.Fprintf(out, "Data rows: %d (%d without experiences)\n", len(table.Rows), table.Skipped())
	fmt.Fprintln(out)
	previewRows(out, table, opts.Preview)

	snippet, err := generateStarterConfig(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "--- Configuration snippet (copy to your config file) ---")
	fmt.Fprint(out, snippet)

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(snippet, opts.WriteConfig); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nConfig written to %s\n", opts.WriteConfig)
	}

	return nil
}

func previewRows(w io.Writer, table *sheet.Table, n int) {
	if n > len(table.Rows) {
		n = len(table.Rows)
	}
	if n <= 0 {
		return
	}

	fmt.Fprintf(w, "First %d row(s):\n", n)
	for _, row := range table.Rows[:n] {
		first := "(empty)"
		if row.Experiences != nil {
			first, _, _ = strings.Cut(strings.TrimSpace(*row.Experiences), "\n")
		}
		fmt.Fprintf(w, "  %d. %s %s: %s\n", row.Index, value(row.LastName), value(row.FirstName), first)
	}
	fmt.Fprintln(w)
}

func value(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// generateStarterConfig renders the input section of a config file.
func generateStarterConfig(cfg *config.Config) (string, error) {
	starter := struct {
		Input config.InputConfig `yaml:"input"`
	}{Input: cfg.Input}

	data, err := yaml.Marshal(&starter)
	if err != nil {
		return "", fmt.Errorf("rendering config: %w", err)
	}
	return "# Generated by alumnex detect\n" + string(data), nil
}

// writeStarterConfig writes content to path, refusing to overwrite.
func writeStarterConfig(content, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) // #nosec G304 -- user-provided path is expected
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("config file already exists: %s", path)
		}
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
