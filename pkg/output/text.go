package output

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "alumnex: %d experiences, %d people, %d companies, %d locations\n",
		report.Summary.Records,
		report.Summary.People,
		report.Summary.Companies,
		report.Summary.Locations)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== Alumni Experience Extraction ===")
	fmt.Fprintln(w)

	if !report.HasRecords() {
		fmt.Fprintln(w, "No experiences extracted")
		fmt.Fprintln(w)
	} else if err := f.formatPreview(report, w); err != nil {
		return err
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Total experiences:  %d\n", report.Summary.Records)
	fmt.Fprintf(w, "Unique people:      %d\n", report.Summary.People)
	fmt.Fprintf(w, "Unique companies:   %d\n", report.Summary.Companies)
	fmt.Fprintf(w, "Unique locations:   %d\n", report.Summary.Locations)

	if report.Metadata.OutputPath != "" {
		fmt.Fprintf(w, "Written to: %s\n", report.Metadata.OutputPath)
	}

	if f.opts.Verbose {
		fmt.Fprintf(w, "Rows read: %d (%d without experiences)\n", report.Metadata.RowsRead, report.Metadata.RowsSkipped)
		for _, src := range report.Metadata.Sources {
			fmt.Fprintf(w, "Source: %s\n", src)
		}
		fmt.Fprintf(w, "Run: %s\n", report.Metadata.RunID)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

func (f *TextFormatter) formatPreview(report *Report, w io.Writer) error {
	n := len(report.Records)
	if f.opts.Preview < n {
		n = f.opts.Preview
	}
	if n == 0 {
		return nil
	}

	fmt.Fprintf(w, "Preview (%d of %d):\n", n, len(report.Records))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tNom\tPrénom\tRôle\tEntreprise\tLocalisation\tDurée")
	for _, r := range report.Records[:n] {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.LastName, r.FirstName, r.Role, r.Company, r.Location, r.Duration)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}
