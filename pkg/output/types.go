// Package output provides formatting and output generation for extraction results.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/jecc/alumnex/pkg/experience"
)

// Report is the complete extraction output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary experience.Summary `json:"summary"`

	// Records holds every extracted experience, in output order.
	Records []RecordView `json:"records"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// RecordView is the exported form of a record, keyed by its identifier.
type RecordView struct {
	ID        string `json:"id"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Role      string `json:"role"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	Duration  string `json:"duration"`
}

// Metadata provides context about the extraction run.
type Metadata struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`

	// Sources lists the input files that were read.
	Sources []string `json:"sources"`

	// RowsRead is the number of data rows read from the sources.
	RowsRead int `json:"rows_read"`

	// RowsSkipped is the number of rows without an experience cell.
	RowsSkipped int `json:"rows_skipped"`

	// OutputPath is the exported table, if any.
	OutputPath string `json:"output_path,omitempty"`

	// ExtractedAt is when the extraction finished.
	ExtractedAt time.Time `json:"extracted_at"`

	// Duration is how long the extraction took.
	Duration time.Duration `json:"duration_ns"`
}

// Run describes the inputs of an extraction, used to build its Report.
type Run struct {
	Sources     []string
	RowsRead    int
	RowsSkipped int
	OutputPath  string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// NewReport creates a Report from extracted records.
func NewReport(records []experience.Record, run Run) *Report {
	views := make([]RecordView, len(records))
	for i, r := range records {
		views[i] = RecordView{
			ID:        r.ID(),
			LastName:  r.LastName,
			FirstName: r.FirstName,
			Role:      r.Role,
			Company:   r.Company,
			Location:  r.Location,
			Duration:  r.Duration,
		}
	}

	return &Report{
		Summary: experience.Summarize(records),
		Records: views,
		Metadata: Metadata{
			RunID:       uuid.NewString(),
			Sources:     run.Sources,
			RowsRead:    run.RowsRead,
			RowsSkipped: run.RowsSkipped,
			OutputPath:  run.OutputPath,
			ExtractedAt: run.FinishedAt,
			Duration:    run.FinishedAt.Sub(run.StartedAt),
		},
	}
}

// HasRecords returns true if at least one record was extracted.
func (r *Report) HasRecords() bool {
	return r.Summary.Records > 0
}
