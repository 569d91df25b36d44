package experience

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Build extracts the records of every row, in row order.
// Rows without an experience cell contribute nothing.
func Build(rows []Row) []Record {
	var records []Record
	for _, row := range rows {
		records = append(records, extractRow(row)...)
	}
	return records
}

func extractRow(row Row) []Record {
	if row.Experiences == nil {
		return nil
	}
	return Extract(*row.Experiences, row.Index, deref(row.LastName), deref(row.FirstName))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Builder extracts records from rows, optionally spreading rows over
// several workers. Output order never depends on the worker count.
type Builder struct {
	workers int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithWorkers sets the number of rows processed concurrently (default 1).
func WithWorkers(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{workers: 1}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Workers returns the configured worker count.
func (b *Builder) Workers() int {
	return b.workers
}

// Build extracts the records of every row. If ctx is cancelled it returns
// the context error and no records.
func (b *Builder) Build(ctx context.Context, rows []Row) ([]Record, error) {
	perRow := make([][]Record, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i := range rows {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perRow[i] = extractRow(rows[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range perRow {
		total += len(r)
	}
	records := make([]Record, 0, total)
	for _, r := range perRow {
		records = append(records, r...)
	}
	return records, nil
}
