package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jecc/alumnex/pkg/experience"
)

// Read loads the person rows of a spreadsheet file.
//
// The required columns are checked before any row is converted; if one is
// absent a *MissingColumnsError is returned and no rows.
func Read(ctx context.Context, path string, opts Options) (*Table, error) {
	grid, err := ReadGrid(ctx, path, opts.Sheet)
	if err != nil {
		return nil, err
	}

	table, err := FromGrid(grid, opts)
	if err != nil {
		return nil, err
	}
	table.Source = path
	return table, nil
}

// ReadGrid returns the raw cell values of a spreadsheet file, row by row.
func ReadGrid(ctx context.Context, path, sheet string) ([][]string, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided input path is expected
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	grid, err := ReadGridFrom(ctx, f, format, sheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return grid, nil
}

// ReadGridFrom returns the raw cell values read from r in the given format.
func ReadGridFrom(ctx context.Context, r io.Reader, format Format, sheet string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX:
		return readXLSX(r, sheet)
	case FormatCSV:
		return readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func readXLSX(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// FromGrid converts raw cell values into a Table. Rows above opts.HeaderRow
// are ignored; rows below it become data rows indexed from opts.FirstIndex.
func FromGrid(grid [][]string, opts Options) (*Table, error) {
	if opts.HeaderRow < 1 {
		return nil, fmt.Errorf("header row must be >= 1, got %d", opts.HeaderRow)
	}

	var header []string
	if opts.HeaderRow <= len(grid) {
		header = make([]string, len(grid[opts.HeaderRow-1]))
		for i, name := range grid[opts.HeaderRow-1] {
			header[i] = strings.TrimSpace(name)
		}
	}

	positions, err := locate(header, opts.Columns)
	if err != nil {
		return nil, err
	}

	table := &Table{Header: header}
	if opts.HeaderRow >= len(grid) {
		return table, nil
	}

	data := grid[opts.HeaderRow:]
	table.Rows = make([]experience.Row, len(data))
	for i, cells := range data {
		table.Rows[i] = experience.Row{
			Index:       opts.FirstIndex + i,
			LastName:    cell(cells, positions.lastName),
			FirstName:   cell(cells, positions.firstName),
			Experiences: cell(cells, positions.experiences),
		}
	}
	return table, nil
}

type columnPositions struct {
	lastName    int
	firstName   int
	experiences int
}

// locate finds the required columns in header. The first occurrence wins
// when a name is repeated.
func locate(header []string, names ColumnNames) (columnPositions, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, name := range names.Required() {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		available := make([]string, 0, len(header))
		for _, name := range header {
			if name != "" {
				available = append(available, name)
			}
		}
		return columnPositions{}, &MissingColumnsError{Missing: missing, Available: available}
	}

	return columnPositions{
		lastName:    index[names.LastName],
		firstName:   index[names.FirstName],
		experiences: index[names.Experiences],
	}, nil
}

// cell returns the value at position i, or nil if the cell is empty.
func cell(cells []string, i int) *string {
	if i >= len(cells) || cells[i] == "" {
		return nil
	}
	v := cells[i]
	return &v
}

// DetectHeaderRow returns the 1-based index of the first row, among the
// first maxScan rows, holding every required column name. It returns 0
// if no such row exists.
func DetectHeaderRow(grid [][]string, names ColumnNames, maxScan int) int {
	for i, cells := range grid {
		if maxScan > 0 && i >= maxScan {
			break
		}
		present := make(map[string]bool, len(cells))
		for _, c := range cells {
			present[strings.TrimSpace(c)] = true
		}
		found := true
		for _, name := range names.Required() {
			if !present[name] {
				found = false
				break
			}
		}
		if found {
			return i + 1
		}
	}
	return 0
}
