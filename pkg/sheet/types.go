// Package sheet reads person rows from spreadsheets and writes extracted
// experience records back out as a table.
package sheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jecc/alumnex/pkg/experience"
)

// Default input layout: two leading banner rows, header on the third row.
const (
	DefaultHeaderRow        = 3
	DefaultLastNameColumn   = "NOM"
	DefaultFirstNameColumn  = "PRÉNOM(S)"
	DefaultExperienceColumn = "EXPÉRIENCES"
	DefaultOutputSheet      = "Expériences"
)

// Header lists the output columns in order.
var Header = []string{"ID", "Nom", "Prénom", "Rôle", "Entreprise", "Localisation", "Durée"}

var (
	// ErrMissingColumns is matched by *MissingColumnsError.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrUnsupportedFormat is returned for file extensions other than .xlsx, .xlsm and .csv.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Format identifies a spreadsheet container.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q (use .xlsx or .csv)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ColumnNames are the header names of the three required input columns.
type ColumnNames struct {
	LastName    string `yaml:"last_name"`
	FirstName   string `yaml:"first_name"`
	Experiences string `yaml:"experiences"`
}

// DefaultColumnNames returns the French column names.
func DefaultColumnNames() ColumnNames {
	return ColumnNames{
		LastName:    DefaultLastNameColumn,
		FirstName:   DefaultFirstNameColumn,
		Experiences: DefaultExperienceColumn,
	}
}

// Required returns the names in diagnostic order: experiences, last name, first name.
func (c ColumnNames) Required() []string {
	return []string{c.Experiences, c.LastName, c.FirstName}
}

// Options controls how a table is read.
type Options struct {
	// Sheet is the worksheet to read; empty means the first sheet. Ignored for CSV.
	Sheet string

	// HeaderRow is the 1-based row holding the column names.
	HeaderRow int

	// Columns names the required columns.
	Columns ColumnNames

	// FirstIndex is the row index given to the first data row.
	FirstIndex int
}

// DefaultOptions returns options matching the standard alumni export.
func DefaultOptions() Options {
	return Options{
		HeaderRow: DefaultHeaderRow,
		Columns:   DefaultColumnNames(),
	}
}

// Table is the result of reading one input file.
type Table struct {
	// Source is the file the table was read from.
	Source string

	// Header holds the column names found on the header row.
	Header []string

	// Rows holds one entry per data row, empty rows included.
	Rows []experience.Row
}

// Skipped counts rows without an experience cell.
func (t *Table) Skipped() int {
	n := 0
	for _, r := range t.Rows {
		if r.Experiences == nil {
			n++
		}
	}
	return n
}

// MissingColumnsError reports required columns absent from the header row.
type MissingColumnsError struct {
	Missing   []string
	Available []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s (available: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
}

// Is reports whether target is ErrMissingColumns.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}
