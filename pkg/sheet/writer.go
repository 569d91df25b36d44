package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/jecc/alumnex/pkg/experience"
)

// Write exports records to path, choosing the format from its extension.
func Write(path, sheetName string, records []experience.Record) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path) // #nosec G304 -- user-provided output path is expected
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	switch format {
	case FormatCSV:
		return WriteCSV(f, records)
	default:
		return WriteXLSX(f, sheetName, records)
	}
}

// WriteXLSX writes records as a single-sheet workbook with the Header row first.
func WriteXLSX(w io.Writer, sheetName string, records []experience.Record) error {
	if sheetName == "" {
		sheetName = DefaultOutputSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := setRow(f, sheetName, 1, Header); err != nil {
		return err
	}
	for i, r := range records {
		if err := setRow(f, sheetName, i+2, r.Fields()); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cellName, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cellName, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

// WriteCSV writes records as CSV with the Header row first.
func WriteCSV(w io.Writer, records []experience.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Fields()); err != nil {
			return fmt.Errorf("writing csv row %s: %w", r.ID(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}
