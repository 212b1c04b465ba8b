// Package xlsx exports funding program records as an Excel workbook.
package xlsx

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Lechtr/foerder"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the worksheet holding the records.
const SheetName = "Förderprogramme"

// Ensure Exporter implements foerder.RecordExporter at compile time.
var _ foerder.RecordExporter = (*Exporter)(nil)

// Exporter writes records to a single-sheet workbook. The header row is
// the union of record columns, as in the CSV store.
type Exporter struct {
	path string
}

// NewExporter creates an Exporter writing to path.
func NewExporter(path string) *Exporter {
	return &Exporter{path: path}
}

// Export replaces the workbook at path with records. Cell values longer
// than Excel's cell limit are truncated.
func (e *Exporter) Export(ctx context.Context, records []*foerder.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	cols := foerder.Columns(records)
	for i, c := range cols {
		if err := setCell(f, i+1, 1, c); err != nil {
			return err
		}
	}

	for r, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i, c := range cols {
			v := rec.Value(c)
			if v == "" {
				continue
			}
			if err := setCell(f, i+1, r+2, v); err != nil {
				return err
			}
		}
	}

	if len(cols) > 0 {
		last, err := excelize.CoordinatesToCellName(len(cols), len(records)+1)
		if err != nil {
			return err
		}
		if err := f.AutoFilter(SheetName, "A1:"+last, nil); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(e.path), 0755); err != nil {
		return err
	}
	return f.SaveAs(e.path)
}

func setCell(f *excelize.File, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if r := []rune(value); len(r) > excelize.TotalCellChars {
		value = string(r[:excelize.TotalCellChars])
	}
	return f.SetCellValue(SheetName, cell, value)
}
