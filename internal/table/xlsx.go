package table

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet names the worksheet written by WriteXLSX.
const DefaultSheet = "jalur"

// ReadXLSX reads one worksheet of an XLSX workbook. An empty sheet selects the
// first one. Cells are read as their stored values rather than through the
// cell's number format, so a date cell yields its day serial (e.g. "41654")
// instead of a locale-dependent rendering such as "01-15-14".
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmpty
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	// GetRows drops trailing empty rows but keeps leading ones.
	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	var data [][]string
	for _, row := range rows[1:] {
		if !blank(row) {
			data = append(data, row)
		}
	}
	return New(rows[0], data)
}

// WriteXLSX writes t as a single-sheet workbook. Cells are written as text so
// that the output reads back identically.
func WriteXLSX(w io.Writer, t *Table, sheet string) error {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	if err := writeRow(f, sheet, 1, t.Header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, n int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write xlsx row %d: %w", n, err)
	}
	return nil
}
