// Package table reads and writes the rectangular spreadsheets jalur works
// on. Every cell is kept as text; typing happens in normalize.
package table

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	// ErrEmpty is returned for input without a header row.
	ErrEmpty = errors.New("table has no header row")
	// ErrUnsupportedFormat is returned for an unknown file format.
	ErrUnsupportedFormat = errors.New("unsupported table format")
)

// Format is a serialization of a Table.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	case "xls":
		return "", fmt.Errorf("%w: legacy .xls, save the sheet as .xlsx", ErrUnsupportedFormat)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Table is a header row plus data rows. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// New builds a Table, padding short rows and truncating long ones to the
// header width.
func New(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, ErrEmpty
	}
	t := &Table{Header: header, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, fit(r, len(header)))
	}
	return t, nil
}

func fit(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

// Column returns the index of the header named name, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// SetColumn writes values into the column named name, appending it when it
// does not exist yet. values must have one entry per row.
func (t *Table) SetColumn(name string, values []string) {
	i := t.Column(name)
	if i < 0 {
		t.Header = append(t.Header, name)
		for r := range t.Rows {
			t.Rows[r] = append(t.Rows[r], values[r])
		}
		return
	}
	for r := range t.Rows {
		t.Rows[r][i] = values[r]
	}
}

// ReadOptions tune Read.
type ReadOptions struct {
	// Sheet selects an XLSX worksheet; empty means the first one.
	Sheet string
}

// Read decodes r in format f.
func Read(r io.Reader, f Format, opts ReadOptions) (*Table, error) {
	switch f {
	case FormatCSV:
		return ReadCSV(r)
	case FormatXLSX:
		return ReadXLSX(r, opts.Sheet)
	case FormatJSON:
		return ReadJSON(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Write encodes t to w in format f.
func Write(w io.Writer, t *Table, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t, "")
	case FormatJSON:
		return WriteJSON(w, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
