package table

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// WriteJSON writes t as an array of objects keyed by header. Key order
// follows the header.
func WriteJSON(w io.Writer, t *Table) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	for r, row := range t.Rows {
		sep := ",\n"
		if r == 0 {
			sep = "\n"
		}
		if _, err := io.WriteString(w, sep+"  {"); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		for i, h := range t.Header {
			k, _ := json.Marshal(h)
			v, _ := json.Marshal(row[i])
			prefix := ", "
			if i == 0 {
				prefix = ""
			}
			if _, err := fmt.Fprintf(w, "%s%s: %s", prefix, k, v); err != nil {
				return fmt.Errorf("write json: %w", err)
			}
		}
		if _, err := io.WriteString(w, "}"); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}
	if _, err := io.WriteString(w, "\n]\n"); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// ReadJSON reads an array of flat objects. The header is the sorted union of
// keys; values are rendered as text.
func ReadJSON(r io.Reader) (*Table, error) {
	var objs []map[string]any
	if err := json.NewDecoder(r).Decode(&objs); err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	keys := map[string]bool{}
	for _, o := range objs {
		for k := range o {
			keys[k] = true
		}
	}
	if len(keys) == 0 {
		return nil, ErrEmpty
	}
	header := make([]string, 0, len(keys))
	for k := range keys {
		header = append(header, k)
	}
	sort.Strings(header)

	rows := make([][]string, len(objs))
	for r, o := range objs {
		row := make([]string, len(header))
		for i, h := range header {
			row[i] = cellText(o[h])
		}
		rows[r] = row
	}
	return New(header, rows)
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}
