// Package schema maps source spreadsheet headers onto canonical record
// fields. A Profile is an ordered list of header → field mappings; the
// first mapping whose header is present wins for each field.
package schema

import (
	"strings"

	"github.com/abhisek/jalur/internal/record"
)

// Mapping binds one source header to a canonical field.
type Mapping struct {
	Source string `yaml:"source" json:"source"`
	Field  string `yaml:"field" json:"field"`
}

// Profile is a named column layout.
type Profile struct {
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Columns     []Mapping `yaml:"columns" json:"columns"`
}

// Sources returns the distinct header keys the profile recognizes.
func (p *Profile) Sources() []string {
	seen := make(map[string]bool, len(p.Columns))
	out := make([]string, 0, len(p.Columns))
	for _, m := range p.Columns {
		k := Key(m.Source)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// Key normalizes a header for matching: "Tgl Lahir" → "tgl_lahir".
func Key(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.Join(strings.Fields(h), "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

// Binding is a Profile resolved against one concrete header row.
type Binding struct {
	Profile *Profile
	index   map[string]int // field -> column
}

// Bind resolves p against header. For each field the first mapping whose
// source is present in header is used.
func (p *Profile) Bind(header []string) *Binding {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		k := Key(h)
		if _, dup := cols[k]; !dup {
			cols[k] = i
		}
	}
	b := &Binding{Profile: p, index: make(map[string]int)}
	for _, m := range p.Columns {
		if _, done := b.index[m.Field]; done {
			continue
		}
		if i, ok := cols[Key(m.Source)]; ok {
			b.index[m.Field] = i
		}
	}
	return b
}

// Fields lists the canonical fields found in the header, in canonical order.
func (b *Binding) Fields() []string {
	var out []string
	for _, f := range record.AllFields() {
		if _, ok := b.index[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Missing lists the canonical fields the header does not provide.
func (b *Binding) Missing() []string {
	var out []string
	for _, f := range record.AllFields() {
		if _, ok := b.index[f]; !ok {
			out = append(out, f)
		}
	}
	return out
}

// Remap builds the Raw record for one data row. Fields whose column is absent
// from the header are absent from the result; short rows yield "" for the
// missing cells.
func (b *Binding) Remap(row []string) record.Raw {
	raw := make(record.Raw, len(b.index))
	for field, i := range b.index {
		if i < len(row) {
			raw[field] = row[i]
		} else {
			raw[field] = ""
		}
	}
	return raw
}

// score counts the distinct profile sources present in header.
func (p *Profile) score(keys map[string]bool) int {
	n := 0
	for _, s := range p.Sources() {
		if keys[s] {
			n++
		}
	}
	return n
}
