package status

import (
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/jalur/internal/normalize"
	"github.com/abhisek/jalur/internal/record"
	"github.com/abhisek/jalur/internal/yamlschema"
)

// Synonyms maps folded status text to a canonical status.
type Synonyms map[string]record.Status

// DefaultSynonyms returns the built-in synonym table covering the Indonesian
// and English spellings seen in school and posyandu exports.
func DefaultSynonyms() Synonyms {
	return Synonyms{
		"aktif":           record.StatusActive,
		"active":          record.StatusActive,
		"masih sekolah":   record.StatusActive,
		"still in school": record.StatusActive,
		"sekolah":         record.StatusActive,
		"bersekolah":      record.StatusActive,
		"enrolled":        record.StatusActive,

		"lulus":     record.StatusGraduated,
		"tamat":     record.StatusGraduated,
		"graduated": record.StatusGraduated,
		"graduate":  record.StatusGraduated,

		"putus":         record.StatusDropped,
		"putus sekolah": record.StatusDropped,
		"berhenti":      record.StatusDropped,
		"keluar":        record.StatusDropped,
		"drop out":      record.StatusDropped,
		"dropout":       record.StatusDropped,
		"drop-out":      record.StatusDropped,
		"dropped":       record.StatusDropped,
		"dropped out":   record.StatusDropped,
		"quit":          record.StatusDropped,
	}
}

// Inference keywords applied to the reason text when no status is given.
var (
	graduatedHints = []string{"graduat", "lulus", "tamat"}
	droppedHints   = []string{"drop", "problem", "putus", "masalah"}
)

// Resolver canonicalizes explicit status text and infers a status from the
// dropout reason when the status column is absent.
type Resolver struct {
	Synonyms Synonyms
}

// NewResolver creates a Resolver with the default synonym table.
func NewResolver() *Resolver {
	return &Resolver{Synonyms: DefaultSynonyms()}
}

// Resolve returns the canonical status and the lowercased explicit text.
//
// With an explicit value the synonym table decides; unrecognized text yields
// record.StatusUnknown. Without one, the reason text is searched for
// graduation hints, then dropout hints; anything else, including an empty
// reason, is active. A student is never flagged as dropped without evidence.
func (r *Resolver) Resolve(explicit string, present bool, reasonRaw string) (record.Status, string) {
	if present {
		raw := normalize.Lower(explicit)
		if s, ok := r.Synonyms[normalize.Fold(explicit)]; ok {
			return s, raw
		}
		return record.StatusUnknown, raw
	}
	return Infer(reasonRaw), ""
}

// Infer derives a status from reason text alone.
func Infer(reasonRaw string) record.Status {
	text := normalize.Fold(reasonRaw)
	if text == "" || text == "nan" {
		return record.StatusActive
	}
	if containsAny(text, graduatedHints) {
		return record.StatusGraduated
	}
	if containsAny(text, droppedHints) {
		return record.StatusDropped
	}
	return record.StatusActive
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

const synonymsSchema = `{
  "type": "object",
  "minProperties": 1,
  "additionalProperties": {"enum": ["active", "graduated", "dropped", "unknown"]}
}`

// ParseSynonyms decodes a YAML synonym file of the form `text: status`.
// Keys are folded, so "Putus Sekolah" and "putus sekolah" are the same entry.
func ParseSynonyms(data []byte) (Synonyms, error) {
	var m map[string]string
	if err := yamlschema.Decode("status-synonyms", synonymsSchema, data, &m); err != nil {
		return nil, err
	}
	out := make(Synonyms, len(m))
	for k, v := range m {
		out[normalize.Fold(k)] = record.Status(v)
	}
	return out, nil
}

// LoadSynonyms reads a synonym file and merges it over the defaults.
func LoadSynonyms(path string) (Synonyms, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read status synonyms: %w", err)
	}
	extra, err := ParseSynonyms(data)
	if err != nil {
		return nil, fmt.Errorf("load status synonyms %s: %w", path, err)
	}
	merged := DefaultSynonyms()
	for k, v := range extra {
		merged[k] = v
	}
	return merged, nil
}
