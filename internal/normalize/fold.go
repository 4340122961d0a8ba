package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transformers and casers carry state between calls and must not be shared
// by goroutines; each call takes its own from a pool.
var (
	markStrippers = sync.Pool{New: func() any {
		return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	}}
	titleCasers = sync.Pool{New: func() any {
		c := cases.Title(language.Indonesian)
		return &c
	}}
)

// Fold lowercases s, strips combining marks and collapses inner whitespace.
// It is the form keyword and synonym tables are matched against.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	t := markStrippers.Get().(transform.Transformer)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	markStrippers.Put(t)
	return strings.Join(strings.Fields(s), " ")
}

// Lower trims and lowercases s without removing accents.
func Lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name tidies a person's name: collapses whitespace and title-cases names
// that arrive fully upper- or lowercased. Mixed-case input is kept as typed.
func Name(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	if s == strings.ToUpper(s) || s == strings.ToLower(s) {
		c := titleCasers.Get().(*cases.Caser)
		defer titleCasers.Put(c)
		return c.String(s)
	}
	return s
}

// isNull reports whether a cell holds one of the spreadsheet null markers.
func isNull(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "null", "none", "n/a", "na", "-":
		return true
	}
	return false
}
