package reason

import (
	"strings"

	"github.com/abhisek/jalur/internal/normalize"
	"github.com/abhisek/jalur/internal/record"
)

// Entry maps a set of keywords to a category. A reason text matches when it
// contains any keyword as a substring.
type Entry struct {
	Category record.Reason `yaml:"category"`
	Keywords []string      `yaml:"keywords"`
}

// Table is an ordered keyword table. Entries are evaluated top to bottom and
// the first matching entry wins, so a text mentioning both "biaya" and
// "transport" is economic, not school-distance.
type Table struct {
	Name    string  `yaml:"name"`
	Entries []Entry `yaml:"entries"`
}

// Classify returns the category of text, or record.ReasonOther when no
// keyword matches. Matching ignores case and accents.
func (t *Table) Classify(text string) record.Reason {
	folded := normalize.Fold(text)
	if folded == "" {
		return record.ReasonOther
	}
	for _, e := range t.Entries {
		for _, kw := range e.Keywords {
			k := normalize.Fold(kw)
			if k != "" && strings.Contains(folded, k) {
				return e.Category
			}
		}
	}
	return record.ReasonOther
}

// Categories returns the categories the table can produce, in table order,
// followed by record.ReasonOther.
func (t *Table) Categories() []record.Reason {
	seen := make(map[record.Reason]bool, len(t.Entries)+1)
	var out []record.Reason
	for _, e := range t.Entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	if !seen[record.ReasonOther] {
		out = append(out, record.ReasonOther)
	}
	return out
}

// Keyword sets shared by the built-in tables. Indonesian forms first, since
// that is what the spreadsheets mostly contain.
var (
	economicKeywords    = []string{"ekonomi", "uang", "biaya", "economic", "money", "cost"}
	arrearsKeywords     = []string{"ijazah", "tunggakan", "certificate", "arrears"}
	relocationKeywords  = []string{"pindah", "relocat"}
	lowInterestKeywords = []string{"minat", "malas", "bosan", "low interest", "lazy", "bored"}
	employmentKeywords  = []string{"kerja", "work"}
	healthKeywords      = []string{"sakit", "kesehatan", "sick", "health"}
	companyKeywords     = []string{"pergaulan", "narkoba", "bad company", "drugs"}
	distanceKeywords    = []string{"jarak", "transport", "distance"}
)

// Standard returns the keyword table of the standard profile. It has no
// tuition-arrears category; arrears-related texts fall through to later
// entries or to other.
func Standard() *Table {
	return &Table{
		Name: "standard",
		Entries: []Entry{
			{Category: record.ReasonEconomic, Keywords: economicKeywords},
			{Category: record.ReasonParentRelocation, Keywords: relocationKeywords},
			{Category: record.ReasonLowInterest, Keywords: lowInterestKeywords},
			{Category: record.ReasonEmployment, Keywords: employmentKeywords},
			{Category: record.ReasonHealth, Keywords: healthKeywords},
			{Category: record.ReasonBadCompanionship, Keywords: companyKeywords},
			{Category: record.ReasonSchoolDistance, Keywords: distanceKeywords},
		},
	}
}

// Extended returns the keyword table of the extended, arrears-aware
// profile: Standard with tuition-arrears inserted right after economic.
func Extended() *Table {
	return &Table{
		Name: "extended",
		Entries: []Entry{
			{Category: record.ReasonEconomic, Keywords: economicKeywords},
			{Category: record.ReasonTuitionArrears, Keywords: arrearsKeywords},
			{Category: record.ReasonParentRelocation, Keywords: relocationKeywords},
			{Category: record.ReasonLowInterest, Keywords: lowInterestKeywords},
			{Category: record.ReasonEmployment, Keywords: employmentKeywords},
			{Category: record.ReasonHealth, Keywords: healthKeywords},
			{Category: record.ReasonBadCompanionship, Keywords: companyKeywords},
			{Category: record.ReasonSchoolDistance, Keywords: distanceKeywords},
		},
	}
}

// ForProfile returns the built-in table for a rule profile name, or nil.
func ForProfile(name string) *Table {
	switch name {
	case "standard":
		return Standard()
	case "extended":
		return Extended()
	default:
		return nil
	}
}
