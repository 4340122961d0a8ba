package normalize

import (
	"strconv"
	"strings"
)

// MinGrade and MaxGrade bound the school years a grade label can resolve to.
const (
	MinGrade = 1
	MaxGrade = 12
)

// romanGrades are checked in order after the digit scan fails. Longer
// numerals come first because "XI" and "XII" both contain "X".
var romanGrades = []struct {
	numeral string
	grade   int
}{
	{"XII", 12},
	{"XI", 11},
	{"X", 10},
}

// ParseGrade extracts a grade level from free-form text such as "6",
// "Kelas 4 SD", "kls. 5" or "XI IPA". The decimal strings "12" down to "1" are
// searched as substrings and the first hit wins, so "12" is found before
// "1". Scanning 1 upward instead would read "Kelas 12" as grade 1; the
// descending order is intentional. Without any digit the Roman numerals XII,
// XI and X are tried.
//
// This is best-effort: "2010" resolves to 10 and "TEXAS" to 10. Callers that
// need certainty must validate the label upstream.
func ParseGrade(s string) *int {
	s = strings.ToUpper(strings.TrimSpace(s))
	if isNull(s) {
		return nil
	}
	for g := MaxGrade; g >= MinGrade; g-- {
		if strings.Contains(s, strconv.Itoa(g)) {
			return &g
		}
	}
	for _, r := range romanGrades {
		if strings.Contains(s, r.numeral) {
			g := r.grade
			return &g
		}
	}
	return nil
}

// StandardAge is the expected age of a pupil in grade g: grade 1 at 7,
// rising by one per grade.
func StandardAge(g int) int {
	return g + 6
}
