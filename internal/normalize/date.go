package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultDateLayouts are tried in order. Day-first slash dates win over
// month-first because the source spreadsheets are Indonesian.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"02/01/06",
	"2006",
}

// indonesianMonths maps Indonesian month names (and common abbreviations) to
// their English equivalents so the English layouts can parse them.
var indonesianMonths = []struct{ id, en string }{
	{"januari", "January"},
	{"februari", "February"},
	{"pebruari", "February"},
	{"maret", "March"},
	{"april", "April"},
	{"mei", "May"},
	{"juni", "June"},
	{"juli", "July"},
	{"agustus", "August"},
	{"september", "September"},
	{"oktober", "October"},
	{"november", "November"},
	{"nopember", "November"},
	{"desember", "December"},
	{"agu", "Aug"},
	{"okt", "Oct"},
	{"des", "Dec"},
}

// spreadsheetEpoch is day zero of the 1900 date system as used by Excel and
// LibreOffice exports.
var spreadsheetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Serial numbers outside this window are treated as plain numbers, not dates.
const (
	minSerial = 10_000 // 1927
	maxSerial = 80_000 // 2119
)

// ParseDate parses s using layouts, falling back to Indonesian month names and
// spreadsheet serial numbers. It returns nil when nothing matches.
func ParseDate(s string, layouts []string) *time.Time {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return nil
	}
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}

	if t, ok := tryLayouts(s, layouts); ok {
		return &t
	}
	if en := translateMonths(s); en != s {
		if t, ok := tryLayouts(en, layouts); ok {
			return &t
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= minSerial && f <= maxSerial {
		days := math.Floor(f)
		t := spreadsheetEpoch.AddDate(0, 0, int(days))
		return &t
	}
	return nil
}

func tryLayouts(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func translateMonths(s string) string {
	words := strings.Fields(s)
	changed := false
	for i, w := range words {
		lw := strings.ToLower(strings.TrimSuffix(w, ","))
		for _, m := range indonesianMonths {
			if lw == m.id {
				words[i] = strings.Replace(strings.ToLower(w), m.id, m.en, 1)
				changed = true
				break
			}
		}
	}
	if !changed {
		return s
	}
	return strings.Join(words, " ")
}

// YearsBetween returns the elapsed whole days between from and to divided by
// 365, rounded half-to-even to one decimal place. It is intentionally not a
// calendar-aware age.
func YearsBetween(from, to time.Time) float64 {
	days := math.Floor(to.Sub(from).Hours() / 24)
	return RoundTenth(days / 365)
}

// RoundTenth rounds v to one decimal place, half-to-even.
func RoundTenth(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
