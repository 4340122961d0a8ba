package normalize

import (
	"strconv"
	"strings"
)

// Amount coerces a currency-like cell ("Rp 1.250.000", "50,000", "-") to a
// non-negative number by dropping every rune that is not an ASCII digit.
// Empty or unparsable input yields 0. Decimal separators are dropped too, so
// "1500.50" reads as 150050; rupiah amounts carry no fractional part.
func Amount(s string) float64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return v
}
