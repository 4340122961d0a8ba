package report

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/jalur/internal/pipeline"
)

func TestRupiah(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "Rp 0"},
		{750000, "Rp 750.000"},
		{2500000, "Rp 2.500.000"},
	}
	for _, tt := range tests {
		if got := Rupiah(tt.in); got != tt.want {
			t.Errorf("Rupiah(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	s := pipeline.Summary{
		Total:              6,
		Dropouts:           2,
		DropoutRate:        2.0 / 6,
		TotalArrears:       3250000,
		NeedsReview:        2,
		ByStatus:           map[string]int{"active": 2, "graduated": 1, "dropped": 2, "unknown": 1},
		ByRecommendation:   map[string]int{"stay-regular": 1, "inclusive-school": 1},
		ByArrearsBracket:   map[string]int{"paid": 4, "moderate": 1, "high": 1},
		DropoutReasons:     map[string]int{"economic": 1, "health": 1},
		DropoutsByDistrict: map[string]int{"Coblong": 1, pipeline.UnknownDistrict: 1},
	}

	out := RenderSummary(s, 100)
	for _, want := range []string{"Students", "2 (33.3%)", "Rp 3.250.000", "unknown (review)", "high (> 2jt)", "Coblong", "inclusive-school"} {
		assert.Contains(t, out, want)
	}
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 100)
	}
}

func TestRenderSummary_Empty(t *testing.T) {
	out := RenderSummary(pipeline.Summary{}, 10)
	assert.Contains(t, out, "Students")
	assert.NotContains(t, out, "Dropout reason")
}

func TestDistribution_FoldsTail(t *testing.T) {
	m := map[string]int{}
	for i, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		m[k] = 10 - i
	}
	out := Distribution(m, 60)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, maxBars)
	assert.Contains(t, lines[0], "a")
	assert.Contains(t, lines[maxBars-1], "(3 others)")
	assert.Contains(t, lines[maxBars-1], " 6")
}
