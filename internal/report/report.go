// Package report renders run summaries for the terminal.
package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abhisek/jalur/internal/pipeline"
	"github.com/abhisek/jalur/internal/record"
	"github.com/abhisek/jalur/internal/ui/components"
	"github.com/abhisek/jalur/internal/ui/theme"
)

const (
	minWidth   = 40
	labelWidth = 24
	// maxBars caps each distribution; the remainder is folded into one line.
	maxBars = 8
)

var printer = message.NewPrinter(language.Indonesian)

// Rupiah formats an amount with Indonesian digit grouping, e.g. "Rp 2.500.000".
func Rupiah(v float64) string {
	return printer.Sprintf("Rp %d", int64(v))
}

// RenderSummary draws s as a card width cells wide.
func RenderSummary(s pipeline.Summary, width int) string {
	width = max(width, minWidth)
	// border and padding take two cells on each side
	inner := width - 6

	var b strings.Builder
	b.WriteString(theme.Title.Render("Ringkasan / Summary"))
	b.WriteString("\n\n")
	b.WriteString(metrics(s, inner))

	sections := []struct {
		title string
		m     map[string]int
	}{
		{"Status", statusCounts(s.ByStatus)},
		{"Recommendation", s.ByRecommendation},
		{"Dropout reason", s.DropoutReasons},
		{"Dropouts by district", s.DropoutsByDistrict},
		{"Arrears", bracketCounts(s.ByArrearsBracket)},
	}
	for _, sec := range sections {
		if len(sec.m) == 0 {
			continue
		}
		b.WriteString("\n\n")
		b.WriteString(theme.Label.Render(sec.title))
		b.WriteString("\n")
		b.WriteString(Distribution(sec.m, inner))
	}

	return theme.Card.Width(width - 2).Render(b.String())
}

func metrics(s pipeline.Summary, width int) string {
	cell := func(label, value string, style lipgloss.Style) string {
		return lipgloss.JoinVertical(lipgloss.Left, theme.Label.Render(label), style.Render(value))
	}
	review := theme.Body
	if s.NeedsReview > 0 {
		review = theme.Warning
	}
	cells := []string{
		cell("Students", printer.Sprintf("%d", s.Total), theme.Body.Bold(true)),
		cell("Dropped out", fmt.Sprintf("%d (%.1f%%)", s.Dropouts, s.DropoutRate*100), theme.Body.Bold(true)),
		cell("Arrears", Rupiah(s.TotalArrears), theme.Body.Bold(true)),
		cell("Needs review", fmt.Sprintf("%d", s.NeedsReview), review),
	}
	colWidth := width / len(cells)
	if colWidth < 16 {
		return lipgloss.JoinVertical(lipgloss.Left, cells...)
	}
	for i := range cells {
		cells[i] = lipgloss.NewStyle().Width(colWidth).Render(cells[i])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// Distribution renders m as bars, largest first.
func Distribution(m map[string]int, width int) string {
	ranked := pipeline.Ranked(m)
	if len(ranked) > maxBars {
		rest := 0
		for _, c := range ranked[maxBars-1:] {
			rest += c.N
		}
		ranked = append(ranked[:maxBars-1:maxBars-1], pipeline.Count{Key: fmt.Sprintf("(%d others)", len(m)-maxBars+1), N: rest})
	}
	top := 0
	for _, c := range ranked {
		top = max(top, c.N)
	}

	lines := make([]string, 0, len(ranked))
	for _, c := range ranked {
		lines = append(lines, components.CountBar{
			Label:      c.Key,
			LabelWidth: min(labelWidth, width/2),
			Count:      c.N,
			Max:        top,
			Width:      width,
		}.View())
	}
	return strings.Join(lines, "\n")
}

// statusCounts keeps unknown statuses visible under a readable key.
func statusCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, n := range m {
		if k == string(record.StatusUnknown) {
			k = "unknown (review)"
		}
		out[k] += n
	}
	return out
}

// bracketCounts labels brackets with their rupiah ranges.
func bracketCounts(m map[string]int) map[string]int {
	labels := map[string]string{
		string(record.ArrearsPaid):     "paid (0)",
		string(record.ArrearsLight):    "light (≤ 500rb)",
		string(record.ArrearsModerate): "moderate (≤ 2jt)",
		string(record.ArrearsHigh):     "high (> 2jt)",
	}
	out := make(map[string]int, len(m))
	for k, n := range m {
		if l, ok := labels[k]; ok {
			k = l
		}
		out[k] += n
	}
	return out
}
