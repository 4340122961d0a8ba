package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/jalur/internal/ui/theme"
)

// CountBar is one row of a horizontal bar chart: label, bar scaled against
// Max, and the count.
type CountBar struct {
	Label      string
	LabelWidth int
	Count      int
	Max        int
	Width      int
}

// View renders the bar in Width cells.
func (b CountBar) View() string {
	label := b.Label
	if lipgloss.Width(label) > b.LabelWidth {
		label = truncate(label, b.LabelWidth)
	}
	label = theme.Body.Width(b.LabelWidth).Render(label)
	count := fmt.Sprintf(" %d", b.Count)

	barWidth := max(b.Width-b.LabelWidth-len(count)-1, 4)
	filled := 0
	if b.Max > 0 {
		filled = min(barWidth*b.Count/b.Max, barWidth)
	}
	if b.Count > 0 && filled == 0 {
		filled = 1
	}

	return label + " " +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)) +
		theme.Label.Render(count)
}

// truncate cuts s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 1 {
		return "…"
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// Truncate is truncate for callers outside the package; s is returned
// unchanged when it fits.
func Truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return truncate(s, width)
}
