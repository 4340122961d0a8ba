package review

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/jalur/internal/normalize"
	"github.com/abhisek/jalur/internal/pipeline"
	"github.com/abhisek/jalur/internal/ui/components"
	"github.com/abhisek/jalur/internal/ui/layout"
	"github.com/abhisek/jalur/internal/ui/nav"
	"github.com/abhisek/jalur/internal/ui/theme"
)

// listScreen shows one line per record with a filter box on top.
type listScreen struct {
	rows       []pipeline.Row
	summary    pipeline.Summary
	filter     components.FilterInput
	reviewOnly bool

	visible []int // indexes into rows
	cursor  int   // index into visible
	offset  int
	page    int // rows that fit on screen, from the last View
}

var _ nav.Screen = (*listScreen)(nil)
var _ nav.KeyHinter = (*listScreen)(nil)

func newListScreen(rows []pipeline.Row, summary pipeline.Summary) *listScreen {
	s := &listScreen{
		rows:    rows,
		summary: summary,
		filter:  components.NewFilterInput("name, district, status, placement…"),
		page:    10,
	}
	s.refilter()
	return s
}

func (s *listScreen) Init() tea.Cmd { return nil }

func (s *listScreen) Title() string { return "Records" }

func (s *listScreen) KeyHints() []layout.KeyHint {
	if s.filter.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "/", Description: "Filter"},
		{Key: "r", Description: "Needs review"},
		{Key: "s", Description: "Summary"},
		{Key: "q", Description: "Quit"},
	}
}

func (s *listScreen) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if s.filter.Focused() {
		if ok {
			switch key.String() {
			case "enter":
				s.filter.Blur()
				return s, nil
			case "esc":
				s.filter.Clear()
				s.filter.Blur()
				s.refilter()
				return s, nil
			}
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.refilter()
		return s, cmd
	}
	if !ok {
		return s, nil
	}

	switch key.String() {
	case "q":
		return s, tea.Quit
	case "/":
		return s, s.filter.Focus()
	case "r":
		s.reviewOnly = !s.reviewOnly
		s.refilter()
	case "s":
		return s, nav.Push(&summaryScreen{summary: s.summary})
	case "enter":
		if i, ok := s.current(); ok {
			return s, nav.Push(&detailScreen{row: s.rows[i], index: i})
		}
	case "up", "k":
		s.move(-1)
	case "down", "j":
		s.move(1)
	case "pgup":
		s.move(-s.page)
	case "pgdown", "space":
		s.move(s.page)
	case "home", "g":
		s.move(-len(s.visible))
	case "end", "G":
		s.move(len(s.visible))
	}
	return s, nil
}

// current returns the row under the cursor.
func (s *listScreen) current() (int, bool) {
	if len(s.visible) == 0 {
		return 0, false
	}
	return s.visible[s.cursor], true
}

func (s *listScreen) move(delta int) {
	s.cursor = max(0, min(s.cursor+delta, len(s.visible)-1))
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+s.page {
		s.offset = s.cursor - s.page + 1
	}
}

// refilter recomputes visible rows. Every word of the query must appear in
// the row, accent- and case-insensitively.
func (s *listScreen) refilter() {
	words := strings.Fields(normalize.Fold(s.filter.Value()))
	s.visible = s.visible[:0]
	for i, r := range s.rows {
		if s.reviewOnly && !r.Recommendation.ID.NeedsReview() {
			continue
		}
		if matches(r, words) {
			s.visible = append(s.visible, i)
		}
	}
	s.cursor, s.offset = 0, 0
}

func matches(r pipeline.Row, words []string) bool {
	if len(words) == 0 {
		return true
	}
	n := r.Record
	hay := normalize.Fold(strings.Join([]string{
		n.Name, n.District, string(n.Status), string(n.Reason),
		string(r.Recommendation.ID), r.Recommendation.Text,
	}, " "))
	for _, w := range words {
		if !strings.Contains(hay, w) {
			return false
		}
	}
	return true
}

func (s *listScreen) View(width, height int) string {
	var b strings.Builder

	if s.filter.Focused() || s.filter.Value() != "" {
		b.WriteString(s.filter.View())
	} else {
		b.WriteString(theme.Hint.Render("/ to filter"))
	}
	count := fmt.Sprintf("%d of %d", len(s.visible), len(s.rows))
	if s.reviewOnly {
		count += " · needs review"
	}
	b.WriteString("  " + theme.Label.Render(count) + "\n")

	s.page = max(height-2, 1)
	s.move(0)
	if len(s.visible) == 0 {
		b.WriteString("\n" + theme.Hint.Render("No matching records."))
		return b.String()
	}

	compact := layout.IsCompactWidth(width)
	end := min(s.offset+s.page, len(s.visible))
	for pos := s.offset; pos < end; pos++ {
		line := s.line(s.rows[s.visible[pos]], width, compact)
		if pos == s.cursor {
			line = theme.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString("\n" + line)
	}
	return b.String()
}

func (s *listScreen) line(r pipeline.Row, width int, compact bool) string {
	n := r.Record
	cols := []string{cell(n.Name, 22)}
	if !compact {
		age, grade := "-", "-"
		if n.Age != nil {
			age = strconv.FormatFloat(*n.Age, 'f', 1, 64)
		}
		if n.Grade != nil {
			grade = strconv.Itoa(*n.Grade)
		}
		cols = append(cols, cell(age, 5), cell(grade, 3))
	}
	cols = append(cols, lipgloss.NewStyle().Foreground(theme.StatusColor(n.Status)).Render(cell(string(n.Status), 10)))

	used := 2
	for _, c := range cols {
		used += lipgloss.Width(c) + 1
	}
	text := r.Recommendation.Text
	if r.Recommendation.ID.NeedsReview() {
		text = theme.Warning.Render(components.Truncate(text, max(width-used, 8)))
	} else {
		text = components.Truncate(text, max(width-used, 8))
	}
	return strings.Join(append(cols, text), " ")
}

// cell pads or cuts s to exactly w cells.
func cell(s string, w int) string {
	s = components.Truncate(s, w)
	return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
}
