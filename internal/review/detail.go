package review

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/jalur/internal/pipeline"
	"github.com/abhisek/jalur/internal/report"
	"github.com/abhisek/jalur/internal/ui/layout"
	"github.com/abhisek/jalur/internal/ui/nav"
	"github.com/abhisek/jalur/internal/ui/theme"
)

// detailScreen shows every normalized field of one record and the rule
// behind its placement.
type detailScreen struct {
	row   pipeline.Row
	index int
}

var _ nav.Screen = (*detailScreen)(nil)

func (s *detailScreen) Init() tea.Cmd { return nil }

func (s *detailScreen) Title() string { return fmt.Sprintf("Record %d", s.index+1) }

func (s *detailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter/Esc", Description: "Back"}}
}

func (s *detailScreen) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "enter" {
		return s, nav.Pop
	}
	return s, nil
}

func (s *detailScreen) View(width, _ int) string {
	n := s.row.Record
	rec := s.row.Recommendation

	status := string(n.Status)
	switch {
	case n.StatusInferred:
		status += " (inferred from reason)"
	case n.StatusRaw != "" && n.StatusRaw != status:
		status += fmt.Sprintf(" (%q)", n.StatusRaw)
	}
	reason := string(n.Reason)
	if n.ReasonRaw != "" {
		reason += fmt.Sprintf(" (%q)", n.ReasonRaw)
	}

	fields := [][2]string{
		{"Name", orDash(n.Name)},
		{"Birth date", optional(n.BirthDate != nil, func() string { return n.BirthDate.Format("2006-01-02") })},
		{"Age", years(n.Age)},
		{"School entry", optional(n.SchoolEntryDate != nil, func() string { return n.SchoolEntryDate.Format("2006-01-02") })},
		{"Entry age", years(n.EntryAge)},
		{"Grade", optional(n.Grade != nil, func() string { return strconv.Itoa(*n.Grade) })},
		{"Status", status},
		{"Reason", reason},
		{"Arrears", fmt.Sprintf("%s (%s)", report.Rupiah(n.Arrears), n.ArrearsBracket)},
		{"Family income", report.Rupiah(n.FamilyIncome)},
		{"Origin school", orDash(n.OriginSchoolType)},
		{"District", orDash(n.District)},
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(theme.Label.Width(16).Render(f[0]))
		b.WriteString(theme.Body.Render(f[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	style := theme.Title
	if rec.ID.NeedsReview() {
		style = theme.Warning
	}
	b.WriteString(style.Render(rec.Text))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%s · rule %s", rec.ID, s.row.Rule)))

	return theme.Card.Width(max(width-4, 20)).Render(b.String())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// optional renders the value produced by f, or a dash when !ok.
func optional(ok bool, f func() string) string {
	if !ok {
		return "-"
	}
	return f()
}

func years(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64) + " y"
}
