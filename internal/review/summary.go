package review

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/jalur/internal/pipeline"
	"github.com/abhisek/jalur/internal/report"
	"github.com/abhisek/jalur/internal/ui/nav"
)

type summaryScreen struct {
	summary pipeline.Summary
}

var _ nav.Screen = (*summaryScreen)(nil)

func (s *summaryScreen) Init() tea.Cmd                        { return nil }
func (s *summaryScreen) Title() string                        { return "Summary" }
func (s *summaryScreen) Update(tea.Msg) (nav.Screen, tea.Cmd) { return s, nil }

func (s *summaryScreen) View(width, _ int) string {
	return report.RenderSummary(s.summary, min(width-2, 110))
}
