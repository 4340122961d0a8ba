// Package review is an interactive browser for the records of one run.
package review

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/jalur/internal/pipeline"
	"github.com/abhisek/jalur/internal/ui/layout"
	"github.com/abhisek/jalur/internal/ui/nav"
)

// Model is the root bubbletea model: a screen stack inside a header and
// footer frame.
type Model struct {
	stack  *nav.Stack
	status string
	width  int
	height int
}

// New opens the record list for res.
func New(res *pipeline.Result) Model {
	return Model{
		stack:  nav.NewStack(newListScreen(res.Rows, res.Summary)),
		status: fmt.Sprintf("%s · %s · %d rows", res.Profile, res.Rules, len(res.Rows)),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.stack.Depth() > 1 {
				return m, nav.Pop
			}
		}
	}
	return m, m.stack.Update(msg)
}

var defaultHints = []layout.KeyHint{
	{Key: "Esc", Description: "Back"},
	{Key: "Ctrl+C", Description: "Quit"},
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the frame, or nothing before the first WindowSizeMsg.
func (m Model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader(m.stack.Top().Title(), m.status, m.width)
	footer := layout.RenderFooter(m.stack.Hints(defaultHints), m.width)
	content := m.stack.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run blocks until the user quits.
func Run(res *pipeline.Result) error {
	_, err := tea.NewProgram(New(res)).Run()
	return err
}
