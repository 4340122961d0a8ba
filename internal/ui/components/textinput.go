package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// FilterInput is a one-line query box. It starts blurred; Focus hands it
// the keyboard.
type FilterInput struct {
	Model textinput.Model
}

func NewFilterInput(placeholder string) FilterInput {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	return FilterInput{Model: ti}
}

func (f *FilterInput) Focus() tea.Cmd { return f.Model.Focus() }

func (f *FilterInput) Blur() { f.Model.Blur() }

func (f FilterInput) Focused() bool { return f.Model.Focused() }

// Clear empties the query.
func (f *FilterInput) Clear() { f.Model.SetValue("") }

func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

func (f FilterInput) View() string { return f.Model.View() }

func (f FilterInput) Value() string { return f.Model.Value() }
