// Package nav is a stack of full-screen views for bubbletea programs.
// Screens push and pop each other by returning Push or Pop commands.
package nav

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/jalur/internal/ui/layout"
)

// Screen is one view on the stack. View renders content only; the frame
// (header and footer) is drawn by the owner of the Stack.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHinter lets a screen supply its own footer hints.
type KeyHinter interface {
	KeyHints() []layout.KeyHint
}

type pushMsg struct{ screen Screen }

type popMsg struct{}

// Push returns a command that opens s on top of the current screen.
func Push(s Screen) tea.Cmd {
	return func() tea.Msg { return pushMsg{screen: s} }
}

// Pop returns a command that closes the current screen.
func Pop() tea.Msg { return popMsg{} }

// Stack routes messages to its top screen. The bottom screen is never
// popped.
type Stack struct {
	screens []Screen
}

func NewStack(root Screen) *Stack {
	return &Stack{screens: []Screen{root}}
}

func (s *Stack) Top() Screen { return s.screens[len(s.screens)-1] }

func (s *Stack) Depth() int { return len(s.screens) }

// Update handles navigation messages and forwards everything else to the
// top screen.
func (s *Stack) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pushMsg:
		s.screens = append(s.screens, msg.screen)
		return msg.screen.Init()
	case popMsg:
		if len(s.screens) > 1 {
			s.screens = s.screens[:len(s.screens)-1]
		}
		return nil
	}
	top, cmd := s.Top().Update(msg)
	s.screens[len(s.screens)-1] = top
	return cmd
}

func (s *Stack) View(width, height int) string {
	return s.Top().View(width, height)
}

// Hints returns the top screen's key hints, or fallback.
func (s *Stack) Hints(fallback []layout.KeyHint) []layout.KeyHint {
	if h, ok := s.Top().(KeyHinter); ok {
		return h.KeyHints()
	}
	return fallback
}
