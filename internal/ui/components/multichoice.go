package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lektor/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector for one quiz question. It only
// tracks the cursor; submission is reported to the owner, which decides
// what happens next.
type MultiChoice struct {
	Prompt  string
	Options []string
	Cursor  int
}

// NewMultiChoice creates a selector with the cursor on the first option.
func NewMultiChoice(prompt string, options []string) MultiChoice {
	return MultiChoice{Prompt: prompt, Options: options}
}

// Update handles cursor movement. It returns the chosen option index and
// true when the user submits, otherwise -1 and false.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, -1, false
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter":
		return m, m.Cursor, true
	}

	return m, -1, false
}

// View renders the prompt and option list.
func (m MultiChoice) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Prompt) + "\n\n"

	for i, opt := range m.Options {
		label := optionLabel(i)
		prefix := "  "
		if i == m.Cursor {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)
		if i == m.Cursor {
			s += theme.Selected.Render(line) + "\n"
		} else {
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}

func optionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("%d", i+1)
}
