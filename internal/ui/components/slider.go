package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lektor/internal/ui/theme"
)

const sliderStep = 5

// Slider is a 0-100 questionnaire scale adjusted with left/right keys.
type Slider struct {
	Label   string
	Value   int
	Focused bool
	Width   int
}

// NewSlider creates a slider starting at the midpoint.
func NewSlider(label string, width int) Slider {
	return Slider{Label: label, Value: 50, Width: width}
}

// Update adjusts the value while the slider is focused.
func (s Slider) Update(msg tea.Msg) Slider {
	if !s.Focused {
		return s
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s
	}

	switch kmsg.String() {
	case "left", "h":
		s.Value -= sliderStep
		if s.Value < 0 {
			s.Value = 0
		}
	case "right", "l":
		s.Value += sliderStep
		if s.Value > 100 {
			s.Value = 100
		}
	}

	return s
}

// View renders the label, track and value.
func (s Slider) View() string {
	barWidth := s.Width - 24
	if barWidth < 10 {
		barWidth = 10
	}

	filled := barWidth * s.Value / 100
	track := strings.Repeat("━", filled) + "╋" + strings.Repeat("─", barWidth-filled)

	label := fmt.Sprintf("%-16s", s.Label)
	value := fmt.Sprintf("%3d", s.Value)

	if s.Focused {
		return theme.SliderActive.Render("▸ "+label) + theme.SliderActive.Render(track) + " " + theme.SliderActive.Render(value)
	}
	return theme.SliderInactive.Render("  "+label) + theme.SliderInactive.Render(track) + " " + theme.SliderInactive.Render(value)
}
