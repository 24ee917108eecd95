package components

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lektor/internal/ui/layout"
	"github.com/abhisek/lektor/internal/ui/theme"
)

// PlaybackBar displays the playhead within a track as a horizontal bar with
// timestamps on either side.
type PlaybackBar struct {
	Position time.Duration
	Total    time.Duration
	Width    int
}

// View renders the bar.
func (p PlaybackBar) View() string {
	left := layout.FormatTimestamp(p.Position)
	right := layout.FormatTimestamp(p.Total)

	barWidth := p.Width - len(left) - len(right) - 4
	if barWidth < 4 {
		barWidth = 4
	}

	frac := 0.0
	if p.Total > 0 {
		frac = float64(p.Position) / float64(p.Total)
	}
	filled := int(float64(barWidth) * frac)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	bar := theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	return dim.Render(left) + "  " + bar + "  " + dim.Render(right)
}
