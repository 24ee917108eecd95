package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lektor/internal/session"
	"github.com/abhisek/lektor/internal/ui/components"
	"github.com/abhisek/lektor/internal/ui/theme"
)

func (m *Model) renderContent(width, height int) string {
	if m.entering || m.machine == nil {
		return m.renderWelcome(width, height)
	}
	switch m.state {
	case session.StateLoading:
		return m.renderLoading(width, height)
	case session.StatePlaying:
		return m.renderExplanation(width, height)
	case session.StateListening:
		return m.renderListening(width, height)
	case session.StateProcessing:
		return m.renderProcessing(width, height)
	case session.StateAnswering:
		return m.renderAnswering(width, height)
	case session.StateQuiz:
		return m.renderQuiz(width, height)
	case session.StateRating:
		return m.renderRating(width, height)
	case session.StateFinished:
		return m.renderSummary(width, height)
	case session.StateError:
		return m.renderError(width, height)
	}
	return ""
}

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

func (m *Model) renderWelcome(width, height int) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("\n", height/3))
	b.WriteString(centered(width).Render(theme.Title.Render("Lektor")))
	b.WriteString("\n")
	b.WriteString(centered(width).Render(theme.Subtitle.Render("Pick a topic and I'll teach it to you")))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Render(m.topicInput.View()))

	return b.String()
}

func (m *Model) renderLoading(width, height int) string {
	msg := fmt.Sprintf("%s Preparing your lesson on %q...", m.spin.View(), m.topic)
	return centered(width).
		Height(height).
		AlignVertical(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(msg)
}

func (m *Model) renderExplanation(width, height int) string {
	var b strings.Builder

	pad := strings.Repeat("\n", height/4)
	b.WriteString(pad)

	spectrum := components.Spectrum{Bins: m.spectrum[:]}
	b.WriteString(centered(width).Render(spectrum.View()))
	b.WriteString("\n\n")

	bar := components.PlaybackBar{Position: m.pos, Total: m.total, Width: width * 2 / 3}
	b.WriteString(centered(width).Render(bar.View()))
	b.WriteString("\n\n")

	b.WriteString(centered(width).Render(
		theme.Hint.Render("Press Space any time to ask a question about the lesson")))

	return b.String()
}

func (m *Model) renderListening(width, height int) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("\n", height/3))
	b.WriteString(centered(width).Render(theme.Recording.Render("●  Listening...")))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Render(
		theme.Hint.Render("Speak your question, then press Space")))

	return b.String()
}

func (m *Model) renderProcessing(width, height int) string {
	msg := fmt.Sprintf("%s Thinking about your question...", m.spin.View())
	return centered(width).
		Height(height).
		AlignVertical(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(msg)
}

func (m *Model) renderAnswering(width, height int) string {
	var b strings.Builder

	ans := m.machine.LastAnswer()

	b.WriteString("\n")
	if ans != nil && ans.Transcript != "" {
		b.WriteString(centered(width).Render(
			theme.Hint.Render(fmt.Sprintf("You asked: %q", ans.Transcript))))
		b.WriteString("\n\n")
	}

	if ans != nil {
		card := theme.Card.Width(min(width-8, 72)).Render(ans.Answer)
		b.WriteString(centered(width).Render(card))
		b.WriteString("\n\n")
	}

	spectrum := components.Spectrum{Bins: m.spectrum[:]}
	b.WriteString(centered(width).Render(theme.Answering.Render(spectrum.View())))
	b.WriteString("\n\n")

	bar := components.PlaybackBar{Position: m.pos, Total: m.total, Width: width / 2}
	b.WriteString(centered(width).Render(bar.View()))

	return b.String()
}

func (m *Model) renderQuiz(width, height int) string {
	var b strings.Builder

	index, total, _ := m.machine.QuizProgress()
	progress := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", index+1, total))
	b.WriteString(progress)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	if m.quizBuilt {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(m.quiz.View()))
	}

	return b.String()
}

func (m *Model) renderRating(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centered(width).Render(
		theme.Title.Render("How was that?")))
	b.WriteString("\n")
	b.WriteString(centered(width).Render(
		theme.Subtitle.Render("Rate the lesson workload from 0 (low) to 100 (high)")))
	b.WriteString("\n\n")

	for _, s := range m.sliders {
		b.WriteString(centered(width).Render(s.View()))
		b.WriteString("\n\n")
	}

	return b.String()
}

func (m *Model) renderSummary(width, height int) string {
	if m.result == nil {
		return ""
	}
	r := m.result

	var lines []string
	lines = append(lines, theme.Title.Render("Lesson complete"))
	lines = append(lines, "")
	if r.QuizTotal > 0 {
		lines = append(lines, theme.Body.Render(
			fmt.Sprintf("Quiz score:  %d / %d", r.QuizScore, r.QuizTotal)))
	} else {
		lines = append(lines, theme.Body.Render("No quiz this time."))
	}
	lines = append(lines, "")
	lines = append(lines, theme.Hint.Render(fmt.Sprintf("Mental demand %d   Performance %d", r.Rating.MentalDemand, r.Rating.Performance)))
	lines = append(lines, theme.Hint.Render(fmt.Sprintf("Effort %d   Frustration %d", r.Rating.Effort, r.Rating.Frustration)))

	card := theme.Card.Width(min(width-8, 56)).Render(strings.Join(lines, "\n"))

	return centered(width).
		Height(height).
		AlignVertical(lipgloss.Center).
		Render(card)
}

func (m *Model) renderError(width, height int) string {
	msg := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Something went wrong") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(m.machine.Err()) +
		"\n\n" +
		theme.Hint.Render("Press R to retry or Q to quit")

	return centered(width).
		Height(height).
		AlignVertical(lipgloss.Center).
		Render(msg)
}
