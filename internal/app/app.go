// Package app is the terminal front end: a Bubble Tea model that renders
// the session machine's presentation modes and translates key presses into
// machine triggers. All session logic lives in internal/session; this layer
// only observes and forwards.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lektor/internal/audio"
	"github.com/abhisek/lektor/internal/content"
	"github.com/abhisek/lektor/internal/session"
	"github.com/abhisek/lektor/internal/ui/components"
	"github.com/abhisek/lektor/internal/ui/layout"
	"github.com/abhisek/lektor/internal/ui/theme"
)

// framePeriod is the poll cadence for position and spectrum reads.
const framePeriod = time.Second / 30

// Options carries the app's dependencies. NewMachine builds a session for
// a topic; when Topic is empty the app asks for one first.
type Options struct {
	NewMachine func(topic string) (*session.Machine, error)
	Topic      string
}

// Model is the root Bubble Tea model.
type Model struct {
	newMachine func(topic string) (*session.Machine, error)
	machine    *session.Machine
	topic      string
	topicInput textinput.Model
	events     chan tea.Msg

	width    int
	height   int
	entering bool

	// polled snapshot of the machine, refreshed every frame
	state    session.State
	pos      time.Duration
	total    time.Duration
	spectrum [audio.SpectrumBins]float64

	spin      spinner.Model
	quiz      components.MultiChoice
	quizIndex int
	quizTotal int
	quizBuilt bool
	sliders   []components.Slider
	focused   int
	result    *content.SessionResult
}

func newModel(opts Options) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	ti := textinput.New()
	ti.Placeholder = "What would you like to learn about?"
	ti.CharLimit = 120
	ti.Focus()

	return &Model{
		newMachine: opts.NewMachine,
		topic:      opts.Topic,
		topicInput: ti,
		events:     make(chan tea.Msg, 32),
		state:      session.StateLoading,
		spin:       sp,
		quizIndex:  -1,
		sliders: []components.Slider{
			components.NewSlider("Mental demand", 60),
			components.NewSlider("Performance", 60),
			components.NewSlider("Effort", 60),
			components.NewSlider("Frustration", 60),
		},
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitEvent(), m.frameTick(), m.spin.Tick}
	if m.topic != "" {
		if err := m.attachMachine(m.topic); err != nil {
			return func() tea.Msg { return startFailedMsg{Err: err} }
		}
		cmds = append(cmds, m.startSession())
	} else {
		m.entering = true
		cmds = append(cmds, m.topicInput.Focus())
	}
	return tea.Batch(cmds...)
}

// attachMachine builds the session for a topic and hooks its events into
// the program loop.
func (m *Model) attachMachine(topic string) error {
	mach, err := m.newMachine(topic)
	if err != nil {
		return err
	}
	mach.OnModeChange(func(mode session.Mode) {
		select {
		case m.events <- modeChangedMsg{Mode: mode}:
		default:
		}
	})
	mach.OnFinished(func(r content.SessionResult) {
		select {
		case m.events <- sessionFinishedMsg{Result: r}:
		default:
		}
	})
	m.machine = mach
	m.topic = topic
	m.state = session.StateLoading
	return nil
}

func (m *Model) startSession() tea.Cmd {
	return func() tea.Msg {
		if err := m.machine.Start(context.Background()); err != nil {
			return startFailedMsg{Err: err}
		}
		return nil
	}
}

// waitEvent relays one machine event into the Bubble Tea loop.
func (m *Model) waitEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m *Model) frameTick() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameTickMsg:
		m.refresh()
		return m, m.frameTick()

	case modeChangedMsg:
		m.refresh()
		return m, m.waitEvent()

	case sessionFinishedMsg:
		r := msg.Result
		m.result = &r
		return m, m.waitEvent()

	case startFailedMsg:
		fmt.Fprintln(os.Stderr, "Could not start session:", msg.Err)
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.entering {
		var cmd tea.Cmd
		m.topicInput, cmd = m.topicInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// refresh polls the machine into the model's render snapshot.
func (m *Model) refresh() {
	if m.machine == nil {
		return
	}
	m.state = m.machine.State()
	m.pos, m.total = m.machine.Position()
	m.spectrum = m.machine.SpectrumSample()

	if m.state == session.StateQuiz {
		index, total, _ := m.machine.QuizProgress()
		if !m.quizBuilt || index != m.quizIndex {
			if q, ok := m.machine.QuizQuestion(); ok {
				m.quiz = components.NewMultiChoice(q.Prompt, q.Options)
				m.quizIndex = index
				m.quizTotal = total
				m.quizBuilt = true
			}
		}
	} else {
		m.quizBuilt = false
		m.quizIndex = -1
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.machine != nil {
			m.machine.Shutdown()
		}
		return m, tea.Quit
	}

	if m.entering {
		if msg.String() == "enter" {
			topic := strings.TrimSpace(m.topicInput.Value())
			if topic == "" {
				return m, nil
			}
			if err := m.attachMachine(topic); err != nil {
				return m, func() tea.Msg { return startFailedMsg{Err: err} }
			}
			m.entering = false
			return m, m.startSession()
		}
		var cmd tea.Cmd
		m.topicInput, cmd = m.topicInput.Update(msg)
		return m, cmd
	}

	if m.machine == nil {
		return m, nil
	}

	switch m.state {
	case session.StatePlaying:
		if msg.String() == " " || msg.String() == "space" {
			m.machine.Interrupt()
			m.refresh()
		}

	case session.StateListening:
		switch msg.String() {
		case " ", "space", "enter":
			m.machine.EndInterruption()
			m.refresh()
		case "esc":
			m.machine.CancelInterruption()
			m.refresh()
		}

	case session.StateQuiz:
		switch msg.String() {
		case "left", "p":
			m.machine.PreviousQuiz()
			m.refresh()
			return m, nil
		case "s":
			m.machine.SkipQuiz()
			m.refresh()
			return m, nil
		}
		var choice int
		var submitted bool
		m.quiz, choice, submitted = m.quiz.Update(msg)
		if submitted {
			m.machine.AnswerQuiz(choice)
			m.refresh()
		}

	case session.StateRating:
		switch msg.String() {
		case "up", "shift+tab":
			if m.focused > 0 {
				m.focused--
			}
		case "down", "tab":
			if m.focused < len(m.sliders)-1 {
				m.focused++
			}
		case "enter":
			m.machine.SubmitRating(content.WorkloadRating{
				MentalDemand: m.sliders[0].Value,
				Performance:  m.sliders[1].Value,
				Effort:       m.sliders[2].Value,
				Frustration:  m.sliders[3].Value,
			})
			m.refresh()
			return m, nil
		}
		for i := range m.sliders {
			m.sliders[i].Focused = i == m.focused
			m.sliders[i] = m.sliders[i].Update(msg)
		}

	case session.StateFinished:
		switch msg.String() {
		case "q", "enter", "esc":
			return m, tea.Quit
		}

	case session.StateError:
		switch msg.String() {
		case "r":
			m.machine.Restart()
			m.refresh()
		case "q", "esc":
			m.machine.Shutdown()
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(m.topic, m.pos, m.total, m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	body := m.renderContent(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, body, footer, m.width, m.height))
	return v
}

func (m *Model) keyHints() []layout.KeyHint {
	if m.entering {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start lesson"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	switch m.state {
	case session.StatePlaying:
		return []layout.KeyHint{
			{Key: "Space", Description: "Ask a question"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case session.StateListening:
		return []layout.KeyHint{
			{Key: "Space", Description: "Done asking"},
			{Key: "Esc", Description: "Never mind"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case session.StateQuiz:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
			{Key: "S", Description: "Skip"},
			{Key: "←", Description: "Previous"},
		}
	case session.StateRating:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scale"},
			{Key: "←→", Description: "Adjust"},
			{Key: "Enter", Description: "Submit"},
		}
	case session.StateFinished:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Exit"},
		}
	case session.StateError:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Q", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits. The session
// is shut down on the way out regardless of how the program ended.
func Run(opts Options) error {
	model := newModel(opts)
	defer func() {
		if model.machine != nil {
			model.machine.Shutdown()
		}
	}()

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
