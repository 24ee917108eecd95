// Package session drives one guided lesson from loading to the workload
// questionnaire. The Machine owns the state transitions, the lesson and
// answer audio players, the interruption pipeline, and the quiz flow; every
// external effect (generation, synthesis, answering, capture, journaling)
// goes through an injected collaborator.
package session

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lektor/internal/audio"
	"github.com/abhisek/lektor/internal/capture"
	"github.com/abhisek/lektor/internal/content"
	"github.com/abhisek/lektor/internal/journal"
	"github.com/abhisek/lektor/internal/llm"
	"github.com/abhisek/lektor/internal/speech"
)

// Options carries everything a Machine needs. Content, Synth, Answerer and
// Recorder are required; Journal, Clock and Sink default to no-op, wall
// clock and silent playback respectively.
type Options struct {
	Config   content.SessionConfig
	Content  *content.Service
	Synth    speech.Synthesizer
	Answerer speech.Answerer
	Recorder capture.Recorder
	Journal  journal.Recorder
	Clock    audio.Clock
	Sink     audio.Sink
}

// Machine is the session state machine. All trigger methods are safe for
// concurrent use; they serialize on an internal mutex and reject triggers
// that are invalid in the current state.
//
// OnModeChange and OnFinished handlers run synchronously inside the
// transition and must not call back into the Machine.
type Machine struct {
	mu   sync.Mutex
	opts Options

	state     State
	sessionID string
	startedAt time.Time
	baseCtx   context.Context
	// ctx is baseCtx tagged with the current session id, so every model
	// request the pipelines make is journaled under this session.
	ctx     context.Context
	started bool
	finalized bool
	errMsg    string

	// epoch invalidates async pipeline results after restart or shutdown.
	epoch uint64

	lessonContent *content.LessonContent
	lesson        *audio.Player
	answer        *audio.Player
	quiz          *QuizFlow
	rating        content.WorkloadRating

	interruptPos time.Duration
	interruptAt  time.Time
	lastAnswer   *speech.AnswerResult

	onMode     []func(Mode)
	onFinished []func(content.SessionResult)
}

// New builds a Machine in LOADING. Start kicks off content generation.
func New(opts Options) (*Machine, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Content == nil || opts.Synth == nil || opts.Answerer == nil || opts.Recorder == nil {
		return nil, fmt.Errorf("session: content, synth, answerer and recorder are required")
	}
	if opts.Journal == nil {
		opts.Journal = journal.Nop{}
	}
	if opts.Clock == nil {
		opts.Clock = audio.NewClock()
	}
	if opts.Sink == nil {
		opts.Sink = audio.NullSink{}
	}
	return &Machine{
		opts:      opts,
		state:     StateLoading,
		sessionID: uuid.NewString(),
	}, nil
}

// OnModeChange registers a handler invoked on every state transition with
// the derived presentation mode.
func (m *Machine) OnModeChange(fn func(Mode)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onMode = append(m.onMode, fn)
}

// OnFinished registers a handler invoked once when the session reaches
// FINISHED.
func (m *Machine) OnFinished(fn func(content.SessionResult)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onFinished = append(m.onFinished, fn)
}

// Start begins loading. ctx bounds every external call the session makes
// for its whole lifetime.
func (m *Machine) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return fmt.Errorf("session already started")
	}
	m.started = true
	m.baseCtx = ctx
	m.ctx = llm.WithSession(ctx, m.sessionID)
	m.startedAt = time.Now()
	m.journal(func() error {
		return m.opts.Journal.Start(m.ctx, journal.SessionStartData{
			SessionID:  m.sessionID,
			Topic:      m.opts.Config.Topic,
			Complexity: string(m.opts.Config.Complexity),
			Pacing:     string(m.opts.Config.Pacing),
		})
	})
	go m.load(m.ctx, m.epoch)
	return nil
}

// load runs the full generation pipeline off the trigger goroutine. Any
// failure here is fatal for the session.
func (m *Machine) load(ctx context.Context, epoch uint64) {
	cfg := m.opts.Config
	script, err := m.opts.Content.GenerateLesson(ctx, cfg)
	if err != nil {
		m.fail(epoch, "lesson generation failed", err)
		return
	}
	clip, err := m.opts.Synth.Synthesize(ctx, script)
	if err != nil {
		m.fail(epoch, "speech synthesis failed", err)
		return
	}
	quiz, err := m.opts.Content.GenerateQuiz(ctx, script)
	if err != nil {
		m.fail(epoch, "quiz generation failed", err)
		return
	}
	rate := m.opts.Content.Config().PlayRate(cfg.Pacing)
	player, err := audio.NewPlayer(clip.Data, clip.SampleRate, clip.Channels, rate, m.opts.Clock, m.opts.Sink)
	if err != nil {
		m.fail(epoch, "lesson audio decode failed", err)
		return
	}
	lc := &content.LessonContent{
		Script:     script,
		Audio:      clip.Data,
		SampleRate: clip.SampleRate,
		Channels:   clip.Channels,
		Quiz:       quiz,
	}
	m.loaded(epoch, lc, player)
}

func (m *Machine) loaded(epoch uint64, lc *content.LessonContent, player *audio.Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch || m.state != StateLoading {
		player.Close()
		return
	}
	m.lessonContent = lc
	m.lesson = player
	m.quiz = NewQuizFlow(lc.Quiz)
	m.setState(StatePlaying, "content ready")
	m.lesson.Play(m.lessonCompletion(epoch))
}

// lessonCompletion builds the callback the lesson player fires when the
// narration plays out. The same callback is re-registered on every resume.
func (m *Machine) lessonCompletion(epoch uint64) func() {
	return func() { m.lessonComplete(epoch) }
}

func (m *Machine) lessonComplete(epoch uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch || m.state != StatePlaying {
		return
	}
	if m.quiz.Len() == 0 {
		m.setState(StateRating, "lesson complete, no quiz")
		return
	}
	m.setState(StateQuiz, "lesson complete")
}

// Interrupt pauses the narration and opens the microphone. Only valid while
// PLAYING. If the capture device cannot start, the session drops straight
// back to PLAYING and narration resumes where it paused.
func (m *Machine) Interrupt() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StatePlaying {
		return fmt.Errorf("cannot interrupt in %s", m.state)
	}
	m.lesson.Pause()
	m.interruptPos = m.lesson.Position()
	m.interruptAt = time.Now()
	m.setState(StateListening, "interrupt")

	if err := m.opts.Recorder.Start(m.ctx); err != nil {
		m.journal(func() error {
			return m.opts.Journal.AppendInterruption(m.ctx, journal.InterruptionData{
				SessionID:  m.sessionID,
				Outcome:    "capture-failed",
				PositionMs: m.interruptPos.Milliseconds(),
			})
		})
		m.resumeLesson("capture failed")
		return nil
	}
	return nil
}

// EndInterruption closes the recording and hands it to the answer pipeline.
// Only valid while LISTENING.
func (m *Machine) EndInterruption() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateListening {
		return fmt.Errorf("cannot end interruption in %s", m.state)
	}
	m.setState(StateProcessing, "stop recording")

	data, err := m.opts.Recorder.Stop()
	if err != nil {
		m.recordInterruption("capture-failed", nil)
		m.resumeLesson("capture failed")
		return nil
	}
	rec := speech.RecordedAudio{Data: data, MIME: m.opts.Recorder.MIME()}
	go m.processAnswer(m.ctx, m.epoch, m.lessonContent.Script, rec)
	return nil
}

// CancelInterruption throws away an in-flight recording and resumes
// narration. Only valid while LISTENING.
func (m *Machine) CancelInterruption() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateListening {
		return fmt.Errorf("cannot cancel interruption in %s", m.state)
	}
	m.opts.Recorder.Discard()
	m.recordInterruption("abandoned", nil)
	m.resumeLesson("interruption cancelled")
	return nil
}

// processAnswer runs the ask-and-synthesize half of the interruption off
// the trigger goroutine. Failures fall back to narration silently.
func (m *Machine) processAnswer(ctx context.Context, epoch uint64, script string, rec speech.RecordedAudio) {
	res, err := m.opts.Answerer.Answer(ctx, script, rec)
	if err != nil {
		m.answerFailed(epoch)
		return
	}
	clip, err := m.opts.Synth.Synthesize(ctx, res.Answer)
	if err != nil {
		m.answerFailed(epoch)
		return
	}
	m.answerReady(epoch, res, clip)
}

func (m *Machine) answerFailed(epoch uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch || m.state != StateProcessing {
		return
	}
	m.recordInterruption("abandoned", nil)
	m.resumeLesson("answer failed")
}

func (m *Machine) answerReady(epoch uint64, res *speech.AnswerResult, clip *speech.Clip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch || m.state != StateProcessing {
		return
	}
	// Answer narration always plays at normal rate regardless of the
	// lesson pacing.
	player, err := audio.NewPlayer(clip.Data, clip.SampleRate, clip.Channels, 1.0, m.opts.Clock, m.opts.Sink)
	if err != nil {
		m.recordInterruption("abandoned", nil)
		m.resumeLesson("answer failed")
		return
	}
	m.answer = player
	m.lastAnswer = res
	m.recordInterruption("answered", res)
	m.setState(StateAnswering, "answer ready")
	player.Play(func() { m.answerComplete(epoch) })
}

func (m *Machine) answerComplete(epoch uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch || m.state != StateAnswering {
		return
	}
	m.answer.Close()
	m.answer = nil
	m.resumeLesson("answer complete")
}

// resumeLesson returns to PLAYING from exactly the position the lesson was
// paused at. Callers hold m.mu.
func (m *Machine) resumeLesson(trigger string) {
	m.setState(StatePlaying, trigger)
	m.lesson.Play(m.lessonCompletion(m.epoch))
}

func (m *Machine) recordInterruption(outcome string, res *speech.AnswerResult) {
	data := journal.InterruptionData{
		SessionID:  m.sessionID,
		Outcome:    outcome,
		PositionMs: m.interruptPos.Milliseconds(),
		DurationMs: time.Since(m.interruptAt).Milliseconds(),
	}
	if res != nil {
		data.Transcript = res.Transcript
		data.Answer = res.Answer
	}
	m.journal(func() error {
		return m.opts.Journal.AppendInterruption(m.ctx, data)
	})
}

// AnswerQuiz records option for the current question. Only valid in QUIZ.
func (m *Machine) AnswerQuiz(option int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateQuiz {
		return fmt.Errorf("cannot answer quiz in %s", m.state)
	}
	idx := m.quiz.Index()
	q, _ := m.quiz.Current()
	done, err := m.quiz.Answer(option)
	if err != nil {
		return err
	}
	m.journal(func() error {
		return m.opts.Journal.AppendQuizAnswer(m.ctx, journal.QuizAnswerData{
			SessionID:     m.sessionID,
			QuestionIndex: idx,
			SelectedIndex: option,
			CorrectIndex:  q.CorrectIndex,
			Correct:       option == q.CorrectIndex,
		})
	})
	if done {
		m.setState(StateRating, "quiz complete")
	}
	return nil
}

// SkipQuiz passes on the current question without scoring. Only valid in
// QUIZ.
func (m *Machine) SkipQuiz() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateQuiz {
		return fmt.Errorf("cannot skip quiz in %s", m.state)
	}
	idx := m.quiz.Index()
	q, _ := m.quiz.Current()
	done, err := m.quiz.Skip()
	if err != nil {
		return err
	}
	m.journal(func() error {
		return m.opts.Journal.AppendQuizAnswer(m.ctx, journal.QuizAnswerData{
			SessionID:     m.sessionID,
			QuestionIndex: idx,
			SelectedIndex: Skipped,
			CorrectIndex:  q.CorrectIndex,
			Skipped:       true,
		})
	})
	if done {
		m.setState(StateRating, "quiz complete")
	}
	return nil
}

// PreviousQuiz steps back one question, undoing its answer and score
// effect. A no-op at the first question. Only valid in QUIZ.
func (m *Machine) PreviousQuiz() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateQuiz {
		return fmt.Errorf("cannot revisit quiz in %s", m.state)
	}
	answers := m.quiz.Answers()
	if len(answers) == 0 {
		return nil
	}
	last := answers[len(answers)-1]
	m.quiz.Previous()
	idx := m.quiz.Index()
	m.journal(func() error {
		return m.opts.Journal.AppendQuizAnswer(m.ctx, journal.QuizAnswerData{
			SessionID:     m.sessionID,
			QuestionIndex: idx,
			SelectedIndex: last,
			CorrectIndex:  m.lessonContent.Quiz[idx].CorrectIndex,
			Skipped:       last == Skipped,
			Undone:        true,
		})
	})
	return nil
}

// SubmitRating records the workload questionnaire and finishes the session.
// Only valid in RATING.
func (m *Machine) SubmitRating(r content.WorkloadRating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateRating {
		return fmt.Errorf("cannot submit rating in %s", m.state)
	}
	m.rating = r.Clamp()
	m.journal(func() error {
		return m.opts.Journal.AppendRating(m.ctx, journal.RatingData{
			SessionID:    m.sessionID,
			MentalDemand: m.rating.MentalDemand,
			Performance:  m.rating.Performance,
			Effort:       m.rating.Effort,
			Frustration:  m.rating.Frustration,
		})
	})
	result := content.SessionResult{
		Config:    m.opts.Config,
		QuizScore: m.quiz.Score(),
		QuizTotal: m.quiz.Len(),
		Rating:    m.rating,
	}
	m.setState(StateFinished, "rating submitted")
	m.finalize("finished")
	m.releasePlayers()
	for _, fn := range m.onFinished {
		fn(result)
	}
	return nil
}

// Restart tears the failed session down and loads a fresh one under a new
// session id. Only valid in ERROR.
func (m *Machine) Restart() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateError {
		return fmt.Errorf("cannot restart in %s", m.state)
	}
	m.epoch++
	m.releasePlayers()
	m.lessonContent = nil
	m.quiz = nil
	m.lastAnswer = nil
	m.errMsg = ""
	m.finalized = false
	m.sessionID = uuid.NewString()
	m.ctx = llm.WithSession(m.baseCtx, m.sessionID)
	m.startedAt = time.Now()
	m.setState(StateLoading, "restart")
	m.journal(func() error {
		return m.opts.Journal.Start(m.ctx, journal.SessionStartData{
			SessionID:  m.sessionID,
			Topic:      m.opts.Config.Topic,
			Complexity: string(m.opts.Config.Complexity),
			Pacing:     string(m.opts.Config.Pacing),
		})
	})
	go m.load(m.ctx, m.epoch)
	return nil
}

// Shutdown releases every held resource. Safe from any state; in-flight
// async work is invalidated and its results discarded.
func (m *Machine) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	if m.state == StateListening || m.state == StateProcessing {
		m.opts.Recorder.Discard()
	}
	m.releasePlayers()
	if m.started && !m.finalized {
		m.finalize("aborted")
	}
}

// fail moves the session to ERROR. Loading failures are fatal; recoverable
// interruption failures never reach here.
func (m *Machine) fail(epoch uint64, msg string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch || m.state == StateError || m.state == StateFinished {
		return
	}
	m.errMsg = fmt.Sprintf("%s: %v", msg, err)
	m.releasePlayers()
	m.setState(StateError, msg)
	m.finalize("error")
}

func (m *Machine) releasePlayers() {
	if m.lesson != nil {
		m.lesson.Close()
		m.lesson = nil
	}
	if m.answer != nil {
		m.answer.Close()
		m.answer = nil
	}
}

func (m *Machine) finalize(outcome string) {
	m.finalized = true
	data := journal.FinalizeData{
		SessionID:    m.sessionID,
		Outcome:      outcome,
		DurationSecs: int(time.Since(m.startedAt).Seconds()),
	}
	if m.quiz != nil {
		data.QuizScore = m.quiz.Score()
		data.QuizTotal = m.quiz.Len()
	}
	m.journal(func() error {
		return m.opts.Journal.Finalize(m.ctx, data)
	})
}

// setState transitions, journals, and notifies mode handlers. Callers hold
// m.mu.
func (m *Machine) setState(to State, trigger string) {
	from := m.state
	m.state = to
	var posMs int64
	if m.lesson != nil {
		posMs = m.lesson.Position().Milliseconds()
	}
	m.journal(func() error {
		return m.opts.Journal.AppendStateChange(m.ctx, journal.StateChangeData{
			SessionID:  m.sessionID,
			From:       from.String(),
			To:         to.String(),
			Trigger:    trigger,
			PositionMs: posMs,
		})
	})
	mode := ModeFor(to)
	for _, fn := range m.onMode {
		fn(mode)
	}
}

func (m *Machine) journal(fn func() error) {
	if err := fn(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: journal append failed: %v\n", err)
	}
}

// State reports the current session state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Mode reports the derived presentation mode.
func (m *Machine) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ModeFor(m.state)
}

// Err reports the failure message when the session is in ERROR.
func (m *Machine) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg
}

// SessionID reports the journal id of the current session.
func (m *Machine) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// Script returns the lesson narration text, empty until loading finishes.
func (m *Machine) Script() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lessonContent == nil {
		return ""
	}
	return m.lessonContent.Script
}

// LastAnswer returns the most recent interruption answer, or nil.
func (m *Machine) LastAnswer() *speech.AnswerResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastAnswer
}

// QuizQuestion returns the question awaiting an answer.
func (m *Machine) QuizQuestion() (content.QuizQuestion, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quiz == nil {
		return content.QuizQuestion{}, false
	}
	return m.quiz.Current()
}

// QuizProgress reports the current question index, the total count, and the
// running score.
func (m *Machine) QuizProgress() (index, total, score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quiz == nil {
		return 0, 0, 0
	}
	return m.quiz.Index(), m.quiz.Len(), m.quiz.Score()
}

// Position reports the playhead of the active track: the answer narration
// while ANSWERING, otherwise the lesson.
func (m *Machine) Position() (pos, total time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p := m.activePlayer(); p != nil {
		return p.Position(), p.Duration()
	}
	return 0, 0
}

// SpectrumSample reports the frequency bins of the active track at the
// playhead, all zero when nothing is playing.
func (m *Machine) SpectrumSample() [audio.SpectrumBins]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p := m.activePlayer(); p != nil {
		return p.SpectrumSample()
	}
	return [audio.SpectrumBins]float64{}
}

func (m *Machine) activePlayer() *audio.Player {
	if m.state == StateAnswering && m.answer != nil {
		return m.answer
	}
	return m.lesson
}
