// Package journal records timestamped session facts. It is an injected
// collaborator with a session-scoped lifecycle: Start opens the session
// record, Append* calls add facts as they happen, Finalize closes it.
// Appends are fire-and-forget; the session core never reads them back.
package journal

import "context"

// SessionStartData opens a session record.
type SessionStartData struct {
	SessionID  string
	Topic      string
	Complexity string
	Pacing     string
}

// StateChangeData records one state machine transition.
type StateChangeData struct {
	SessionID  string
	From       string
	To         string
	Trigger    string
	PositionMs int64 // lesson track position at the transition
}

// InterruptionData records the outcome of one interruption attempt.
type InterruptionData struct {
	SessionID  string
	Transcript string
	Answer     string
	Outcome    string // "answered", "capture-failed", "abandoned"
	PositionMs int64  // lesson position at interrupt
	DurationMs int64
}

// QuizAnswerData records one quiz interaction.
type QuizAnswerData struct {
	SessionID     string
	QuestionIndex int
	SelectedIndex int // -1 when skipped
	CorrectIndex  int
	Correct       bool
	Skipped       bool
	Undone        bool // true when this entry records a previous() reversal
}

// RatingData records the workload questionnaire submission.
type RatingData struct {
	SessionID    string
	MentalDemand int
	Performance  int
	Effort       int
	Frustration  int
}

// LLMRequestData records a single generation service call.
type LLMRequestData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// FinalizeData closes a session record.
type FinalizeData struct {
	SessionID    string
	Outcome      string // "finished", "error", "aborted"
	QuizScore    int
	QuizTotal    int
	DurationSecs int
}

// Recorder is the append-only journal consumed by the session machine.
// Implementations must treat every call as best-effort: a failed append is
// the implementation's problem, not the caller's.
type Recorder interface {
	Start(ctx context.Context, data SessionStartData) error
	AppendStateChange(ctx context.Context, data StateChangeData) error
	AppendInterruption(ctx context.Context, data InterruptionData) error
	AppendQuizAnswer(ctx context.Context, data QuizAnswerData) error
	AppendRating(ctx context.Context, data RatingData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestData) error
	Finalize(ctx context.Context, data FinalizeData) error
}

// Nop is a Recorder that discards everything. Used in tests and when no
// database is configured.
type Nop struct{}

var _ Recorder = Nop{}

func (Nop) Start(context.Context, SessionStartData) error             { return nil }
func (Nop) AppendStateChange(context.Context, StateChangeData) error  { return nil }
func (Nop) AppendInterruption(context.Context, InterruptionData) error { return nil }
func (Nop) AppendQuizAnswer(context.Context, QuizAnswerData) error    { return nil }
func (Nop) AppendRating(context.Context, RatingData) error            { return nil }
func (Nop) AppendLLMRequest(context.Context, LLMRequestData) error    { return nil }
func (Nop) Finalize(context.Context, FinalizeData) error              { return nil }
