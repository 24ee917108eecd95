package session

// State is the top-level session state.
type State int

const (
	StateLoading State = iota
	StatePlaying
	StateListening
	StateProcessing
	StateAnswering
	StateQuiz
	StateRating
	StateFinished
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "LOADING"
	case StatePlaying:
		return "PLAYING"
	case StateListening:
		return "LISTENING"
	case StateProcessing:
		return "PROCESSING"
	case StateAnswering:
		return "ANSWERING"
	case StateQuiz:
		return "QUIZ"
	case StateRating:
		return "RATING"
	case StateFinished:
		return "FINISHED"
	case StateError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Mode is the derived presentation signal consumed by the UI layer.
// It is a pure function of State.
type Mode string

const (
	ModeDefault      Mode = "default"
	ModeExplanation  Mode = "explanation"
	ModeInterruption Mode = "interruption"
	ModeQuiz         Mode = "quiz"
)

// ModeFor maps a state to its presentation mode.
func ModeFor(s State) Mode {
	switch s {
	case StatePlaying:
		return ModeExplanation
	case StateListening, StateProcessing, StateAnswering:
		return ModeInterruption
	case StateQuiz:
		return ModeQuiz
	}
	return ModeDefault
}
