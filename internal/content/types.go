package content

import "fmt"

// Complexity selects how deep the generated lesson goes.
type Complexity string

const (
	ComplexitySimple  Complexity = "SIMPLE"
	ComplexityComplex Complexity = "COMPLEX"
)

// Pacing selects the narration speed.
type Pacing string

const (
	PacingNormal Pacing = "NORMAL"
	PacingFast   Pacing = "FAST"
)

// SessionConfig is the immutable input a session is created with.
type SessionConfig struct {
	Topic      string
	Complexity Complexity
	Pacing     Pacing
}

// Validate checks the configuration before a session starts.
func (c SessionConfig) Validate() error {
	if c.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	switch c.Complexity {
	case ComplexitySimple, ComplexityComplex:
	default:
		return fmt.Errorf("unknown complexity %q", c.Complexity)
	}
	switch c.Pacing {
	case PacingNormal, PacingFast:
	default:
		return fmt.Errorf("unknown pacing %q", c.Pacing)
	}
	return nil
}

// QuizQuestion is one multiple-choice question.
// Invariant: 0 <= CorrectIndex < len(Options).
type QuizQuestion struct {
	Prompt       string
	Options      []string
	CorrectIndex int
}

// LessonContent is everything produced for one session: the narration script,
// its synthesized audio, and the quiz. Immutable after creation.
type LessonContent struct {
	Script string
	Audio  []byte
	// SampleRate and Channels describe the Audio encoding as reported by
	// the synthesizer.
	SampleRate int
	Channels   int
	Quiz       []QuizQuestion
}

// WorkloadRating holds four independent 0-100 questionnaire sliders.
type WorkloadRating struct {
	MentalDemand int
	Performance  int
	Effort       int
	Frustration  int
}

// Clamp forces every slider into the 0-100 range.
func (r WorkloadRating) Clamp() WorkloadRating {
	return WorkloadRating{
		MentalDemand: clamp01(r.MentalDemand),
		Performance:  clamp01(r.Performance),
		Effort:       clamp01(r.Effort),
		Frustration:  clamp01(r.Frustration),
	}
}

func clamp01(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// SessionResult is handed to the caller when a session finishes.
type SessionResult struct {
	Config    SessionConfig
	QuizScore int
	QuizTotal int
	Rating    WorkloadRating
}
