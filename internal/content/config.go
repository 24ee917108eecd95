package content

// GenConfig tunes lesson and quiz generation. Rates and word targets are
// configuration, not behavior: the session reads them once at start and
// never varies them mid-session.
type GenConfig struct {
	// SimpleWordTarget and ComplexWordTarget are the approximate script
	// lengths requested per complexity variant.
	SimpleWordTarget  int
	ComplexWordTarget int

	// NormalRate and FastRate are the playback rates per pacing variant.
	NormalRate float64
	FastRate   float64

	// QuizQuestions is the number of questions requested.
	QuizQuestions int

	// QuizOptions is the number of options per question.
	QuizOptions int

	// MaxTokens caps each generation call.
	MaxTokens int

	// Temperature for generation calls.
	Temperature float64
}

// DefaultGenConfig returns the standard generation settings.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		SimpleWordTarget:  180,
		ComplexWordTarget: 340,
		NormalRate:        1.0,
		FastRate:          1.25,
		QuizQuestions:     3,
		QuizOptions:       4,
		MaxTokens:         2048,
		Temperature:       0.4,
	}
}

// WordTarget returns the script length target for a complexity variant.
func (c GenConfig) WordTarget(complexity Complexity) int {
	if complexity == ComplexityComplex {
		return c.ComplexWordTarget
	}
	return c.SimpleWordTarget
}

// PlayRate returns the playback rate for a pacing variant.
func (c GenConfig) PlayRate(pacing Pacing) float64 {
	if pacing == PacingFast {
		return c.FastRate
	}
	return c.NormalRate
}
