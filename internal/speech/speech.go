// Package speech wraps the external generative audio operations: turning
// text into narration audio and answering a recorded spoken question. The
// session core treats both as opaque calls that either succeed or fail.
package speech

import (
	"context"
	"fmt"
)

// Clip is synthesized audio: encoded PCM16 bytes plus the format the
// synthesizer reports alongside them.
type Clip struct {
	Data       []byte
	SampleRate int
	Channels   int
}

// RecordedAudio is a finished capture handed to the answer service.
type RecordedAudio struct {
	Data []byte
	MIME string
}

// AnswerResult is the answer service's output for one spoken question.
type AnswerResult struct {
	Transcript string
	Answer     string
}

// Synthesizer turns text into speech audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*Clip, error)
}

// Answerer answers a spoken question about a lesson script.
type Answerer interface {
	Answer(ctx context.Context, script string, audio RecordedAudio) (*AnswerResult, error)
}

// ErrSynthesis indicates speech synthesis failed.
type ErrSynthesis struct {
	Err error
}

func (e *ErrSynthesis) Error() string {
	return fmt.Sprintf("speech synthesis: %v", e.Err)
}

func (e *ErrSynthesis) Unwrap() error { return e.Err }

// ErrAnswer indicates the spoken-question answer pipeline failed.
type ErrAnswer struct {
	Err error
}

func (e *ErrAnswer) Error() string {
	return fmt.Sprintf("answer question: %v", e.Err)
}

func (e *ErrAnswer) Unwrap() error { return e.Err }
