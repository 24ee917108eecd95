package speech

import "context"

// MockSynthesizer returns a fixed clip or error and records inputs.
type MockSynthesizer struct {
	Clip  *Clip
	Err   error
	Texts []string
}

func (m *MockSynthesizer) Synthesize(_ context.Context, text string) (*Clip, error) {
	m.Texts = append(m.Texts, text)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Clip, nil
}

// MockAnswerer returns a fixed result or error and records inputs.
type MockAnswerer struct {
	Result  *AnswerResult
	Err     error
	Scripts []string
	Audio   []RecordedAudio
}

func (m *MockAnswerer) Answer(_ context.Context, script string, audio RecordedAudio) (*AnswerResult, error) {
	m.Scripts = append(m.Scripts, script)
	m.Audio = append(m.Audio, audio)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}
