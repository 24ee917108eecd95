package capture

import "context"

// MockRecorder is a scripted Recorder for tests.
type MockRecorder struct {
	StartErr error
	StopErr  error
	Data     []byte

	Started   int
	Stopped   int
	Discarded int
	recording bool
}

var _ Recorder = (*MockRecorder)(nil)

func (m *MockRecorder) Start(context.Context) error {
	m.Started++
	if m.StartErr != nil {
		return m.StartErr
	}
	m.recording = true
	return nil
}

func (m *MockRecorder) Stop() ([]byte, error) {
	m.Stopped++
	m.recording = false
	if m.StopErr != nil {
		return nil, m.StopErr
	}
	return m.Data, nil
}

func (m *MockRecorder) Discard() {
	m.Discarded++
	m.recording = false
}

func (m *MockRecorder) MIME() string { return "audio/wav" }

// Recording reports whether a capture is in flight.
func (m *MockRecorder) Recording() bool { return m.recording }
