package audio

import (
	"fmt"
	"io"
	"os/exec"
	"time"
)

// Sink is the platform rendering path. The engine starts it when playback
// begins and stops it on pause/stop; position tracking never depends on it,
// so a sink that drifts or fails cannot corrupt the logical clock.
type Sink interface {
	// Start begins rendering the track from the given logical offset at the
	// given play-rate.
	Start(t *Track, offset time.Duration, rate float64) error

	// Stop halts rendering. Safe to call when not rendering.
	Stop()
}

// NullSink renders nothing. Used headless and in tests.
type NullSink struct{}

func (NullSink) Start(*Track, time.Duration, float64) error { return nil }
func (NullSink) Stop()                                      {}

// ExecSink pipes raw PCM to an external player process (ffplay by default).
type ExecSink struct {
	// Command is the player binary. Empty means "ffplay".
	Command string

	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// LookupExecSink returns an ExecSink if a known player binary is on PATH.
func LookupExecSink() (*ExecSink, bool) {
	for _, name := range []string{"ffplay"} {
		if _, err := exec.LookPath(name); err == nil {
			return &ExecSink{Command: name}, true
		}
	}
	return nil, false
}

func (s *ExecSink) Start(t *Track, offset time.Duration, rate float64) error {
	s.Stop()

	name := s.Command
	if name == "" {
		name = "ffplay"
	}
	args := []string{
		"-loglevel", "quiet", "-nodisp", "-autoexit",
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", t.SampleRate),
		"-ch_layout", layoutFor(t.Channels),
	}
	if rate != 1.0 {
		args = append(args, "-af", fmt.Sprintf("atempo=%g", rate))
	}
	args = append(args, "-i", "-")

	cmd := exec.Command(name, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("player stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start player: %w", err)
	}

	s.cmd = cmd
	s.stdin = stdin

	from := t.FrameAt(offset) * t.Channels
	data := EncodePCM16(t.Samples[from:])
	go func() {
		stdin.Write(data)
		stdin.Close()
	}()
	return nil
}

func (s *ExecSink) Stop() {
	if s.cmd == nil {
		return
	}
	s.stdin.Close()
	s.cmd.Process.Kill()
	s.cmd.Wait()
	s.cmd = nil
	s.stdin = nil
}

func layoutFor(channels int) string {
	if channels == 2 {
		return "stereo"
	}
	return "mono"
}
