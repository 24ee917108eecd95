package capture

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sync"
	"syscall"
)

// ExecRecorder captures microphone audio by running an external recorder
// process (arecord) and collecting its stdout until stopped.
type ExecRecorder struct {
	// Command is the recorder binary. Empty means "arecord".
	Command string

	mu  sync.Mutex
	cmd *exec.Cmd
	buf *bytes.Buffer
}

var _ Recorder = (*ExecRecorder)(nil)

// LookupExecRecorder returns an ExecRecorder if a known recorder binary is
// on PATH.
func LookupExecRecorder() (*ExecRecorder, bool) {
	if _, err := exec.LookPath("arecord"); err == nil {
		return &ExecRecorder{Command: "arecord"}, true
	}
	return nil, false
}

func (r *ExecRecorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return &ErrCapture{Err: fmt.Errorf("capture already in progress")}
	}

	name := r.Command
	if name == "" {
		name = "arecord"
	}

	buf := &bytes.Buffer{}
	cmd := exec.CommandContext(ctx, name, "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "wav")
	cmd.Stdout = buf

	if err := cmd.Start(); err != nil {
		return &ErrCapture{Err: err}
	}

	r.cmd = cmd
	r.buf = buf
	return nil
}

func (r *ExecRecorder) Stop() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd == nil {
		return nil, &ErrCapture{Err: fmt.Errorf("no capture in progress")}
	}

	// SIGINT lets arecord finalize the WAV header before exiting.
	r.cmd.Process.Signal(syscall.SIGINT)
	r.cmd.Wait()

	data := r.buf.Bytes()
	r.cmd = nil
	r.buf = nil

	if len(data) == 0 {
		return nil, &ErrCapture{Err: fmt.Errorf("recorder produced no data")}
	}
	return data, nil
}

func (r *ExecRecorder) Discard() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd == nil {
		return
	}
	r.cmd.Process.Kill()
	r.cmd.Wait()
	r.cmd = nil
	r.buf = nil
}

func (r *ExecRecorder) MIME() string { return "audio/wav" }
