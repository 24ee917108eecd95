package audio

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Engine tracks logical playback position for one decoded track at a fixed
// play-rate. Position advances as rate-scaled wall-clock time while playing
// and is frozen while paused, so a pause/resume cycle at 1.25x lands on the
// same sample a continuous play would have reached.
//
// The natural-completion callback is registered per play cycle and fires
// exactly once, only when the buffer runs out on its own. Pausing or stopping
// cancels it; the next Play registers a fresh one, so a stale callback can
// never fire after the engine has been stopped and reused.
type Engine struct {
	track *Track
	rate  float64
	clock Clock
	sink  Sink

	mu           sync.Mutex
	playing      bool
	pausedOffset time.Duration
	anchor       time.Time
	timer        Timer
	onComplete   func()
	cycle        uint64
}

// NewEngine creates an engine for the given decoded track and play-rate.
// A nil sink renders silently; a nil clock uses the system clock.
func NewEngine(track *Track, rate float64, clock Clock, sink Sink) *Engine {
	if clock == nil {
		clock = NewClock()
	}
	if sink == nil {
		sink = NullSink{}
	}
	return &Engine{track: track, rate: rate, clock: clock, sink: sink}
}

// Duration returns the track length at unit play-rate.
func (e *Engine) Duration() time.Duration {
	return e.track.Duration()
}

// Rate returns the fixed play-rate.
func (e *Engine) Rate() float64 {
	return e.rate
}

// Play begins or resumes rendering from the current paused offset.
// onComplete fires once if the buffer is exhausted naturally; it may be nil.
// No-op if already playing.
func (e *Engine) Play(onComplete func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.playing {
		return
	}

	remaining := e.track.Duration() - e.pausedOffset
	if remaining <= 0 {
		// Already at the end: complete immediately on the caller's goroutine
		// boundary, keeping the one-shot guarantee.
		if onComplete != nil {
			go onComplete()
		}
		return
	}

	e.playing = true
	e.anchor = e.clock.Now()
	e.onComplete = onComplete
	e.cycle++
	cycle := e.cycle

	wall := time.Duration(float64(remaining) / e.rate)
	e.timer = e.clock.AfterFunc(wall, func() { e.complete(cycle) })

	// A failed sink leaves the session silent but the logical clock,
	// completion timer, and position tracking carry on unaffected.
	if err := e.sink.Start(e.track, e.pausedOffset, e.rate); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audio sink start failed: %v\n", err)
	}
}

// Pause freezes the position. No-op if not playing. The elapsed wall-clock
// interval is scaled by the play-rate before it is added to the paused offset:
// this is what keeps the position in logical audio time.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.playing {
		return
	}

	elapsed := e.clock.Now().Sub(e.anchor)
	e.pausedOffset += time.Duration(float64(elapsed) * e.rate)
	if d := e.track.Duration(); e.pausedOffset > d {
		e.pausedOffset = d
	}
	e.halt()
}

// Stop halts rendering and resets the position to zero. Unlike Pause it
// discards the paused offset.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.halt()
	e.pausedOffset = 0
}

// halt cancels the pending completion and stops the sink. Caller holds mu.
func (e *Engine) halt() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.playing {
		e.sink.Stop()
	}
	e.playing = false
	e.onComplete = nil
}

// complete fires the natural-completion callback for the given play cycle.
func (e *Engine) complete(cycle uint64) {
	e.mu.Lock()
	if !e.playing || e.cycle != cycle {
		// Paused, stopped, or restarted since this timer was armed.
		e.mu.Unlock()
		return
	}
	e.pausedOffset = e.track.Duration()
	cb := e.onComplete
	e.halt()
	e.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// Position returns the current logical position. While playing it is derived
// from the anchor timestamp; while paused it is the frozen offset. Never
// exceeds Duration and never decreases while playing.
func (e *Engine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.playing {
		return e.pausedOffset
	}
	elapsed := e.clock.Now().Sub(e.anchor)
	pos := e.pausedOffset + time.Duration(float64(elapsed)*e.rate)
	if d := e.track.Duration(); pos > d {
		return d
	}
	return pos
}

// Playing reports whether the engine is currently rendering.
func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// SpectrumSample returns magnitude bins for the current rendering instant.
// Zeroed when not playing. Read-only over the decoded buffer, so it is safe
// to poll from a render loop at any cadence.
func (e *Engine) SpectrumSample() [SpectrumBins]float64 {
	e.mu.Lock()
	playing := e.playing
	var pos time.Duration
	if playing {
		elapsed := e.clock.Now().Sub(e.anchor)
		pos = e.pausedOffset + time.Duration(float64(elapsed)*e.rate)
	}
	e.mu.Unlock()

	if !playing {
		return [SpectrumBins]float64{}
	}
	return spectrumAt(e.track, pos)
}
