package audio

import (
	"errors"
	"math"
	"testing"
	"time"
)

// testTrack returns a 10-second 24 kHz mono sine tone.
func testTrack(t *testing.T) *Track {
	t.Helper()
	const rate = 24000
	samples := make([]int16, 10*rate)
	for i := range samples {
		samples[i] = int16(10000 * math.Sin(2*math.Pi*440*float64(i)/rate))
	}
	return &Track{Samples: samples, SampleRate: rate, Channels: 1}
}

func newTestEngine(t *testing.T, playRate float64) (*Engine, *ManualClock) {
	t.Helper()
	clock := NewManualClock(time.Unix(1000, 0))
	return NewEngine(testTrack(t), playRate, clock, nil), clock
}

// positions must differ by less than one sample period to count as equal.
func near(a, b time.Duration) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < time.Millisecond
}

func TestPositionScalesByPlayRate(t *testing.T) {
	e, clock := newTestEngine(t, 1.25)

	e.Play(nil)
	clock.Advance(2 * time.Second)

	// 2s wall clock at 1.25x = 2.5s of audio.
	if got := e.Position(); !near(got, 2500*time.Millisecond) {
		t.Errorf("Position = %v, want 2.5s", got)
	}
}

func TestPauseFreezesRateAdjustedPosition(t *testing.T) {
	e, clock := newTestEngine(t, 1.25)

	e.Play(nil)
	clock.Advance(2 * time.Second)
	e.Pause()

	want := 2500 * time.Millisecond
	if got := e.Position(); !near(got, want) {
		t.Errorf("Position after pause = %v, want %v", got, want)
	}

	// Frozen while paused.
	clock.Advance(30 * time.Second)
	if got := e.Position(); !near(got, want) {
		t.Errorf("Position drifted while paused: %v, want %v", got, want)
	}
}

func TestPauseResumeAccumulatesIntervals(t *testing.T) {
	e, clock := newTestEngine(t, 0.9)

	intervals := []time.Duration{
		1500 * time.Millisecond,
		700 * time.Millisecond,
		2300 * time.Millisecond,
	}

	var want time.Duration
	for _, iv := range intervals {
		e.Play(nil)
		clock.Advance(iv)
		e.Pause()
		want += time.Duration(float64(iv) * 0.9)

		// Paused gaps of arbitrary length must not affect position.
		clock.Advance(5 * time.Second)
	}

	if got := e.Position(); !near(got, want) {
		t.Errorf("Position after %d play intervals = %v, want %v", len(intervals), got, want)
	}
}

func TestPositionMonotonicWhilePlaying(t *testing.T) {
	e, clock := newTestEngine(t, 1.15)

	e.Play(nil)
	prev := e.Position()
	for range 50 {
		clock.Advance(100 * time.Millisecond)
		pos := e.Position()
		if pos < prev {
			t.Fatalf("Position decreased: %v after %v", pos, prev)
		}
		if pos > e.Duration() {
			t.Fatalf("Position %v exceeds duration %v", pos, e.Duration())
		}
		prev = pos
	}
}

func TestNaturalCompletionFiresOnce(t *testing.T) {
	e, clock := newTestEngine(t, 1.0)

	fired := 0
	e.Play(func() { fired++ })

	clock.Advance(10 * time.Second)
	if fired != 1 {
		t.Fatalf("onComplete fired %d times, want 1", fired)
	}
	if e.Playing() {
		t.Error("still playing after completion")
	}
	if got := e.Position(); got != e.Duration() {
		t.Errorf("Position after completion = %v, want duration %v", got, e.Duration())
	}

	// More time passing must not re-fire.
	clock.Advance(10 * time.Second)
	if fired != 1 {
		t.Errorf("onComplete fired %d times after extra time, want 1", fired)
	}
}

func TestPauseCancelsCompletion(t *testing.T) {
	e, clock := newTestEngine(t, 1.0)

	fired := 0
	e.Play(func() { fired++ })
	clock.Advance(5 * time.Second)
	e.Pause()

	clock.Advance(time.Minute)
	if fired != 0 {
		t.Fatalf("onComplete fired while paused")
	}

	// Resume with a fresh callback; completes after the remaining 5s.
	e.Play(func() { fired++ })
	clock.Advance(5 * time.Second)
	if fired != 1 {
		t.Errorf("onComplete fired %d times after resume, want 1", fired)
	}
}

func TestStaleCallbackAfterStopAndReuse(t *testing.T) {
	e, clock := newTestEngine(t, 1.0)

	staleFired := false
	e.Play(func() { staleFired = true })
	e.Stop()

	// Reuse the engine for a new play cycle.
	currentFired := false
	e.Play(func() { currentFired = true })
	clock.Advance(10 * time.Second)

	if staleFired {
		t.Error("stale callback from the stopped cycle fired")
	}
	if !currentFired {
		t.Error("current cycle callback did not fire")
	}
}

func TestStopResetsPosition(t *testing.T) {
	e, clock := newTestEngine(t, 1.0)

	e.Play(nil)
	clock.Advance(4 * time.Second)
	e.Stop()

	if got := e.Position(); got != 0 {
		t.Errorf("Position after stop = %v, want 0", got)
	}
}

func TestPlayWhilePlayingIsNoOp(t *testing.T) {
	e, clock := newTestEngine(t, 1.0)

	fired := 0
	e.Play(func() { fired++ })
	clock.Advance(2 * time.Second)
	e.Play(func() { fired += 100 })

	clock.Advance(8 * time.Second)
	if fired != 1 {
		t.Errorf("fired = %d, want 1 (second Play must not re-register)", fired)
	}
}

func TestPlayAtEndCompletesImmediately(t *testing.T) {
	e, clock := newTestEngine(t, 1.0)

	e.Play(nil)
	clock.Advance(10 * time.Second)

	done := make(chan struct{})
	e.Play(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("onComplete did not fire for play at end of buffer")
	}
}

// failingSink always errors on Start, like an ExecSink with no player
// binary or a dead audio device.
type failingSink struct {
	starts int
}

func (s *failingSink) Start(*Track, time.Duration, float64) error {
	s.starts++
	return errors.New("device unavailable")
}

func (s *failingSink) Stop() {}

func TestSinkStartFailureKeepsClockRunning(t *testing.T) {
	sink := &failingSink{}
	clock := NewManualClock(time.Unix(1000, 0))
	e := NewEngine(testTrack(t), 1.0, clock, sink)

	fired := 0
	e.Play(func() { fired++ })
	if sink.starts != 1 {
		t.Fatalf("sink starts = %d, want 1", sink.starts)
	}

	clock.Advance(4 * time.Second)
	if got := e.Position(); !near(got, 4*time.Second) {
		t.Errorf("Position with failed sink = %v, want 4s", got)
	}

	clock.Advance(6 * time.Second)
	if fired != 1 {
		t.Errorf("onComplete fired %d times with failed sink, want 1", fired)
	}
}

func TestSpectrumSample(t *testing.T) {
	e, clock := newTestEngine(t, 1.0)

	zero := e.SpectrumSample()
	for i, v := range zero {
		if v != 0 {
			t.Fatalf("bin %d = %v while not playing, want 0", i, v)
		}
	}

	e.Play(nil)
	clock.Advance(time.Second)

	bins := e.SpectrumSample()
	var total float64
	for _, v := range bins {
		total += v
	}
	if total == 0 {
		t.Error("spectrum of a sine tone is all zeros while playing")
	}
}

func TestPlayerCloseReleases(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	data := EncodePCM16(make([]int16, 24000))
	p, err := NewPlayer(data, 24000, 1, 1.0, clock, nil)
	if err != nil {
		t.Fatalf("NewPlayer failed: %v", err)
	}

	fired := false
	p.Play(func() { fired = true })
	p.Close()

	clock.Advance(time.Minute)
	if fired {
		t.Error("completion fired after Close")
	}
	if p.Playing() {
		t.Error("Playing true after Close")
	}

	p.Close() // idempotent
}
