package audio

import "time"

// Player binds one engine to one loaded buffer for the lifetime of a logical
// role (the lesson narration, or a transient interruption answer). Closing a
// player releases its rendering path even if playback never completed.
type Player struct {
	engine *Engine
	closed bool
}

// NewPlayer decodes the encoded bytes and builds an engine at the given
// play-rate. Returns *ErrDecode if the buffer is malformed.
func NewPlayer(data []byte, sampleRate, channels int, rate float64, clock Clock, sink Sink) (*Player, error) {
	track, err := DecodePCM16(data, sampleRate, channels)
	if err != nil {
		return nil, err
	}
	return &Player{engine: NewEngine(track, rate, clock, sink)}, nil
}

// Play begins or resumes playback. onComplete fires once on natural
// completion of this play cycle.
func (p *Player) Play(onComplete func()) {
	if p.closed {
		return
	}
	p.engine.Play(onComplete)
}

// Pause freezes the position, preserving it for the next Play.
func (p *Player) Pause() {
	if p.closed {
		return
	}
	p.engine.Pause()
}

// Stop halts playback and rewinds to the start.
func (p *Player) Stop() {
	if p.closed {
		return
	}
	p.engine.Stop()
}

// Close stops playback and releases the rendering path. Idempotent.
func (p *Player) Close() {
	if p.closed {
		return
	}
	p.engine.Stop()
	p.closed = true
}

// Position returns the current logical position.
func (p *Player) Position() time.Duration {
	return p.engine.Position()
}

// Duration returns the track length.
func (p *Player) Duration() time.Duration {
	return p.engine.Duration()
}

// Playing reports whether the player is rendering.
func (p *Player) Playing() bool {
	if p.closed {
		return false
	}
	return p.engine.Playing()
}

// SpectrumSample returns the live spectrum bins, zeroed when not playing.
func (p *Player) SpectrumSample() [SpectrumBins]float64 {
	if p.closed {
		return [SpectrumBins]float64{}
	}
	return p.engine.SpectrumSample()
}
