package audio

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Track is a decoded audio buffer: little-endian PCM16 samples expanded into
// int16, with the format metadata reported by the producer.
type Track struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

// ErrDecode indicates a byte buffer could not be decoded into PCM samples.
type ErrDecode struct {
	Reason string
}

func (e *ErrDecode) Error() string {
	return fmt.Sprintf("decode audio: %s", e.Reason)
}

// DecodePCM16 decodes little-endian 16-bit PCM bytes into a Track.
// A trailing odd byte (a partial sample) is truncated rather than rejected.
func DecodePCM16(data []byte, sampleRate, channels int) (*Track, error) {
	if sampleRate <= 0 {
		return nil, &ErrDecode{Reason: fmt.Sprintf("invalid sample rate %d", sampleRate)}
	}
	if channels <= 0 {
		return nil, &ErrDecode{Reason: fmt.Sprintf("invalid channel count %d", channels)}
	}
	if len(data) < 2 {
		return nil, &ErrDecode{Reason: fmt.Sprintf("buffer too short (%d bytes)", len(data))}
	}

	n := len(data) / 2
	samples := make([]int16, n)
	for i := range n {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}

	return &Track{
		Samples:    samples,
		SampleRate: sampleRate,
		Channels:   channels,
	}, nil
}

// EncodePCM16 is the inverse of DecodePCM16.
func EncodePCM16(samples []int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

// Duration returns the logical length of the track at unit play-rate.
func (t *Track) Duration() time.Duration {
	frames := len(t.Samples) / t.Channels
	secs := float64(frames) / float64(t.SampleRate)
	return time.Duration(secs * float64(time.Second))
}

// FrameAt returns the frame index corresponding to the given logical position,
// clamped to the track bounds.
func (t *Track) FrameAt(pos time.Duration) int {
	frames := len(t.Samples) / t.Channels
	idx := int(pos.Seconds() * float64(t.SampleRate))
	if idx < 0 {
		return 0
	}
	if idx >= frames {
		return frames - 1
	}
	return idx
}

// Mono returns the sample for frame i folded down to a single channel.
func (t *Track) Mono(i int) float64 {
	var sum float64
	for c := range t.Channels {
		sum += float64(t.Samples[i*t.Channels+c])
	}
	return sum / float64(t.Channels) / 32768.0
}
