package audio

import (
	"errors"
	"testing"
	"time"
)

func TestDecodePCM16_RoundTrip(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768, 12345, -12345}
	data := EncodePCM16(samples)

	track, err := DecodePCM16(data, 24000, 1)
	if err != nil {
		t.Fatalf("DecodePCM16 failed: %v", err)
	}

	if len(track.Samples) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(track.Samples), len(samples))
	}
	for i, s := range samples {
		if track.Samples[i] != s {
			t.Errorf("sample %d = %d, want %d", i, track.Samples[i], s)
		}
	}
}

func TestDecodePCM16_OddLengthTruncatesFinalByte(t *testing.T) {
	data := EncodePCM16([]int16{100, 200, 300})
	data = append(data, 0x7f) // partial trailing sample

	track, err := DecodePCM16(data, 24000, 1)
	if err != nil {
		t.Fatalf("DecodePCM16 failed on odd-length buffer: %v", err)
	}
	if len(track.Samples) != 3 {
		t.Errorf("decoded %d samples, want 3", len(track.Samples))
	}
}

func TestDecodePCM16_Undersized(t *testing.T) {
	cases := [][]byte{nil, {}, {0x01}}
	for _, data := range cases {
		_, err := DecodePCM16(data, 24000, 1)
		var decodeErr *ErrDecode
		if !errors.As(err, &decodeErr) {
			t.Errorf("DecodePCM16(%v) error = %v, want *ErrDecode", data, err)
		}
	}
}

func TestDecodePCM16_InvalidFormat(t *testing.T) {
	data := EncodePCM16([]int16{1, 2, 3, 4})

	if _, err := DecodePCM16(data, 0, 1); err == nil {
		t.Error("expected error for zero sample rate")
	}
	if _, err := DecodePCM16(data, 24000, 0); err == nil {
		t.Error("expected error for zero channels")
	}
}

func TestTrackDuration(t *testing.T) {
	// 48000 mono frames at 24 kHz = 2 seconds.
	track := &Track{Samples: make([]int16, 48000), SampleRate: 24000, Channels: 1}
	if got := track.Duration(); got != 2*time.Second {
		t.Errorf("Duration = %v, want 2s", got)
	}

	// Stereo halves the frame count.
	stereo := &Track{Samples: make([]int16, 48000), SampleRate: 24000, Channels: 2}
	if got := stereo.Duration(); got != time.Second {
		t.Errorf("stereo Duration = %v, want 1s", got)
	}
}
