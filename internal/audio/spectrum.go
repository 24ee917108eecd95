package audio

import (
	"math"
	"time"
)

// SpectrumBins is the fixed number of magnitude bins returned by a spectrum
// sample. Sized for a bar visualizer polled once per animation tick.
const SpectrumBins = 32

// spectrumWindow is the number of frames analyzed around the playhead.
const spectrumWindow = 1024

// spectrumAt computes magnitude bins for the window of samples ending at the
// given position. Bin frequencies are log-spaced from 60 Hz up to half the
// sample rate, each evaluated with the Goertzel recurrence.
func spectrumAt(t *Track, pos time.Duration) [SpectrumBins]float64 {
	var bins [SpectrumBins]float64
	frames := len(t.Samples) / t.Channels
	if frames == 0 {
		return bins
	}

	end := t.FrameAt(pos) + 1
	start := end - spectrumWindow
	if start < 0 {
		start = 0
	}
	n := end - start
	if n < 2 {
		return bins
	}

	window := make([]float64, n)
	for i := range n {
		// Hann window to limit leakage between bins.
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		window[i] = t.Mono(start+i) * w
	}

	nyquist := float64(t.SampleRate) / 2
	minFreq := 60.0
	if minFreq >= nyquist {
		minFreq = nyquist / 2
	}
	ratio := math.Pow(nyquist/minFreq, 1/float64(SpectrumBins))

	for b := range SpectrumBins {
		freq := minFreq * math.Pow(ratio, float64(b))
		bins[b] = goertzel(window, freq, t.SampleRate)
	}
	return bins
}

// goertzel returns the normalized magnitude of a single frequency component.
func goertzel(samples []float64, freq float64, sampleRate int) float64 {
	n := len(samples)
	k := freq / float64(sampleRate)
	w := 2 * math.Pi * k
	coeff := 2 * math.Cos(w)

	var s0, s1, s2 float64
	for _, x := range samples {
		s0 = x + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}

	power := s1*s1 + s2*s2 - coeff*s1*s2
	if power < 0 {
		power = 0
	}
	return math.Sqrt(power) * 2 / float64(n)
}
