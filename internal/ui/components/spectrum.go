package components

import (
	"strings"

	"github.com/abhisek/lektor/internal/ui/theme"
)

// spectrumGlyphs are the partial-block characters used for bar heights,
// from silent to full.
var spectrumGlyphs = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Spectrum renders frequency bins as a one-line bar visualizer. Magnitudes
// are expected in [0, 1]; anything above clips to a full bar.
type Spectrum struct {
	Bins []float64
}

// View renders each bin as a two-column bar.
func (s Spectrum) View() string {
	if len(s.Bins) == 0 {
		return ""
	}

	var b strings.Builder
	for _, v := range s.Bins {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		idx := int(v * float64(len(spectrumGlyphs)-1))
		b.WriteRune(spectrumGlyphs[idx])
		b.WriteRune(spectrumGlyphs[idx])
	}

	return theme.SpectrumBar.Render(b.String())
}
