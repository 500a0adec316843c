package audio

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/argusdusty/gofft"

	"github.com/synesthete/synesthete/internal/config"
	"github.com/synesthete/synesthete/internal/music"
)

// Analyzer converts windowed sample frames into spectral bins.
type Analyzer struct{}

// NewAnalyzer creates a spectral analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Spectrum runs an FFT over one windowed frame and returns the
// (frequency, amplitude) bins within the audible band of interest,
// C0 (~16.35 Hz) through A8 (~7902 Hz). Amplitudes carry power-spectral-
// density scaling: |X_k| / sqrt(N).
//
// The transform requires a power-of-two input length; violating that
// precondition is an error fatal to the current tick only. Callers log
// it and skip rendering rather than crash.
func (a *Analyzer) Spectrum(samples []float64, sampleRate int) ([]music.Bin, error) {
	n := len(samples)
	if n == 0 {
		return nil, nil
	}

	data := gofft.Float64ToComplex128Array(samples)
	if err := gofft.FFT(data); err != nil {
		return nil, fmt.Errorf("fft over %d samples: %w", n, err)
	}

	scale := 1 / math.Sqrt(float64(n))
	binWidth := float64(sampleRate) / float64(n)

	// Positive frequencies only; the input is real so the upper half of
	// the transform mirrors the lower.
	bins := make([]music.Bin, 0, n/2)
	for k := 0; k <= n/2; k++ {
		freq := float64(k) * binWidth
		if freq < config.MinFrequency || freq > config.MaxFrequency {
			continue
		}
		bins = append(bins, music.Bin{
			Frequency: float32(freq),
			Amplitude: float32(cmplx.Abs(data[k]) * scale),
		})
	}

	return bins, nil
}
