package audio

import (
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/synesthete/synesthete/internal/config"
)

// sineWindow generates n samples of a sine at the given frequency,
// Hann-shaped the same way the sampler shapes real frames.
func sineWindow(n int, freq float64, sampleRate int, amplitude float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		hann := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		out[i] = amplitude * math.Sin(2*math.Pi*freq*t) * hann
	}
	return out
}

// TestAnalyzer_Spectrum_DominantBin verifies that a pure 440 Hz tone
// produces its strongest bin near 440 Hz. Catches bin-to-frequency
// mapping errors and half-spectrum indexing bugs.
func TestAnalyzer_Spectrum_DominantBin(t *testing.T) {
	const (
		sampleRate = 44100
		n          = 4096
	)

	bins, err := NewAnalyzer().Spectrum(sineWindow(n, 440, sampleRate, 0.5), sampleRate)
	if err != nil {
		t.Fatalf("Spectrum returned error: %v", err)
	}
	if len(bins) == 0 {
		t.Fatal("Spectrum returned no bins")
	}

	peak := bins[0]
	for _, b := range bins {
		if b.Amplitude > peak.Amplitude {
			peak = b
		}
	}

	binWidth := float64(sampleRate) / float64(n)
	if math.Abs(float64(peak.Frequency)-440) > binWidth {
		t.Errorf("dominant bin at %g Hz, want within %.1f Hz of 440", peak.Frequency, binWidth)
	}
	if peak.Amplitude <= 0 {
		t.Errorf("dominant bin amplitude = %g, want > 0", peak.Amplitude)
	}
}

// TestAnalyzer_Spectrum_BandLimited verifies every returned bin falls in
// the C0..A8 band: no DC, no near-Nyquist content.
func TestAnalyzer_Spectrum_BandLimited(t *testing.T) {
	const sampleRate = 44100
	bins, err := NewAnalyzer().Spectrum(sineWindow(4096, 1000, sampleRate, 1), sampleRate)
	if err != nil {
		t.Fatalf("Spectrum returned error: %v", err)
	}

	for _, b := range bins {
		if float64(b.Frequency) < config.MinFrequency || float64(b.Frequency) > config.MaxFrequency {
			t.Fatalf("bin at %g Hz outside [%g, %g]", b.Frequency, config.MinFrequency, config.MaxFrequency)
		}
	}
}

// TestAnalyzer_Spectrum_NonPowerOfTwo verifies the transform precondition
// surfaces as an error instead of being silently swallowed; the caller
// skips the tick.
func TestAnalyzer_Spectrum_NonPowerOfTwo(t *testing.T) {
	if _, err := NewAnalyzer().Spectrum(make([]float64, 3000), 44100); err == nil {
		t.Error("Spectrum accepted a non-power-of-two input")
	}
}

// TestAnalyzer_Spectrum_Silence verifies an all-zero window yields a
// flat spectrum: bins exist but carry zero amplitude.
func TestAnalyzer_Spectrum_Silence(t *testing.T) {
	bins, err := NewAnalyzer().Spectrum(make([]float64, 4096), 44100)
	if err != nil {
		t.Fatalf("Spectrum returned error: %v", err)
	}
	for _, b := range bins {
		if b.Amplitude != 0 {
			t.Fatalf("silent input produced amplitude %g at %g Hz", b.Amplitude, b.Frequency)
		}
	}
}

// TestAnalyzer_Spectrum_EmptyInput verifies zero-length input is treated
// as "nothing to analyze", not an error.
func TestAnalyzer_Spectrum_EmptyInput(t *testing.T) {
	bins, err := NewAnalyzer().Spectrum(nil, 44100)
	if err != nil {
		t.Fatalf("Spectrum returned error: %v", err)
	}
	if len(bins) != 0 {
		t.Errorf("empty input produced %d bins", len(bins))
	}
}

// TestAnalyzer_Spectrum_MatchesReferenceFFT cross-checks the amplitude
// scaling against an independent FFT implementation. Catches scaling
// regressions (1/N vs 1/sqrt(N)) and coefficient indexing drift.
func TestAnalyzer_Spectrum_MatchesReferenceFFT(t *testing.T) {
	const (
		sampleRate = 44100
		n          = 2048
	)
	samples := sineWindow(n, 523.25, sampleRate, 0.8) // C5

	bins, err := NewAnalyzer().Spectrum(samples, sampleRate)
	if err != nil {
		t.Fatalf("Spectrum returned error: %v", err)
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, samples)

	scale := 1 / math.Sqrt(float64(n))
	binWidth := float64(sampleRate) / float64(n)

	for _, b := range bins {
		k := int(math.Round(float64(b.Frequency) / binWidth))
		want := cmplx.Abs(coeffs[k]) * scale
		if math.Abs(float64(b.Amplitude)-want) > 1e-4 {
			t.Fatalf("bin %d (%g Hz): amplitude %g, reference %g", k, b.Frequency, b.Amplitude, want)
		}
	}
}
