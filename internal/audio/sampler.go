package audio

import (
	"github.com/mjibson/go-dsp/window"

	"github.com/synesthete/synesthete/internal/config"
)

// SamplesPerFrame picks the analysis window size for a track: the power
// of two whose resulting frame rate (sampleRate / size) lands nearest
// the target visual rate. Starting at 2, the size doubles while doubling
// still moves the frame rate closer to the target; the first
// non-improving doubling stops the search. The transform requires a
// power-of-two input, so this is the only sizing policy used.
func SamplesPerFrame(sampleRate int) int {
	spf := 2
	for {
		currentDiff := absf(float64(sampleRate)/float64(spf) - config.TargetFrameRate)
		doubledDiff := absf(float64(sampleRate)/float64(spf*2) - config.TargetFrameRate)
		if doubledDiff >= currentDiff {
			return spf
		}
		spf *= 2
	}
}

// Sampler extracts one windowed analysis frame per tick from a track.
type Sampler struct {
	samplesPerFrame int
	buf             []float64
}

// NewSampler creates a sampler sized for the given track sample rate.
func NewSampler(sampleRate int) *Sampler {
	spf := SamplesPerFrame(sampleRate)
	return &Sampler{
		samplesPerFrame: spf,
		buf:             make([]float64, 0, spf),
	}
}

// SamplesPerFrame returns the chosen power-of-two window size.
func (s *Sampler) SamplesPerFrame() int {
	return s.samplesPerFrame
}

// Window extracts the analysis window at the given playback position:
// up to samplesPerFrame consecutive samples starting at
// position*sampleRate, shaped by a Hann window over the extracted
// length and zero-padded back up to samplesPerFrame when the track end
// was reached. Past the end of the track the window is all zeros, which
// is valid input (the spectrum comes back empty, not an error).
//
// The returned slice is reused between calls.
func (s *Sampler) Window(track *Track, position float64) []float64 {
	s.buf = s.buf[:0]

	start := int(position * float64(track.SampleRate))
	end := start + s.samplesPerFrame
	if end > len(track.Samples) {
		end = len(track.Samples)
	}

	if start >= 0 && end > start {
		for _, v := range track.Samples[start:end] {
			s.buf = append(s.buf, float64(v))
		}
	}

	// Hann is undefined for a single point; a lone trailing sample is
	// close enough to silence to zero out with the padding.
	if len(s.buf) > 1 {
		window.Apply(s.buf, window.Hann)
	} else {
		s.buf = s.buf[:0]
	}

	for len(s.buf) < s.samplesPerFrame {
		s.buf = append(s.buf, 0)
	}

	return s.buf
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
