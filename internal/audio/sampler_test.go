package audio

import (
	"math"
	"testing"
)

// TestSamplesPerFrame verifies the doubling search lands on the power of
// two whose frame rate is nearest the 12 Hz target. Catches off-by-one
// stopping conditions (stopping one doubling early or late).
func TestSamplesPerFrame(t *testing.T) {
	testCases := []struct {
		sampleRate int
		want       int
	}{
		// 44100/4096 = 10.77 (diff 1.23) beats 44100/2048 = 21.5 and
		// 44100/8192 = 5.38.
		{44100, 4096},
		{48000, 4096},
		{22050, 2048},
		{8000, 512},
		// Degenerate tiny rate: 24/2 = 12 exactly, first doubling never improves.
		{24, 2},
	}

	for _, tc := range testCases {
		if got := SamplesPerFrame(tc.sampleRate); got != tc.want {
			t.Errorf("SamplesPerFrame(%d) = %d, want %d", tc.sampleRate, got, tc.want)
		}
	}

	// The result must always be a power of two; the transform depends on it.
	for _, rate := range []int{11025, 16000, 44100, 48000, 96000, 192000} {
		spf := SamplesPerFrame(rate)
		if spf&(spf-1) != 0 {
			t.Errorf("SamplesPerFrame(%d) = %d, not a power of two", rate, spf)
		}
	}
}

// TestSampler_Window verifies extraction at a playback position: correct
// length, Hann shaping over the extracted portion, zero endpoints.
func TestSampler_Window(t *testing.T) {
	rate := 44100
	track := &Track{
		Name:       "dc",
		Samples:    constSamples(rate, 1.0), // 1 second of DC at full scale
		SampleRate: rate,
	}

	s := NewSampler(rate)
	if s.SamplesPerFrame() != 4096 {
		t.Fatalf("SamplesPerFrame = %d, want 4096", s.SamplesPerFrame())
	}

	win := s.Window(track, 0)
	if len(win) != 4096 {
		t.Fatalf("window length = %d, want 4096", len(win))
	}

	// Hann endpoints are zero and the midpoint passes the input through.
	if win[0] != 0 {
		t.Errorf("window[0] = %g, want 0 (Hann endpoint)", win[0])
	}
	mid := win[len(win)/2]
	if math.Abs(mid-1.0) > 0.01 {
		t.Errorf("window midpoint = %g, want ~1.0", mid)
	}
}

// TestSampler_Window_ZeroPadsAtTrackEnd verifies that a window
// straddling the end of the track is windowed over the extracted length
// and padded with zeros up to the full frame.
func TestSampler_Window_ZeroPadsAtTrackEnd(t *testing.T) {
	rate := 44100
	track := &Track{
		Name:       "short",
		Samples:    constSamples(4096+100, 1.0),
		SampleRate: rate,
	}

	s := NewSampler(rate)

	// Position the window so only 100 samples remain.
	pos := 4096.0 / float64(rate)
	win := s.Window(track, pos)

	if len(win) != 4096 {
		t.Fatalf("window length = %d, want 4096", len(win))
	}
	for i := 100; i < len(win); i++ {
		if win[i] != 0 {
			t.Fatalf("window[%d] = %g, want 0 padding past track end", i, win[i])
		}
	}

	// The extracted portion is Hann-shaped over its own length, so its
	// interior must be non-zero.
	if win[50] == 0 {
		t.Error("window[50] = 0, expected Hann-shaped signal in extracted portion")
	}
}

// TestSampler_Window_PastEnd verifies that a position beyond the track
// yields an all-zero window rather than an error: the analyzer still
// runs and produces an empty/flat spectrum.
func TestSampler_Window_PastEnd(t *testing.T) {
	rate := 44100
	track := &Track{
		Name:       "short",
		Samples:    constSamples(rate, 0.5),
		SampleRate: rate,
	}

	s := NewSampler(rate)
	win := s.Window(track, 10.0)

	if len(win) != s.SamplesPerFrame() {
		t.Fatalf("window length = %d, want %d", len(win), s.SamplesPerFrame())
	}
	for i, v := range win {
		if v != 0 {
			t.Fatalf("window[%d] = %g, want all zeros past track end", i, v)
		}
	}
}

func constSamples(n int, v float32) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = v
	}
	return s
}
