package visualizer

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/synesthete/synesthete/internal/audio"
	"github.com/synesthete/synesthete/internal/config"
	"github.com/synesthete/synesthete/internal/music"
	"github.com/synesthete/synesthete/internal/renderer"
)

// sineTrack builds an in-memory mono track of a pure tone.
func sineTrack(freq float64, amplitude float32, seconds float64, sampleRate int) *audio.Track {
	n := int(seconds * float64(sampleRate))
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = amplitude * float32(math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return &audio.Track{Name: "sine", Samples: samples, SampleRate: sampleRate}
}

func newTestPipeline() *Synesthetizer {
	return New(config.DefaultPalette(), log.New(io.Discard))
}

// TestPipeline_PureTone runs the whole chain on a 440 Hz sine: the
// window size must land at 4096 for CD-rate audio, the loudest detected
// note must sit on A4 and its glyph must be painted at the matching
// frame position.
func TestPipeline_PureTone(t *testing.T) {
	s := newTestPipeline()
	track := sineTrack(440, 0.5, 1, 44100)
	s.LoadTrack(track)

	if got := s.SamplesPerFrame(); got != 4096 {
		t.Fatalf("SamplesPerFrame = %d, want 4096", got)
	}

	frame, err := s.NewFrame(0.25, true, false)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}

	// Re-run the analysis half to locate the loudest note.
	sampler := audio.NewSampler(track.SampleRate)
	bins, err := audio.NewAnalyzer().Spectrum(sampler.Window(track, 0.25), track.SampleRate)
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	notes := music.FindTones(bins)
	if len(notes) == 0 {
		t.Fatal("no notes detected in a pure tone")
	}

	loudest := notes[len(notes)-1]
	binWidth := float32(44100.0 / 4096.0)
	if d := loudest.Frequency() - 440; d < -binWidth || d > binWidth {
		t.Errorf("loudest note at %.2f Hz, want within one bin of 440", loudest.Frequency())
	}
	if midi := loudest.MIDI(); midi < 68.8 || midi > 69.2 {
		t.Errorf("loudest note MIDI = %.3f, want ~69", midi)
	}

	px := frame.NRGBAAt(renderer.GlyphX(loudest.MIDI()), renderer.GlyphY())
	if px.A == 0 {
		t.Error("no glyph painted at the note's frame position")
	}
}

// TestPipeline_StoppedTickIsBlank verifies that a stopped tick (and a
// tick with no track loaded) produces a frame without running analysis.
func TestPipeline_StoppedTickIsBlank(t *testing.T) {
	s := newTestPipeline()

	frame, err := s.NewFrame(0, true, false)
	if err != nil {
		t.Fatalf("NewFrame without track: %v", err)
	}
	assertBlank(t, frame.Pix, "no track loaded")

	s.LoadTrack(sineTrack(440, 0.5, 1, 44100))
	frame, err = s.NewFrame(0.25, false, false)
	if err != nil {
		t.Fatalf("NewFrame while stopped: %v", err)
	}
	assertBlank(t, frame.Pix, "stopped")
}

// TestPipeline_PastTrackEnd verifies a position beyond the track yields
// a silent window and an empty frame, not an error.
func TestPipeline_PastTrackEnd(t *testing.T) {
	s := newTestPipeline()
	s.LoadTrack(sineTrack(440, 0.5, 1, 44100))

	frame, err := s.NewFrame(5, true, false)
	if err != nil {
		t.Fatalf("NewFrame past end: %v", err)
	}
	assertBlank(t, frame.Pix, "past track end")
}

// TestPipeline_StoppedTickHonoursOverlay verifies overlay persistence
// survives ticks that run no analysis: the accumulated trail is carried,
// not discarded, while playback is stopped.
func TestPipeline_StoppedTickHonoursOverlay(t *testing.T) {
	s := newTestPipeline()
	s.LoadTrack(sineTrack(440, 0.5, 1, 44100))

	playing, err := s.NewFrame(0.25, true, true)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}

	stopped, err := s.NewFrame(0.25, false, true)
	if err != nil {
		t.Fatalf("NewFrame while stopped: %v", err)
	}

	for i := range playing.Pix {
		if stopped.Pix[i] != playing.Pix[i] {
			t.Fatal("stopped overlay tick did not carry the accumulated frame")
		}
	}
}

// TestPipeline_SnapshotWhileStopped verifies a snapshot request is
// serviced even when no analysis runs on the tick.
func TestPipeline_SnapshotWhileStopped(t *testing.T) {
	s := newTestPipeline()
	path := filepath.Join(t.TempDir(), "idle.png")

	s.RequestSnapshot(path)
	if _, err := s.NewFrame(0, false, false); err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("snapshot not written on an idle tick: %v", err)
	}
}

func assertBlank(t *testing.T, pix []uint8, context string) {
	t.Helper()
	for _, b := range pix {
		if b != 0 {
			t.Fatalf("%s: frame has non-zero pixels", context)
		}
	}
}
