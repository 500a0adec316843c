// Package visualizer orchestrates the per-tick pipeline: sample the
// track at the playback position, transform to a spectrum, cluster bins
// into notes and composite them into a frame.
package visualizer

import (
	"fmt"
	"image"

	"github.com/charmbracelet/log"

	"github.com/synesthete/synesthete/internal/audio"
	"github.com/synesthete/synesthete/internal/config"
	"github.com/synesthete/synesthete/internal/music"
	"github.com/synesthete/synesthete/internal/renderer"
)

// Synesthetizer owns one track's analysis pipeline. It is driven from a
// single tick loop and holds no locks; the audio.Loader is the only
// background worker and hands tracks over through LoadTrack.
type Synesthetizer struct {
	logger     *log.Logger
	analyzer   *audio.Analyzer
	compositor *renderer.Compositor

	track   *audio.Track
	sampler *audio.Sampler

	lastNotes []music.Note
}

// New creates a pipeline with no track loaded. Ticks before LoadTrack
// produce frames (blank or overlay-persisted) but run no analysis.
func New(palette config.ColorPalette, logger *log.Logger) *Synesthetizer {
	return &Synesthetizer{
		logger:     logger,
		analyzer:   audio.NewAnalyzer(),
		compositor: renderer.NewCompositor(palette, logger),
	}
}

// LoadTrack installs a track and sizes the analysis window for its
// sample rate. The window size is fixed for the track's lifetime.
func (s *Synesthetizer) LoadTrack(track *audio.Track) {
	s.track = track
	s.sampler = audio.NewSampler(track.SampleRate)
	s.logger.Info("track loaded",
		"name", track.Name,
		"duration", track.Duration(),
		"sample_rate", track.SampleRate,
		"samples_per_frame", s.sampler.SamplesPerFrame())
}

// Track returns the loaded track, or nil.
func (s *Synesthetizer) Track() *audio.Track {
	return s.track
}

// SamplesPerFrame returns the analysis window size for the loaded
// track, or 0 when no track is loaded.
func (s *Synesthetizer) SamplesPerFrame() int {
	if s.sampler == nil {
		return 0
	}
	return s.sampler.SamplesPerFrame()
}

// FrameRate returns the tick rate the loaded track analyses at:
// sample rate over window size. 0 when no track is loaded.
func (s *Synesthetizer) FrameRate() float64 {
	if s.track == nil || s.sampler == nil {
		return 0
	}
	return float64(s.track.SampleRate) / float64(s.sampler.SamplesPerFrame())
}

// RequestSnapshot arms a one-shot PNG write of the next composed frame.
func (s *Synesthetizer) RequestSnapshot(path string) {
	s.compositor.RequestSnapshot(path)
}

// NewFrame runs one tick. While playing it analyses the window at
// position (in seconds) and paints the detected notes; while stopped or
// with no track loaded it composes an empty tick, which still honours
// overlay persistence and a pending snapshot.
//
// A transform error skips the tick entirely: the compositor's state is
// untouched and the error is returned for the caller to log.
func (s *Synesthetizer) NewFrame(position float64, playing, overlay bool) (*image.NRGBA, error) {
	var notes []music.Note

	if playing && s.track != nil {
		samples := s.sampler.Window(s.track, position)
		bins, err := s.analyzer.Spectrum(samples, s.track.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("analysing at %.3fs: %w", position, err)
		}
		notes = music.FindTones(bins)
	}

	s.lastNotes = notes
	return s.compositor.Compose(notes, overlay)
}

// Notes returns the notes detected on the most recent tick, ascending by
// peak amplitude. Display only; the slice is owned by the pipeline.
func (s *Synesthetizer) Notes() []music.Note {
	return s.lastNotes
}
