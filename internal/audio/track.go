package audio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// loadChunkSize is the decoder read granularity while materializing a
// track. Large enough to keep decoder call overhead negligible.
const loadChunkSize = 1 << 16

// Track is a fully materialized mono audio asset. The analysis pipeline
// only ever sees loaded tracks; decoding happens up front (or on the
// background Loader).
type Track struct {
	Name       string
	Samples    []float32
	SampleRate int
}

// Duration returns the track length in seconds.
func (t *Track) Duration() float64 {
	if t.SampleRate == 0 {
		return 0
	}
	return float64(len(t.Samples)) / float64(t.SampleRate)
}

// LoadTrack decodes an entire audio file into memory.
func LoadTrack(filename string) (*Track, error) {
	dec, err := NewDecoder(filename)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var samples []float32
	for {
		chunk, err := dec.ReadChunk(loadChunkSize)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("decoding %s: %w", filename, err)
		}
		samples = append(samples, chunk...)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio data in %s", filename)
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return &Track{
		Name:       name,
		Samples:    samples,
		SampleRate: dec.SampleRate(),
	}, nil
}

// loadResult pairs a loaded track with its decode error.
type loadResult struct {
	track *Track
	err   error
}

// Loader decodes audio files on a background goroutine so the tick loop
// never blocks on I/O. At most one load is in flight; starting a new one
// abandons the result of the previous.
type Loader struct {
	active chan loadResult
}

// NewLoader creates an idle loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load starts decoding filename in the background.
func (l *Loader) Load(filename string) {
	ch := make(chan loadResult, 1)
	l.active = ch

	go func() {
		track, err := LoadTrack(filename)
		ch <- loadResult{track: track, err: err}
	}()
}

// Loading reports whether a load is in flight.
func (l *Loader) Loading() bool {
	return l.active != nil
}

// CheckLoaded polls for a finished load without blocking. It returns
// (nil, nil) while decoding is still in progress or no load was started.
func (l *Loader) CheckLoaded() (*Track, error) {
	if l.active == nil {
		return nil, nil
	}

	select {
	case res := <-l.active:
		l.active = nil
		return res.track, res.err
	default:
		return nil, nil
	}
}

// Wait blocks until the in-flight load finishes.
func (l *Loader) Wait() (*Track, error) {
	if l.active == nil {
		return nil, fmt.Errorf("no load in progress")
	}
	res := <-l.active
	l.active = nil
	return res.track, res.err
}
