// Package audio turns audio files into analysis-ready sample data:
// format decoders, the materialized Track and its background loader,
// the per-tick frame sampler and the spectral analyzer.
package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Decoder is the interface all audio format decoders implement. Decoders
// yield mono float32 samples in [-1, 1]; multi-channel sources are
// reduced by taking the first channel, not by averaging.
type Decoder interface {
	// ReadChunk reads up to numSamples mono samples. Returns io.EOF when
	// the stream is exhausted.
	ReadChunk(numSamples int) ([]float32, error)

	// SampleRate returns the audio sample rate in Hz.
	SampleRate() int

	// NumChannels returns the source channel count (1=mono, 2=stereo).
	NumChannels() int

	// Close releases the underlying file.
	Close() error
}

// NewDecoder picks a decoder by file extension.
func NewDecoder(filename string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return NewWAVDecoder(filename)
	case ".mp3":
		return NewMP3Decoder(filename)
	case ".flac":
		return NewFLACDecoder(filename)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", filepath.Ext(filename))
	}
}
