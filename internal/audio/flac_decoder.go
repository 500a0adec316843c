package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

// FLACDecoder implements Decoder for FLAC files.
type FLACDecoder struct {
	stream      *flac.Stream
	file        *os.File
	sampleRate  int
	numSamples  int64
	numChannels int
	position    int64
	pending     []float32
}

// NewFLACDecoder creates a new FLAC decoder. Format metadata comes from
// the stream's own StreamInfo block.
func NewFLACDecoder(filename string) (*FLACDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	// Parse FLAC stream - reads signature and StreamInfo block
	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create FLAC decoder: %w", err)
	}

	info := stream.Info
	return &FLACDecoder{
		stream:      stream,
		file:        f,
		sampleRate:  int(info.SampleRate),
		numSamples:  int64(info.NSamples),
		numChannels: int(info.NChannels),
		position:    0,
	}, nil
}

// ReadChunk reads the next chunk of mono samples.
func (d *FLACDecoder) ReadChunk(numSamples int) ([]float32, error) {
	if d.numSamples > 0 && d.position >= d.numSamples {
		return nil, io.EOF
	}

	samples := make([]float32, 0, numSamples)

	// Drain samples carried over from a frame that straddled the last chunk.
	if len(d.pending) > 0 {
		take := len(d.pending)
		if take > numSamples {
			take = numSamples
		}
		samples = append(samples, d.pending[:take]...)
		d.pending = d.pending[take:]
	}

	for len(samples) < numSamples {
		frame, err := d.stream.ParseNext()
		if err != nil {
			if err == io.EOF {
				if len(samples) == 0 {
					return nil, io.EOF
				}
				d.position += int64(len(samples))
				return samples, nil
			}
			return nil, fmt.Errorf("failed to parse FLAC frame: %w", err)
		}

		// One subframe per channel; keep the first.
		sub := frame.Subframes[0]
		maxVal := float32(int64(1) << (frame.BitsPerSample - 1))
		for i := 0; i < len(sub.Samples); i++ {
			v := float32(sub.Samples[i]) / maxVal
			if len(samples) < numSamples {
				samples = append(samples, v)
			} else {
				d.pending = append(d.pending, v)
			}
		}
	}

	d.position += int64(len(samples))
	return samples, nil
}

// SampleRate returns the sample rate.
func (d *FLACDecoder) SampleRate() int {
	return d.sampleRate
}

// NumSamples returns the total number of samples, 0 when unknown.
func (d *FLACDecoder) NumSamples() int64 {
	return d.numSamples
}

// NumChannels returns the number of audio channels.
func (d *FLACDecoder) NumChannels() int {
	return d.numChannels
}

// Close closes the decoder and releases resources.
func (d *FLACDecoder) Close() error {
	if d.stream != nil {
		d.stream.Close()
	}
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
