package music

import (
	"errors"

	"github.com/synesthete/synesthete/internal/config"
)

// ErrOutOfRange is returned by TryInclude when absorbing a bin would
// stretch the note's MIDI or amplitude range past its hard limit.
var ErrOutOfRange = errors.New("music: bin out of note range")

// Range is a closed [Min, Max] interval.
type Range struct {
	Min float32
	Max float32
}

// Width returns Max - Min.
func (r Range) Width() float32 { return r.Max - r.Min }

// Distance returns 0 when v lies inside the range, otherwise the gap to
// the nearer bound.
func (r Range) Distance(v float32) float32 {
	switch {
	case v < r.Min:
		return r.Min - v
	case v > r.Max:
		return v - r.Max
	default:
		return 0
	}
}

// extend grows the range minimally to include v: only the nearer bound
// moves. The asymmetry keeps ranges tight around the values actually
// absorbed and is deliberate.
func (r *Range) extend(v float32) {
	if v < r.Min {
		r.Min = v
	} else if v > r.Max {
		r.Max = v
	}
}

// Note accumulates nearby spectral bins into one perceived tone. It
// lives for a single analysis tick: created from the first unclaimed
// bin, grown by TryInclude, discarded when the next tick begins.
type Note struct {
	PeakPitch     Pitch
	PeakAmplitude float32
	AmpRange      Range
	MIDIRange     Range
}

// NewNote creates a zero-width note whose ranges collapse onto the
// single input value.
func NewNote(pitch Pitch, amplitude float32) Note {
	return Note{
		PeakPitch:     pitch,
		PeakAmplitude: amplitude,
		AmpRange:      Range{Min: amplitude, Max: amplitude},
		MIDIRange:     Range{Min: pitch.MIDI(), Max: pitch.MIDI()},
	}
}

// MIDI returns the MIDI note number of the loudest absorbed bin.
func (n *Note) MIDI() float32 { return n.PeakPitch.MIDI() }

// Frequency returns the frequency of the loudest absorbed bin.
func (n *Note) Frequency() float32 { return n.PeakPitch.Frequency() }

// Amplitude returns the loudest absorbed amplitude.
func (n *Note) Amplitude() float32 { return n.PeakAmplitude }

// DistanceFromMIDI returns how far a MIDI value sits outside the note's
// current MIDI range (0 when inside).
func (n *Note) DistanceFromMIDI(midi float32) float32 {
	return n.MIDIRange.Distance(midi)
}

// TryInclude absorbs a bin into the note, or returns ErrOutOfRange and
// leaves the note untouched. A bin is rejected when its gap from either
// range plus that range's current width would exceed the hard limit;
// limits are never exceeded even transiently.
func (n *Note) TryInclude(pitch Pitch, amplitude float32) error {
	if n.MIDIRange.Distance(pitch.MIDI())+n.MIDIRange.Width() > config.MaxMIDIRange ||
		n.AmpRange.Distance(amplitude)+n.AmpRange.Width() > config.MaxAmplitudeRange {
		return ErrOutOfRange
	}

	n.AmpRange.extend(amplitude)
	n.MIDIRange.extend(pitch.MIDI())

	if amplitude > n.PeakAmplitude {
		n.PeakAmplitude = amplitude
		n.PeakPitch = pitch
	}

	return nil
}
