// Package music holds the pitch and note model: frequency/MIDI
// conversion and the greedy clustering of spectral bins into notes.
package music

import "github.com/chewxy/math32"

// Pitch is an immutable frequency with its continuous MIDI note number.
// MIDI values are not quantised: 69.0 is A4 (440 Hz) and 12 units span
// one octave. Conversion per <https://newt.phys.unsw.edu.au/jw/notes.html>.
type Pitch struct {
	frequency float32
	midi      float32
}

// PitchFromFrequency builds a Pitch from a frequency in Hz.
func PitchFromFrequency(frequency float32) Pitch {
	return Pitch{
		frequency: frequency,
		midi:      12*math32.Log2(frequency/440) + 69,
	}
}

// PitchFromMIDI builds a Pitch from a continuous MIDI note number.
func PitchFromMIDI(midi float32) Pitch {
	return Pitch{
		frequency: 440 * math32.Pow(2, (midi-69)/12),
		midi:      midi,
	}
}

// Frequency returns the pitch in Hz.
func (p Pitch) Frequency() float32 { return p.frequency }

// MIDI returns the continuous MIDI note number.
func (p Pitch) MIDI() float32 { return p.midi }

// Equal reports whether two pitches have the same frequency. The MIDI
// value is derived, so frequency alone defines identity.
func (p Pitch) Equal(other Pitch) bool {
	return p.frequency == other.frequency
}
