package config

// Frame settings
const (
	FrameWidth  = 1600
	FrameHeight = 900
)

// Analysis settings
const (
	// TargetFrameRate is the visual tick rate the sampler aims for when
	// choosing its power-of-two window size.
	TargetFrameRate = 12.0

	// Audible band of interest, bounded by the piano-adjacent extremes
	// C0 and A8.
	MinFrequency = 16.35
	MaxFrequency = 7902.13

	// MaxMIDI is the upper end of the MIDI pitch scale used to place
	// glyphs horizontally.
	MaxMIDI = 127.0
)

// Note clustering limits. An absorption that would stretch a note's
// range beyond either bound is rejected outright, never clamped.
const (
	MaxMIDIRange      = 1.0
	MaxAmplitudeRange = 0.25
)
