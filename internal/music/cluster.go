package music

import "sort"

// Bin is one (frequency, amplitude) sample produced by the spectral
// transform.
type Bin struct {
	Frequency float32
	Amplitude float32
}

// FindTones clusters spectral bins into notes with a greedy single pass.
// Each bin joins the existing note whose MIDI range is nearest (ties go
// to the first note encountered, so the result is deterministic for a
// fixed bin order); a rejected bin starts a new note. The returned notes
// are sorted ascending by peak amplitude so louder notes paint last.
//
// O(bins x notes), which is fine at tens of notes per tick.
func FindTones(bins []Bin) []Note {
	notes := make([]Note, 0, 64)

	for _, bin := range bins {
		pitch := PitchFromFrequency(bin.Frequency)

		closest := -1
		var closestDist float32
		for i := range notes {
			d := notes[i].DistanceFromMIDI(pitch.MIDI())
			if closest < 0 || d < closestDist {
				closest = i
				closestDist = d
			}
		}

		if closest < 0 || notes[closest].TryInclude(pitch, bin.Amplitude) != nil {
			notes = append(notes, NewNote(pitch, bin.Amplitude))
		}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].PeakAmplitude < notes[j].PeakAmplitude
	})

	return notes
}
