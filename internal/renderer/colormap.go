// Package renderer paints notes into RGBA frames: the pitch-class
// colour mapping, the diamond glyph rasterizer and the compositor that
// owns the frame buffers.
package renderer

import (
	"image/color"

	"github.com/chewxy/math32"

	"github.com/synesthete/synesthete/internal/config"
)

// NoteColor maps a note's peak MIDI value and amplitude to a straight-
// alpha colour. The diatonic pitch class (midi mod 12, continuous)
// interpolates circularly between adjacent palette entries, then the
// result blends toward fully transparent black weighted by
// sqrt(amplitude)*0.5: louder notes come out more opaque, quieter ones
// fade toward nothing rather than darkening.
func NoteColor(palette config.ColorPalette, midi, amplitude float32) color.NRGBA {
	diatonic := math32.Mod(midi, 12)

	ceilIdx := int(math32.Ceil(diatonic))
	if ceilIdx == config.PaletteSize {
		ceilIdx = 0
	}
	floorIdx := int(math32.Floor(diatonic))

	frac := math32.Mod(diatonic, 1)
	c := interpolate(palette[ceilIdx], palette[floorIdx], frac)

	weight := math32.Sqrt(amplitude) * 0.5
	if weight > 1 {
		weight = 1
	}
	return interpolate(c, color.NRGBA{}, weight)
}

// interpolate blends left toward right: weight 1 returns left, 0 right.
// All four channels participate, alpha included.
func interpolate(left, right color.NRGBA, weight float32) color.NRGBA {
	mix := func(l, r uint8) uint8 {
		return uint8(math32.Round(float32(l)*weight + float32(r)*(1-weight)))
	}
	return color.NRGBA{
		R: mix(left.R, right.R),
		G: mix(left.G, right.G),
		B: mix(left.B, right.B),
		A: mix(left.A, right.A),
	}
}
