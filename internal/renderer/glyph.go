package renderer

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/synesthete/synesthete/internal/config"
	"github.com/synesthete/synesthete/internal/music"
)

// GlyphHeight returns the glyph height in pixels for a peak amplitude.
func GlyphHeight(amplitude float32) int {
	return int(math32.Ceil(amplitude*100)) + 3
}

// GlyphWidth returns the glyph width for a given height. Integer
// division: very tall glyphs collapse to zero width and are skipped.
func GlyphWidth(height int) int {
	return (2500 / height) * 2
}

// GlyphX returns the horizontal centre of a note's glyph: the frame
// width scaled by the note's position on the MIDI scale.
func GlyphX(midi float32) int {
	return int(math32.Round(config.FrameWidth * (midi / config.MaxMIDI)))
}

// GlyphY returns the vertical centre of every glyph: mid-frame.
func GlyphY() int {
	return config.FrameHeight / 2
}

// DrawNote paints a note's diamond glyph onto the canvas with straight
// alpha-over blending. Degenerate zero-size glyphs are skipped without
// error.
func DrawNote(canvas *image.NRGBA, palette config.ColorPalette, note *music.Note) {
	h := GlyphHeight(note.Amplitude())
	w := GlyphWidth(h)
	if w == 0 || h == 0 {
		return
	}

	c := NoteColor(palette, note.MIDI(), note.Amplitude())
	left := GlyphX(note.MIDI()) - w/2
	top := GlyphY() - h/2

	fillDiamond(canvas, left, top, w, h, c)
}

// fillDiamond rasterizes a filled diamond spanning w x h pixels at
// (left, top) by scanline, clipped to the canvas bounds.
func fillDiamond(canvas *image.NRGBA, left, top, w, h int, c color.NRGBA) {
	bounds := canvas.Bounds()
	halfH := float32(h) / 2
	halfW := float32(w) / 2

	for dy := 0; dy < h; dy++ {
		y := top + dy
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}

		// Horizontal half-extent of the diamond on this scanline.
		dist := math32.Abs(float32(dy) + 0.5 - halfH)
		extent := halfW * (1 - dist/halfH)
		if extent <= 0 {
			continue
		}

		x0 := left + int(halfW-extent)
		x1 := left + int(halfW+extent)
		if x0 < bounds.Min.X {
			x0 = bounds.Min.X
		}
		if x1 > bounds.Max.X {
			x1 = bounds.Max.X
		}
		for x := x0; x < x1; x++ {
			blendOver(canvas, x, y, c)
		}
	}
}

// blendOver composites src over the canvas pixel in straight
// (non-premultiplied) alpha.
func blendOver(canvas *image.NRGBA, x, y int, src color.NRGBA) {
	i := canvas.PixOffset(x, y)
	pix := canvas.Pix[i : i+4 : i+4]

	sa := float32(src.A) / 255
	da := float32(pix[3]) / 255
	outA := sa + da*(1-sa)
	if outA == 0 {
		pix[0], pix[1], pix[2], pix[3] = 0, 0, 0, 0
		return
	}

	blend := func(s, d uint8) uint8 {
		v := (float32(s)*sa + float32(d)*da*(1-sa)) / outA
		return uint8(math32.Round(v))
	}
	pix[0] = blend(src.R, pix[0])
	pix[1] = blend(src.G, pix[1])
	pix[2] = blend(src.B, pix[2])
	pix[3] = uint8(math32.Round(outA * 255))
}
