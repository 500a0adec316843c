package renderer

import (
	"image"
	"image/color"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/synesthete/synesthete/internal/config"
)

// LoadFont loads a TrueType font from a file.
func LoadFont(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, err
	}

	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, err
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	return face, nil
}

// DrawLabel draws the track name in the bottom-left corner of a frame.
func DrawLabel(img *image.NRGBA, face font.Face, text string) {
	if face == nil || text == "" {
		return
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 200}),
		Face: face,
	}

	const offset = 30
	d.Dot = freetype.Pt(offset, config.FrameHeight-offset)
	d.DrawString(text)
}
