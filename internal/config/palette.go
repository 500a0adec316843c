package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// PaletteSize is the number of entries in a palette, one per diatonic
// pitch class (C, C#, D, ... B).
const PaletteSize = 12

//go:embed colors.yaml
var defaultPaletteYAML []byte

// ColorPalette maps each diatonic pitch class to an opaque colour.
// Loaded once at startup and immutable thereafter.
type ColorPalette [PaletteSize]color.NRGBA

type paletteFile struct {
	Colors []string `yaml:"colors"`
}

// DefaultPalette parses the palette bundled with the binary. A malformed
// bundled palette is a programming error, so this panics rather than
// returning an error.
func DefaultPalette() ColorPalette {
	p, err := ParsePalette(defaultPaletteYAML)
	if err != nil {
		panic(fmt.Sprintf("config: bundled palette is invalid: %v", err))
	}
	return p
}

// LoadPalette reads a palette override from a YAML file. Any malformed
// entry is a fatal configuration error.
func LoadPalette(path string) (ColorPalette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ColorPalette{}, fmt.Errorf("reading palette: %w", err)
	}
	return ParsePalette(data)
}

// ParsePalette decodes a YAML document containing exactly twelve
// 7-character "#RRGGBB" strings.
func ParsePalette(data []byte) (ColorPalette, error) {
	var pf paletteFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return ColorPalette{}, fmt.Errorf("decoding palette: %w", err)
	}

	if len(pf.Colors) != PaletteSize {
		return ColorPalette{}, fmt.Errorf("palette must list exactly %d colors, got %d", PaletteSize, len(pf.Colors))
	}

	var palette ColorPalette
	for i, s := range pf.Colors {
		c, err := ParseHexColor(s)
		if err != nil {
			return ColorPalette{}, fmt.Errorf("palette entry %d: %w", i, err)
		}
		palette[i] = c
	}
	return palette, nil
}

// ParseHexColor parses a single "#RRGGBB" string into an opaque colour.
// The format is strict: exactly seven characters including the leading
// hash, hex digits only.
func ParseHexColor(s string) (color.NRGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("color %q: want 7-character #RRGGBB", s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}

	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
