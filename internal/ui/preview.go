package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// PreviewConfig holds configuration for the frame preview
type PreviewConfig struct {
	Width  int // Width in terminal cells
	Height int // Height in terminal cells
}

// DefaultPreviewConfig returns a sensible default preview size
// Using 72x20 1.8:1 (slightly wider than 16:9 but very close)
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Width:  72,
		Height: 20,
	}
}

// DownsampleFrame reduces a full-resolution frame to preview size. Each
// terminal cell averages the rectangular region of source pixels it
// covers. The frames carry straight (non-premultiplied) alpha over an
// implicit black backdrop, so each channel is weighted by its pixel's
// alpha before averaging.
func DownsampleFrame(frame *image.NRGBA, config PreviewConfig) [][]color.RGBA {
	bounds := frame.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	cellWidth := srcWidth / config.Width
	cellHeight := srcHeight / config.Height

	preview := make([][]color.RGBA, config.Height)
	for row := 0; row < config.Height; row++ {
		preview[row] = make([]color.RGBA, config.Width)
		for col := 0; col < config.Width; col++ {
			srcX := col * cellWidth
			srcY := row * cellHeight

			var sumR, sumG, sumB uint32
			pixelCount := 0

			for y := srcY; y < srcY+cellHeight && y < srcHeight; y++ {
				rowStart := y * frame.Stride
				for x := srcX; x < srcX+cellWidth && x < srcWidth; x++ {
					i := rowStart + x*4
					a := uint32(frame.Pix[i+3])
					sumR += uint32(frame.Pix[i]) * a / 255
					sumG += uint32(frame.Pix[i+1]) * a / 255
					sumB += uint32(frame.Pix[i+2]) * a / 255
					pixelCount++
				}
			}

			if pixelCount > 0 {
				preview[row][col] = color.RGBA{
					R: uint8(sumR / uint32(pixelCount)),
					G: uint8(sumG / uint32(pixelCount)),
					B: uint8(sumB / uint32(pixelCount)),
					A: 255,
				}
			}
		}
	}

	return preview
}

// RenderPreview converts an RGB preview grid to a string representation
// using ANSI 24-bit true color escape codes for beautiful colored rendering
func RenderPreview(preview [][]color.RGBA) string {
	if len(preview) == 0 {
		return ""
	}

	var result strings.Builder

	// Top border
	result.WriteString("  Frame Preview:\n")
	result.WriteString("  ┌" + strings.Repeat("─", len(preview[0])) + "┐\n")

	// Render each row with true color
	for _, row := range preview {
		result.WriteString("  │")
		for _, pixel := range row {
			// ANSI escape: \x1b[48;2;R;G;Bm sets 24-bit RGB background color
			fmt.Fprintf(&result, "\x1b[48;2;%d;%d;%dm \x1b[0m", pixel.R, pixel.G, pixel.B)
		}
		result.WriteString("│\n")
	}

	// Bottom border
	result.WriteString("  └" + strings.Repeat("─", len(preview[0])) + "┘\n")

	return result.String()
}
