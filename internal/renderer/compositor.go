package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/charmbracelet/log"

	"github.com/synesthete/synesthete/internal/config"
	"github.com/synesthete/synesthete/internal/music"
)

// Compositor owns the working raster: it draws each tick's notes,
// keeps the persisted buffer that overlay mode accumulates into, and
// services one-shot snapshot requests. All state is mutated only from
// the tick loop; no locking.
type Compositor struct {
	palette config.ColorPalette
	logger  *log.Logger

	previous *image.NRGBA
	overlay  bool

	// snapshot is a single-slot mailbox, not a queue: a later request
	// overwrites an unserviced earlier one.
	snapshot string
}

// NewCompositor creates a compositor with a blank persisted buffer.
func NewCompositor(palette config.ColorPalette, logger *log.Logger) *Compositor {
	return &Compositor{
		palette:  palette,
		logger:   logger,
		previous: newFrame(),
	}
}

// RequestSnapshot arms the snapshot mailbox: the next composed frame is
// written to path. A pending request is superseded, never queued.
func (c *Compositor) RequestSnapshot(path string) {
	c.snapshot = path
	c.logger.Info("snapshot requested", "path", path)
}

// ClearOverlay discards the persisted buffer; the next overlay frame
// starts from a blank canvas.
func (c *Compositor) ClearOverlay() {
	c.previous = newFrame()
}

// Compose renders one tick: it starts from the persisted buffer (overlay
// on) or transparent black, paints the notes in their given order
// (callers supply them ascending by peak amplitude so louder notes land
// on top), persists the result when overlay stays on, and services a
// pending snapshot. The returned frame is owned by the caller.
//
// A snapshot write failure is reported but does not fail the frame; the
// pending request is cleared either way so a bad path cannot wedge the
// mailbox into a failure loop.
func (c *Compositor) Compose(notes []music.Note, overlayEnabled bool) (*image.NRGBA, error) {
	if overlayEnabled != c.overlay {
		c.overlay = overlayEnabled
		if !c.overlay {
			c.ClearOverlay()
			c.logger.Info("overlay cleared")
		}
	}

	var canvas *image.NRGBA
	if c.overlay {
		canvas = cloneFrame(c.previous)
	} else {
		canvas = newFrame()
	}

	for i := range notes {
		DrawNote(canvas, c.palette, &notes[i])
	}

	if c.overlay {
		c.previous = cloneFrame(canvas)
	}

	var err error
	if c.snapshot != "" {
		path := c.snapshot
		c.snapshot = ""
		if werr := WritePNG(path, canvas); werr != nil {
			err = fmt.Errorf("writing snapshot: %w", werr)
		} else {
			c.logger.Info("snapshot saved", "path", path)
		}
	}

	return canvas, err
}

// SnapshotPending reports whether a snapshot request is armed.
func (c *Compositor) SnapshotPending() bool {
	return c.snapshot != ""
}

func newFrame() *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, config.FrameWidth, config.FrameHeight))
}

func cloneFrame(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// WritePNG writes an image to path in lossless 8-bit RGBA PNG.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
