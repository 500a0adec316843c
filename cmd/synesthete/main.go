package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/image/font"

	"github.com/synesthete/synesthete/internal/audio"
	"github.com/synesthete/synesthete/internal/cli"
	"github.com/synesthete/synesthete/internal/config"
	"github.com/synesthete/synesthete/internal/renderer"
	"github.com/synesthete/synesthete/internal/ui"
	"github.com/synesthete/synesthete/internal/visualizer"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	Input     string  `arg:"" name:"input" help:"Input audio file (.wav, .mp3 or .flac)" optional:""`
	Output    string  `arg:"" name:"output" help:"Output directory for the frame sequence, or PNG path with --snapshot" optional:""`
	Snapshot  bool    `help:"Render a single PNG frame instead of the full sequence"`
	At        float64 `help:"Timestamp in seconds for the snapshot frame" default:"1.0"`
	Overlay   bool    `help:"Accumulate each frame onto the previous instead of clearing"`
	Palette   string  `help:"YAML palette file overriding the bundled colours" type:"path"`
	Label     bool    `help:"Draw the track name onto each frame (requires --font)"`
	Font      string  `help:"TrueType font file used by --label" type:"path"`
	FontSize  float64 `help:"Label font size in points" default:"28"`
	NoPreview bool    `help:"Disable frame preview during rendering"`
	Verbose   bool    `help:"Enable debug logging"`
	Version   bool    `help:"Show version information"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("synesthete"),
		kong.Description("Paint your music as pitch-coloured frames."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if CLI.Input == "" || CLI.Output == "" {
		cli.PrintError("<input> and <output> are required")
		os.Exit(1)
	}

	if _, err := os.Stat(CLI.Input); os.IsNotExist(err) {
		cli.PrintError(fmt.Sprintf("input file does not exist: %s", CLI.Input))
		os.Exit(1)
	}

	palette := config.DefaultPalette()
	if CLI.Palette != "" {
		var err error
		palette, err = config.LoadPalette(CLI.Palette)
		if err != nil {
			cli.PrintError(fmt.Sprintf("loading palette: %v", err))
			os.Exit(1)
		}
	}

	var face font.Face
	if CLI.Label {
		if CLI.Font == "" {
			cli.PrintError("--label requires --font")
			os.Exit(1)
		}
		var err error
		face, err = renderer.LoadFont(CLI.Font, CLI.FontSize)
		if err != nil {
			cli.PrintError(fmt.Sprintf("loading font: %v", err))
			os.Exit(1)
		}
	}

	// Decode on the background loader so failures surface the same way
	// they would mid-session.
	loader := audio.NewLoader()
	loader.Load(CLI.Input)
	track, err := loader.Wait()
	if err != nil {
		cli.PrintError(fmt.Sprintf("loading track: %v", err))
		os.Exit(1)
	}

	if CLI.Snapshot {
		renderSnapshot(palette, track)
		return
	}

	renderSequence(palette, track, face)
}

// renderSnapshot composes the single frame at --at seconds and writes it
// through the pipeline's one-shot snapshot path.
func renderSnapshot(palette config.ColorPalette, track *audio.Track) {
	if CLI.Label {
		cli.PrintWarning("--label applies to frame sequences, ignoring for snapshot")
	}
	if CLI.At < 0 || CLI.At >= track.Duration() {
		cli.PrintError(fmt.Sprintf("timestamp %.2fs is outside the track (%.2fs)", CLI.At, track.Duration()))
		os.Exit(1)
	}

	logger := newLogger()
	syn := visualizer.New(palette, logger)
	syn.LoadTrack(track)
	syn.RequestSnapshot(CLI.Output)

	if _, err := syn.NewFrame(CLI.At, true, CLI.Overlay); err != nil {
		cli.PrintError(fmt.Sprintf("rendering snapshot: %v", err))
		os.Exit(1)
	}

	cli.PrintSuccess(fmt.Sprintf("Snapshot saved: %s", CLI.Output))
}

// renderSequence walks the whole track one analysis window at a time and
// writes numbered PNG frames, with a live progress UI.
func renderSequence(palette config.ColorPalette, track *audio.Track, face font.Face) {
	if err := os.MkdirAll(CLI.Output, 0o755); err != nil {
		cli.PrintError(fmt.Sprintf("creating output directory: %v", err))
		os.Exit(1)
	}

	syn := visualizer.New(palette, newLogger())
	syn.LoadTrack(track)

	spf := syn.SamplesPerFrame()
	frameRate := syn.FrameRate()
	numFrames := (len(track.Samples) + spf - 1) / spf

	model := ui.NewModel(CLI.NoPreview)
	p := tea.NewProgram(model)

	var renderErr error
	go func() {
		p.Send(ui.TrackLoaded{
			Name:            track.Name,
			Duration:        time.Duration(track.Duration() * float64(time.Second)),
			SampleRate:      track.SampleRate,
			SamplesPerFrame: spf,
			FrameRate:       frameRate,
		})

		start := time.Now()
		for frame := 0; frame < numFrames; frame++ {
			position := float64(frame*spf) / float64(track.SampleRate)

			img, err := syn.NewFrame(position, true, CLI.Overlay)
			if err != nil {
				renderErr = fmt.Errorf("frame %d: %w", frame, err)
				p.Quit()
				return
			}

			if face != nil {
				renderer.DrawLabel(img, face, track.Name)
			}

			path := filepath.Join(CLI.Output, fmt.Sprintf("frame-%05d.png", frame))
			if err := renderer.WritePNG(path, img); err != nil {
				renderErr = fmt.Errorf("writing frame %d: %w", frame, err)
				p.Quit()
				return
			}

			if frame%3 == 0 {
				progress := ui.RenderProgress{
					Frame:       frame + 1,
					TotalFrames: numFrames,
					Elapsed:     time.Since(start),
					NoteCount:   len(syn.Notes()),
					PitchBars:   pitchBars(syn),
				}
				// Frame data every 6 frames is enough for a smooth preview.
				if !CLI.NoPreview && frame%6 == 0 {
					progress.FrameData = img
				}
				p.Send(progress)
			}
		}

		p.Send(ui.RenderComplete{
			OutputDir:   CLI.Output,
			TotalFrames: numFrames,
			TotalTime:   time.Since(start),
			FrameRate:   frameRate,
		})
	}()

	if _, err := p.Run(); err != nil {
		cli.PrintError(fmt.Sprintf("running UI: %v", err))
		os.Exit(1)
	}

	if renderErr != nil {
		cli.PrintError(renderErr.Error())
		os.Exit(1)
	}

	cli.PrintSuccess(fmt.Sprintf("Done! %d frames in %s", numFrames, CLI.Output))
}

// pitchBars buckets the current tick's notes across the MIDI scale for
// the UI's live strip.
func pitchBars(syn *visualizer.Synesthetizer) []float64 {
	const buckets = 64
	bars := make([]float64, buckets)
	for _, note := range syn.Notes() {
		idx := int(note.MIDI() / config.MaxMIDI * (buckets - 1))
		if idx < 0 {
			idx = 0
		}
		if idx >= buckets {
			idx = buckets - 1
		}
		if amp := float64(note.Amplitude()); amp > bars[idx] {
			bars[idx] = amp
		}
	}
	return bars
}

// newLogger builds the pipeline logger. The TUI owns the terminal during
// sequence renders, so logs are dropped unless --verbose is set.
func newLogger() *log.Logger {
	if CLI.Verbose {
		logger := log.New(os.Stderr)
		logger.SetLevel(log.DebugLevel)
		return logger
	}
	if CLI.Snapshot {
		return log.New(os.Stderr)
	}
	return log.New(io.Discard)
}
