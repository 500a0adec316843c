package ui

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Chromatic colour theme 🎨
var (
	// Pitch-class wheel colours (low to high)
	chromaRed    = lipgloss.Color("#FF0000") // C
	chromaAmber  = lipgloss.Color("#FFC000")
	chromaGreen  = lipgloss.Color("#00D072")
	chromaCyan   = lipgloss.Color("#00C0D0")
	chromaBlue   = lipgloss.Color("#2A00FF") // A
	chromaViolet = lipgloss.Color("#B000E8")

	// Accent colours
	subtleGray = lipgloss.Color("#888888")
)

// TrackLoaded carries the decoded track's properties for display.
type TrackLoaded struct {
	Name            string
	Duration        time.Duration
	SampleRate      int
	SamplesPerFrame int
	FrameRate       float64
}

// RenderProgress represents progress updates from the frame render loop
type RenderProgress struct {
	Frame       int
	TotalFrames int
	Elapsed     time.Duration
	NoteCount   int
	PitchBars   []float64    // per-pitch-bucket peak amplitudes for the live strip
	FrameData   *image.NRGBA // nil unless a preview refresh is due
}

// RenderComplete signals the end of the render loop
type RenderComplete struct {
	OutputDir   string
	TotalFrames int
	TotalTime   time.Duration
	FrameRate   float64
}

// progressQuitMsg is sent when it's time to quit after showing completion
type progressQuitMsg struct{}

// Model implements the Bubbletea model for the batch render UI
type Model struct {
	progressBar progress.Model

	track       *TrackLoaded
	renderState RenderProgress
	complete    *RenderComplete

	startTime      time.Time
	completionTime time.Time

	// UI state
	width           int
	height          int
	noPreview       bool
	cachedPreview   string
	cachedFrameNum  int
	completionDelay time.Duration
	quitting        bool
}

// NewModel creates a new render progress UI model
func NewModel(noPreview bool) *Model {
	// Chromatic gradient: C-red through A-blue
	p := progress.New(
		progress.WithGradient(string(chromaRed), string(chromaBlue)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &Model{
		progressBar:     p,
		startTime:       time.Now(),
		completionDelay: 2 * time.Second,
		noPreview:       noPreview,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = min(msg.Width-30, 50)
		return m, nil

	case TrackLoaded:
		m.track = &msg
		return m, nil

	case RenderProgress:
		m.renderState = msg
		return m, nil

	case RenderComplete:
		m.complete = &msg
		m.completionTime = time.Now()
		m.quitting = true

		return m, tea.Tick(m.completionDelay, func(t time.Time) tea.Msg {
			return progressQuitMsg{}
		})

	case progressQuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.complete != nil {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.complete != nil {
		return m.renderComplete()
	}
	return m.renderProgress()
}

// CompletionSummary returns the final summary for printing after the alt
// screen exits. Empty string if rendering is not complete.
func (m *Model) CompletionSummary() string {
	if m.complete == nil {
		return ""
	}
	return m.renderComplete()
}

func (m *Model) renderProgress() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(chromaBlue).
		Render("Synesthete 🎨")

	s.WriteString(title)
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(chromaViolet).Render("Rendering frames"))
	s.WriteString("\n\n")

	if m.renderState.TotalFrames == 0 {
		s.WriteString(lipgloss.NewStyle().Faint(true).Render("Starting render..."))
		s.WriteString("\n")
	} else {
		percent := float64(m.renderState.Frame) / float64(m.renderState.TotalFrames)
		s.WriteString("Progress: ")
		s.WriteString(m.progressBar.ViewAs(percent))
		s.WriteString(fmt.Sprintf("  %d%%", int(percent*100)))
		s.WriteString("\n\n")

		elapsed := m.renderState.Elapsed
		if elapsed == 0 {
			elapsed = time.Since(m.startTime)
		}

		var eta time.Duration
		if percent > 0 {
			eta = time.Duration(float64(elapsed)/percent) - elapsed
		}

		timingInfo := fmt.Sprintf("Frame %d of %d  │  Time: %s  │  ETA: %s  │  Notes: %d",
			m.renderState.Frame,
			m.renderState.TotalFrames,
			formatDuration(elapsed),
			formatDuration(eta),
			m.renderState.NoteCount)
		s.WriteString(lipgloss.NewStyle().Faint(true).Render(timingInfo))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	m.renderTrackInfo(&s)

	if len(m.renderState.PitchBars) > 0 {
		s.WriteString("\n\n")
		s.WriteString(lipgloss.NewStyle().Foreground(chromaViolet).Render("Detected Pitches:"))
		s.WriteString("\n")

		stripWidth := 64
		if m.width > 10 {
			stripWidth = min(m.width-10, 64)
		}
		s.WriteString(renderPitchStrip(m.renderState.PitchBars, stripWidth))
	}

	if !m.noPreview {
		if m.renderState.FrameData != nil && m.renderState.Frame != m.cachedFrameNum {
			config := DefaultPreviewConfig()
			preview := DownsampleFrame(m.renderState.FrameData, config)
			m.cachedPreview = RenderPreview(preview)
			m.cachedFrameNum = m.renderState.Frame
		}

		if m.cachedPreview != "" {
			s.WriteString("\n")
			s.WriteString(m.cachedPreview)
		}
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(chromaBlue).
		Padding(1, 2).
		Render(s.String())
}

func (m *Model) renderTrackInfo(s *strings.Builder) {
	labelStyle := lipgloss.NewStyle().Faint(true)
	valueStyle := lipgloss.NewStyle()
	headerStyle := lipgloss.NewStyle().Faint(true).Bold(true)

	s.WriteString(headerStyle.Render("Track"))
	s.WriteString(" │ ")

	if m.track == nil {
		s.WriteString(lipgloss.NewStyle().Faint(true).Italic(true).Render("Loading..."))
		return
	}

	s.WriteString(valueStyle.Render(m.track.Name))
	s.WriteString("  ")
	s.WriteString(valueStyle.Render(fmt.Sprintf("%.1fs", m.track.Duration.Seconds())))
	s.WriteString("  ")
	s.WriteString(labelStyle.Render("Rate:"))
	s.WriteString(" ")
	s.WriteString(valueStyle.Render(fmt.Sprintf("%d Hz", m.track.SampleRate)))
	s.WriteString("  ")
	s.WriteString(labelStyle.Render("Window:"))
	s.WriteString(" ")
	s.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.track.SamplesPerFrame)))
	s.WriteString("  ")
	s.WriteString(labelStyle.Render("Frames:"))
	s.WriteString(" ")
	s.WriteString(valueStyle.Render(fmt.Sprintf("%.2f/s", m.track.FrameRate)))
}

func (m *Model) renderComplete() string {
	var s strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(chromaGreen).
		Render("✓ Render Complete!")

	s.WriteString(title)
	s.WriteString("\n\n")

	dimLabel := lipgloss.NewStyle().Faint(true)

	s.WriteString(fmt.Sprintf("%s%s\n", dimLabel.Render("Output:   "), m.complete.OutputDir))
	s.WriteString(fmt.Sprintf("%s%d frames at %.2f/s\n",
		dimLabel.Render("Frames:   "),
		m.complete.TotalFrames,
		m.complete.FrameRate))

	if m.complete.TotalTime > 0 && m.complete.FrameRate > 0 {
		covered := float64(m.complete.TotalFrames) / m.complete.FrameRate
		speed := covered / m.complete.TotalTime.Seconds()
		s.WriteString(fmt.Sprintf("%s%.1fs audio in %s (%.1fx realtime)\n",
			dimLabel.Render("Duration: "),
			covered,
			formatDuration(m.complete.TotalTime),
			speed))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(chromaGreen).
		Padding(1, 1).
		Render(s.String()) + "\n"
}

// Helper functions

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// renderPitchStrip draws a two-row block graph of per-pitch amplitudes,
// coloured by position on the pitch wheel: low pitches red, high violet.
func renderPitchStrip(bars []float64, width int) string {
	if len(bars) == 0 || width == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	wheel := []lipgloss.Color{
		chromaRed,
		chromaAmber,
		chromaGreen,
		chromaCyan,
		chromaBlue,
		chromaViolet,
	}

	// Sample bars to fit width
	stride := len(bars) / width
	if stride == 0 {
		stride = 1
	}

	maxHeight := 0.0
	for _, h := range bars {
		if h > maxHeight {
			maxHeight = h
		}
	}
	if maxHeight == 0 {
		maxHeight = 1.0
	}

	displayHeights := make([]float64, 0, width)
	for i := 0; i < len(bars) && len(displayHeights) < width; i += stride {
		displayHeights = append(displayHeights, bars[i]/maxHeight)
	}

	colorAt := func(pos int) lipgloss.Color {
		idx := pos * len(wheel) / len(displayHeights)
		if idx >= len(wheel) {
			idx = len(wheel) - 1
		}
		return wheel[idx]
	}

	var result strings.Builder

	// Top row: the portion of each bar above half height
	for i, normalised := range displayHeights {
		if normalised > 0.5 {
			topPortion := (normalised - 0.5) * 2.0
			blockIdx := int(topPortion * float64(len(blocks)-1))
			if blockIdx >= len(blocks) {
				blockIdx = len(blocks) - 1
			}
			result.WriteString(lipgloss.NewStyle().
				Foreground(colorAt(i)).
				Render(string(blocks[blockIdx])))
		} else {
			result.WriteString(" ")
		}
	}

	result.WriteString("\n")

	// Bottom row: the lower half of each bar
	for i, normalised := range displayHeights {
		var blockIdx int
		if normalised >= 0.5 {
			blockIdx = len(blocks) - 1
		} else {
			blockIdx = int(normalised * 2.0 * float64(len(blocks)-1))
			if blockIdx >= len(blocks) {
				blockIdx = len(blocks) - 1
			}
		}
		result.WriteString(lipgloss.NewStyle().
			Foreground(colorAt(i)).
			Render(string(blocks[blockIdx])))
	}

	return result.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
