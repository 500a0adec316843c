package cli

import "github.com/charmbracelet/lipgloss"

// Chromatic palette 🎨
// Shared theme colours for consistent branding across CLI and TUI,
// echoing the pitch-class colour wheel the renderer paints with.
var (
	// Core chroma colours (low to high pitch class)
	ChromaRed    = lipgloss.Color("#FF0000") // C
	ChromaAmber  = lipgloss.Color("#FFC000") // E-ish
	ChromaGreen  = lipgloss.Color("#00D072") // F#-ish
	ChromaBlue   = lipgloss.Color("#2A00FF") // A
	ChromaViolet = lipgloss.Color("#B000E8") // B-ish

	// Accent colours
	SubtleGray = lipgloss.Color("#888888") // muted text
)
