package style

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, reduced to what the page uses.
var (
	Text     = lipgloss.Color("#cdd6f4")
	Surface  = lipgloss.Color("#313244")
	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Lavender = lipgloss.Color("#b4befe")

	AccentColor = Mauve
	ErrorColor  = Red
	HiRed       = Red

	// Box borders: idle, playing.
	BorderColor       = Surface
	ActiveBorderColor = Lavender
)
