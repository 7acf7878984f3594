package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the search cursor blink. Cues, tracks and playback changes arrive from the
// session through the program, so there is nothing to load here.
func (b *statefulBubble) Init() tea.Cmd {
	return textinput.Blink
}
