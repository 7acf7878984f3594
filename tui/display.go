package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/srtdeck/srtdeck/cue"
)

type (
	cueMsg struct {
		slot cue.Slot
		text string
	}
	trackMsg struct {
		slot  cue.Slot
		count int
	}
	playbackMsg   bool
	redrawMsg     struct{}
	widgetGoneMsg struct{}
)

// programDisplay forwards session output into the program's message loop.
type programDisplay struct {
	send func(tea.Msg)
}

func (d programDisplay) ShowCue(slot cue.Slot, text string) {
	d.send(cueMsg{slot: slot, text: text})
}

func (d programDisplay) TrackLoaded(slot cue.Slot, count int) {
	d.send(trackMsg{slot: slot, count: count})
}

func (d programDisplay) PlaybackChanged(playing bool) {
	d.send(playbackMsg(playing))
}
