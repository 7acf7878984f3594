package tui

import (
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/srtdeck/srtdeck/cue"
	"github.com/srtdeck/srtdeck/internal/ui"
	"github.com/srtdeck/srtdeck/layout"
	"github.com/srtdeck/srtdeck/log"
	"github.com/srtdeck/srtdeck/query"
	"github.com/srtdeck/srtdeck/util"
)

const wheelStep = 3

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := b.notifier.Update(msg)

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, cmd
	case widgetGoneMsg:
		return b, tea.Quit
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		b.session.OnResize()
		return b, cmd
	case cueMsg:
		b.cues[msg.slot] = msg.text
		return b, cmd
	case trackMsg:
		b.counts[msg.slot] = msg.count
		b.refreshTranscript()
		b.syncViewport()
		b.session.OnResize()
		return b, tea.Batch(cmd, ui.Notify(fmt.Sprintf("%s: %s", msg.slot, util.Quantify(msg.count, "cue", "cues"))))
	case playbackMsg:
		b.playing = bool(msg)
		return b, cmd
	case redrawMsg:
		return b, cmd
	case tea.MouseMsg:
		return b, tea.Batch(cmd, b.handleMouse(msg))
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case searchState:
		return b, tea.Batch(cmd, b.updateSearch(msg))
	case errorState:
		if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
			return b, tea.Quit
		}
		return b, cmd
	default:
		if msg, ok := msg.(tea.KeyMsg); ok {
			return b, tea.Batch(cmd, b.updateWatch(msg))
		}
		return b, cmd
	}
}

func (b *statefulBubble) updateWatch(msg tea.KeyMsg) tea.Cmd {
	notifyErr := func(err error) tea.Cmd {
		if err != nil {
			return ui.Notify(err.Error())
		}
		return nil
	}

	switch {
	case bubblesKey.Matches(msg, b.keymap.quit):
		return tea.Quit
	case bubblesKey.Matches(msg, b.keymap.playPause):
		return notifyErr(b.session.TogglePause())
	case bubblesKey.Matches(msg, b.keymap.seekBack):
		return notifyErr(b.session.SeekBy(-1))
	case bubblesKey.Matches(msg, b.keymap.seekForward):
		return notifyErr(b.session.SeekBy(1))
	case bubblesKey.Matches(msg, b.keymap.expand):
		return ui.Notify("expanded " + onOff(b.session.ToggleExpanded()))
	case bubblesKey.Matches(msg, b.keymap.mini):
		return ui.Notify("mini player " + onOff(b.session.ToggleMiniPlayer()))
	case bubblesKey.Matches(msg, b.keymap.corner):
		if !b.session.State().Mini {
			return nil
		}
		return ui.Notify("mini player " + b.session.CycleMiniPlayerCorner().String())
	case bubblesKey.Matches(msg, b.keymap.primary):
		return b.toggleTrack(cue.Primary)
	case bubblesKey.Matches(msg, b.keymap.secondary):
		return b.toggleTrack(cue.Secondary)
	case bubblesKey.Matches(msg, b.keymap.extra):
		return b.toggleTrack(cue.Extra)
	case bubblesKey.Matches(msg, b.keymap.up):
		b.scrollTo(b.scroll - 1)
	case bubblesKey.Matches(msg, b.keymap.down):
		b.scrollTo(b.scroll + 1)
	case bubblesKey.Matches(msg, b.keymap.pageUp):
		b.scrollTo(b.scroll - b.viewportHeight())
	case bubblesKey.Matches(msg, b.keymap.pageDown):
		b.scrollTo(b.scroll + b.viewportHeight())
	case bubblesKey.Matches(msg, b.keymap.top):
		b.scrollTo(0)
	case bubblesKey.Matches(msg, b.keymap.bottom):
		b.scrollTo(b.maxScroll())
	case bubblesKey.Matches(msg, b.keymap.search):
		b.setState(searchState)
		b.inputC.SetValue("")
		b.inputC.SetSuggestions(query.SuggestMany(""))
		b.syncViewport()
		return b.inputC.Focus()
	case bubblesKey.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
		b.syncViewport()
		b.session.OnResize()
	}

	return nil
}

func (b *statefulBubble) toggleTrack(slot cue.Slot) tea.Cmd {
	visible := b.session.ToggleTrack(slot)
	return ui.Notify(fmt.Sprintf("%s %s", slot, lo.Ternary(visible, "shown", "hidden")))
}

func (b *statefulBubble) updateSearch(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.leaveSearch()
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			text := b.inputC.Value()
			b.leaveSearch()
			return b.jump(text)
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	return cmd
}

func (b *statefulBubble) leaveSearch() {
	b.inputC.Blur()
	b.setState(watchState)
	b.syncViewport()
	b.session.OnResize()
}

// jump scrolls to the next transcript cue matching text, wrapping around.
func (b *statefulBubble) jump(text string) tea.Cmd {
	if text == "" {
		return nil
	}

	matches := lo.SliceToMap(b.transcript.Search(text), func(c cue.Cue) (cue.Cue, struct{}) {
		return c, struct{}{}
	})
	if len(matches) == 0 {
		return ui.Notify(fmt.Sprintf("no match for %q", text))
	}

	if err := query.Remember(text, 1); err != nil {
		log.Warnf("remember search %q: %v", text, err)
	}

	var positions []int
	for i, c := range b.transcript {
		if _, ok := matches[c]; ok {
			positions = append(positions, i)
		}
	}

	next, ok := lo.Find(positions, func(i int) bool { return i > b.lastMatch })
	if !ok {
		next = positions[0]
	}
	b.lastMatch = next
	b.scrollTo(b.transcriptRow() + next)

	return ui.Notify(fmt.Sprintf("%s %s", cue.FormatTimestamp(b.transcript[next].StartMs), util.Quantify(len(positions), "match", "matches")))
}

func (b *statefulBubble) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		b.scrollTo(b.scroll - wheelStep)
	case msg.Button == tea.MouseButtonWheelDown:
		b.scrollTo(b.scroll + wheelStep)
	case msg.Action == tea.MouseActionRelease && b.session.State().Mini:
		corner := layout.CornerAt(float64(msg.X), float64(msg.Y), float64(b.width), float64(b.viewportHeight()))
		b.session.SetMiniPlayerCorner(corner)
		return ui.Notify("mini player " + corner.String())
	}
	return nil
}

func onOff(v bool) string {
	return lo.Ternary(v, "on", "off")
}
