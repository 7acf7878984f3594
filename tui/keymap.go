package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/srtdeck/srtdeck/color"
	"github.com/srtdeck/srtdeck/style"
)

// statefulKeymap defines the keyboard interactions available within each state.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	playPause, seekBack, seekForward,
	expand, mini, corner,
	primary, secondary, extra,
	up, down, pageUp, pageDown, top, bottom,
	search, confirm, back,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" ", "space", "k"),
			key.WithHelp(style.Fg(color.Orange)("space"), style.Fg(color.Orange)("play/pause")),
		),
		seekBack: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "back"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "forward"),
		),
		expand: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand"),
		),
		mini: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mini player"),
		),
		corner: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "move mini player"),
		),
		primary: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "primary"),
		),
		secondary: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "secondary"),
		),
		extra: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "extra"),
		),
		up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "scroll up"),
		),
		down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "scroll down"),
		),
		pageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		pageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "page down"),
		),
		top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "jump"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case watchState:
		return h(k.playPause, k.expand, k.mini, k.search, k.showHelp, k.quit),
			h(k.playPause, k.seekBack, k.seekForward, k.expand, k.mini, k.corner,
				k.primary, k.secondary, k.extra, k.up, k.down, k.pageUp, k.pageDown,
				k.top, k.bottom, k.search, k.quit)
	case searchState:
		return to2(h(k.confirm, k.back, k.forceQuit))
	case errorState:
		return to2(h(k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}
