package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/srtdeck/srtdeck/constant"
	"github.com/srtdeck/srtdeck/cue"
	"github.com/srtdeck/srtdeck/internal/ui"
	"github.com/srtdeck/srtdeck/key"
	"github.com/srtdeck/srtdeck/session"
	"github.com/srtdeck/srtdeck/util"
)

const minBoxHeight = 3

// statefulBubble holds the page model: what is shown, where the page is scrolled, and
// the session that decides the box layout.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	inputC   textinput.Model
	helpC    help.Model
	notifier *ui.Model

	session *session.Session
	surface *screen

	title      string
	playing    bool
	cues       map[cue.Slot]string
	counts     map[cue.Slot]int
	transcript cue.Track
	lastMatch  int

	width, height int
	scroll        int

	boxHeight, columnWidth, miniWidth int

	lastError error
}

func newBubble(options *Options) *statefulBubble {
	bubble := &statefulBubble{
		keymap:    newStatefulKeymap(),
		notifier:  &ui.Model{},
		surface:   &screen{},
		title:     lo.Ternary(options.Title != "", options.Title, constant.App),
		cues:      make(map[cue.Slot]string),
		counts:    make(map[cue.Slot]int),
		lastMatch: -1,

		boxHeight:   util.Max(minBoxHeight, viper.GetInt(key.LayoutBoxHeight)),
		columnWidth: util.Max(10, viper.GetInt(key.LayoutColumnWidth)),
		miniWidth:   util.Max(10, viper.GetInt(key.LayoutMiniWidth)),
	}

	bubble.helpC = help.New()

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "Search transcript"
	bubble.inputC.CharLimit = 80
	bubble.inputC.Prompt = "/ "
	bubble.inputC.ShowSuggestions = true

	bubble.surface.place(bubble.boxRow(), bubble.boxHeight, bubble.columnWidth)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return bubble
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

// boxRow is the page row of the box wrapper, right below the header.
func (b *statefulBubble) boxRow() int {
	return 2 + len(cue.Slots())
}

// transcriptRow is the page row of the first transcript line.
func (b *statefulBubble) transcriptRow() int {
	return b.boxRow() + b.boxHeight
}

func (b *statefulBubble) footerRows() int {
	if b.state == searchState {
		return 1
	}
	return util.Max(1, lipgloss.Height(b.helpC.View(b.keymap)))
}

func (b *statefulBubble) viewportHeight() int {
	return util.Max(1, b.height-b.footerRows())
}

func (b *statefulBubble) maxScroll() int {
	return util.Max(0, b.transcriptRow()+len(b.transcript)-b.viewportHeight())
}

// resize records the terminal size and forwards the new viewport to the screen.
func (b *statefulBubble) resize(width, height int) {
	b.width = width
	b.height = height
	b.helpC.Width = width
	b.inputC.Width = util.Max(1, width-4)
	b.syncViewport()
}

func (b *statefulBubble) syncViewport() {
	b.surface.resize(b.width, b.viewportHeight())
	b.scroll = util.Clamp(b.scroll, 0, b.maxScroll())
	b.surface.scrollTo(b.scroll)
}

// scrollTo moves the page and lets the session recompute the layout.
func (b *statefulBubble) scrollTo(row int) {
	row = util.Clamp(row, 0, b.maxScroll())
	if row == b.scroll {
		return
	}

	b.scroll = row
	b.surface.scrollTo(row)
	if b.session != nil {
		b.session.OnScroll()
	}
}

// refreshTranscript shows the first loaded track as the page body.
func (b *statefulBubble) refreshTranscript() {
	b.transcript = nil
	b.lastMatch = -1
	if b.session == nil {
		return
	}

	for _, slot := range cue.Slots() {
		if track := b.session.Track(slot); len(track) > 0 {
			b.transcript = track
			return
		}
	}
}
