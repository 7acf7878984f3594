package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/srtdeck/srtdeck/cue"
	"github.com/srtdeck/srtdeck/icon"
	"github.com/srtdeck/srtdeck/layout"
	"github.com/srtdeck/srtdeck/style"
	"github.com/srtdeck/srtdeck/util"
)

var slotColors = map[cue.Slot]lipgloss.Color{
	cue.Primary:   style.Text,
	cue.Secondary: style.Lavender,
	cue.Extra:     style.Peach,
}

func (b *statefulBubble) View() string {
	if b.state == errorState {
		return b.viewError()
	}
	if b.width <= 0 || b.height <= 0 {
		return ""
	}

	return b.viewPage() + "\n" + b.viewFooter()
}

// viewPage renders the visible window of the page and overlays the box when it is
// out of flow.
func (b *statefulBubble) viewPage() string {
	frame := b.surface.view()
	vh := b.viewportHeight()

	page := b.viewHeader()
	if frame.mode == layout.Inline {
		page = append(page, b.placeBox(frame)...)
	} else {
		page = append(page, make([]string, frame.placeholder)...)
	}
	page = append(page, b.viewTranscript()...)

	rows := make([]string, vh)
	for i := range rows {
		if row := b.scroll + i; row < len(page) {
			rows[i] = page[row]
		}
	}

	switch frame.mode {
	case layout.PinnedTop:
		overlay(rows, 0, b.placeBox(frame))
	case layout.PinnedBottom:
		box := b.placeBox(frame)
		overlay(rows, vh-len(box), box)
	case layout.Mini:
		box := b.placeBox(frame)
		overlay(rows, lo.Ternary(frame.corner.Top(), 0, vh-len(box)), box)
	}

	return strings.Join(rows, "\n")
}

func overlay(rows []string, start int, box []string) {
	for i, line := range box {
		if row := start + i; row >= 0 && row < len(rows) {
			rows[row] = line
		}
	}
}

func (b *statefulBubble) viewHeader() []string {
	status := lo.Ternary(b.playing, icon.Get(icon.Play), icon.Get(icon.Pause))
	header := []string{style.Title(b.title) + " " + status}

	for _, slot := range cue.Slots() {
		visible := b.session == nil || b.session.Visible(slot)
		mark := lo.Ternary(visible, "●", "○")

		count := style.Faint("not loaded")
		if n, ok := b.counts[slot]; ok {
			count = util.Quantify(n, "cue", "cues")
		}

		header = append(header, fmt.Sprintf("%s %s %s", style.Fg(slotColors[slot])(mark), style.Bold(fmt.Sprintf("%-9s", slot)), count))
	}

	return append(header, "")
}

func (b *statefulBubble) viewTranscript() []string {
	return lo.Map(b.transcript, func(c cue.Cue, _ int) string {
		first, _, _ := strings.Cut(c.Text, "\n")
		line := style.Faint(cue.FormatTimestamp(c.StartMs)) + "  " + first
		return truncate.String(line, uint(b.width))
	})
}

// boxBounds returns the left offset and the width of the box for a frame.
func (b *statefulBubble) boxBounds(frame frameView) (left, width int) {
	switch {
	case frame.mode == layout.Mini:
		width = util.Min(b.miniWidth, b.width)
		return lo.Ternary(frame.corner.Left(), 0, b.width-width), width
	case frame.width.Kind == layout.ViewportWidth:
		return 0, util.Clamp(int(frame.width.Size), 1, b.width)
	case frame.width.Kind == layout.WrapperWidth:
		width = util.Clamp(int(frame.width.Size), 1, b.width)
		return (b.width - width) / 2, width
	default:
		width = util.Min(b.columnWidth, b.width)
		return (b.width - width) / 2, width
	}
}

func (b *statefulBubble) placeBox(frame frameView) []string {
	left, width := b.boxBounds(frame)
	pad := strings.Repeat(" ", util.Max(0, left))

	return lo.Map(b.renderBox(width, b.boxHeight, frame), func(line string, _ int) string {
		return pad + line
	})
}

// renderBox draws the now-playing box at exactly width x height cells.
func (b *statefulBubble) renderBox(width, height int, frame frameView) []string {
	innerWidth := util.Max(1, width-2)
	innerHeight := util.Max(1, height-2)

	var content []string
	for _, slot := range cue.Slots() {
		text := b.cues[slot]
		if text == "" || (b.session != nil && !b.session.Visible(slot)) {
			continue
		}

		wrapped := wrap.String(wordwrap.String(text, innerWidth), innerWidth)
		for _, line := range strings.Split(wrapped, "\n") {
			content = append(content, style.Fg(slotColors[slot])(line))
		}
	}

	if len(content) == 0 {
		content = []string{style.Faint(icon.Get(icon.Subtitle))}
	}
	content = content[:util.Min(len(content), innerHeight)]

	border := style.BorderColor
	switch {
	case frame.expanded:
		border = style.AccentColor
	case b.playing:
		border = style.ActiveBorderColor
	}

	rendered := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(innerWidth).
		Height(innerHeight).
		Render(strings.Join(content, "\n"))

	return strings.Split(rendered, "\n")
}

func (b *statefulBubble) viewFooter() string {
	if b.state == searchState {
		return b.inputC.View()
	}
	return b.notifier.View(b.helpC.View(b.keymap))
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("%v", b.lastError))
	errorMsg := wrap.String(errorBody, util.Max(1, b.width-4))

	lines := []string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " An error occurred:",
		"",
		errorMsg,
		"",
		b.helpC.View(b.keymap),
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}
