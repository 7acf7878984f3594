package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/srtdeck/srtdeck/cue"
	"github.com/srtdeck/srtdeck/filesystem"
	"github.com/srtdeck/srtdeck/key"
	"github.com/srtdeck/srtdeck/layout"
	"github.com/srtdeck/srtdeck/player"
	"github.com/srtdeck/srtdeck/prefs"
	"github.com/srtdeck/srtdeck/session"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakeWidget struct {
	ready, gone chan struct{}
}

func (fakeWidget) CurrentTime() (float64, error)         { return 0, nil }
func (fakeWidget) TogglePause() error                    { return nil }
func (fakeWidget) Seek(float64) error                    { return nil }
func (w fakeWidget) Ready() <-chan struct{}              { return w.ready }
func (w fakeWidget) Wait() <-chan struct{}               { return w.gone }
func (fakeWidget) OnStateChange(func(player.StateChange)) {}
func (fakeWidget) Close() error                          { return nil }

func transcript(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d\n%s --> %s\nLine number %d\n\n", i+1, cue.FormatTimestamp(int64(i)*2000), cue.FormatTimestamp(int64(i)*2000+1500), i+1)
	}
	fmt.Fprintf(&b, "%d\n%s --> %s\nGeneral Kenobi!\n", n+1, cue.FormatTimestamp(int64(n)*2000), cue.FormatTimestamp(int64(n)*2000+1500))
	return b.String()
}

func newTestBubble(width, height int) *statefulBubble {
	viper.Set(key.LayoutBoxHeight, 5)
	viper.Set(key.LayoutColumnWidth, 40)
	viper.Set(key.LayoutMiniWidth, 20)

	b := newBubble(&Options{Title: "talk"})
	b.session = session.New(fakeWidget{ready: make(chan struct{}), gone: make(chan struct{})}, b.surface, nil, session.Options{Prefs: prefs.NewMemory()})
	b.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return b
}

func press(b *statefulBubble, keys string) tea.Cmd {
	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return cmd
}

func rows(b *statefulBubble) []string {
	return strings.Split(b.viewPage(), "\n")
}

// column returns the visible column of the first occurrence of mark in line, or -1.
func column(line, mark string) int {
	i := strings.Index(line, mark)
	if i < 0 {
		return -1
	}
	return lipgloss.Width(line[:i])
}

func TestScreen(t *testing.T) {
	Convey("Given a screen that was never sized", t, func() {
		s := &screen{}
		s.place(5, 5, 40)

		Convey("Then measuring reports a missing element", func() {
			_, err := s.Measure()
			So(errors.Is(err, layout.ErrMissingElement), ShouldBeTrue)
		})
	})

	Convey("Given a sized and scrolled screen", t, func() {
		s := &screen{}
		s.place(5, 5, 40)
		s.resize(30, 20)
		s.scrollTo(8)

		Convey("Then the wrapper position follows the scroll", func() {
			g, err := s.Measure()
			So(err, ShouldBeNil)
			So(g.WrapperTop, ShouldEqual, -3)
			So(g.WrapperWidth, ShouldEqual, 30)
			So(g.ViewportHeight, ShouldEqual, 20)
			So(g.ContainerHeight, ShouldEqual, 5)
		})

		Convey("Then written classes are decoded back into a frame", func() {
			So(s.SetClasses([]string{"mini-player", "mini-player-top-left"}), ShouldBeNil)
			v := s.view()
			So(v.mode, ShouldEqual, layout.Mini)
			So(v.corner, ShouldEqual, layout.TopLeft)
		})
	})
}

func TestInit(t *testing.T) {
	Convey("Given a new page", t, func() {
		var model tea.Model = newTestBubble(80, 21)

		Convey("Then Init starts the cursor blink", func() {
			cmd := model.Init()
			So(cmd, ShouldNotBeNil)
			So(cmd(), ShouldHaveSameTypeAs, textinput.Blink())
		})
	})
}

func TestBubble(t *testing.T) {
	if err := filesystem.API().WriteFile("/subs/talk.srt", []byte(transcript(50)), 0644); err != nil {
		t.Fatal(err)
	}

	Convey("Given a page with a loaded transcript", t, func() {
		b := newTestBubble(80, 21)
		b.session.LoadTrack(context.Background(), cue.Primary, "/subs/talk.srt")
		b.Update(trackMsg{slot: cue.Primary, count: 51})
		b.Update(cueMsg{slot: cue.Primary, text: "General Kenobi!"})

		Convey("Then the header counts the cues and the box shows the cue", func() {
			view := b.View()
			So(view, ShouldContainSubstring, "51 cues")
			So(view, ShouldContainSubstring, "General Kenobi!")
			So(b.maxScroll(), ShouldEqual, 5+5+51-20)
		})

		Convey("When scrolled past the box while paused", func() {
			b.scrollTo(10)

			Convey("Then the box scrolls away with the page", func() {
				So(b.surface.view().mode, ShouldEqual, layout.Inline)
				So(b.View(), ShouldNotContainSubstring, "General Kenobi!")
			})
		})

		Convey("When scrolled past the box while playing", func() {
			b.session.OnPlaybackStateChanged(true, 0)
			b.scrollTo(10)

			Convey("Then the box is pinned to the top of the viewport, centered", func() {
				So(b.surface.view().mode, ShouldEqual, layout.PinnedTop)
				So(b.surface.view().placeholder, ShouldEqual, 5)
				So(column(rows(b)[0], "╭"), ShouldEqual, 20)
				So(b.View(), ShouldContainSubstring, "General Kenobi!")
			})

			Convey("Then expanding spans the whole width from the left edge", func() {
				press(b, "e")
				So(b.surface.view().expanded, ShouldBeTrue)
				So(column(rows(b)[0], "╭"), ShouldEqual, 0)
				So(lipgloss.Width(rows(b)[0]), ShouldEqual, 80)
			})

			Convey("Then pausing puts the box back in the page", func() {
				b.session.OnPlaybackStateChanged(false, 0)
				So(b.surface.view().mode, ShouldEqual, layout.Inline)
				So(b.surface.view().placeholder, ShouldEqual, 0)
			})
		})

		Convey("When the mini player is switched on", func() {
			press(b, "m")
			vh := b.viewportHeight()

			Convey("Then the box docks to the bottom-right corner", func() {
				So(b.surface.view().mode, ShouldEqual, layout.Mini)
				So(column(rows(b)[vh-1], "╰"), ShouldEqual, 60)
			})

			Convey("Then a mouse release in the top-left quadrant moves it there", func() {
				b.Update(tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
				So(b.session.State().Corner, ShouldEqual, layout.TopLeft)
				So(column(rows(b)[0], "╭"), ShouldEqual, 0)
			})

			Convey("Then c cycles the corner", func() {
				press(b, "c")
				So(b.session.State().Corner, ShouldEqual, layout.BottomLeft)
			})
		})

		Convey("When the primary track is hidden", func() {
			press(b, "1")

			Convey("Then its cue is no longer shown", func() {
				So(b.session.Visible(cue.Primary), ShouldBeFalse)
				So(b.View(), ShouldNotContainSubstring, "General Kenobi!")
			})
		})

		Convey("When searching the transcript", func() {
			press(b, "/")
			So(b.state, ShouldEqual, searchState)
			press(b, "kenobi")
			b.Update(tea.KeyMsg{Type: tea.KeyEnter})

			Convey("Then the page jumps to the matching cue", func() {
				So(b.state, ShouldEqual, watchState)
				So(b.lastMatch, ShouldEqual, 50)
				So(b.scroll, ShouldEqual, b.maxScroll())
			})
		})

		Convey("When the wheel scrolls down", func() {
			b.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})

			Convey("Then the page moves", func() {
				So(b.scroll, ShouldEqual, wheelStep)
			})
		})
	})

	Convey("Given a short terminal while playing", t, func() {
		b := newTestBubble(80, 9)
		b.session.OnPlaybackStateChanged(true, 0)

		Convey("Then a box near the bottom edge is pinned to the bottom", func() {
			So(b.surface.view().mode, ShouldEqual, layout.PinnedBottom)
			vh := b.viewportHeight()
			So(column(rows(b)[vh-1], "╰"), ShouldEqual, 20)
		})
	})

	Convey("Given a page", t, func() {
		b := newTestBubble(80, 21)

		Convey("When the session fails", func() {
			b.Update(errors.New("locate mpv: not found"))

			Convey("Then the error is shown", func() {
				So(b.state, ShouldEqual, errorState)
				So(b.View(), ShouldContainSubstring, "locate mpv")
			})
		})

		Convey("When the widget goes away", func() {
			_, cmd := b.Update(widgetGoneMsg{})

			Convey("Then the program quits", func() {
				So(cmd, ShouldNotBeNil)
				So(cmd(), ShouldHaveSameTypeAs, tea.QuitMsg{})
			})
		})
	})
}
