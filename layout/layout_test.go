package layout

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeSurface struct {
	geometry    Geometry
	measureErr  error
	calls       []string
	classes     []string
	placeholder float64
	width       Width
	pinLeft     bool
}

func (f *fakeSurface) Measure() (Geometry, error) {
	f.calls = append(f.calls, "measure")
	return f.geometry, f.measureErr
}

func (f *fakeSurface) SetClasses(classes []string) error {
	f.calls = append(f.calls, "classes")
	f.classes = classes
	return nil
}

func (f *fakeSurface) SetPlaceholderHeight(height float64) error {
	f.calls = append(f.calls, "placeholder")
	f.placeholder = height
	return nil
}

func (f *fakeSurface) SetContainerWidth(width Width, pinLeft bool) error {
	f.calls = append(f.calls, "width")
	f.width = width
	f.pinLeft = pinLeft
	return nil
}

func geometry(wrapperTop float64) Geometry {
	return Geometry{
		ViewportWidth:   1280,
		ViewportHeight:  600,
		WrapperTop:      wrapperTop,
		WrapperWidth:    800,
		ContainerTop:    wrapperTop,
		ContainerHeight: 200,
	}
}

func TestDecide(t *testing.T) {
	Convey("Given a box that is not playing", t, func() {
		state := State{Playing: false}

		Convey("When its wrapper has scrolled off the top", func() {
			frame := Decide(state, geometry(-50))

			Convey("Then it stays inline with no placeholder", func() {
				So(frame.Mode, ShouldEqual, Inline)
				So(frame.PlaceholderHeight, ShouldEqual, 0)
				So(frame.Classes(), ShouldBeEmpty)
			})
		})
	})

	Convey("Given a playing box", t, func() {
		state := State{Playing: true}

		Convey("When its wrapper top is above the viewport", func() {
			frame := Decide(state, geometry(-50))

			Convey("Then it pins to the top and reserves its height", func() {
				So(frame.Mode, ShouldEqual, PinnedTop)
				So(frame.PlaceholderHeight, ShouldEqual, 200)
				So(frame.Classes(), ShouldResemble, []string{"fixed"})
				So(frame.Width, ShouldResemble, Width{Kind: WrapperWidth, Size: 800})
				So(frame.PinLeft, ShouldBeFalse)
			})
		})

		Convey("When its wrapper is within one box height of the viewport bottom", func() {
			frame := Decide(state, geometry(500))

			Convey("Then it pins to the bottom", func() {
				So(frame.Mode, ShouldEqual, PinnedBottom)
				So(frame.PlaceholderHeight, ShouldEqual, 200)
				So(frame.Classes(), ShouldResemble, []string{"fixed-bottom"})
			})
		})

		Convey("When its wrapper is comfortably inside the viewport", func() {
			frame := Decide(state, geometry(100))

			Convey("Then it is inline at its natural width", func() {
				So(frame.Mode, ShouldEqual, Inline)
				So(frame.PlaceholderHeight, ShouldEqual, 0)
				So(frame.Width.Kind, ShouldEqual, NaturalWidth)
			})
		})

		Convey("When its wrapper top is exactly at the viewport top", func() {
			g := geometry(0)
			g.ViewportHeight = 150

			Convey("Then neither pin applies", func() {
				So(Decide(state, g).Mode, ShouldEqual, Inline)
			})
		})

		Convey("When expanded while pinned to the top", func() {
			state.Expanded = true
			frame := Decide(state, geometry(-50))

			Convey("Then it spans the viewport from the left edge", func() {
				So(frame.Mode, ShouldEqual, PinnedTop)
				So(frame.Width, ShouldResemble, Width{Kind: ViewportWidth, Size: 1280})
				So(frame.PinLeft, ShouldBeTrue)
				So(frame.Classes(), ShouldResemble, []string{"fixed", "expanded"})
			})
		})

		Convey("When expanded while inline", func() {
			state.Expanded = true
			frame := Decide(state, geometry(100))

			Convey("Then it spans the viewport without pinning left", func() {
				So(frame.Width.Kind, ShouldEqual, ViewportWidth)
				So(frame.PinLeft, ShouldBeFalse)
				So(frame.Classes(), ShouldResemble, []string{"expanded"})
			})
		})
	})

	Convey("Given the mini player is on", t, func() {
		state := State{Playing: true, Mini: true, Expanded: true, Corner: TopLeft}

		Convey("When the wrapper would otherwise pin", func() {
			frame := Decide(state, geometry(-50))

			Convey("Then mini wins and no space is reserved", func() {
				So(frame.Mode, ShouldEqual, Mini)
				So(frame.PlaceholderHeight, ShouldEqual, 0)
				So(frame.Width.Kind, ShouldEqual, NaturalWidth)
				So(frame.Classes(), ShouldResemble, []string{"mini-player", "mini-player-top-left"})
			})
		})
	})
}

func TestCorner(t *testing.T) {
	Convey("Given a 100x50 viewport", t, func() {
		Convey("Then each quadrant maps to its corner", func() {
			So(CornerAt(10, 10, 100, 50), ShouldEqual, TopLeft)
			So(CornerAt(90, 10, 100, 50), ShouldEqual, TopRight)
			So(CornerAt(10, 40, 100, 50), ShouldEqual, BottomLeft)
			So(CornerAt(90, 40, 100, 50), ShouldEqual, BottomRight)
		})
	})

	Convey("Given every corner", t, func() {
		Convey("Then names round trip and Next visits all of them", func() {
			seen := map[Corner]bool{}
			c := BottomRight
			for range Corners() {
				parsed, ok := ParseCorner(c.String())
				So(ok, ShouldBeTrue)
				So(parsed, ShouldEqual, c)
				seen[c] = true
				c = c.Next()
			}
			So(seen, ShouldHaveLength, 4)
			So(c, ShouldEqual, BottomRight)
		})

		Convey("Then an unknown name falls back to bottom-right", func() {
			c, ok := ParseCorner("middle")
			So(ok, ShouldBeFalse)
			So(c, ShouldEqual, BottomRight)
		})
	})
}

func TestController(t *testing.T) {
	Convey("Given a controller over a surface", t, func() {
		surface := &fakeSurface{geometry: geometry(-50)}
		controller := NewController(surface, State{})

		Convey("When playback starts", func() {
			frame, ok := controller.SetPlaying(true)

			Convey("Then the surface is read once and written in order", func() {
				So(ok, ShouldBeTrue)
				So(frame.Mode, ShouldEqual, PinnedTop)
				So(surface.calls, ShouldResemble, []string{"measure", "classes", "placeholder", "width"})
				So(surface.classes, ShouldResemble, []string{"fixed"})
				So(surface.placeholder, ShouldEqual, 200)
			})

			Convey("Then recomputing with unchanged geometry is idempotent", func() {
				before := *surface
				again, ok := controller.Recompute()
				So(ok, ShouldBeTrue)
				So(again, ShouldResemble, frame)
				So(surface.classes, ShouldResemble, before.classes)
				So(surface.placeholder, ShouldEqual, before.placeholder)
				So(surface.width, ShouldResemble, before.width)
			})
		})

		Convey("When entering the mini player", func() {
			controller.SetPlaying(true)
			So(controller.ToggleMini(), ShouldBeTrue)

			Convey("Then the placeholder is cleared", func() {
				So(surface.placeholder, ShouldEqual, 0)
				So(surface.classes, ShouldResemble, []string{"mini-player", "mini-player-bottom-right"})
			})

			Convey("Then moving the corner updates the classes", func() {
				controller.SetCorner(TopRight)
				So(surface.classes, ShouldResemble, []string{"mini-player", "mini-player-top-right"})
				So(controller.State().Corner, ShouldEqual, TopRight)
			})
		})

		Convey("When entering the mini player from an expanded pin", func() {
			controller := NewController(surface, State{Playing: true, Expanded: true})
			frame, ok := controller.Recompute()
			So(ok, ShouldBeTrue)
			So(frame.Mode, ShouldEqual, PinnedTop)
			So(surface.width.Kind, ShouldEqual, ViewportWidth)
			So(surface.pinLeft, ShouldBeTrue)

			So(controller.ToggleMini(), ShouldBeTrue)

			Convey("Then the pinned geometry is reset", func() {
				So(surface.classes, ShouldResemble, []string{"mini-player", "mini-player-bottom-right"})
				So(surface.placeholder, ShouldEqual, 0)
				So(surface.width.Kind, ShouldEqual, NaturalWidth)
				So(surface.pinLeft, ShouldBeFalse)
			})
		})

		Convey("When toggling expanded twice", func() {
			So(controller.ToggleExpanded(), ShouldBeTrue)
			So(controller.ToggleExpanded(), ShouldBeFalse)

			Convey("Then the state is back to collapsed", func() {
				So(controller.State().Expanded, ShouldBeFalse)
			})
		})
	})

	Convey("Given a surface missing its elements", t, func() {
		surface := &fakeSurface{measureErr: fmt.Errorf("wrapper: %w", ErrMissingElement)}
		controller := NewController(surface, State{Playing: true})

		Convey("When recomputing", func() {
			_, ok := controller.Recompute()

			Convey("Then nothing is written", func() {
				So(ok, ShouldBeFalse)
				So(surface.calls, ShouldResemble, []string{"measure"})
			})
		})
	})

	Convey("Given no surface at all", t, func() {
		controller := NewController(nil, State{Playing: true})

		Convey("Then recompute is a no-op", func() {
			_, ok := controller.Recompute()
			So(ok, ShouldBeFalse)
		})
	})
}
