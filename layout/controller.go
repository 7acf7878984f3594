package layout

import (
	"errors"
	"sync"

	"github.com/srtdeck/srtdeck/log"
)

// State is what the controller remembers between ticks.
type State struct {
	Playing  bool
	Expanded bool
	Mini     bool
	Corner   Corner
}

// Decide computes the frame for a state and a geometry snapshot. First match wins:
// mini overrides everything, a paused box is always inline, and a playing box pins
// to the top once its wrapper leaves the viewport top, or to the bottom while the
// wrapper sits within one box height of the viewport bottom.
func Decide(state State, g Geometry) Frame {
	frame := Frame{
		Expanded: state.Expanded,
		Corner:   state.Corner,
	}

	switch {
	case state.Mini:
		frame.Mode = Mini
		return frame
	case !state.Playing:
		frame.Mode = Inline
	case g.WrapperTop < 0:
		frame.Mode = PinnedTop
	case g.ViewportHeight-g.WrapperTop <= g.ContainerHeight && g.WrapperTop > 0:
		frame.Mode = PinnedBottom
	default:
		frame.Mode = Inline
	}

	pinned := frame.Mode.Pinned()
	if pinned {
		frame.PlaceholderHeight = g.ContainerHeight
	}

	switch {
	case state.Expanded:
		frame.Width = Width{Kind: ViewportWidth, Size: g.ViewportWidth}
		frame.PinLeft = pinned
	case pinned:
		frame.Width = Width{Kind: WrapperWidth, Size: g.WrapperWidth}
	}

	return frame
}

// Controller owns the layout state of one box and projects it onto a surface.
type Controller struct {
	mu      sync.Mutex
	surface Surface
	state   State
}

func NewController(surface Surface, initial State) *Controller {
	return &Controller{surface: surface, state: initial}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Recompute measures the surface once and applies the resulting frame. A missing
// surface element makes the call a logged no-op; the boolean reports whether a
// frame was applied.
func (c *Controller) Recompute() (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recompute()
}

// SetPlaying records the player state and recomputes.
func (c *Controller) SetPlaying(playing bool) (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Playing = playing
	return c.recompute()
}

// ToggleExpanded flips expanded mode, recomputes, and returns the new value.
func (c *Controller) ToggleExpanded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Expanded = !c.state.Expanded
	c.recompute()
	return c.state.Expanded
}

// ToggleMini flips the mini player, recomputes, and returns the new value.
func (c *Controller) ToggleMini() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Mini = !c.state.Mini
	c.recompute()
	return c.state.Mini
}

// SetCorner docks the mini player to a corner and recomputes.
func (c *Controller) SetCorner(corner Corner) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Corner = corner
	c.recompute()
}

func (c *Controller) recompute() (Frame, bool) {
	if c.surface == nil {
		log.Warn("layout: no surface attached")
		return Frame{}, false
	}

	g, err := c.surface.Measure()
	if err != nil {
		if errors.Is(err, ErrMissingElement) {
			log.Warnf("layout: skipping recompute: %v", err)
		} else {
			log.Errorf("layout: measure: %v", err)
		}
		return Frame{}, false
	}

	frame := Decide(c.state, g)

	if err := c.surface.SetClasses(frame.Classes()); err != nil {
		log.Warnf("layout: set classes: %v", err)
	}
	if err := c.surface.SetPlaceholderHeight(frame.PlaceholderHeight); err != nil {
		log.Warnf("layout: set placeholder: %v", err)
	}
	if err := c.surface.SetContainerWidth(frame.Width, frame.PinLeft); err != nil {
		log.Warnf("layout: set width: %v", err)
	}

	return frame, true
}
