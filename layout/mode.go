// Package layout decides where the now-playing box sits as the page scrolls.
//
// The decision is a pure function of the controller state and one geometry
// snapshot; the resulting Frame is projected onto a Surface and never read back.
package layout

import "fmt"

// Mode is the scroll-driven placement of the box, with Mini as a hard override.
type Mode int

const (
	Inline Mode = iota
	PinnedTop
	PinnedBottom
	Mini
)

func (m Mode) String() string {
	switch m {
	case Inline:
		return "inline"
	case PinnedTop:
		return "pinned-top"
	case PinnedBottom:
		return "pinned-bottom"
	case Mini:
		return "mini"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Pinned reports whether the box is fixed to a viewport edge.
func (m Mode) Pinned() bool {
	return m == PinnedTop || m == PinnedBottom
}

// Corner is the viewport corner the mini player docks to.
type Corner int

const (
	BottomRight Corner = iota
	BottomLeft
	TopRight
	TopLeft
)

// Corners returns every corner in cycling order.
func Corners() []Corner {
	return []Corner{BottomRight, BottomLeft, TopLeft, TopRight}
}

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	default:
		return "bottom-right"
	}
}

// Top reports whether the corner is on the upper edge.
func (c Corner) Top() bool {
	return c == TopLeft || c == TopRight
}

// Left reports whether the corner is on the left edge.
func (c Corner) Left() bool {
	return c == TopLeft || c == BottomLeft
}

// Next returns the following corner in clockwise order.
func (c Corner) Next() Corner {
	corners := Corners()
	for i, corner := range corners {
		if corner == c {
			return corners[(i+1)%len(corners)]
		}
	}
	return BottomRight
}

// ParseCorner reads a corner name as produced by String.
func ParseCorner(s string) (Corner, bool) {
	for _, c := range Corners() {
		if c.String() == s {
			return c, true
		}
	}
	return BottomRight, false
}

// CornerAt picks the corner of the viewport quadrant containing the point (x, y).
func CornerAt(x, y, viewportWidth, viewportHeight float64) Corner {
	left := x < viewportWidth/2
	top := y < viewportHeight/2

	switch {
	case top && left:
		return TopLeft
	case top:
		return TopRight
	case left:
		return BottomLeft
	default:
		return BottomRight
	}
}
