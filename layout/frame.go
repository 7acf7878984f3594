package layout

import "errors"

// ErrMissingElement is returned by a Surface that cannot locate the box or its wrapper.
var ErrMissingElement = errors.New("layout element missing")

// Geometry is one read of the page, taken before any write of the same tick.
// Vertical positions are relative to the viewport top.
type Geometry struct {
	ScrollTop       float64
	ViewportWidth   float64
	ViewportHeight  float64
	WrapperTop      float64
	WrapperWidth    float64
	ContainerTop    float64
	ContainerHeight float64
}

// WidthKind tells the surface which width to give the box.
type WidthKind int

const (
	// NaturalWidth leaves the box at its in-flow width.
	NaturalWidth WidthKind = iota
	// WrapperWidth caps the box at the measured wrapper width.
	WrapperWidth
	// ViewportWidth breaks the box out of its column to the full viewport width.
	ViewportWidth
)

// Width is a width target; Size is meaningful for WrapperWidth and ViewportWidth.
type Width struct {
	Kind WidthKind
	Size float64
}

// Frame is everything a surface needs to draw the box for one tick.
type Frame struct {
	Mode              Mode
	Expanded          bool
	Corner            Corner
	PlaceholderHeight float64
	Width             Width
	// PinLeft anchors a pinned box at left 0 with no centering offset.
	PinLeft bool
}

// Classes returns the style classes projected from the frame.
func (f Frame) Classes() []string {
	var classes []string

	switch f.Mode {
	case PinnedTop:
		classes = append(classes, "fixed")
	case PinnedBottom:
		classes = append(classes, "fixed-bottom")
	case Mini:
		return []string{"mini-player", "mini-player-" + f.Corner.String()}
	}

	if f.Expanded {
		classes = append(classes, "expanded")
	}
	return classes
}

// Surface is the page the frame is projected onto. Measure performs every read;
// the setters are called afterwards in declaration order.
type Surface interface {
	Measure() (Geometry, error)
	SetClasses(classes []string) error
	SetPlaceholderHeight(height float64) error
	SetContainerWidth(width Width, pinLeft bool) error
}
