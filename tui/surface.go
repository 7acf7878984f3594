package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/srtdeck/srtdeck/layout"
	"github.com/srtdeck/srtdeck/util"
)

// screen is the terminal page the layout controller projects onto. Positions are in
// rows and cells; the wrapper is the page row the now-playing box belongs to.
type screen struct {
	mu sync.Mutex

	sized          bool
	viewportWidth  int
	viewportHeight int
	scroll         int
	boxRow         int
	boxHeight      int
	columnWidth    int

	classes     []string
	placeholder int
	width       layout.Width
	pinLeft     bool

	// notify is called after every write.
	notify func()
}

// frameView is what the renderer reads back from the screen.
type frameView struct {
	mode        layout.Mode
	expanded    bool
	corner      layout.Corner
	placeholder int
	width       layout.Width
	pinLeft     bool
}

var _ layout.Surface = (*screen)(nil)

func (s *screen) resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewportWidth = width
	s.viewportHeight = height
	s.sized = width > 0 && height > 0
}

func (s *screen) scrollTo(row int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll = row
}

func (s *screen) place(boxRow, boxHeight, columnWidth int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boxRow = boxRow
	s.boxHeight = boxHeight
	s.columnWidth = columnWidth
}

func (s *screen) Measure() (layout.Geometry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sized {
		return layout.Geometry{}, fmt.Errorf("viewport: %w", layout.ErrMissingElement)
	}
	if s.boxHeight <= 0 {
		return layout.Geometry{}, fmt.Errorf("now-playing box: %w", layout.ErrMissingElement)
	}

	wrapperTop := float64(s.boxRow - s.scroll)
	return layout.Geometry{
		ScrollTop:       float64(s.scroll),
		ViewportWidth:   float64(s.viewportWidth),
		ViewportHeight:  float64(s.viewportHeight),
		WrapperTop:      wrapperTop,
		WrapperWidth:    float64(util.Min(s.columnWidth, s.viewportWidth)),
		ContainerTop:    wrapperTop,
		ContainerHeight: float64(s.boxHeight),
	}, nil
}

func (s *screen) SetClasses(classes []string) error {
	s.mu.Lock()
	s.classes = append([]string(nil), classes...)
	s.mu.Unlock()
	s.changed()
	return nil
}

func (s *screen) SetPlaceholderHeight(height float64) error {
	s.mu.Lock()
	s.placeholder = int(height)
	s.mu.Unlock()
	s.changed()
	return nil
}

func (s *screen) SetContainerWidth(width layout.Width, pinLeft bool) error {
	s.mu.Lock()
	s.width = width
	s.pinLeft = pinLeft
	s.mu.Unlock()
	s.changed()
	return nil
}

func (s *screen) changed() {
	if s.notify != nil {
		s.notify()
	}
}

// view decodes the classes the way a stylesheet would.
func (s *screen) view() frameView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := frameView{
		mode:        layout.Inline,
		placeholder: s.placeholder,
		width:       s.width,
		pinLeft:     s.pinLeft,
	}

	for _, class := range s.classes {
		switch {
		case class == "fixed":
			v.mode = layout.PinnedTop
		case class == "fixed-bottom":
			v.mode = layout.PinnedBottom
		case class == "expanded":
			v.expanded = true
		case class == "mini-player":
			v.mode = layout.Mini
		case strings.HasPrefix(class, "mini-player-"):
			if corner, ok := layout.ParseCorner(strings.TrimPrefix(class, "mini-player-")); ok {
				v.corner = corner
			}
		}
	}

	return v
}
