package history

import (
	"fmt"
	"time"

	"github.com/srtdeck/srtdeck/cue"
	"github.com/srtdeck/srtdeck/util"
)

// SavedSession is one played media with the subtitle tracks it was watched with.
type SavedSession struct {
	Media  string              `json:"media"`
	Title  string              `json:"title"`
	Tracks map[cue.Slot]string `json:"tracks"`
	// Position is the playback offset in seconds at the end of the session.
	Position float64   `json:"position"`
	SavedAt  time.Time `json:"saved_at"`
}

func (s *SavedSession) encode() string {
	return s.Media
}

func (s *SavedSession) String() string {
	title := s.Title
	if title == "" {
		title = util.SourceName(s.Media)
	}
	return fmt.Sprintf("%s : %s", title, cue.FormatTimestamp(int64(s.Position*1000)))
}
