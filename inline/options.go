package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/srtdeck/srtdeck/cue"
)

// CueFilter narrows a parsed track down to the cues that should be printed.
type CueFilter func(cue.Track) (cue.Track, error)

type Options struct {
	Out    io.Writer
	Source string
	Json   bool

	// At keeps only the cue active at that offset.
	At mo.Option[time.Duration]
	// Query keeps only the cues fuzzily matching it.
	Query mo.Option[string]
	// Filter is applied last.
	Filter mo.Option[CueFilter]

	MaxBytes int64
	Timeout  time.Duration
}

// ParseCueFilter parses a cue selection.
// Format: "all", "first", "last", "5", "3-7", "@text@"
// Positions are zero-based and refer to the order of cues in the source.
func ParseCueFilter(description string) (CueFilter, error) {
	description = strings.TrimSpace(description)

	switch description {
	case "", "all":
		return func(track cue.Track) (cue.Track, error) {
			return track, nil
		}, nil
	case "first":
		return func(track cue.Track) (cue.Track, error) {
			return lo.Slice(track, 0, 1), nil
		}, nil
	case "last":
		return func(track cue.Track) (cue.Track, error) {
			if len(track) == 0 {
				return cue.Track{}, nil
			}
			return cue.Track{track[len(track)-1]}, nil
		}, nil
	}

	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") && len(description) > 1 {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(track cue.Track) (cue.Track, error) {
			return lo.Filter(track, func(c cue.Cue, _ int) bool {
				return strings.Contains(strings.ToLower(c.Text), sub)
			}), nil
		}, nil
	}

	if from, to, ok := strings.Cut(description, "-"); ok {
		start, err := strconv.ParseUint(from, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid cue range start: %s", from)
		}
		end, err := strconv.ParseUint(to, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid cue range end: %s", to)
		}
		if start > end {
			return nil, fmt.Errorf("invalid cue range: %s", description)
		}

		return func(track cue.Track) (cue.Track, error) {
			return lo.Slice(track, int(start), int(end)+1), nil
		}, nil
	}

	if idx, err := strconv.ParseUint(description, 10, 32); err == nil {
		return func(track cue.Track) (cue.Track, error) {
			if uint64(len(track)) <= idx {
				return cue.Track{}, nil
			}
			return cue.Track{track[idx]}, nil
		}, nil
	}

	return nil, fmt.Errorf("invalid cue filter: %s", description)
}
