// Package cue parses subtitle transcripts into timed cues and answers which cue
// is active at a given playback offset.
package cue

import (
	"fmt"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Cue is one timed subtitle entry. Bounds are inclusive on both ends.
type Cue struct {
	// Index is the sequence number written in the source file, 0 when it could not be read.
	Index int `json:"index" jsonschema:"description=Sequence number from the source file (0 when unreadable)"`
	// StartMs is the offset from media start at which the cue appears.
	StartMs int64 `json:"start_ms" jsonschema:"minimum=0"`
	// EndMs is the last offset at which the cue is still shown.
	EndMs int64 `json:"end_ms" jsonschema:"minimum=0"`
	// Text may contain embedded line breaks.
	Text string `json:"text"`
}

// Start returns the start offset as a duration.
func (c Cue) Start() time.Duration {
	return time.Duration(c.StartMs) * time.Millisecond
}

// End returns the end offset as a duration.
func (c Cue) End() time.Duration {
	return time.Duration(c.EndMs) * time.Millisecond
}

// Contains reports whether the cue is shown at the given offset.
func (c Cue) Contains(at time.Duration) bool {
	return at >= c.Start() && at <= c.End()
}

// Lines splits the cue text on its embedded line breaks.
func (c Cue) Lines() []string {
	return strings.Split(c.Text, "\n")
}

func (c Cue) String() string {
	return fmt.Sprintf("%d %s --> %s %q", c.Index, FormatTimestamp(c.StartMs), FormatTimestamp(c.EndMs), c.Text)
}

// Track is the ordered set of cues loaded from one subtitle source, in source order.
type Track []Cue

// Active returns the first cue in source order that is shown at the given offset.
// Overlapping cues are not ranked: the earlier entry in the file wins.
func (t Track) Active(at time.Duration) mo.Option[Cue] {
	found, ok := lo.Find(t, func(c Cue) bool {
		return c.Contains(at)
	})
	if !ok {
		return mo.None[Cue]()
	}
	return mo.Some(found)
}

// ActiveText returns the text of the active cue, or an empty string.
func (t Track) ActiveText(at time.Duration) string {
	return t.Active(at).OrEmpty().Text
}

// Search returns the cues whose text fuzzily contains the query, case-insensitively, in source order.
func (t Track) Search(query string) Track {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	return lo.Filter(t, func(c Cue, _ int) bool {
		return fuzzy.MatchNormalizedFold(query, c.Text)
	})
}

// Duration returns the largest end offset in the track.
func (t Track) Duration() time.Duration {
	if len(t) == 0 {
		return 0
	}
	return lo.MaxBy(t, func(a, b Cue) bool {
		return a.EndMs > b.EndMs
	}).End()
}
