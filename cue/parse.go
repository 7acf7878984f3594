package cue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/srtdeck/srtdeck/log"
)

const timeRangeSeparator = " --> "

var (
	errShortBlock = errors.New("block has fewer than 3 lines")
	errTimeRange  = errors.New("missing time range separator")
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Parse converts raw subtitle text into cues, keeping source order.
//
// Blocks are separated by a blank line. A block needs a sequence number, a time range
// and at least one line of text; blocks that do not parse are skipped without aborting
// the rest of the document. Empty input yields an empty track.
func Parse(raw string) Track {
	text := strings.TrimSpace(lineEndings.Replace(raw))
	if text == "" {
		return Track{}
	}

	blocks := strings.Split(text, "\n\n")
	track := make(Track, 0, len(blocks))

	for i, block := range blocks {
		c, err := parseBlock(block)
		if err != nil {
			log.Debugf("skipping subtitle block %d: %v", i+1, err)
			continue
		}
		track = append(track, c)
	}

	return track
}

func parseBlock(block string) (Cue, error) {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if len(lines) < 3 {
		return Cue{}, errShortBlock
	}

	start, end, err := parseTimeRange(lines[1])
	if err != nil {
		return Cue{}, err
	}

	return Cue{
		Index:   parseIndex(lines[0]),
		StartMs: start,
		EndMs:   end,
		Text:    strings.TrimSpace(strings.Join(lines[2:], "\n")),
	}, nil
}

// parseIndex reads the leading integer of the line; an unreadable number yields 0.
func parseIndex(line string) int {
	digits, ok := leadingInt(strings.TrimSpace(line))
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

func parseTimeRange(line string) (start, end int64, err error) {
	left, right, found := strings.Cut(strings.TrimSpace(line), timeRangeSeparator)
	if !found {
		return 0, 0, errTimeRange
	}

	// positioning settings may follow the end time
	if fields := strings.Fields(right); len(fields) > 0 {
		right = fields[0]
	}

	if start, err = ParseTimestamp(left); err != nil {
		return 0, 0, fmt.Errorf("start time: %w", err)
	}
	if end, err = ParseTimestamp(right); err != nil {
		return 0, 0, fmt.Errorf("end time: %w", err)
	}
	if end < start {
		return 0, 0, fmt.Errorf("end %s before start %s", FormatTimestamp(end), FormatTimestamp(start))
	}

	return start, end, nil
}

// ParseTimestamp converts "H:MM:SS,mmm" to milliseconds. The fraction may also be
// separated by a dot and defaults to 0 when missing.
func ParseTimestamp(s string) (int64, error) {
	s = strings.TrimSpace(s)

	clock, fraction := s, ""
	if i := strings.IndexAny(s, ",."); i >= 0 {
		clock, fraction = s[:i], s[i+1:]
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("timestamp %q: want H:MM:SS", s)
	}

	var units [3]int64
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("timestamp %q: bad field %q", s, p)
		}
		units[i] = n
	}

	var millis int64
	if fraction != "" {
		digits, ok := leadingInt(fraction)
		if !ok {
			return 0, fmt.Errorf("timestamp %q: bad milliseconds %q", s, fraction)
		}
		millis, _ = strconv.ParseInt(digits, 10, 64)
	}

	return units[0]*3_600_000 + units[1]*60_000 + units[2]*1_000 + millis, nil
}

// FormatTimestamp renders milliseconds as "HH:MM:SS,mmm".
func FormatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d,%03d", ms/3_600_000, ms/60_000%60, ms/1_000%60, ms%1_000)
}

func leadingInt(s string) (string, bool) {
	end := strings.IndexFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return "", false
	}
	return s[:end], true
}
