package cue

import (
	"fmt"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

// Slot names an independently loaded subtitle track.
type Slot string

const (
	Primary   Slot = "primary"
	Secondary Slot = "secondary"
	Extra     Slot = "extra"
)

// Slots returns every slot in display order.
func Slots() []Slot {
	return []Slot{Primary, Secondary, Extra}
}

// ParseSlot resolves a slot name, suggesting the closest one on a typo.
func ParseSlot(name string) (Slot, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if lo.Contains(Slots(), Slot(name)) {
		return Slot(name), nil
	}

	closest := lo.MinBy(Slots(), func(a, b Slot) bool {
		return levenshtein.Distance(name, string(a)) < levenshtein.Distance(name, string(b))
	})
	return "", fmt.Errorf("unknown subtitle slot %q, did you mean %q?", name, closest)
}
