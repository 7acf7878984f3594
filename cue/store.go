package cue

import (
	"sync"
	"time"
)

// Store holds one track per slot. Loading a slot replaces its track wholesale.
type Store struct {
	mu     sync.RWMutex
	tracks map[Slot]Track
}

func NewStore() *Store {
	return &Store{tracks: make(map[Slot]Track)}
}

// Replace installs a track for the slot; the last call wins.
func (s *Store) Replace(slot Slot, track Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracks[slot] = track
}

// Track returns the slot's track, nil when nothing was loaded.
func (s *Store) Track(slot Slot) Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracks[slot]
}

// ActiveText returns the text shown for the slot at the given offset.
func (s *Store) ActiveText(slot Slot, at time.Duration) string {
	return s.Track(slot).ActiveText(at)
}

// Loaded returns the slots that currently hold at least one cue, in display order.
func (s *Store) Loaded() []Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var slots []Slot
	for _, slot := range Slots() {
		if len(s.tracks[slot]) > 0 {
			slots = append(slots, slot)
		}
	}
	return slots
}
