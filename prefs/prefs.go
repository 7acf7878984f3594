// Package prefs persists the visual toggles of a session as plain string key-value pairs.
package prefs

import (
	"strconv"

	"github.com/spf13/viper"
	"github.com/srtdeck/srtdeck/key"
	"github.com/srtdeck/srtdeck/where"
)

// Keys written by a session.
const (
	ExpandedMode       = "expandedMode"
	MiniPlayerMode     = "miniPlayerMode"
	MiniPlayerPosition = "miniPlayerPosition"
)

// Visible returns the key holding the visibility of a toggle target, such as a track slot.
func Visible(target string) string {
	return target + "-visible"
}

// Store is a string key-value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Bool reads a "true"/"false" value, falling back when it is absent or unreadable.
func Bool(store Store, key string, fallback bool) bool {
	value, ok := store.Get(key)
	if !ok {
		return fallback
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// SetBool writes a boolean as "true"/"false".
func SetBool(store Store, key string, value bool) error {
	return store.Set(key, strconv.FormatBool(value))
}

// Default returns the file store when persistence is enabled, and an in-memory one otherwise.
func Default() Store {
	if viper.GetBool(key.PrefsPersist) {
		return NewFileStore(where.Prefs())
	}
	return NewMemory()
}
