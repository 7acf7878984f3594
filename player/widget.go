// Package player drives the external media player that supplies playback time and state.
// The primary implementation targets mpv through its JSON-IPC socket.
package player

import "errors"

// ErrNotRunning is returned by commands issued after the player went away.
var ErrNotRunning = errors.New("player is not running")

// StateChange is emitted whenever the player starts, pauses, or restarts playback after a seek.
type StateChange struct {
	Playing bool
	// Time is the playback offset in seconds at the moment of the change.
	Time float64
}

// Widget is the black-box player a session is attached to.
type Widget interface {
	// CurrentTime retrieves the current playback offset in seconds.
	CurrentTime() (float64, error)

	// TogglePause inverts the playback suspension state.
	TogglePause() error

	// Seek moves playback by the given number of seconds, relative to the current position.
	Seek(offset float64) error

	// Ready is closed once the widget accepts commands and emits notifications.
	Ready() <-chan struct{}

	// Wait is closed when the widget goes away.
	Wait() <-chan struct{}

	// OnStateChange registers a handler for state notifications. Handlers run on the
	// widget's event goroutine and must not block.
	OnStateChange(handler func(StateChange))

	// Close detaches from the widget, terminating it when this process started it.
	Close() error
}
