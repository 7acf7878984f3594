package session

import (
	"time"

	"github.com/spf13/viper"
	"github.com/srtdeck/srtdeck/cue"
	"github.com/srtdeck/srtdeck/key"
	"github.com/srtdeck/srtdeck/player"
	"github.com/srtdeck/srtdeck/prefs"
)

// Options configures a session.
type Options struct {
	// Tracks maps slots to subtitle sources loaded on Start. Empty sources are skipped.
	Tracks map[cue.Slot]string

	PollInterval  time.Duration
	SeekThreshold time.Duration
	SeekStep      time.Duration

	MaxBytes     int64
	FetchTimeout time.Duration

	Prefs prefs.Store
	// API is awaited before the widget is used; nil skips the wait.
	API *player.Gate
}

// OptionsFromConfig builds options from the active configuration.
func OptionsFromConfig(tracks map[cue.Slot]string) Options {
	return Options{
		Tracks:        tracks,
		PollInterval:  time.Duration(viper.GetInt(key.PlayerPollIntervalMs)) * time.Millisecond,
		SeekThreshold: time.Duration(viper.GetInt(key.PlayerSeekThresholdMs)) * time.Millisecond,
		SeekStep:      time.Duration(viper.GetInt(key.PlayerSeekStep)) * time.Second,
		MaxBytes:      viper.GetInt64(key.SubtitlesMaxBytes),
		FetchTimeout:  time.Duration(viper.GetInt(key.SubtitlesTimeoutMs)) * time.Millisecond,
		Prefs:         prefs.Default(),
		API:           player.API,
	}
}

func (o *Options) applyDefaults() {
	if o.PollInterval <= 0 {
		o.PollInterval = 100 * time.Millisecond
	}
	if o.SeekThreshold <= 0 {
		o.SeekThreshold = 500 * time.Millisecond
	}
	if o.SeekStep <= 0 {
		o.SeekStep = 10 * time.Second
	}
	if o.Prefs == nil {
		o.Prefs = prefs.NewMemory()
	}
}
