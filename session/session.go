// Package session ties one player widget to its subtitle tracks and its layout controller.
//
// A Session owns every piece of mutable state of one embedded player: the loaded tracks,
// the layout state, the last reported playback state and a single cancelable ticker that
// refreshes the displayed cues.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/samber/mo"
	"github.com/srtdeck/srtdeck/cue"
	"github.com/srtdeck/srtdeck/layout"
	"github.com/srtdeck/srtdeck/log"
	"github.com/srtdeck/srtdeck/network"
	"github.com/srtdeck/srtdeck/player"
	"github.com/srtdeck/srtdeck/prefs"
)

// ErrClosed is returned by Start when the session was closed while starting.
var ErrClosed = errors.New("session closed")

// Display receives what the session wants shown.
type Display interface {
	ShowCue(slot cue.Slot, text string)
	TrackLoaded(slot cue.Slot, count int)
	PlaybackChanged(playing bool)
}

type nopDisplay struct{}

func (nopDisplay) ShowCue(cue.Slot, string)  {}
func (nopDisplay) TrackLoaded(cue.Slot, int) {}
func (nopDisplay) PlaybackChanged(bool)      {}

type Session struct {
	widget  player.Widget
	display Display
	opts    Options
	store   *cue.Store
	layout  *layout.Controller

	mu       sync.Mutex
	lastTime mo.Option[float64]
	hidden   map[cue.Slot]bool
	shown    map[cue.Slot]string
	// stale makes the next tick refresh the cues even while paused.
	stale bool

	tickMu     sync.Mutex
	started    bool
	closed     bool
	stopTicker context.CancelFunc
	tickerDone chan struct{}
	// tickers counts ticker starts.
	tickers int
}

// New creates a session and restores the persisted visual preferences.
func New(widget player.Widget, surface layout.Surface, display Display, opts Options) *Session {
	opts.applyDefaults()
	if display == nil {
		display = nopDisplay{}
	}

	initial := layout.State{
		Expanded: prefs.Bool(opts.Prefs, prefs.ExpandedMode, false),
		Mini:     prefs.Bool(opts.Prefs, prefs.MiniPlayerMode, false),
		Corner:   layout.BottomRight,
	}
	if position, ok := opts.Prefs.Get(prefs.MiniPlayerPosition); ok {
		if corner, ok := layout.ParseCorner(position); ok {
			initial.Corner = corner
		}
	}

	s := &Session{
		widget:  widget,
		display: display,
		opts:    opts,
		store:   cue.NewStore(),
		layout:  layout.NewController(surface, initial),
		hidden:  make(map[cue.Slot]bool),
		shown:   make(map[cue.Slot]string),
		stale:   true,
	}

	for _, slot := range cue.Slots() {
		s.hidden[slot] = !prefs.Bool(opts.Prefs, prefs.Visible(string(slot)), true)
	}

	return s
}

// Start waits for the player API and the widget, loads the configured tracks and starts
// the cue ticker. It returns once the ticker runs.
func (s *Session) Start(ctx context.Context) error {
	if s.opts.API != nil {
		if err := s.opts.API.Wait(ctx); err != nil {
			return fmt.Errorf("player api: %w", err)
		}
	}

	s.widget.OnStateChange(func(change player.StateChange) {
		s.OnPlaybackStateChanged(change.Playing, change.Time)
	})

	select {
	case <-s.widget.Ready():
	case <-s.widget.Wait():
		return player.ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}

	var wg sync.WaitGroup
	for _, slot := range cue.Slots() {
		source := s.opts.Tracks[slot]
		if source == "" {
			continue
		}

		wg.Add(1)
		go func(slot cue.Slot, source string) {
			defer wg.Done()
			s.load(ctx, slot, source)
		}(slot, source)
	}
	wg.Wait()

	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.started = true
	s.startTicker()

	s.layout.Recompute()
	return nil
}

// LoadTrack fetches and parses a track, replacing the slot's cues. It never fails: on
// error the slot keeps its previous cues. A running ticker is restarted exactly once.
func (s *Session) LoadTrack(ctx context.Context, slot cue.Slot, source string) {
	s.load(ctx, slot, source)

	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	if s.started {
		s.stopTickerLocked()
		s.startTicker()
	}
}

func (s *Session) load(ctx context.Context, slot cue.Slot, source string) {
	raw, err := network.ReadSource(ctx, source, s.opts.MaxBytes, s.opts.FetchTimeout)
	if err != nil {
		log.Warnf("session: load %s track from %s: %v", slot, source, err)
		return
	}

	track := cue.Parse(raw)
	s.store.Replace(slot, track)
	s.markStale()
	log.Infof("session: loaded %d cues into %s from %s", len(track), slot, source)
	s.display.TrackLoaded(slot, len(track))
}

// startTicker must be called with tickMu held.
func (s *Session) startTicker() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s.stopTicker = cancel
	s.tickerDone = done
	s.tickers++

	go s.run(ctx, done)
}

// stopTickerLocked must be called with tickMu held.
func (s *Session) stopTickerLocked() {
	if s.stopTicker == nil {
		return
	}
	s.stopTicker()
	<-s.tickerDone
	s.stopTicker = nil
	s.tickerDone = nil
}

func (s *Session) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// markStale requests one cue refresh from the ticker.
func (s *Session) markStale() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

// tick polls the widget and refreshes the shown cues. While paused it only runs when
// something marked the cues stale.
func (s *Session) tick() {
	playing := s.layout.State().Playing

	s.mu.Lock()
	refresh := s.stale
	s.stale = false
	s.mu.Unlock()

	if !playing && !refresh {
		return
	}

	seconds, err := s.widget.CurrentTime()
	if err != nil {
		log.Debugf("session: current time: %v", err)
		if refresh {
			s.markStale()
		}
		return
	}
	at := time.Duration(seconds * float64(time.Second))

	changed := make(map[cue.Slot]string)

	s.mu.Lock()
	for _, slot := range cue.Slots() {
		text := ""
		if !s.hidden[slot] {
			text = s.store.ActiveText(slot, at)
		}

		if s.shown[slot] != text {
			s.shown[slot] = text
			changed[slot] = text
		}
	}
	s.mu.Unlock()

	for _, slot := range cue.Slots() {
		if text, ok := changed[slot]; ok {
			s.display.ShowCue(slot, text)
		}
	}
}

// ActiveCueText returns the text of the slot's active cue at the given offset.
func (s *Session) ActiveCueText(slot cue.Slot, at time.Duration) string {
	return s.store.ActiveText(slot, at)
}

// Track returns the cues loaded into a slot.
func (s *Session) Track(slot cue.Slot) cue.Track {
	return s.store.Track(slot)
}

// OnScroll recomputes the layout after the page moved.
func (s *Session) OnScroll() {
	s.layout.Recompute()
}

// OnResize recomputes the layout after the viewport changed.
func (s *Session) OnResize() {
	s.layout.Recompute()
}

// OnPlaybackStateChanged records the player state. A notification that keeps the playing
// flag but jumps by at least the seek threshold is a seek and leaves the layout alone.
func (s *Session) OnPlaybackStateChanged(playing bool, at float64) {
	s.mu.Lock()
	previous := s.lastTime
	s.lastTime = mo.Some(at)
	s.stale = true
	s.mu.Unlock()

	flipped := s.layout.State().Playing != playing
	if flipped {
		s.display.PlaybackChanged(playing)
	}

	if !flipped {
		if last, ok := previous.Get(); ok && math.Abs(at-last) >= s.opts.SeekThreshold.Seconds() {
			log.Debugf("session: seek from %.3f to %.3f", last, at)
			return
		}
	}

	s.layout.SetPlaying(playing)
}

// State returns the current layout state.
func (s *Session) State() layout.State {
	return s.layout.State()
}

// ToggleExpanded flips expanded mode and persists it.
func (s *Session) ToggleExpanded() bool {
	expanded := s.layout.ToggleExpanded()
	s.persist(prefs.ExpandedMode, expanded)
	return expanded
}

// ToggleMiniPlayer flips the mini player and persists it.
func (s *Session) ToggleMiniPlayer() bool {
	mini := s.layout.ToggleMini()
	s.persist(prefs.MiniPlayerMode, mini)
	return mini
}

// SetMiniPlayerCorner docks the mini player and persists the corner.
func (s *Session) SetMiniPlayerCorner(corner layout.Corner) {
	s.layout.SetCorner(corner)
	if err := s.opts.Prefs.Set(prefs.MiniPlayerPosition, corner.String()); err != nil {
		log.Warnf("session: save %s: %v", prefs.MiniPlayerPosition, err)
	}
}

// CycleMiniPlayerCorner moves the mini player to the next corner.
func (s *Session) CycleMiniPlayerCorner() layout.Corner {
	next := s.layout.State().Corner.Next()
	s.SetMiniPlayerCorner(next)
	return next
}

// ToggleTrack shows or hides a slot and persists its visibility. It returns the new visibility.
func (s *Session) ToggleTrack(slot cue.Slot) bool {
	s.mu.Lock()
	s.hidden[slot] = !s.hidden[slot]
	visible := !s.hidden[slot]
	s.stale = true
	s.mu.Unlock()

	s.persist(prefs.Visible(string(slot)), visible)
	return visible
}

// Visible reports whether a slot is shown.
func (s *Session) Visible(slot cue.Slot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.hidden[slot]
}

// SeekBy moves playback by the given number of seek steps; negative steps go back.
func (s *Session) SeekBy(steps int) error {
	if err := s.widget.Seek(float64(steps) * s.opts.SeekStep.Seconds()); err != nil {
		return err
	}
	s.markStale()
	return nil
}

// TogglePause plays or pauses the widget.
func (s *Session) TogglePause() error {
	return s.widget.TogglePause()
}

// Close stops the ticker. The widget is left to its owner.
func (s *Session) Close() {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	s.stopTickerLocked()
	s.started = false
	s.closed = true
}

func (s *Session) persist(key string, value bool) {
	if err := prefs.SetBool(s.opts.Prefs, key, value); err != nil {
		log.Warnf("session: save %s: %v", key, err)
	}
}
