package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/srtdeck/srtdeck/constant"
	"github.com/srtdeck/srtdeck/log"
	"github.com/srtdeck/srtdeck/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

var _ Widget = (*MPV)(nil)

// MPV implements Widget using mpv's JSON-IPC protocol.
type MPV struct {
	binary     string
	socketPath string
	// owned is set when this process spawned mpv and is responsible for terminating it.
	owned bool
	cmd   *exec.Cmd

	ready     chan struct{}
	exited    chan struct{}
	readyOnce sync.Once
	exitOnce  sync.Once

	mu sync.Mutex // Protects socket writes

	handlersMu sync.Mutex
	handlers   []func(StateChange)
	last       StateChange
	known      bool

	listener *EventListener

	// start is the offset in seconds Play begins at.
	start float64
}

// NewMPV creates a new MPV player instance (does not start playback).
func NewMPV(binary string) *MPV {
	return &MPV{
		binary: binary,
		ready:  make(chan struct{}),
		exited: make(chan struct{}),
	}
}

// Attach connects to an mpv instance that is already listening on socketPath.
// Closing the returned player detaches without quitting mpv.
func Attach(socketPath string) (*MPV, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("attach %s: %w", socketPath, err)
	}
	_ = conn.Close()

	m := NewMPV("")
	m.socketPath = socketPath
	if err := m.listen(); err != nil {
		return nil, err
	}
	return m, nil
}

// StartAt makes the next Play begin at the given offset in seconds.
func (m *MPV) StartAt(seconds float64) {
	m.start = seconds
}

// Play spawns mpv on the given media and waits for its IPC socket.
func (m *MPV) Play(media, title string) error {
	safeMedia, err := sanitizeMediaTarget(media)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.App, randomBytes))
	}

	// Pass only the socket, title, and media; everything else comes from the user's mpv.conf.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		"--force-window=yes",
		"--keep-open=yes",
	}
	if m.start > 0 {
		args = append(args, fmt.Sprintf("--start=%.3f", m.start))
	}
	if safeTitle := sanitizeTitle(title); safeTitle != "" {
		args = append(args, fmt.Sprintf("--force-media-title=%s", safeTitle))
	}
	args = append(args, "--", safeMedia)

	m.cmd = exec.Command(m.binary, args...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.binary, err)
	}
	m.owned = true

	// Reap the process to prevent zombies
	go func() {
		_ = m.cmd.Wait()
		m.markExited()
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return m.listen()
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) listen() error {
	m.listener = NewEventListener(m.socketPath, m.handleEvent, m.markExited)
	if err := m.listener.Start(); err != nil {
		return err
	}
	m.readyOnce.Do(func() { close(m.ready) })
	return nil
}

func (m *MPV) markExited() {
	m.exitOnce.Do(func() { close(m.exited) })
}

func (m *MPV) handleEvent(name string, data interface{}) {
	switch name {
	case "pause":
		paused, ok := data.(bool)
		if !ok {
			return
		}
		m.emit(!paused)
	case "eof-reached":
		if eof, _ := data.(bool); eof {
			m.emit(false)
		}
	case "playback-restart":
		m.handlersMu.Lock()
		playing := m.last.Playing
		m.handlersMu.Unlock()
		m.emit(playing)
	case "shutdown":
		m.markExited()
	}
}

func (m *MPV) emit(playing bool) {
	at, err := m.CurrentTime()
	if err != nil {
		// nothing loaded yet
		at = 0
	}

	change := StateChange{Playing: playing, Time: at}

	m.handlersMu.Lock()
	m.last = change
	m.known = true
	handlers := append([]func(StateChange){}, m.handlers...)
	m.handlersMu.Unlock()

	for _, handler := range handlers {
		handler(change)
	}
}

// OnStateChange registers a handler for play/pause/restart notifications.
// A handler registered after the first notification is replayed the last one.
func (m *MPV) OnStateChange(handler func(StateChange)) {
	m.handlersMu.Lock()
	m.handlers = append(m.handlers, handler)
	last, known := m.last, m.known
	m.handlersMu.Unlock()

	if known {
		handler(last)
	}
}

// Ready is closed once the event connection is established.
func (m *MPV) Ready() <-chan struct{} {
	return m.ready
}

// Wait returns a channel that is closed when mpv exits or the connection is lost.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// CurrentTime returns the current playback position in seconds.
func (m *MPV) CurrentTime() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// Paused reports whether playback is currently paused.
func (m *MPV) Paused() (bool, error) {
	data, err := m.sendCommand("get_property", "pause")
	if err != nil {
		return false, err
	}
	paused, _ := data.(bool)
	return paused, nil
}

// TogglePause toggles the pause state.
func (m *MPV) TogglePause() error {
	_, err := m.sendCommand("cycle", "pause")
	return err
}

// Seek moves playback by offset seconds.
func (m *MPV) Seek(offset float64) error {
	_, err := m.sendCommand("seek", offset, "relative")
	return err
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// Close detaches from mpv. A spawned instance is asked to quit and killed if it does not.
func (m *MPV) Close() error {
	if m.socketPath == "" {
		return nil
	}

	if m.owned {
		_, _ = m.sendCommand("quit")

		select {
		case <-m.exited:
		case <-time.After(quitTimeout):
			_ = killProcess(m.cmd)
		}

		_ = os.Remove(m.socketPath)
	}

	if m.listener != nil {
		m.listener.Stop()
	}
	m.markExited()
	return nil
}

// getFloatProperty retrieves a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a media target is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

// sanitizeTitle cleans up the title for mpv
func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
