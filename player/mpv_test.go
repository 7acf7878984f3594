package player

import (
	"bufio"
	"encoding/json"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeMPV answers the subset of mpv's JSON-IPC used by MPV.
type fakeMPV struct {
	listener net.Listener
	mu       sync.Mutex
	commands [][]interface{}
	timePos  float64
	paused   bool
	watchers []net.Conn
}

func newFakeMPV(t *testing.T) *fakeMPV {
	path := filepath.Join(t.TempDir(), "mpv.sock")
	l, err := net.Listen("unix", path)
	if err != nil {
		t.Fatal(err)
	}

	f := &fakeMPV{listener: l, timePos: 12.5}
	go f.serve()
	t.Cleanup(func() { f.close() })
	return f
}

func (f *fakeMPV) socket() string {
	return f.listener.Addr().String()
}

func (f *fakeMPV) serve() {
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeMPV) handle(conn net.Conn) {
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return
		}

		var cmd ipcCommand
		if err := json.Unmarshal(line, &cmd); err != nil {
			return
		}

		f.mu.Lock()
		f.commands = append(f.commands, cmd.Command)
		var reply map[string]interface{}
		switch cmd.Command[0] {
		case "get_property":
			switch cmd.Command[1] {
			case "time-pos":
				reply = map[string]interface{}{"data": f.timePos, "error": "success"}
			case "pause":
				reply = map[string]interface{}{"data": f.paused, "error": "success"}
			default:
				reply = map[string]interface{}{"error": "property unavailable"}
			}
		case "observe_property":
			f.watchers = append(f.watchers, conn)
			reply = map[string]interface{}{"error": "success"}
		default:
			reply = map[string]interface{}{"error": "success"}
		}
		f.mu.Unlock()

		// an unrelated broadcast event precedes every reply
		writeJSON(conn, map[string]interface{}{"event": "audio-reconfig"})
		writeJSON(conn, reply)

		if cmd.Command[0] == "observe_property" && cmd.Command[2] == "pause" {
			writeJSON(conn, map[string]interface{}{"event": "property-change", "id": 1, "name": "pause", "data": false})
		}
	}
}

func (f *fakeMPV) broadcast(event map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, conn := range f.watchers {
		writeJSON(conn, event)
	}
}

func (f *fakeMPV) hasCommand(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cmd := range f.commands {
		if cmd[0] == name {
			return true
		}
	}
	return false
}

func (f *fakeMPV) close() {
	_ = f.listener.Close()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, conn := range f.watchers {
		_ = conn.Close()
	}
}

func writeJSON(conn net.Conn, v interface{}) {
	payload, _ := json.Marshal(v)
	_, _ = conn.Write(append(payload, '\n'))
}

func receive(ch <-chan StateChange) (StateChange, bool) {
	select {
	case change := <-ch:
		return change, true
	case <-time.After(2 * time.Second):
		return StateChange{}, false
	}
}

func closed(ch <-chan struct{}, within time.Duration) bool {
	select {
	case <-ch:
		return true
	default:
	}

	select {
	case <-ch:
		return true
	case <-time.After(within):
		return false
	}
}

func TestMPV(t *testing.T) {
	Convey("Given an mpv instance listening on a socket", t, func() {
		fake := newFakeMPV(t)
		changes := make(chan StateChange, 8)

		mpv, err := Attach(fake.socket())
		So(err, ShouldBeNil)
		mpv.OnStateChange(func(change StateChange) { changes <- change })
		defer mpv.Close()

		Convey("Then the player is ready", func() {
			So(closed(mpv.Ready(), 0), ShouldBeTrue)
		})

		Convey("When reading the playback position", func() {
			at, err := mpv.CurrentTime()

			Convey("Then event lines before the reply are skipped", func() {
				So(err, ShouldBeNil)
				So(at, ShouldEqual, 12.5)
			})
		})

		Convey("When the observed pause property changes", func() {
			change, ok := receive(changes)

			Convey("Then a playing state change is emitted with the current time", func() {
				So(ok, ShouldBeTrue)
				So(change.Playing, ShouldBeTrue)
				So(change.Time, ShouldEqual, 12.5)
			})

			Convey("Then a later pause is reported as not playing", func() {
				fake.broadcast(map[string]interface{}{"event": "property-change", "name": "pause", "data": true})
				change, ok := receive(changes)
				So(ok, ShouldBeTrue)
				So(change.Playing, ShouldBeFalse)
			})

			Convey("Then a playback restart keeps the playing flag", func() {
				fake.broadcast(map[string]interface{}{"event": "playback-restart"})
				change, ok := receive(changes)
				So(ok, ShouldBeTrue)
				So(change.Playing, ShouldBeTrue)
			})
		})

		Convey("When toggling pause and seeking", func() {
			So(mpv.TogglePause(), ShouldBeNil)
			So(mpv.Seek(-10), ShouldBeNil)

			Convey("Then the commands reach mpv", func() {
				So(fake.hasCommand("cycle"), ShouldBeTrue)
				So(fake.hasCommand("seek"), ShouldBeTrue)
			})
		})

		Convey("When the connection is lost", func() {
			fake.close()

			Convey("Then Wait is released", func() {
				So(closed(mpv.Wait(), 2*time.Second), ShouldBeTrue)

				_, err := mpv.CurrentTime()
				So(err, ShouldEqual, ErrNotRunning)
			})
		})
	})

	Convey("Given no socket", t, func() {
		Convey("Then attaching fails", func() {
			_, err := Attach(filepath.Join(t.TempDir(), "missing.sock"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSanitize(t *testing.T) {
	Convey("Given media targets", t, func() {
		Convey("Then flags and odd schemes are rejected", func() {
			_, err := sanitizeMediaTarget("--script=evil.lua")
			So(err, ShouldNotBeNil)
			_, err = sanitizeMediaTarget("file:///etc/passwd")
			So(err, ShouldNotBeNil)
			_, err = sanitizeMediaTarget("  ")
			So(err, ShouldNotBeNil)
		})

		Convey("Then urls and paths pass", func() {
			target, err := sanitizeMediaTarget("https://example.com/talk.mp4")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "https://example.com/talk.mp4")

			target, err = sanitizeMediaTarget("videos/../talk.mkv")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "talk.mkv")
		})

		Convey("Then titles are flattened to one line", func() {
			So(sanitizeTitle(" a\nb\tc\x00 "), ShouldEqual, "a b c")
		})
	})
}
