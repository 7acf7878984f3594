package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/srtdeck/srtdeck/log"
)

// EventCallback receives an observed property change, or an event name with its raw payload.
type EventCallback func(name string, data interface{})

// observed lists the properties subscribed to on the event connection.
var observed = []string{"pause", "eof-reached"}

// EventListener keeps one persistent connection to mpv and forwards its notifications.
// Property observation is scoped to the connection that requested it, so the observe
// commands are written on the same connection that is read.
type EventListener struct {
	socketPath string
	conn       net.Conn
	callback   EventCallback
	onClose    func()
	mu         sync.Mutex
	listening  bool
	done       chan struct{}
}

// NewEventListener creates a listener for the given socket. onClose runs once the
// connection is lost or the listener is stopped.
func NewEventListener(socketPath string, callback EventCallback, onClose func()) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
		onClose:    onClose,
		done:       make(chan struct{}),
	}
}

// Start connects, subscribes to the observed properties and starts the read loop.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observed {
		if err := writeCommand(conn, []interface{}{"observe_property", i + 1, name}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true
	go el.readLoop()

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop closes the connection and waits for the read loop to finish.
func (el *EventListener) Stop() {
	el.mu.Lock()
	if !el.listening {
		el.mu.Unlock()
		return
	}
	_ = el.conn.Close()
	el.mu.Unlock()

	<-el.done
}

func (el *EventListener) readLoop() {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()

		close(el.done)
		if el.onClose != nil {
			el.onClose()
		}
	}()

	reader := bufio.NewReader(el.conn)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			el.processEvent(line)
		}
		if err != nil {
			log.Infof("mpv event listener stopped: %v", err)
			return
		}
	}
}

// processEvent parses and dispatches a single mpv event line. Command replies are ignored.
func (el *EventListener) processEvent(line []byte) {
	var msg ipcMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		log.Debugf("mpv: skipping unparseable line: %v", err)
		return
	}

	if el.callback == nil {
		return
	}

	switch msg.Event {
	case "":
	case "property-change":
		if msg.Name != "" {
			el.callback(msg.Name, msg.Data)
		}
	default:
		el.callback(msg.Event, nil)
	}
}
