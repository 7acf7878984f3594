package player

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
)

// Gate is a one-shot readiness signal shared by every session of the process.
// Only the first Resolve takes effect.
type Gate struct {
	once sync.Once
	done chan struct{}
	err  error
}

func NewGate() *Gate {
	return &Gate{done: make(chan struct{})}
}

// Resolve settles the gate with the given outcome.
func (g *Gate) Resolve(err error) {
	g.once.Do(func() {
		g.err = err
		close(g.done)
	})
}

// Done is closed once the gate is resolved.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Wait blocks until the gate is resolved or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return g.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// API reports whether the player backend is usable at all.
var API = NewGate()

// LoadAPI resolves API by locating the player executable.
func LoadAPI(binary string) {
	_, err := exec.LookPath(binary)
	if err != nil {
		err = fmt.Errorf("locate %s: %w", binary, err)
	}
	API.Resolve(err)
}
