// Package tui renders a session in the terminal: a scrollable transcript page with a
// now-playing box that the layout controller pins, expands or docks as a mini player.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/srtdeck/srtdeck/player"
	"github.com/srtdeck/srtdeck/session"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Title   string
	Session session.Options
}

// Run attaches a session to the widget and runs the Bubble Tea loop until the user
// quits or the widget goes away.
func Run(ctx context.Context, widget player.Widget, options *Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bubble := newBubble(options)
	program := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	// writes may come from the player's event goroutine as well as from Update
	bubble.surface.notify = func() { go program.Send(redrawMsg{}) }
	bubble.session = session.New(widget, bubble.surface, programDisplay{send: program.Send}, options.Session)
	defer bubble.session.Close()

	go func() {
		if err := bubble.session.Start(ctx); err != nil && ctx.Err() == nil {
			program.Send(fmt.Errorf("start session: %w", err))
		}
	}()

	go func() {
		select {
		case <-widget.Wait():
			program.Send(widgetGoneMsg{})
		case <-ctx.Done():
		}
	}()

	_, err := program.Run()
	return err
}
