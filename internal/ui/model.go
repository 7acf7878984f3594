// Package ui provides internal state management and rendering utilities for ephemeral terminal notifications.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/srtdeck/srtdeck/style"
)

// Lifetime is how long a notification stays visible.
const Lifetime = 3 * time.Second

// Model encapsulates the state for displaying non-blocking terminal alerts.
type Model struct {
	notification string
	// generation drops clear messages scheduled for an older notification.
	generation int
}

// NotificationMsg asks the model to show a notification.
type NotificationMsg string

// ClearNotificationMsg resets the visual notification state.
type ClearNotificationMsg struct {
	generation int
}

// Notify returns a tea.Cmd that shows text as a notification.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg(text)
	}
}

// Update processes incoming messages to modify the notification state.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = string(msg)
		m.generation++
		generation := m.generation
		return tea.Tick(Lifetime, func(time.Time) tea.Msg {
			return ClearNotificationMsg{generation: generation}
		})
	case ClearNotificationMsg:
		if msg.generation == m.generation {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the visible notification, if any.
func (m *Model) Current() string {
	return m.notification
}

// View appends the current notification to a line.
func (m *Model) View(line string) string {
	if m.notification == "" {
		return line
	}
	return line + "  " + style.Faint(m.notification)
}
