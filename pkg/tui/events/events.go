// Package events holds the messages views use to ask the shell for a stage
// change.
package events

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/syncvault/pkg/snippet"
)

// AuthenticatedMsg is emitted once a login or signup stored a token.
type AuthenticatedMsg struct {
	Email string
}

// DeviceSelectedMsg is emitted once a device was persisted as the current one.
type DeviceSelectedMsg struct {
	Selection snippet.Selection
}

// SessionLostMsg reports that the server rejected the bearer token.
type SessionLostMsg struct {
	Err error
}

// LogoutMsg asks the shell to clear the session.
type LogoutMsg struct{}

// Emit wraps msg into a tea.Cmd.
func Emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
