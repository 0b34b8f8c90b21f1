// Package ui holds the pieces shared by every SyncVault view.
package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component is a view the shell can size, update and render.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}
