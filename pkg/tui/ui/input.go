package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/syncvault/pkg/tui/theme"
)

// NewInput returns a blurred single-line input with the shared cursor style.
func NewInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "> "
	ti.VirtualCursor = true
	ti.Styles.Cursor.Color = lipgloss.Color("212")
	ti.Styles.Cursor.Shape = tea.CursorBlock
	ti.Styles.Cursor.Blink = true
	ti.Blur()
	return ti
}

// Modal renders title and body lines inside the modal frame, centered in
// the given area.
func Modal(th theme.Theme, width, height int, title string, lines ...string) string {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	body := make([]string, 0, len(lines)+2)
	body = append(body, th.Modal.Title.Render(title), "")
	body = append(body, lines...)

	frameWidth := width - 4
	if frameWidth > 64 {
		frameWidth = 64
	}
	panel := th.Modal.Frame.Width(frameWidth).Render(strings.Join(body, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}

// Help joins key hints with the footer separator.
func Help(hints ...string) string {
	return strings.Join(hints, " · ")
}
