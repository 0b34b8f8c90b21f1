// Package reader shows one snippet in full inside a scrollable frame.
package reader

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/syncvault/pkg/snippet"
	"tableflip.dev/syncvault/pkg/tui/theme"
	"tableflip.dev/syncvault/pkg/tui/ui"
)

var _ ui.Component = (*Model)(nil)

// Model renders the untruncated content of a snippet in a viewport.
type Model struct {
	viewport viewport.Model
	theme    theme.Theme
	snippet  *snippet.Snippet

	width  int
	height int
}

// New constructs a closed reader.
func New(th theme.Theme) *Model {
	vp := viewport.New(
		viewport.WithWidth(1),
		viewport.WithHeight(1),
	)
	vp.MouseWheelEnabled = true
	return &Model{viewport: vp, theme: th}
}

// Open shows s from the top.
func (m *Model) Open(s *snippet.Snippet) {
	m.snippet = s
	m.render()
	m.viewport.SetYOffset(0)
}

// Close hides the reader.
func (m *Model) Close() { m.snippet = nil }

// Active reports whether a snippet is open.
func (m *Model) Active() bool { return m.snippet != nil }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// SetSize configures the frame and re-wraps the content to fit.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, 24), max(height, 6)
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	frame := m.theme.Card.Selected
	m.viewport.SetWidth(max(width-frame.GetHorizontalFrameSize(), 1))
	m.viewport.SetHeight(max(height-frame.GetVerticalFrameSize()-1, 1))
	m.render()
}

func (m *Model) render() {
	if m.snippet == nil {
		m.viewport.SetContent("")
		return
	}
	s := m.snippet
	card := m.theme.Card
	meta := []string{card.TypeBadge(s.Type)}
	if s.DeviceID != "" {
		meta = append(meta, card.Meta.Render("Device: "+s.DeviceID))
	}
	meta = append(meta, card.Meta.Render(s.CreatedAt.Display()))

	lines := []string{strings.Join(meta, "  ")}
	if len(s.Tags) > 0 {
		lines = append(lines, card.Tag.Render("#"+strings.Join(s.Tags, " #")))
	}
	lines = append(lines, "", body(s, max(m.viewport.Width(), 10)))
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// body renders code snippets as a highlighted block. Text and links are
// only wrapped, since markdown rendering would eat their * and # marks.
func body(s *snippet.Snippet, width int) string {
	if s.Type != snippet.Code {
		return wordwrap.String(s.Content, width)
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return wordwrap.String(s.Content, width)
	}
	f := fence(s.Content)
	out, err := renderer.Render(f + "\n" + s.Content + "\n" + f)
	if err != nil {
		return wordwrap.String(s.Content, width)
	}
	return strings.Trim(out, "\n")
}

// fence returns a backtick fence longer than any backtick run in content.
func fence(content string) string {
	longest, run := 0, 0
	for _, r := range content {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(longest+1, 3))
}

// View renders the open snippet inside the selected-card frame.
func (m *Model) View() string {
	if m.snippet == nil {
		return ""
	}
	help := m.theme.Footer.Help.Render(ui.Help("↑/↓ scroll", "esc close"))
	return m.theme.Card.Selected.Render(m.viewport.View()) + "\n" + help
}
