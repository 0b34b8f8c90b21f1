package snippets

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/syncvault/pkg/query"
	"tableflip.dev/syncvault/pkg/snippet"
	"tableflip.dev/syncvault/pkg/tui/ui"
)

// View renders the header, then the form or the list, then the help line.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	height := m.height
	if height <= 0 {
		height = 24
	}

	header := m.renderHeader()
	footer := m.theme.Footer.Help.Render(m.helpLine())
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer)-1, 3)

	var body string
	switch {
	case m.focus == FocusForm:
		body = m.renderForm(width, bodyHeight)
	case m.reader.Active():
		body = m.reader.View()
	case m.loading:
		body = m.theme.Status.Loading.Render("Loading snippets...")
	case m.err != "":
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.theme.Status.Error.Render(m.err),
			m.theme.Footer.Help.Render("r retry"))
	default:
		body = m.renderList(width, bodyHeight)
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) renderHeader() string {
	parts := []string{m.theme.Header.Brand.Render("SyncVault")}
	if label := m.selection.Label(); label != "" {
		parts = append(parts, m.theme.Header.Device.Render(label))
	}
	parts = append(parts,
		m.theme.Header.Search.Render(m.filter.View()),
		m.theme.Header.Action.Render("n Paste New"),
		m.theme.Header.Action.Render("ctrl+l Logout"),
	)
	return lipgloss.JoinHorizontal(lipgloss.Center, join(parts, "  ")...)
}

func join(parts []string, sep string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}

func (m *Model) renderList(width, height int) string {
	visible := m.Visible()
	lines := []string{
		m.search.View(),
		m.theme.Footer.Status.Render(query.CountLabel(len(visible))),
	}
	if len(visible) == 0 {
		lines = append(lines, "", m.theme.Status.Empty.Render(query.EmptyMessage(m.search.Value())))
		return strings.Join(lines, "\n")
	}

	avail := height - len(lines)
	cards := make([]string, len(visible))
	for i, s := range visible {
		cards[i] = m.renderCard(s, i == m.cursor, width)
	}
	m.scrollTo(cards, avail)

	used := 0
	for i := m.offset; i < len(cards); i++ {
		h := lipgloss.Height(cards[i])
		if used+h > avail && i > m.offset {
			break
		}
		lines = append(lines, cards[i])
		used += h
	}
	return strings.Join(lines, "\n")
}

// scrollTo moves offset so the card under the cursor fits in avail lines.
func (m *Model) scrollTo(cards []string, avail int) {
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
	for m.offset < m.cursor {
		used := 0
		for i := m.offset; i <= m.cursor; i++ {
			used += lipgloss.Height(cards[i])
		}
		if used <= avail {
			return
		}
		m.offset++
	}
}

func (m *Model) renderCard(s *snippet.Snippet, selected bool, width int) string {
	th := m.theme.Card
	meta := []string{th.TypeBadge(s.Type)}
	if s.DeviceID != "" {
		meta = append(meta, th.Meta.Render("Device: "+s.DeviceID))
	}
	meta = append(meta, th.Meta.Render(s.CreatedAt.Display()))
	if m.list.Pending(s.ID) {
		meta = append(meta, th.Pending.Render("Deleting..."))
	}

	inner := max(width-6, 10)
	lines := []string{
		strings.Join(meta, "  "),
		th.Body.Render(wordwrap.String(snippet.Preview(s.Content), inner)),
	}
	if len(s.Tags) > 0 {
		tags := make([]string, len(s.Tags))
		for i, t := range s.Tags {
			tags[i] = "#" + t
		}
		lines = append(lines, th.Tag.Render(strings.Join(tags, " ")))
	}

	frame := th.Frame
	if selected {
		frame = th.Selected
	}
	return frame.Width(max(width-2, 12)).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderForm(width, height int) string {
	label := m.theme.Modal.Label
	types := make([]string, 0, len(snippet.Types()))
	for i, t := range snippet.Types() {
		name := t.String()
		if i == m.form.typ {
			name = "[" + name + "]"
		} else {
			name = " " + name + " "
		}
		types = append(types, name)
	}
	typeLine := strings.Join(types, " ")
	if m.form.focus == fieldType {
		typeLine = m.theme.Header.Action.Render(typeLine)
	}

	lines := []string{
		label.Render("Content"),
		m.form.content.View(),
		"",
		label.Render("Tags (comma separated)"),
		m.form.tags.View(),
		"",
		label.Render("Type"),
		typeLine,
		"",
	}
	switch {
	case m.submitting:
		lines = append(lines, m.theme.Status.Loading.Render("Creating..."))
	case m.formErr != "":
		lines = append(lines, m.theme.Status.Error.Render(m.formErr))
	}
	return ui.Modal(m.theme, width, height, "Create New Snippet", lines...)
}

func (m *Model) helpLine() string {
	switch m.focus {
	case FocusForm:
		return ui.Help("tab next field", "←/→ type", "ctrl+s create", "esc cancel")
	case FocusFilter:
		return ui.Help("device: tag: type: filter the server list", "enter done")
	case FocusSearch:
		return ui.Help("type to search", "enter done")
	}
	if m.reader.Active() {
		return ui.Help("esc back", "ctrl+l logout", "ctrl+c quit")
	}
	return ui.Help("j/k move", "enter open", "/ search", "f filter", "n paste new", "d delete", "ctrl+r refresh", "ctrl+l logout", "ctrl+c quit")
}
