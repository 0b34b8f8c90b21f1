// Package snippets renders the main view: header search, the snippet list
// and the create form.
package snippets

import (
	"context"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/syncvault/pkg/api"
	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/apperror"
	"tableflip.dev/syncvault/pkg/query"
	"tableflip.dev/syncvault/pkg/snippet"
	"tableflip.dev/syncvault/pkg/tui/components/reader"
	"tableflip.dev/syncvault/pkg/tui/events"
	"tableflip.dev/syncvault/pkg/tui/theme"
	"tableflip.dev/syncvault/pkg/tui/ui"
)

var _ ui.Component = (*Model)(nil)

const (
	fetchFailed  = "Failed to fetch snippets"
	deleteFailed = "Failed to delete snippet"
	createFailed = "Failed to create snippet. Please try again."
)

// Focus is the area receiving key presses.
type Focus int

const (
	FocusList Focus = iota
	FocusFilter
	FocusSearch
	FocusForm
)

type fetchedMsg struct {
	ticket query.Ticket
	items  []*snippet.Snippet
	err    error
}

type deletedMsg struct {
	id  string
	err error
}

type createdMsg struct {
	snippet *snippet.Snippet
	err     error
}

// Model is the main view once a device is selected.
type Model struct {
	ctx       context.Context
	svc       *app.Service
	theme     theme.Theme
	selection snippet.Selection

	filter  textinput.Model
	search  textinput.Model
	filters query.Filters
	seq     query.Sequence

	list    *app.List
	loading bool
	err     string
	cursor  int
	offset  int
	reader  *reader.Model

	focus      Focus
	form       form
	submitting bool
	formErr    string

	width  int
	height int
}

// New builds the main view for the selected device.
func New(ctx context.Context, svc *app.Service, th theme.Theme, sel snippet.Selection) *Model {
	return &Model{
		ctx:       ctx,
		svc:       svc,
		theme:     th,
		selection: sel,
		filter:    ui.NewInput("Search snippets...", 256),
		search:    ui.NewInput("Search snippets by content, tags, or device ID...", 256),
		list:      app.NewList(),
		reader:    reader.New(th),
		form:      newForm(),
	}
}

// Filters are the server-side criteria parsed from the header search.
func (m *Model) Filters() query.Filters { return m.filters }

// Loading reports whether a fetch is outstanding.
func (m *Model) Loading() bool { return m.loading }

// Err is the page-level error, empty when there is none.
func (m *Model) Err() string { return m.err }

// FormErr is the error shown in the create form.
func (m *Model) FormErr() string { return m.formErr }

// Focus reports which area has keyboard focus.
func (m *Model) Focus() Focus { return m.focus }

// Visible is the fetched list narrowed by the text search.
func (m *Model) Visible() []*snippet.Snippet {
	return m.list.Visible(m.search.Value())
}

// Init fetches with no filters.
func (m *Model) Init() tea.Cmd {
	return m.fetch()
}

// SetSize stores the available viewport size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	inner := max(width-4, 20)
	m.filter.SetWidth(max(inner/2, 20))
	m.search.SetWidth(inner)
	m.form.setWidth(max(min(inner-8, 72), 20))
	m.reader.SetSize(width, max(height-5, 6))
}

// fetch issues a new list request; only the response to the newest one is
// applied.
func (m *Model) fetch() tea.Cmd {
	m.loading = true
	m.err = ""
	ticket := m.seq.Next()
	ctx, svc, filters := m.ctx, m.svc, m.filters
	return func() tea.Msg {
		items, err := svc.Snippets(ctx, filters)
		return fetchedMsg{ticket: ticket, items: items, err: err}
	}
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		if !m.seq.Current(msg.ticket) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m, m.fail(msg.err, fetchFailed)
		}
		m.list.Set(msg.items)
		m.clampCursor()
		return m, nil
	case deletedMsg:
		m.list.Done(msg.id)
		if msg.err != nil {
			return m, m.fail(msg.err, deleteFailed)
		}
		m.list.Remove(msg.id)
		m.clampCursor()
		return m, nil
	case createdMsg:
		m.submitting = false
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return m, events.Emit(events.SessionLostMsg{Err: msg.err})
			}
			m.formErr = apperror.UserMessage(msg.err, createFailed)
			return m, nil
		}
		m.form.reset()
		m.closeForm()
		return m, m.fetch()
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	return m, m.updateFocused(msg)
}

func (m *Model) fail(err error, fallback string) tea.Cmd {
	if api.IsUnauthorized(err) {
		return events.Emit(events.SessionLostMsg{Err: err})
	}
	m.err = apperror.UserMessage(err, fallback)
	return nil
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case FocusFilter:
		m.filter, cmd = m.filter.Update(msg)
	case FocusSearch:
		m.search, cmd = m.search.Update(msg)
	case FocusForm:
		cmd = m.form.update(msg)
	}
	return cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+r" {
		return m.fetch()
	}
	switch m.focus {
	case FocusFilter:
		return m.handleFilterKey(msg)
	case FocusSearch:
		switch key {
		case "enter", "esc", "tab":
			m.setFocus(FocusList)
			return nil
		}
		cmd := m.updateFocused(msg)
		m.cursor, m.offset = 0, 0
		return cmd
	case FocusForm:
		return m.handleFormKey(msg)
	}

	if m.reader.Active() {
		switch key {
		case "esc", "q", "enter":
			m.reader.Close()
			return nil
		}
		_, cmd := m.reader.Update(msg)
		return cmd
	}

	switch key {
	case "enter":
		if visible := m.Visible(); m.cursor < len(visible) {
			m.reader.Open(visible[m.cursor])
		}
	case "r":
		if m.err != "" {
			return m.fetch()
		}
	case "/":
		return m.setFocus(FocusSearch)
	case "f", "ctrl+f":
		return m.setFocus(FocusFilter)
	case "n", "p":
		return m.openForm()
	case "d", "delete":
		return m.deleteSelected()
	case "down", "j":
		m.move(1)
	case "up", "k":
		m.move(-1)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(m.Visible())-1, 0)
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.cursor, m.offset = 0, 0
		}
	}
	return nil
}

// handleFilterKey keeps the server filters in step with the header search
// as it is typed.
func (m *Model) handleFilterKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc", "tab":
		m.setFocus(FocusList)
		return nil
	}
	cmd := m.updateFocused(msg)
	return tea.Batch(cmd, m.applyFilter())
}

// applyFilter refetches when the parsed header search changed the criteria.
func (m *Model) applyFilter() tea.Cmd {
	next := query.Parse(m.filter.Value())
	if next.Equal(m.filters) {
		return nil
	}
	m.filters = next
	m.cursor, m.offset = 0, 0
	return m.fetch()
}

func (m *Model) handleFormKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.submitting {
		return nil
	}
	switch msg.String() {
	case "esc":
		m.closeForm()
		return nil
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.form.focus == fieldType {
			return m.submit()
		}
		return m.form.next()
	case "tab", "down":
		return m.form.next()
	case "shift+tab", "up":
		return m.form.prev()
	}
	m.formErr = ""
	return m.form.update(msg)
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	m.filter.Blur()
	m.search.Blur()
	switch f {
	case FocusFilter:
		return m.filter.Focus()
	case FocusSearch:
		return m.search.Focus()
	}
	return nil
}

func (m *Model) openForm() tea.Cmd {
	m.setFocus(FocusForm)
	m.formErr = ""
	return m.form.open()
}

func (m *Model) closeForm() {
	m.form.close()
	m.formErr = ""
	m.setFocus(FocusList)
}

func (m *Model) submit() tea.Cmd {
	m.submitting = true
	m.formErr = ""
	draft := m.form.draft()
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		sn, err := svc.CreateSnippet(ctx, draft)
		return createdMsg{snippet: sn, err: err}
	}
}

func (m *Model) deleteSelected() tea.Cmd {
	visible := m.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return nil
	}
	id := visible[m.cursor].ID
	if !m.list.Begin(id) {
		return nil
	}
	m.err = ""
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return deletedMsg{id: id, err: svc.DeleteSnippet(ctx, id)}
	}
}

func (m *Model) move(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}
