// Package shell is the root Bubble Tea model. It shows the view for the
// current session stage and moves between them.
package shell

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/tui/events"
	"tableflip.dev/syncvault/pkg/tui/theme"
	"tableflip.dev/syncvault/pkg/tui/ui"
	"tableflip.dev/syncvault/pkg/tui/views/auth"
	"tableflip.dev/syncvault/pkg/tui/views/devices"
	"tableflip.dev/syncvault/pkg/tui/views/snippets"
)

const sessionExpired = "Your session expired. Please sign in again."

// Model owns the active view.
type Model struct {
	ctx   context.Context
	svc   *app.Service
	theme theme.Theme

	stage  app.Stage
	view   ui.Component
	notice string

	width  int
	height int
}

// New builds the shell; the first view is chosen in Init.
func New(ctx context.Context, svc *app.Service) *Model {
	return &Model{ctx: ctx, svc: svc, theme: theme.Default()}
}

// Run launches the Bubble Tea UI.
func Run(ctx context.Context, svc *app.Service) error {
	p := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Stage is the stage whose view is showing.
func (m *Model) Stage() app.Stage { return m.stage }

// Current is the active view.
func (m *Model) Current() ui.Component { return m.view }

// Notice is the banner shown above the view, if any.
func (m *Model) Notice() string { return m.notice }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.enter()
}

// enter rebuilds the view for the stage the session is in now.
func (m *Model) enter() tea.Cmd {
	m.stage = m.svc.Stage()
	switch m.stage {
	case app.StageUnauthenticated:
		m.view = auth.New(m.ctx, m.svc, m.theme)
	case app.StageDeviceUnselected:
		m.view = devices.New(m.ctx, m.svc, m.theme)
	default:
		sel, _ := m.svc.Selection()
		m.view = snippets.New(m.ctx, m.svc, m.theme, sel)
	}
	m.svc.Log.Debug("stage", slog.String("stage", m.stage.String()))
	m.resize()
	return m.view.Init()
}

func (m *Model) resize() {
	if m.view == nil || m.width == 0 {
		return
	}
	h := m.height
	if m.notice != "" {
		h--
	}
	m.view.SetSize(m.width, h)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			if m.stage != app.StageUnauthenticated {
				return m, events.Emit(events.LogoutMsg{})
			}
		}
	case events.AuthenticatedMsg, events.DeviceSelectedMsg:
		m.notice = ""
		return m, m.enter()
	case events.SessionLostMsg:
		m.svc.HandleError(msg.Err)
		m.notice = sessionExpired
		return m, m.enter()
	case events.LogoutMsg:
		if err := m.svc.Logout(); err != nil {
			m.svc.Log.Error("logout", slog.Any("err", err))
		}
		m.notice = ""
		return m, m.enter()
	}

	if m.view == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.view == nil {
		return ""
	}
	if m.notice != "" {
		return m.theme.Status.Notice.Render(m.notice) + "\n" + m.view.View()
	}
	return m.view.View()
}
