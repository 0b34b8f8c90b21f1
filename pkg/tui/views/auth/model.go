// Package auth renders the login and signup forms.
package auth

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/apperror"
	"tableflip.dev/syncvault/pkg/snippet"
	"tableflip.dev/syncvault/pkg/tui/events"
	"tableflip.dev/syncvault/pkg/tui/theme"
	"tableflip.dev/syncvault/pkg/tui/ui"
)

var _ ui.Component = (*Model)(nil)

// Mode selects which form is showing.
type Mode int

const (
	ShowingLogin Mode = iota
	ShowingSignup
)

const (
	fieldEmail = iota
	fieldPassword
)

type resultMsg struct {
	mode Mode
	resp *snippet.AuthResponse
	err  error
}

// Model is the unauthenticated view. It only leaves the current mode when
// the user switches.
type Model struct {
	ctx   context.Context
	svc   *app.Service
	theme theme.Theme

	mode     Mode
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	err      string

	width  int
	height int
}

// New builds the auth view showing the login form.
func New(ctx context.Context, svc *app.Service, th theme.Theme) *Model {
	email := ui.NewInput("you@example.com", 254)
	password := ui.NewInput("password", 128)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	return &Model{
		ctx:      ctx,
		svc:      svc,
		theme:    th,
		email:    email,
		password: password,
	}
}

// Mode reports the form currently shown.
func (m *Model) Mode() Mode { return m.mode }

// Err is the message under the form, empty when there is none.
func (m *Model) Err() string { return m.err }

// Init focuses the email field.
func (m *Model) Init() tea.Cmd {
	return m.setFocus(fieldEmail)
}

// SetSize stores the available viewport size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.email.SetWidth(max(width/2, 20))
	m.password.SetWidth(max(width/2, 20))
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.busy = false
		if msg.err != nil {
			m.err = apperror.UserMessage(msg.err, failure(msg.mode))
			return m, nil
		}
		m.err = ""
		m.password.SetValue("")
		email := msg.resp.User.Email
		if email == "" {
			email = strings.TrimSpace(m.email.Value())
		}
		return m, events.Emit(events.AuthenticatedMsg{Email: email})
	case tea.KeyPressMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "down", "up":
			return m, m.setFocus((m.focus + 1) % 2)
		case "ctrl+s":
			m.toggle()
			return m, m.setFocus(fieldEmail)
		case "enter":
			if m.focus == fieldEmail {
				return m, m.setFocus(fieldPassword)
			}
			return m, m.submit()
		}
	}
	return m, m.updateFocused(msg)
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.focus == fieldEmail {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return cmd
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.focus = field
	if field == fieldEmail {
		m.password.Blur()
		return m.email.Focus()
	}
	m.email.Blur()
	return m.password.Focus()
}

func (m *Model) toggle() {
	if m.mode == ShowingLogin {
		m.mode = ShowingSignup
	} else {
		m.mode = ShowingLogin
	}
	m.err = ""
	m.password.SetValue("")
}

func (m *Model) submit() tea.Cmd {
	m.busy = true
	m.err = ""
	mode := m.mode
	email, password := m.email.Value(), m.password.Value()
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		var (
			resp *snippet.AuthResponse
			err  error
		)
		if mode == ShowingSignup {
			resp, err = svc.Signup(ctx, email, password)
		} else {
			resp, err = svc.Login(ctx, email, password)
		}
		return resultMsg{mode: mode, resp: resp, err: err}
	}
}

func failure(mode Mode) string {
	if mode == ShowingSignup {
		return "Signup failed"
	}
	return "Login failed"
}

// View renders the active form.
func (m *Model) View() string {
	title, switchHint, submit := "SyncVault · Sign in", "ctrl+s create an account", "Signing in..."
	if m.mode == ShowingSignup {
		title, switchHint, submit = "SyncVault · Create account", "ctrl+s back to sign in", "Creating account..."
	}
	lines := []string{
		m.theme.Modal.Label.Render("Email"),
		m.email.View(),
		"",
		m.theme.Modal.Label.Render("Password"),
		m.password.View(),
		"",
	}
	switch {
	case m.busy:
		lines = append(lines, m.theme.Status.Loading.Render(submit))
	case m.err != "":
		lines = append(lines, m.theme.Status.Error.Render(m.err))
	}
	lines = append(lines, "", m.theme.Footer.Help.Render(ui.Help("enter submit", "tab next field", switchHint, "ctrl+c quit")))
	return ui.Modal(m.theme, m.width, m.height, title, lines...)
}
