package auth

import (
	"context"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/store"
	"tableflip.dev/syncvault/pkg/tui/events"
	"tableflip.dev/syncvault/pkg/tui/theme"
	"tableflip.dev/syncvault/pkg/vaulttest"
)

func newModel(t *testing.T) (*Model, *vaulttest.Server, *app.Service) {
	t.Helper()
	srv := vaulttest.New(t)
	svc, err := app.Connect(srv.URL, store.NewState(store.NewMemory()), nil)
	require.NoError(t, err)
	m := New(context.Background(), svc, theme.Default())
	m.SetSize(80, 24)
	m.Init()
	return m, srv, svc
}

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	tab   = tea.KeyPressMsg{Code: tea.KeyTab}
	ctrlS = tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
)

func submit(t *testing.T, m *Model) tea.Cmd {
	t.Helper()
	m.Update(tab)
	require.Equal(t, fieldPassword, m.focus)
	_, cmd := m.Update(enter)
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	_, next := m.Update(cmd())
	return next
}

func TestLoginEmitsAuthenticated(t *testing.T) {
	m, srv, svc := newModel(t)
	srv.AddUser("me@example.com", "secret")

	m.email.SetValue(" me@example.com ")
	m.password.SetValue("secret")
	next := submit(t, m)

	require.NotNil(t, next)
	msg, ok := next().(events.AuthenticatedMsg)
	require.True(t, ok)
	assert.Equal(t, "me@example.com", msg.Email)
	assert.Equal(t, app.StageDeviceUnselected, svc.Stage())
	assert.Empty(t, m.Err())
}

func TestLoginFailureStaysOnLogin(t *testing.T) {
	m, srv, svc := newModel(t)
	srv.AddUser("me@example.com", "secret")

	m.email.SetValue("me@example.com")
	m.password.SetValue("wrong")
	next := submit(t, m)

	assert.Nil(t, next)
	assert.Equal(t, ShowingLogin, m.Mode())
	assert.Equal(t, "Invalid credentials", m.Err())
	assert.Equal(t, app.StageUnauthenticated, svc.Stage())
	assert.False(t, m.busy)
}

func TestEmptyFieldsNeverReachServer(t *testing.T) {
	m, srv, _ := newModel(t)

	m.email.SetValue("me@example.com")
	submit(t, m)

	assert.Equal(t, "password is required", m.Err())
	assert.Zero(t, srv.CountRequests(http.MethodPost, "/auth/login"))
}

func TestToggleSwitchesToSignup(t *testing.T) {
	m, srv, svc := newModel(t)

	m.Update(ctrlS)
	assert.Equal(t, ShowingSignup, m.Mode())
	assert.Contains(t, m.View(), "Create account")

	m.email.SetValue("new@example.com")
	m.password.SetValue("pw")
	next := submit(t, m)
	require.NotNil(t, next)
	assert.IsType(t, events.AuthenticatedMsg{}, next())
	assert.Equal(t, 1, srv.CountRequests(http.MethodPost, "/auth/signup"))
	assert.True(t, svc.State.Tokens.IsAuthenticated())

	m.Update(ctrlS)
	assert.Equal(t, ShowingLogin, m.Mode())
	assert.Empty(t, m.password.Value(), "switching clears the password")
}
