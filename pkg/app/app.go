// Package app is the session controller shared by the CLI, the TUI and the
// MCP bridge. It owns the persisted session, decides which stage of the
// client is reachable, validates input before it reaches the server and
// reacts to lost sessions.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tableflip.dev/syncvault/pkg/api"
	"tableflip.dev/syncvault/pkg/apperror"
	"tableflip.dev/syncvault/pkg/query"
	"tableflip.dev/syncvault/pkg/snippet"
	"tableflip.dev/syncvault/pkg/store"
)

// MaxDeviceName bounds device names, in characters.
const MaxDeviceName = 128

// Backend is the server surface the service drives; *api.Client satisfies it.
type Backend interface {
	Login(ctx context.Context, creds snippet.Credentials) (*snippet.AuthResponse, error)
	Signup(ctx context.Context, creds snippet.Credentials) (*snippet.AuthResponse, error)
	Devices(ctx context.Context) ([]*snippet.Device, error)
	RegisterDevice(ctx context.Context, name string) (*snippet.Device, error)
	DeleteDevice(ctx context.Context, id string) error
	Snippets(ctx context.Context, f query.Filters) ([]*snippet.Snippet, error)
	Snippet(ctx context.Context, id string) (*snippet.Snippet, error)
	CreateSnippet(ctx context.Context, req snippet.CreateRequest) (*snippet.Snippet, error)
	DeleteSnippet(ctx context.Context, id string) error
}

var _ Backend = (*api.Client)(nil)

// Stage is the top-level view the client can show.
type Stage int

const (
	StageUnauthenticated Stage = iota
	StageDeviceUnselected
	StageMain
)

func (s Stage) String() string {
	switch s {
	case StageUnauthenticated:
		return "unauthenticated"
	case StageDeviceUnselected:
		return "device-unselected"
	case StageMain:
		return "main"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Service provides the session-aware operations of the client.
type Service struct {
	Backend Backend
	State   *store.State
	Log     *slog.Logger
}

// New wires a service over backend and state.
func New(backend Backend, state *store.State, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{Backend: backend, State: state, Log: log}
}

// Stage reports which view is reachable from the persisted state.
func (s *Service) Stage() Stage {
	if !s.State.Tokens.IsAuthenticated() {
		return StageUnauthenticated
	}
	if _, ok := s.State.Devices.Get(); !ok {
		return StageDeviceUnselected
	}
	return StageMain
}

// Selection returns the selected device.
func (s *Service) Selection() (snippet.Selection, bool) {
	return s.State.Devices.Get()
}

// HandleError drops the session when err reports a rejected token and
// returns err unchanged. It returns true when the session was lost.
func (s *Service) HandleError(err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	if clearErr := s.State.Tokens.Clear(); clearErr != nil {
		s.Log.Error("clear token after 401", slog.String("error", clearErr.Error()))
	}
	s.Log.Info("session expired, token cleared")
	return true
}

func (s *Service) requireAuth() error {
	if !s.State.Tokens.IsAuthenticated() {
		return apperror.ErrNotAuthenticated
	}
	return nil
}

func (s *Service) requireDevice() (snippet.Selection, error) {
	if err := s.requireAuth(); err != nil {
		return snippet.Selection{}, err
	}
	sel, ok := s.State.Devices.Get()
	if !ok {
		return snippet.Selection{}, apperror.ErrNoDevice
	}
	return sel, nil
}

// guard passes err through HandleError.
func (s *Service) guard(err error) error {
	if err != nil {
		s.HandleError(err)
	}
	return err
}

func validateCredentials(email, password string) (snippet.Credentials, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return snippet.Credentials{}, apperror.Required("email")
	}
	if password == "" {
		return snippet.Credentials{}, apperror.Required("password")
	}
	return snippet.Credentials{Email: email, Password: password}, nil
}

// Login authenticates and persists the returned token.
func (s *Service) Login(ctx context.Context, email, password string) (*snippet.AuthResponse, error) {
	creds, err := validateCredentials(email, password)
	if err != nil {
		return nil, err
	}
	resp, err := s.Backend.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	return resp, s.startSession(resp)
}

// Signup creates an account and persists the returned token.
func (s *Service) Signup(ctx context.Context, email, password string) (*snippet.AuthResponse, error) {
	creds, err := validateCredentials(email, password)
	if err != nil {
		return nil, err
	}
	resp, err := s.Backend.Signup(ctx, creds)
	if err != nil {
		return nil, err
	}
	return resp, s.startSession(resp)
}

func (s *Service) startSession(resp *snippet.AuthResponse) error {
	if resp == nil || resp.Token == "" {
		return errors.New("app: server returned no token")
	}
	if err := s.State.Tokens.Set(resp.Token); err != nil {
		return err
	}
	s.Log.Info("session started", slog.String("user", resp.User.Email))
	return nil
}

// Logout forgets the token and the selected device.
func (s *Service) Logout() error {
	if err := s.State.ClearAll(); err != nil {
		return err
	}
	s.Log.Info("logged out")
	return nil
}
