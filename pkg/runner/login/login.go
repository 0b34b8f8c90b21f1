// Package login signs the user in or up and out again.
package login

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/prompt"
)

type Login struct {
	Service *app.Service
	// Prompt asks for whatever was not given; nil disables prompting.
	Prompt   prompt.Prompter
	Email    string
	Password string
	Signup   bool
	Out      io.Writer
}

func (l *Login) Do(ctx context.Context) error {
	if l.Service == nil {
		return errors.New("can not log in, no service")
	}
	email, password := l.Email, l.Password
	var err error
	if email == "" && l.Prompt != nil {
		if email, err = l.Prompt.Line("Email", false, prompt.NotEmpty); err != nil {
			return err
		}
	}
	if password == "" && l.Prompt != nil {
		if password, err = l.Prompt.Line("Password", true, prompt.NotEmpty); err != nil {
			return err
		}
	}

	auth := l.Service.Login
	verb := "Signed in as"
	if l.Signup {
		auth = l.Service.Signup
		verb = "Created account"
	}
	resp, err := auth(ctx, email, password)
	if err != nil {
		return err
	}

	out := output(l.Out)
	_, _ = fmt.Fprintf(out, "%s %s\n", verb, color.New(color.Bold).Sprint(resp.User.Email))
	if l.Service.Stage() == app.StageDeviceUnselected {
		_, _ = fmt.Fprintln(out, `Pick the device this terminal is with "syncvault device select".`)
	}
	return nil
}

// Logout forgets the session and the selected device.
type Logout struct {
	Service *app.Service
	Out     io.Writer
}

func (l *Logout) Do(_ context.Context) error {
	if err := l.Service.Logout(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(output(l.Out), "Logged out.")
	return nil
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
