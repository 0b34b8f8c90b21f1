package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/prompt"
	"tableflip.dev/syncvault/pkg/tui/shell"
)

var ErrNoTerminal = errors.New("the interactive UI needs a terminal")

type UI struct {
	Service *app.Service
}

func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return fmt.Errorf("failed to open the session store")
	}
	if !prompt.Interactive(os.Stdin) || !prompt.Interactive(os.Stdout) {
		return ErrNoTerminal
	}
	return shell.Run(ctx, u.Service)
}
