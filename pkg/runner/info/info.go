package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/printers"
	"tableflip.dev/syncvault/pkg/store"
)

type Info struct {
	Config  store.Config
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

func (n *Info) Do(_ context.Context) error {
	if n.Config == nil {
		var err error
		if n.Config, err = store.LoadConfig(); err != nil {
			return err
		}
	}
	if n.Service == nil {
		return fmt.Errorf("failed to open the session store")
	}

	sel, _ := n.Service.Selection()
	s := printers.Session{
		APIURL:        n.Config.APIURL(),
		Path:          n.Config.BasePath(),
		Authenticated: n.Service.State.Tokens.IsAuthenticated(),
		Device:        sel,
		Stage:         n.Service.Stage().String(),
	}
	if n.JSON {
		return printers.JSON(n.Out, s)
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if override := os.Getenv("SYNCVAULT_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "SYNCVAULT_CONFIG_PATH found on env, using", override)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Session(s)
	return nil
}
