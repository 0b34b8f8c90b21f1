package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/commands/options"
	"tableflip.dev/syncvault/pkg/store"
)

var (
	lo = &options.LogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "syncvault",
		Short: options.Wrap80("Save, search and sync snippets across your devices from the terminal."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddLogArgs(cmd, lo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addLogin(topLevel)
	addSignup(topLevel)
	addLogout(topLevel)
	addDevice(topLevel)
	addGet(topLevel)
	addShow(topLevel)
	addAdd(topLevel)
	addDelete(topLevel)
	addInfo(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// env is what every command that talks to the server needs.
type env struct {
	Config  store.Config
	Service *app.Service
	Log     *slog.Logger
	closer  io.Closer
}

func (e *env) Close() {
	_ = e.closer.Close()
}

// load resolves configuration, logging and the persisted session. Logs go
// to logs unless --log-file is set.
func load(logs io.Writer) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, closer, err := lo.Logger(cfg.LogLevel(), logs)
	if err != nil {
		return nil, err
	}
	svc, err := app.Open(cfg, log)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	log.Debug("session loaded", slog.String("api", cfg.APIURL()), slog.String("stage", svc.Stage().String()))
	return &env{Config: cfg, Service: svc, Log: log, closer: closer}, nil
}
