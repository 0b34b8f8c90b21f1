package commands

import (
	"io"

	"github.com/spf13/cobra"

	"tableflip.dev/syncvault/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "ui",
		Aliases: []string{"tui"},
		Short:   "Browse, search and paste snippets in a full screen terminal UI.",
		Long: `Open the interactive client. It walks through sign in and device
selection when needed, then shows the snippet list.

Logs are discarded while the UI owns the terminal; pass --log-file to keep them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := load(io.Discard)
			if err != nil {
				return err
			}
			defer e.Close()

			r := &ui.UI{Service: e.Service}
			return r.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
