package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/syncvault/pkg/commands/options"
	"tableflip.dev/syncvault/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the server, the state directory and the session.",
		Example: `
syncvault info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()
			s := info.Info{
				Config:  e.Config,
				Service: e.Service,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
