package commands

import (
	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish]",
		Short:     "Generates shell completion scripts",
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.MaximumNArgs(1),
		Long: `To load completion run

. <(syncvault completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(syncvault completion)
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}
			switch shell {
			case "zsh":
				return topLevel.GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return topLevel.GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return topLevel.GenBashCompletion(cmd.OutOrStdout())
			}
		},
	}

	topLevel.AddCommand(cmd)
}
