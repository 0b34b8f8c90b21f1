package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/syncvault/pkg/commands/options"
	"tableflip.dev/syncvault/pkg/runner/get"
	"tableflip.dev/syncvault/pkg/snippet"
)

func addGet(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	do := &options.DisplayOptions{}
	oo := &options.OutputOptions{}

	long := strings.Builder{}
	long.WriteString("List snippets, newest first.\n\n")
	long.WriteString(options.Wrap80("The optional filter expression is read like the search box of the web client: " +
		"device:<id>, tag:<tag> and type:<type> are sent to the server as exact filters. " +
		"Text outside those prefixes is ignored; use --search for a text search over the result."))
	long.WriteString("\n")

	cmd := &cobra.Command{
		Use:     "get [filter expression]",
		Aliases: []string{"list", "ls"},
		Short:   "List snippets.",
		Long:    long.String(),
		Example: `
syncvault get
syncvault get tag:work
syncvault get --type code --search docker
syncvault get -k --full
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			filters, err := fo.Filters()
			if err != nil {
				return err
			}
			e, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			g := get.Get{
				Service: e.Service,
				Query:   strings.Join(args, " "),
				Filters: filters,
				Text:    fo.Text,
				ShowID:  do.ShowID,
				Full:    do.Full,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(g.Do(cmd.Context()))
		},
	}

	options.AddFilterArgs(cmd, fo)
	_ = cmd.RegisterFlagCompletionFunc("device", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return deviceCompletions(cmd.Context(), toComplete, false), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("type", typeCompletions)
	options.AddDisplayArgs(cmd, do)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show <snippet id>",
		Short: "Print one snippet in full.",
		Example: `
syncvault show cq7f3mpkb1pm5q2mnsb0
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()
			s := get.Show{Service: e.Service, ID: args[0], JSON: oo.JSON, Out: cmd.OutOrStdout()}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func typeCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, 0, 3)
	for _, t := range snippet.Types() {
		out = append(out, t.String())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
