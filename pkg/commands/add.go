package commands

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/syncvault/pkg/commands/options"
	"tableflip.dev/syncvault/pkg/prompt"
	"tableflip.dev/syncvault/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	so := &options.SnippetOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "add [content...]",
		Aliases: []string{"save"},
		Short:   "Save a snippet from the selected device.",
		Long: options.Wrap80("Save a snippet. The content is the arguments joined by spaces; " +
			"with no arguments, or a single -, it is read from stdin."),
		Example: `
syncvault add "docker ps -a" --tags shell,docker --type code
pbpaste | syncvault add - --type link
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			typ, err := so.GetType()
			if err != nil {
				return err
			}
			content, err := readContent(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			e, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			a := add.Add{
				Service: e.Service,
				Content: content,
				Tags:    so.Tags,
				Type:    typ,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddSnippetArgs(cmd, so)
	_ = cmd.RegisterFlagCompletionFunc("type", typeCompletions)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

// readContent joins args, or reads in when there are none or the only
// argument is "-". An interactive stdin is never read.
func readContent(in io.Reader, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	if f, ok := in.(*os.File); ok && prompt.Interactive(f) {
		return "", errors.New("no content given; pass it as arguments or pipe it in")
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func addDelete(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "delete <snippet id...>",
		Aliases: []string{"rm", "del"},
		Short:   "Delete snippets.",
		Example: `
syncvault delete cq7f3mpkb1pm5q2mnsb0
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a snippet id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()
			d := add.Delete{Service: e.Service, IDs: args, Out: cmd.OutOrStdout()}
			return oo.HandleError(d.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
