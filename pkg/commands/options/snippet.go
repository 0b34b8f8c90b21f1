package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/syncvault/pkg/snippet"
)

// SnippetOptions
type SnippetOptions struct {
	Tags string
	Type string
}

func AddSnippetArgs(cmd *cobra.Command, o *SnippetOptions) {
	cmd.Flags().StringVarP(&o.Tags, "tags", "t", "",
		`Comma-separated tags, example: --tags="shell, docker".`)
	cmd.Flags().StringVar(&o.Type, "type", string(snippet.Text),
		"Snippet type: text, code or link.")
}

func (o *SnippetOptions) GetType() (snippet.Type, error) {
	return snippet.ParseType(o.Type)
}
