package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/syncvault/pkg/prompt"
)

// InteractiveOptions
type InteractiveOptions struct {
	NoInput bool
}

func InteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVar(&o.NoInput, "no-input", false,
		`Never prompt, even on a terminal.`)
}

// Prompter returns nil when prompting is disabled or not possible.
func (o *InteractiveOptions) Prompter() prompt.Prompter {
	if o.NoInput {
		return nil
	}
	return prompt.NewTerminal()
}
