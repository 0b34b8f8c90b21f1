package options

import (
	"github.com/spf13/cobra"
)

// DisplayOptions controls how snippet lists are printed.
type DisplayOptions struct {
	ShowID bool
	Full   bool
}

func AddDisplayArgs(cmd *cobra.Command, o *DisplayOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each snippet.")
	cmd.Flags().BoolVar(&o.Full, "full", false,
		"Print whole snippets instead of 200 character previews.")
}
