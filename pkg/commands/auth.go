package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/syncvault/pkg/commands/options"
	"tableflip.dev/syncvault/pkg/runner/login"
)

func addLogin(topLevel *cobra.Command) {
	topLevel.AddCommand(authCommand(false))
}

func addSignup(topLevel *cobra.Command) {
	topLevel.AddCommand(authCommand(true))
}

func authCommand(signup bool) *cobra.Command {
	var email, password string
	oo := &options.OutputOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to SyncVault.",
		Example: `
syncvault login
syncvault login --email me@example.com
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			l := login.Login{
				Service:  e.Service,
				Prompt:   i.Prompter(),
				Email:    email,
				Password: password,
				Signup:   signup,
				Out:      cmd.OutOrStdout(),
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}
	if signup {
		cmd.Use = "signup"
		cmd.Short = "Create a SyncVault account and sign in."
		cmd.Example = `
syncvault signup --email me@example.com
`
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email.")
	cmd.Flags().StringVar(&password, "password", "", "Account password; prompted for when omitted on a terminal.")
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, oo)
	return cmd
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the session and the selected device.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()
			l := login.Logout{Service: e.Service, Out: cmd.OutOrStdout()}
			return l.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
