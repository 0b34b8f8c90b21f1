package commands

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/syncvault/pkg/commands/options"
	"tableflip.dev/syncvault/pkg/runner/device"
)

func addDevice(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "device",
		Aliases: []string{"devices"},
		Short:   "Manage devices and pick the one this terminal is.",
		Long: options.Wrap80("Every snippet is saved from a device. " +
			"Register this terminal as a device once, or select one registered earlier."),
	}

	addDeviceList(cmd)
	addDeviceRegister(cmd)
	addDeviceSelect(cmd)
	addDeviceCurrent(cmd)
	addDeviceDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addDeviceList(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the devices of the account.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()
			l := device.List{Service: e.Service, JSON: oo.JSON, Out: cmd.OutOrStdout()}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addDeviceRegister(parent *cobra.Command) {
	noSelect := false
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:   "register <name>",
		Short: "Register a new device and use it.",
		Example: `
syncvault device register "work laptop"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()
			r := device.Register{
				Service:  e.Service,
				Name:     strings.Join(args, " "),
				NoSelect: noSelect,
				Out:      cmd.OutOrStdout(),
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}
	cmd.Flags().BoolVar(&noSelect, "no-select", false, "Register without switching to the new device.")
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addDeviceSelect(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	i := &options.InteractiveOptions{}
	cmd := &cobra.Command{
		Use:   "select [id or name]",
		Short: "Choose the device this terminal acts as.",
		Example: `
syncvault device select
syncvault device select laptop
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()
			s := device.Select{
				Service: e.Service,
				Ref:     strings.Join(args, " "),
				Prompt:  i.Prompter(),
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return deviceCompletions(cmd.Context(), toComplete, true), cobra.ShellCompDirectiveNoFileComp
		},
	}
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addDeviceCurrent(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the selected device.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()
			c := device.Current{Service: e.Service, JSON: oo.JSON, Out: cmd.OutOrStdout()}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addDeviceDelete(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:     "delete <id or name>",
		Aliases: []string{"rm"},
		Short:   "Delete a device.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()
			d := device.Delete{Service: e.Service, Ref: strings.Join(args, " "), Out: cmd.OutOrStdout()}
			return oo.HandleError(d.Do(cmd.Context()))
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return deviceCompletions(cmd.Context(), toComplete, true), cobra.ShellCompDirectiveNoFileComp
		},
	}
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

// deviceCompletions offers device names (or ids) starting with toComplete.
// Failures complete nothing.
func deviceCompletions(ctx context.Context, toComplete string, names bool) []string {
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := load(io.Discard)
	if err != nil {
		return nil
	}
	defer e.Close()
	devices, err := e.Service.Devices(ctx)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(devices))
	for _, d := range devices {
		v := d.ID
		if names {
			v = d.Name
		}
		if strings.HasPrefix(strings.ToLower(v), strings.ToLower(toComplete)) {
			out = append(out, v)
		}
	}
	return out
}
