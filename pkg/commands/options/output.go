package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/syncvault/pkg/api"
	"tableflip.dev/syncvault/pkg/apperror"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError adds a next step to session errors and, under --json, prints
// the error as an object instead of returning it.
func (o *OutputOptions) HandleError(err error) error {
	err = Explain(err)
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}

// Explain points session errors at the command that resolves them.
func Explain(err error) error {
	switch {
	case err == nil:
		return nil
	case api.IsUnauthorized(err):
		return fmt.Errorf(`session expired, run "syncvault login": %w`, err)
	case errors.Is(err, apperror.ErrNotAuthenticated):
		return fmt.Errorf(`%w, run "syncvault login"`, err)
	case errors.Is(err, apperror.ErrNoDevice):
		return fmt.Errorf(`%w, run "syncvault device select"`, err)
	}
	return err
}
