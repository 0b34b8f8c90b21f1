package add

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/printers"
	"tableflip.dev/syncvault/pkg/snippet"
)

// Add stores a new snippet under the selected device.
type Add struct {
	Service *app.Service
	Content string
	// Tags is sent as typed, comma separated.
	Tags string
	Type snippet.Type
	JSON bool
	Out  io.Writer
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

func (a *Add) Do(ctx context.Context) error {
	sn, err := a.Service.CreateSnippet(ctx, app.Draft{
		Content: a.Content,
		Tags:    a.Tags,
		Type:    a.Type,
	})
	if err != nil {
		return err
	}
	if a.JSON {
		return printers.JSON(a.Out, sn)
	}

	tags := ""
	if len(sn.Tags) > 0 {
		tags = " #" + strings.Join(sn.Tags, " #")
	}
	_, _ = fmt.Fprintf(output(a.Out), "%s %s [%s]%s\n",
		color.New(color.FgHiGreen).Sprint("saved"),
		color.New(color.FgHiYellow).Sprint(sn.ID),
		sn.Type, tags)
	return nil
}

// Delete removes snippets by id. Every id is attempted; failures are
// reported together.
type Delete struct {
	Service *app.Service
	IDs     []string
	Out     io.Writer
}

func (d *Delete) Do(ctx context.Context) error {
	var errs []error
	for _, id := range d.IDs {
		if err := d.Service.DeleteSnippet(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		_, _ = fmt.Fprintf(output(d.Out), "%s %s\n", color.New(color.FgHiRed).Sprint("deleted"), id)
	}
	return errors.Join(errs...)
}
