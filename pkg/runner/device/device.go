// Package device manages the devices of the account and the one this
// client acts as.
package device

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/printers"
	"tableflip.dev/syncvault/pkg/prompt"
	"tableflip.dev/syncvault/pkg/snippet"
)

// ErrNoDevices is returned by Select when the account has no devices and
// there is no way to ask for a new name.
var ErrNoDevices = errors.New(`no devices registered yet, run "syncvault device register <name>"`)

const createNew = "+ Register a new device"

func output(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

func selectedID(svc *app.Service) string {
	sel, _ := svc.Selection()
	return sel.DeviceID
}

type List struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

func (l *List) Do(ctx context.Context) error {
	devices, err := l.Service.Devices(ctx)
	if err != nil {
		return err
	}
	if l.JSON {
		return printers.JSON(l.Out, devices)
	}
	pp := printers.PrettyPrint{Out: l.Out}
	pp.Devices(devices, selectedID(l.Service))
	return nil
}

// Register creates a device and, unless NoSelect, makes it current.
type Register struct {
	Service  *app.Service
	Name     string
	NoSelect bool
	Out      io.Writer
}

func (r *Register) Do(ctx context.Context) error {
	register := r.Service.RegisterAndSelect
	if r.NoSelect {
		register = r.Service.RegisterDevice
	}
	d, err := register(ctx, r.Name)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(output(r.Out), "Registered %s (%s)\n", color.New(color.Bold).Sprint(d.Name), d.ID)
	return nil
}

// Select makes an existing device current. Ref is an id or a name; when it
// is empty the user picks from the list or registers a new device.
type Select struct {
	Service *app.Service
	Ref     string
	Prompt  prompt.Prompter
	Out     io.Writer
}

func (s *Select) Do(ctx context.Context) error {
	devices, err := s.Service.Devices(ctx)
	if err != nil {
		return err
	}

	var chosen *snippet.Device
	switch {
	case s.Ref != "":
		d, ok := app.FindDevice(devices, s.Ref)
		if !ok {
			return fmt.Errorf("device %q not found", s.Ref)
		}
		chosen = d
	case s.Prompt == nil && len(devices) == 0:
		return ErrNoDevices
	case s.Prompt == nil:
		return errors.New("device id or name required")
	default:
		if chosen, err = s.choose(ctx, devices); err != nil {
			return err
		}
	}

	if err := s.Service.SelectDevice(chosen.ID, chosen.Name); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(output(s.Out), "Using device %s\n", color.New(color.Bold).Sprint(chosen.Name))
	return nil
}

func (s *Select) choose(ctx context.Context, devices []*snippet.Device) (*snippet.Device, error) {
	// With no devices only registration is offered.
	if len(devices) > 0 {
		items := make([]string, 0, len(devices)+1)
		for _, d := range devices {
			items = append(items, d.Name)
		}
		items = append(items, createNew)
		i, err := s.Prompt.Choose("Which device is this", items)
		if err != nil {
			return nil, err
		}
		if i < len(devices) {
			return devices[i], nil
		}
	}

	name, err := s.Prompt.Line("Device name", false, func(v string) error {
		_, err := app.ValidateDeviceName(v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.Service.RegisterDevice(ctx, name)
}

// Current prints the selected device.
type Current struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

func (c *Current) Do(_ context.Context) error {
	sel, ok := c.Service.Selection()
	if c.JSON {
		if !ok {
			return printers.JSON(c.Out, map[string]any{})
		}
		return printers.JSON(c.Out, sel)
	}
	if !ok {
		_, _ = fmt.Fprintln(output(c.Out), "No device selected.")
		return nil
	}
	_, _ = fmt.Fprintf(output(c.Out), "%s (%s)\n", sel.Label(), sel.DeviceID)
	return nil
}

// Delete removes a device by id or name.
type Delete struct {
	Service *app.Service
	Ref     string
	Out     io.Writer
}

func (d *Delete) Do(ctx context.Context) error {
	devices, err := d.Service.Devices(ctx)
	if err != nil {
		return err
	}
	target, ok := app.FindDevice(devices, d.Ref)
	if !ok {
		return fmt.Errorf("device %q not found", d.Ref)
	}
	if err := d.Service.DeleteDevice(ctx, target.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(output(d.Out), "Deleted device %s\n", target.Name)
	return nil
}
