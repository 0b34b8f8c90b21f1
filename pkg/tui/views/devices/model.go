// Package devices renders the device picker shown before the main view.
package devices

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/syncvault/pkg/api"
	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/apperror"
	"tableflip.dev/syncvault/pkg/snippet"
	"tableflip.dev/syncvault/pkg/tui/events"
	"tableflip.dev/syncvault/pkg/tui/theme"
	"tableflip.dev/syncvault/pkg/tui/ui"
)

var _ ui.Component = (*Model)(nil)

// Phase is the load state of the picker.
type Phase int

const (
	Loading Phase = iota
	Failed
	Ready
)

const (
	loadFailed   = "Failed to load devices"
	createFailed = "Failed to create device"
)

type loadedMsg struct {
	devices []*snippet.Device
	err     error
}

type createdMsg struct {
	device *snippet.Device
	err    error
}

type selectedMsg struct {
	device *snippet.Device
	err    error
}

// Model lists the user's devices and offers a form to register a new one.
type Model struct {
	ctx   context.Context
	svc   *app.Service
	theme theme.Theme

	phase    Phase
	err      string
	devices  []*snippet.Device
	list     list.Model
	name     textinput.Model
	creating bool
	busy     bool
	invalid  string

	width  int
	height int
}

// New builds the picker in the loading phase.
func New(ctx context.Context, svc *app.Service, th theme.Theme) *Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Your Devices"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return &Model{
		ctx:   ctx,
		svc:   svc,
		theme: th,
		list:  l,
		name:  ui.NewInput("Enter device name", app.MaxDeviceName),
	}
}

// Phase reports whether devices are loading, failed or ready.
func (m *Model) Phase() Phase { return m.phase }

// Err is the page-level error, set in the Failed phase.
func (m *Model) Err() string { return m.err }

// Creating reports whether the register form has focus.
func (m *Model) Creating() bool { return m.creating }

// Init starts loading devices.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// SetSize stores the available viewport size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(max(min(width-8, 60), 20), max(height-14, 4))
	m.name.SetWidth(max(min(width-12, 56), 20))
}

func (m *Model) load() tea.Cmd {
	m.phase = Loading
	m.err = ""
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		devices, err := svc.Devices(ctx)
		return loadedMsg{devices: devices, err: err}
	}
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			return m, m.fail(msg.err, loadFailed)
		}
		m.phase = Ready
		m.setDevices(msg.devices)
		if len(m.devices) == 0 {
			return m, m.openForm()
		}
		return m, nil
	case createdMsg:
		m.busy = false
		if msg.err != nil {
			return m, m.fail(msg.err, createFailed)
		}
		m.name.SetValue("")
		m.closeForm()
		m.setDevices(append(m.devices, msg.device))
		return m, selected(msg.device)
	case selectedMsg:
		if msg.err != nil {
			return m, m.fail(msg.err, "Failed to select device")
		}
		return m, selected(msg.device)
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	if m.creating {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func selected(d *snippet.Device) tea.Cmd {
	return events.Emit(events.DeviceSelectedMsg{
		Selection: snippet.Selection{DeviceID: d.ID, DeviceName: d.Name},
	})
}

func (m *Model) fail(err error, fallback string) tea.Cmd {
	if api.IsUnauthorized(err) {
		return events.Emit(events.SessionLostMsg{Err: err})
	}
	m.phase = Failed
	m.err = apperror.UserMessage(err, fallback)
	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.busy {
		return nil
	}
	switch m.phase {
	case Loading:
		return nil
	case Failed:
		if msg.String() == "r" || msg.String() == "enter" {
			return m.load()
		}
		return nil
	}

	if m.creating {
		switch msg.String() {
		case "enter":
			return m.create()
		case "esc", "tab":
			if len(m.devices) > 0 {
				m.closeForm()
			}
			return nil
		}
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		m.invalid = ""
		return cmd
	}

	switch msg.String() {
	case "enter":
		return m.choose()
	case "n", "tab":
		return m.openForm()
	case "r":
		return m.load()
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *Model) choose() tea.Cmd {
	it, ok := m.list.SelectedItem().(deviceItem)
	if !ok {
		return nil
	}
	d := it.device
	svc := m.svc
	return func() tea.Msg {
		return selectedMsg{device: d, err: svc.SelectDevice(d.ID, d.Name)}
	}
}

func (m *Model) create() tea.Cmd {
	name, err := app.ValidateDeviceName(m.name.Value())
	if err != nil {
		m.invalid = apperror.UserMessage(err, createFailed)
		return nil
	}
	m.busy = true
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		d, err := svc.RegisterAndSelect(ctx, name)
		return createdMsg{device: d, err: err}
	}
}

func (m *Model) openForm() tea.Cmd {
	m.creating = true
	m.invalid = ""
	return m.name.Focus()
}

func (m *Model) closeForm() {
	m.creating = false
	m.invalid = ""
	m.name.Blur()
}

func (m *Model) setDevices(devices []*snippet.Device) {
	m.devices = devices
	items := make([]list.Item, 0, len(devices))
	for _, d := range devices {
		items = append(items, deviceItem{device: d})
	}
	m.list.SetItems(items)
}

// View renders the current phase.
func (m *Model) View() string {
	switch m.phase {
	case Loading:
		return ui.Modal(m.theme, m.width, m.height, "Select Device",
			m.theme.Status.Loading.Render("Loading devices..."))
	case Failed:
		return ui.Modal(m.theme, m.width, m.height, "Select Device",
			m.theme.Status.Error.Render(m.err),
			"",
			m.theme.Footer.Help.Render(ui.Help("r retry", "ctrl+l logout", "ctrl+c quit")))
	}

	var lines []string
	if len(m.devices) > 0 {
		lines = append(lines, m.list.View(), "")
	}
	if m.creating {
		lines = append(lines,
			m.theme.Modal.Label.Render("Device Name"),
			m.name.View(),
		)
		switch {
		case m.busy:
			lines = append(lines, m.theme.Status.Loading.Render("Creating..."))
		case m.invalid != "":
			lines = append(lines, m.theme.Status.Error.Render(m.invalid))
		}
		hints := []string{"enter create device"}
		if len(m.devices) > 0 {
			hints = append(hints, "esc cancel")
		}
		lines = append(lines, "", m.theme.Footer.Help.Render(ui.Help(append(hints, "ctrl+c quit")...)))
	} else {
		lines = append(lines, m.theme.Footer.Help.Render(
			ui.Help("enter select", "n create new device", "r reload", "ctrl+l logout", "ctrl+c quit")))
	}
	return ui.Modal(m.theme, m.width, m.height, "Select Device", lines...)
}

type deviceItem struct {
	device *snippet.Device
}

func (d deviceItem) Title() string { return d.device.Name }
func (d deviceItem) Description() string {
	return fmt.Sprintf("Created %s", d.device.CreatedAt.Display())
}
func (d deviceItem) FilterValue() string { return d.device.Name }
