package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/syncvault/pkg/query"
	"tableflip.dev/syncvault/pkg/snippet"
)

type PrettyPrint struct {
	ShowID bool
	// Full prints whole snippets in lists instead of previews.
	Full bool
	// Width wraps previews; zero means 80.
	Width int
	Out   io.Writer
}

var (
	// xid ids are 20 characters, uuids 36.
	spacing = strings.Repeat(" ", len("cq7f3mpkb1pm5q2mnsb0  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// TitleWithCount prints title followed by the "N snippet(s) found" line.
func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if title != "" {
		_, _ = t.Fprint(pp.out(), title)
		_, _ = c.Fprint(pp.out(), " - ")
	}
	_, _ = c.Fprintln(pp.out(), query.CountLabel(count))
}

func typeColor(t snippet.Type) *color.Color {
	switch t {
	case snippet.Code:
		return color.New(color.FgHiMagenta, color.Bold)
	case snippet.Link:
		return color.New(color.FgHiBlue, color.Bold)
	default:
		return color.New(color.FgHiGreen, color.Bold)
	}
}

// Snippets prints each snippet as a card: a header line with type, tags
// and creation time followed by the wrapped preview. search picks the
// empty-state message.
func (pp *PrettyPrint) Snippets(list []*snippet.Snippet, search string) {
	w := pp.out()
	if len(list) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintf(w, "%s\n\n", query.EmptyMessage(search))
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	tag := color.New(color.FgCyan)
	faint := color.New(color.Faint)

	pad := 0
	if pp.ShowID {
		pad = len(spacing)
	}
	for _, s := range list {
		if s == nil {
			continue
		}
		if pp.ShowID {
			_, _ = y.Fprint(w, s.ID)
			if n := len(spacing) - len(s.ID); n > 0 {
				_, _ = fmt.Fprint(w, strings.Repeat(" ", n))
			} else {
				_, _ = fmt.Fprint(w, " ")
			}
		}
		_, _ = typeColor(s.Type).Fprintf(w, "[%s]", s.Type)
		for _, t := range s.Tags {
			_, _ = tag.Fprintf(w, " #%s", t)
		}
		_, _ = faint.Fprintf(w, "  %s\n", s.CreatedAt.Display())

		content := s.Content
		if !pp.Full {
			content = snippet.Preview(content)
		}
		body := wordwrap.String(content, pp.width()-pad)
		_, _ = fmt.Fprintln(w, indent.String(body, uint(pad)))
	}
	pp.NewLine()
}

// Snippet prints every field of one snippet with the full content.
func (pp *PrettyPrint) Snippet(s *snippet.Snippet) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), s.ID)
	tbl.AddRow(bold.Sprint("Type"), typeColor(s.Type).Sprint(s.Type))
	tbl.AddRow(bold.Sprint("Tags"), strings.Join(s.Tags, ", "))
	tbl.AddRow(bold.Sprint("Device"), s.DeviceID)
	tbl.AddRow(bold.Sprint("Created"), s.CreatedAt.Display())
	tbl.AddRow(bold.Sprint("Updated"), s.UpdatedAt.Display())
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
	_, _ = fmt.Fprintln(pp.out(), wordwrap.String(s.Content, pp.width()))
}

// Devices prints the device table, marking the selected device.
func (pp *PrettyPrint) Devices(list []*snippet.Device, selected string) {
	w := pp.out()
	if len(list) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(w, "No devices yet. Register one with `syncvault device register <name>`.")
		return
	}

	bold := color.New(color.Bold)
	mark := color.New(color.FgHiGreen, color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow("", bold.Sprint("Name"), bold.Sprint("ID"), bold.Sprint("Created"))
	for _, d := range list {
		m := ""
		if d.ID == selected {
			m = mark.Sprint("*")
		}
		tbl.AddRow(m, d.Name, d.ID, d.CreatedAt.Display())
	}
	_, _ = fmt.Fprintln(w, tbl)
}

// Session describes the local session.
type Session struct {
	APIURL        string            `json:"apiUrl"`
	Path          string            `json:"path"`
	Authenticated bool              `json:"authenticated"`
	Device        snippet.Selection `json:"device"`
	Stage         string            `json:"stage"`
}

func (pp *PrettyPrint) Session(s Session) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	auth := faint.Sprint("signed out")
	if s.Authenticated {
		auth = color.New(color.FgHiGreen).Sprint("signed in")
	}
	device := faint.Sprint("none")
	if !s.Device.IsZero() {
		device = s.Device.Label()
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Server"), s.APIURL)
	tbl.AddRow(bold.Sprint("Data"), s.Path)
	tbl.AddRow(bold.Sprint("Session"), auth)
	tbl.AddRow(bold.Sprint("Device"), device)
	tbl.AddRow(bold.Sprint("Stage"), s.Stage)
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
