package snippets

import (
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/snippet"
	"tableflip.dev/syncvault/pkg/tui/ui"
)

const (
	fieldContent = iota
	fieldTags
	fieldType
	fieldCount
)

// form is the "Create New Snippet" panel.
type form struct {
	content textinput.Model
	tags    textinput.Model
	typ     int
	focus   int
}

func newForm() form {
	content := ui.NewInput("Enter your snippet content...", 0)
	tags := ui.NewInput("tag1, tag2", 256)
	return form{content: content, tags: tags}
}

func (f *form) open() tea.Cmd {
	return f.setFocus(fieldContent)
}

func (f *form) close() {
	f.content.Blur()
	f.tags.Blur()
}

func (f *form) reset() {
	f.content.SetValue("")
	f.tags.SetValue("")
	f.typ = 0
}

func (f *form) setWidth(w int) {
	f.content.SetWidth(w)
	f.tags.SetWidth(w)
}

func (f *form) setFocus(field int) tea.Cmd {
	f.focus = field
	f.content.Blur()
	f.tags.Blur()
	switch field {
	case fieldContent:
		return f.content.Focus()
	case fieldTags:
		return f.tags.Focus()
	}
	return nil
}

func (f *form) next() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

func (f *form) prev() tea.Cmd {
	return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

func (f *form) cycleType(delta int) {
	n := len(snippet.Types())
	f.typ = (f.typ + delta + n) % n
}

func (f *form) kind() snippet.Type {
	return snippet.Types()[f.typ]
}

func (f *form) draft() app.Draft {
	return app.Draft{
		Content: f.content.Value(),
		Tags:    f.tags.Value(),
		Type:    f.kind(),
	}
}

// update forwards msg to the focused input; the type field takes arrows.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldContent:
		f.content, cmd = f.content.Update(msg)
	case fieldTags:
		f.tags, cmd = f.tags.Update(msg)
	case fieldType:
		if key, ok := msg.(tea.KeyPressMsg); ok {
			switch key.String() {
			case "left", "h":
				f.cycleType(-1)
			case "right", "l", "space", " ":
				f.cycleType(1)
			}
		}
	}
	return cmd
}
