package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/syncvault/pkg/snippet"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Card   CardTheme
	Footer FooterTheme
	Modal  ModalTheme
	Status StatusTheme
}

// HeaderTheme styles the top bar of the main view.
type HeaderTheme struct {
	Brand  lipgloss.Style
	Device lipgloss.Style
	Search lipgloss.Style
	Action lipgloss.Style
}

// CardTheme styles one snippet in the list.
type CardTheme struct {
	Frame    lipgloss.Style
	Selected lipgloss.Style
	Tag      lipgloss.Style
	Meta     lipgloss.Style
	Body     lipgloss.Style
	Pending  lipgloss.Style
	Types    map[snippet.Type]lipgloss.Style
}

// FooterTheme groups styles used by the bottom help line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// ModalTheme styles centered forms (auth, devices, create).
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Label lipgloss.Style
}

// StatusTheme styles loading and error banners.
type StatusTheme struct {
	Loading lipgloss.Style
	Error   lipgloss.Style
	Empty   lipgloss.Style
	Notice  lipgloss.Style
}

// TypeBadge renders the type label with its color.
func (c CardTheme) TypeBadge(t snippet.Type) string {
	style, ok := c.Types[t]
	if !ok {
		style = c.Meta
	}
	return style.Render(string(t))
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	return Theme{
		Header: HeaderTheme{
			Brand:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Device: badge.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")),
			Search: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
			Action: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		},
		Card: CardTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1),
			Selected: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("212")).
				Padding(0, 1),
			Tag:     lipgloss.NewStyle().Foreground(lipgloss.Color("109")),
			Meta:    muted,
			Body:    lipgloss.NewStyle(),
			Pending: muted.Italic(true),
			Types: map[snippet.Type]lipgloss.Style{
				snippet.Text: badge.Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")),
				snippet.Code: badge.Foreground(lipgloss.Color("16")).Background(lipgloss.Color("114")),
				snippet.Link: badge.Foreground(lipgloss.Color("16")).Background(lipgloss.Color("75")),
			},
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: muted,
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
			Label: muted,
		},
		Status: StatusTheme{
			Loading: muted,
			Error: lipgloss.NewStyle().
				Foreground(lipgloss.Color("203")).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("203")).
				Padding(0, 1),
			Empty:  muted.Italic(true),
			Notice: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		},
	}
}
