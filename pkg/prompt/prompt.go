// Package prompt asks the user for missing input on an interactive
// terminal.
package prompt

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt: aborted")

// Prompter collects a line or a choice from the user.
type Prompter interface {
	Line(label string, secret bool, validate func(string) error) (string, error)
	Choose(label string, items []string) (int, error)
}

// Interactive reports whether f is attached to a terminal.
func Interactive(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Terminal prompts through promptui.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminal returns a prompter when stdin and stdout are terminals, and
// nil otherwise.
func NewTerminal() Prompter {
	if !Interactive(os.Stdin) || !Interactive(os.Stdout) {
		return nil
	}
	return &Terminal{In: os.Stdin, Out: os.Stdout}
}

func (t *Terminal) Line(label string, secret bool, validate func(string) error) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}

	p := promptui.Prompt{
		Label:     label,
		Templates: templates,
		Validate:  validate,
		Stdin:     io.NopCloser(t.In),
		Stdout:    nopCloser{t.Out},
	}
	if secret {
		p.Mask = '*'
	}

	result, err := p.Run()
	if err != nil {
		return "", translate(err)
	}
	return result, nil
}

func (t *Terminal) Choose(label string, items []string) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ . | bold }}",
		Inactive: "   {{ . }}",
		Selected: "➜  {{ . | green }}",
	}

	searcher := func(input string, index int) bool {
		name := strings.ReplaceAll(strings.ToLower(items[index]), " ", "")
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}

	s := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     items,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     io.NopCloser(t.In),
		Stdout:    nopCloser{t.Out},
	}

	i, _, err := s.Run()
	if err != nil {
		return -1, translate(err)
	}
	return i, nil
}

func translate(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrAborted
	}
	return err
}

// NotEmpty rejects blank input.
func NotEmpty(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("required")
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
