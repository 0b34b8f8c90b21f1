package reader

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"

	"tableflip.dev/syncvault/pkg/snippet"
	"tableflip.dev/syncvault/pkg/tui/theme"
)

func plain(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			continue
		}
		if inSeq {
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func open(s *snippet.Snippet) *Model {
	m := New(theme.Default())
	m.SetSize(100, 40)
	m.Open(s)
	return m
}

func TestTextIsShownAsTyped(t *testing.T) {
	m := open(&snippet.Snippet{Content: "*keep* # as typed", Type: snippet.Text, Tags: snippet.Tags{"a"}})

	out := plain(m.View())
	assert.Contains(t, out, "*keep* # as typed")
	assert.Contains(t, out, "#a")
}

func TestCodeIsRenderedAsBlock(t *testing.T) {
	m := open(&snippet.Snippet{Content: "x := 1", Type: snippet.Code})

	out := plain(m.View())
	assert.Contains(t, out, "x")
	assert.Contains(t, out, ":=")
	assert.NotContains(t, out, "```", "the fence is not printed")
}

func TestFenceOutgrowsContent(t *testing.T) {
	assert.Equal(t, "```", fence("plain"))
	assert.Equal(t, "````", fence("a ``` b"))
	assert.Equal(t, "`````", fence("````"))
}

func TestClose(t *testing.T) {
	m := open(&snippet.Snippet{Content: "x"})
	assert.True(t, m.Active())
	m.Close()
	assert.False(t, m.Active())
	assert.Empty(t, m.View())
}
