package query

import (
	"fmt"
	"strings"

	"tableflip.dev/syncvault/pkg/snippet"
)

// Match reports whether s contains text, ignoring case and surrounding
// spaces, in its content, any tag, its device id or its type. Blank text
// matches everything.
func Match(s *snippet.Snippet, text string) bool {
	if s == nil {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(s.Content), needle) {
		return true
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	if s.DeviceID != "" && strings.Contains(strings.ToLower(s.DeviceID), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(s.Type.String()), needle)
}

// Search returns the snippets matching text, preserving order. The input
// slice is not modified.
func Search(all []*snippet.Snippet, text string) []*snippet.Snippet {
	out := make([]*snippet.Snippet, 0, len(all))
	for _, s := range all {
		if Match(s, text) {
			out = append(out, s)
		}
	}
	return out
}

// EmptyMessage is shown when a listing renders no snippets.
func EmptyMessage(text string) string {
	if strings.TrimSpace(text) != "" {
		return "No snippets match your search."
	}
	return "No snippets found."
}

// CountLabel renders the result count line.
func CountLabel(n int) string {
	if n == 1 {
		return "1 snippet found"
	}
	return fmt.Sprintf("%d snippets found", n)
}
