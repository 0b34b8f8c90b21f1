package app

import (
	"tableflip.dev/syncvault/pkg/query"
	"tableflip.dev/syncvault/pkg/snippet"
)

// List is the in-memory result of the last fetch together with the set of
// snippets whose deletion is in flight. It is not safe for concurrent use;
// UIs own one per view.
type List struct {
	items   []*snippet.Snippet
	pending map[string]struct{}
}

func NewList() *List {
	return &List{pending: make(map[string]struct{})}
}

// Set replaces the content with a fresh fetch.
func (l *List) Set(items []*snippet.Snippet) {
	l.items = append([]*snippet.Snippet(nil), items...)
}

func (l *List) Items() []*snippet.Snippet {
	return l.items
}

func (l *List) Len() int {
	return len(l.items)
}

// Visible applies the client-side text search.
func (l *List) Visible(text string) []*snippet.Snippet {
	return query.Search(l.items, text)
}

// Remove drops the snippet with id and reports whether it was present.
func (l *List) Remove(id string) bool {
	for i, s := range l.items {
		if s != nil && s.ID == id {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Begin marks id as being deleted. It returns false when a deletion of id
// is already in flight.
func (l *List) Begin(id string) bool {
	if _, ok := l.pending[id]; ok {
		return false
	}
	l.pending[id] = struct{}{}
	return true
}

// Done clears the in-flight mark for id.
func (l *List) Done(id string) {
	delete(l.pending, id)
}

func (l *List) Pending(id string) bool {
	_, ok := l.pending[id]
	return ok
}

func (l *List) PendingCount() int {
	return len(l.pending)
}
