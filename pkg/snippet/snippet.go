// Package snippet holds the SyncVault data model as the server returns it.
package snippet

import (
	"fmt"
	"strings"
)

// Type is the kind of content a snippet carries.
type Type string

const (
	Text Type = "text"
	Code Type = "code"
	Link Type = "link"
)

// Types lists every valid type in display order.
func Types() []Type {
	return []Type{Text, Code, Link}
}

func (t Type) Valid() bool {
	switch t {
	case Text, Code, Link:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// ParseType resolves a user supplied type; empty input yields Text.
func ParseType(v string) (Type, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return Text, nil
	}
	t := Type(v)
	if !t.Valid() {
		return "", fmt.Errorf("unknown snippet type %q (expected text, code or link)", v)
	}
	return t, nil
}

// Snippet is a stored fragment owned by a single user.
type Snippet struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Tags      Tags      `json:"tags"`
	DeviceID  string    `json:"deviceId,omitempty"`
	Type      Type      `json:"type"`
	UserID    string    `json:"userId"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

func (s *Snippet) String() string {
	return fmt.Sprintf("%s [%s] %s", s.ID, s.Type, Preview(s.Content))
}

// CreateRequest is the body of POST /snippets. Tags travel as the raw
// comma-separated string the user typed; the server splits them.
type CreateRequest struct {
	Content  string `json:"content"`
	Tags     string `json:"tags"`
	DeviceID string `json:"deviceId,omitempty"`
	Type     Type   `json:"type,omitempty"`
}

const previewLimit = 200

// Preview shortens content for list views.
func Preview(content string) string {
	r := []rune(content)
	if len(r) > previewLimit {
		return string(r[:previewLimit]) + "..."
	}
	return content
}
