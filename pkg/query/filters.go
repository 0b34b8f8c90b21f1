// Package query turns the search box into server-side filter criteria and
// applies the client-side free-text filter to fetched snippets.
package query

import (
	"net/url"
	"strings"

	"tableflip.dev/syncvault/pkg/snippet"
)

// Recognised search prefixes.
const (
	DevicePrefix = "device:"
	TagPrefix    = "tag:"
	TypePrefix   = "type:"
)

// Filters are exact-match constraints the server applies to a listing.
// An empty field means the dimension is unset.
type Filters struct {
	DeviceID string       `json:"deviceId,omitempty"`
	Tag      string       `json:"tag,omitempty"`
	Type     snippet.Type `json:"type,omitempty"`
}

// Parse extracts filters from a raw search string. For each prefix present,
// the value is the text between its first occurrence and the next
// occurrence of the same prefix (or the end of the input), trimmed. Text
// outside a prefix value is discarded rather than used as a text search.
func Parse(search string) Filters {
	return Filters{
		DeviceID: prefixValue(search, DevicePrefix),
		Tag:      prefixValue(search, TagPrefix),
		Type:     snippet.Type(prefixValue(search, TypePrefix)),
	}
}

func prefixValue(search, prefix string) string {
	i := strings.Index(search, prefix)
	if i < 0 {
		return ""
	}
	rest := search[i+len(prefix):]
	if j := strings.Index(rest, prefix); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

// HasPrefix reports whether search contains any recognised prefix.
func HasPrefix(search string) bool {
	return strings.Contains(search, DevicePrefix) ||
		strings.Contains(search, TagPrefix) ||
		strings.Contains(search, TypePrefix)
}

func (f Filters) IsZero() bool {
	return f == Filters{}
}

func (f Filters) Equal(o Filters) bool {
	return f == o
}

// Merge returns f with every dimension set in o taking precedence.
func (f Filters) Merge(o Filters) Filters {
	if o.DeviceID != "" {
		f.DeviceID = o.DeviceID
	}
	if o.Tag != "" {
		f.Tag = o.Tag
	}
	if o.Type != "" {
		f.Type = o.Type
	}
	return f
}

// Values encodes the set dimensions as query parameters.
func (f Filters) Values() url.Values {
	v := url.Values{}
	if f.Tag != "" {
		v.Add("tag", f.Tag)
	}
	if f.Type != "" {
		v.Add("type", string(f.Type))
	}
	if f.DeviceID != "" {
		v.Add("deviceId", f.DeviceID)
	}
	return v
}

// String renders the filters back in search-box syntax.
func (f Filters) String() string {
	parts := make([]string, 0, 3)
	if f.DeviceID != "" {
		parts = append(parts, DevicePrefix+f.DeviceID)
	}
	if f.Tag != "" {
		parts = append(parts, TagPrefix+f.Tag)
	}
	if f.Type != "" {
		parts = append(parts, TypePrefix+string(f.Type))
	}
	return strings.Join(parts, " ")
}
