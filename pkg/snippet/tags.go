package snippet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Tags are a snippet's labels. Servers usually send a JSON array, but some
// stored rows carry the raw comma-separated string the client posted, and
// some carry null; all three decode.
type Tags []string

func (t *Tags) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		*t = SplitTags(raw)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	*t = list
	return nil
}

// SplitTags splits a comma-separated tag string, trimming each tag and
// dropping empty ones.
func SplitTags(raw string) Tags {
	var out Tags
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
