package snippet

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseType(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    Type
		wantErr bool
	}{
		"empty defaults to text": {in: "", want: Text},
		"code":                   {in: "code", want: Code},
		"mixed case":             {in: " LINK ", want: Link},
		"unknown":                {in: "image", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseType(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSnippetDecodesServerPayload(t *testing.T) {
	payload := `{"id":"s1","content":"hello","tags":["a","b"],"deviceId":"d1","type":"code","userId":"u1","createdAt":"2025-03-03T12:00:00.000Z","updatedAt":""}`
	var s Snippet
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Type != Code || s.DeviceID != "d1" || len(s.Tags) != 2 {
		t.Fatalf("unexpected snippet %#v", s)
	}
	want := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)
	if !s.CreatedAt.Equal(want) {
		t.Fatalf("expected created %v, got %v", want, s.CreatedAt.Time)
	}
	if !s.UpdatedAt.IsZero() {
		t.Fatalf("expected empty updatedAt to decode as zero")
	}
}

func TestTagsDecodeEveryShape(t *testing.T) {
	tests := map[string]struct {
		in   string
		want Tags
	}{
		"array":        {in: `["a","b"]`, want: Tags{"a", "b"}},
		"string":       {in: `" a, b ,,c "`, want: Tags{"a", "b", "c"}},
		"empty string": {in: `""`, want: nil},
		"null":         {in: `null`, want: nil},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var s Snippet
			if err := json.Unmarshal([]byte(`{"id":"s1","tags":`+tc.in+`}`), &s); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if strings.Join(s.Tags, "|") != strings.Join(tc.want, "|") || len(s.Tags) != len(tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, s.Tags)
			}
		})
	}
}

func TestTagsRejectOtherShapes(t *testing.T) {
	var s Snippet
	if err := json.Unmarshal([]byte(`{"tags":42}`), &s); err == nil {
		t.Fatal("expected an error for numeric tags")
	}
}

func TestCreateRequestOmitsEmptyDevice(t *testing.T) {
	b, err := json.Marshal(CreateRequest{Content: "x", Tags: "a, b"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "deviceId") {
		t.Fatalf("expected deviceId to be omitted, got %s", b)
	}
	if !strings.Contains(string(b), `"tags":"a, b"`) {
		t.Fatalf("expected tags to be sent verbatim, got %s", b)
	}
}

func TestPreview(t *testing.T) {
	short := "short"
	if Preview(short) != short {
		t.Fatalf("short content should be untouched")
	}
	long := strings.Repeat("x", 250)
	got := Preview(long)
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected 200 chars plus ellipsis, got %d", len(got))
	}
}

func TestSelectionLabel(t *testing.T) {
	if (Selection{DeviceID: "d1"}).Label() != "d1" {
		t.Fatalf("expected id fallback")
	}
	if (Selection{DeviceID: "d1", DeviceName: "laptop"}).Label() != "laptop" {
		t.Fatalf("expected name")
	}
	if !(Selection{}).IsZero() {
		t.Fatalf("expected zero selection")
	}
}
