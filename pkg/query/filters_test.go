package query

import (
	"testing"

	"tableflip.dev/syncvault/pkg/snippet"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		search string
		want   Filters
	}{
		"empty": {
			search: "",
			want:   Filters{},
		},
		"plain text is not a filter": {
			search: "hello world",
			want:   Filters{},
		},
		"device only": {
			search: "device:abc123",
			want:   Filters{DeviceID: "abc123"},
		},
		"tag is trimmed": {
			search: "tag:  foo  ",
			want:   Filters{Tag: "foo"},
		},
		"leading text is discarded": {
			search: "remember tag:work",
			want:   Filters{Tag: "work"},
		},
		"type": {
			search: "type:code",
			want:   Filters{Type: snippet.Code},
		},
		"first occurrence wins": {
			search: "tag:one tag:two",
			want:   Filters{Tag: "one"},
		},
		"value runs to end of string": {
			search: "tag:foo type:code",
			want:   Filters{Tag: "foo type:code", Type: snippet.Code},
		},
		"empty value stays unset": {
			search: "tag:   ",
			want:   Filters{},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Parse(tc.search)
			if !got.Equal(tc.want) {
				t.Fatalf("Parse(%q) = %#v, want %#v", tc.search, got, tc.want)
			}
		})
	}
}

func TestParseTagPrefixSetsOnlyTag(t *testing.T) {
	for _, search := range []string{"tag:foo", " tag:foo", "x tag:foo ", "tag:\tfoo\n"} {
		got := Parse(search)
		if got.Tag != "foo" {
			t.Fatalf("Parse(%q).Tag = %q, want foo", search, got.Tag)
		}
		if got.DeviceID != "" || got.Type != "" {
			t.Fatalf("Parse(%q) set unrelated dimensions: %#v", search, got)
		}
	}
}

func TestHasPrefix(t *testing.T) {
	if HasPrefix("just words") {
		t.Fatalf("no prefix expected")
	}
	if !HasPrefix("words type:link") {
		t.Fatalf("expected type prefix")
	}
}

func TestValuesOnlyIncludesSetDimensions(t *testing.T) {
	v := Filters{Tag: "work"}.Values()
	if v.Encode() != "tag=work" {
		t.Fatalf("unexpected encoding %q", v.Encode())
	}
	if enc := (Filters{}).Values().Encode(); enc != "" {
		t.Fatalf("expected empty query, got %q", enc)
	}
	all := Filters{DeviceID: "d 1", Tag: "a&b", Type: snippet.Link}.Values()
	if all.Get("deviceId") != "d 1" || all.Get("tag") != "a&b" || all.Get("type") != "link" {
		t.Fatalf("unexpected values %#v", all)
	}
}

func TestMerge(t *testing.T) {
	base := Filters{DeviceID: "d1", Tag: "old"}
	got := base.Merge(Filters{Tag: "new", Type: snippet.Code})
	want := Filters{DeviceID: "d1", Tag: "new", Type: snippet.Code}
	if got != want {
		t.Fatalf("merge = %#v, want %#v", got, want)
	}
	if base.Tag != "old" {
		t.Fatalf("merge must not mutate the receiver")
	}
}

func TestStringRoundTripsThroughParseForSingleDimension(t *testing.T) {
	for _, f := range []Filters{{DeviceID: "abc"}, {Tag: "x"}, {Type: snippet.Text}} {
		if got := Parse(f.String()); got != f {
			t.Fatalf("Parse(%q) = %#v, want %#v", f.String(), got, f)
		}
	}
}
