package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/syncvault/pkg/snippet"
)

func init() {
	color.NoColor = true
}

func TestSnippetsEmptyMessages(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}

	pp.Snippets(nil, "")
	if !strings.Contains(buf.String(), "No snippets found.") {
		t.Fatalf("got %q", buf.String())
	}

	buf.Reset()
	pp.Snippets(nil, "milk")
	if !strings.Contains(buf.String(), "No snippets match your search.") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestSnippetsCard(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}

	created := snippet.Timestamp{Time: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	pp.Snippets([]*snippet.Snippet{{
		ID:        "s1",
		Content:   strings.Repeat("x", 250),
		Tags:      []string{"home", "urgent"},
		Type:      snippet.Code,
		CreatedAt: created,
	}}, "")

	out := buf.String()
	for _, want := range []string{"s1", "[code]", "#home", "#urgent", "..."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, strings.Repeat("x", 201)) {
		t.Error("preview should be cut at 200 characters")
	}
}

func TestSnippetsFull(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Full: true}

	pp.Snippets([]*snippet.Snippet{{ID: "s1", Content: strings.Repeat("x", 250) + " tail", Type: snippet.Text}}, "")

	out := buf.String()
	if !strings.Contains(out, "tail") || strings.Contains(out, "...") {
		t.Errorf("full output should not be cut:\n%s", out)
	}
}

func TestTitleWithCount(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.TitleWithCount("", 1)
	pp.TitleWithCount("Snippets", 3)
	out := buf.String()
	if !strings.Contains(out, "1 snippet found") || !strings.Contains(out, "Snippets - 3 snippets found") {
		t.Fatalf("got %q", out)
	}
}

func TestDevicesMarksSelected(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Devices([]*snippet.Device{{ID: "d1", Name: "laptop"}, {ID: "d2", Name: "phone"}}, "d2")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header and two rows, got %q", buf.String())
	}
	if strings.HasPrefix(strings.TrimSpace(lines[1]), "*") {
		t.Errorf("laptop should not be marked: %q", lines[1])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[2]), "*") {
		t.Errorf("phone should be marked: %q", lines[2])
	}
}

func TestDevicesEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Devices(nil, "")
	if !strings.Contains(buf.String(), "No devices yet") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestSessionSignedOut(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Session(Session{APIURL: "http://localhost:3000", Stage: "unauthenticated"})
	out := buf.String()
	if !strings.Contains(out, "signed out") || !strings.Contains(out, "none") {
		t.Fatalf("got %q", out)
	}
}
