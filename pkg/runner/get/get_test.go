package get

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/query"
	"tableflip.dev/syncvault/pkg/snippet"
	"tableflip.dev/syncvault/pkg/store"
	"tableflip.dev/syncvault/pkg/vaulttest"
)

func init() {
	color.NoColor = true
}

func ready(t *testing.T) (*vaulttest.Server, *app.Service, snippet.User) {
	t.Helper()
	srv := vaulttest.New(t)
	state := store.NewState(store.NewMemory())
	svc, err := app.Connect(srv.URL, state, nil)
	if err != nil {
		t.Fatal(err)
	}
	user, token := srv.AddUser("me@example.com", "pw")
	d := srv.AddDevice(user.ID, "laptop")
	if err := state.Tokens.Set(token); err != nil {
		t.Fatal(err)
	}
	if err := state.Devices.Set(d.ID, d.Name); err != nil {
		t.Fatal(err)
	}
	return srv, svc, user
}

func TestCriteriaFlagsOverrideQuery(t *testing.T) {
	g := &Get{Query: "tag:home", Filters: query.Filters{Type: snippet.Code}}
	want := query.Filters{Tag: "home", Type: snippet.Code}
	if got := g.Criteria(); got != want {
		t.Fatalf("Criteria() = %+v, want %+v", got, want)
	}

	g = &Get{Query: "tag:home", Filters: query.Filters{Tag: "work"}}
	if got := g.Criteria().Tag; got != "work" {
		t.Fatalf("tag = %q, want flag value", got)
	}
}

func TestGetSendsParsedFilters(t *testing.T) {
	srv, svc, _ := ready(t)
	g := &Get{Service: svc, Query: "device:abc123", Out: &bytes.Buffer{}}
	if err := g.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	var last vaulttest.Request
	for _, r := range srv.Requests() {
		if r.Method == http.MethodGet && r.Path == "/snippets" {
			last = r
		}
	}
	if last.Query != "deviceId=abc123" {
		t.Fatalf("query = %q", last.Query)
	}
}

func TestGetTextSearchAndCount(t *testing.T) {
	srv, svc, user := ready(t)
	srv.AddSnippet(user.ID, snippet.Snippet{Content: "a", Tags: []string{"urgent"}})
	srv.AddSnippet(user.ID, snippet.Snippet{Content: "b"})

	var out bytes.Buffer
	if err := (&Get{Service: svc, Text: "URG", Out: &out}).Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "#urgent") || !strings.Contains(out.String(), "1 snippet found") {
		t.Fatalf("out = %q", out.String())
	}

	out.Reset()
	if err := (&Get{Service: svc, Text: "zzz", Out: &out}).Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No snippets match your search.") {
		t.Fatalf("out = %q", out.String())
	}
}

func TestGetJSON(t *testing.T) {
	srv, svc, user := ready(t)
	srv.AddSnippet(user.ID, snippet.Snippet{Content: "hello", Type: snippet.Link})

	var out bytes.Buffer
	if err := (&Get{Service: svc, JSON: true, Out: &out}).Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	var got []snippet.Snippet
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if len(got) != 1 || got[0].Content != "hello" || got[0].Type != snippet.Link {
		t.Fatalf("got %+v", got)
	}
}

func TestShow(t *testing.T) {
	srv, svc, user := ready(t)
	sn := srv.AddSnippet(user.ID, snippet.Snippet{Content: "full body text", Tags: []string{"x"}})

	var out bytes.Buffer
	if err := (&Show{Service: svc, ID: sn.ID, Out: &out}).Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "full body text") || !strings.Contains(out.String(), sn.ID) {
		t.Fatalf("out = %q", out.String())
	}
}
