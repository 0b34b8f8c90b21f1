package mcp

import (
	"context"
	"strings"
	"testing"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/query"
	"tableflip.dev/syncvault/pkg/snippet"
	"tableflip.dev/syncvault/pkg/store"
	"tableflip.dev/syncvault/pkg/vaulttest"
)

type fixture struct {
	srv    *vaulttest.Server
	state  *store.State
	svc    *Service
	user   snippet.User
	device *snippet.Device
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := vaulttest.New(t)
	state := store.NewState(store.NewMemory())
	a, err := app.Connect(srv.URL, state, nil)
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
	return &fixture{srv: srv, state: state, svc: NewService(a), user: user, device: d}
}

func TestServiceListSnippets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.srv.AddSnippet(f.user.ID, snippet.Snippet{Content: "deploy script", Tags: []string{"work"}, Type: snippet.Code})
	f.srv.AddSnippet(f.user.ID, snippet.Snippet{Content: "buy milk", Tags: []string{"home"}})
	f.srv.AddSnippet(f.user.ID, snippet.Snippet{Content: strings.Repeat("z", 300), Tags: []string{"home"}})

	all, err := f.svc.ListSnippets(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListSnippets: %v", err)
	}
	if all.Count != 3 || all.Message != "3 snippets found" {
		t.Fatalf("unexpected listing %+v", all)
	}

	home, err := f.svc.ListSnippets(ctx, ListOptions{Search: "tag:home", Text: "MILK"})
	if err != nil {
		t.Fatalf("ListSnippets: %v", err)
	}
	if home.Filters != (query.Filters{Tag: "home"}) {
		t.Fatalf("filters = %+v", home.Filters)
	}
	if home.Count != 1 || home.Snippets[0].Content != "buy milk" {
		t.Fatalf("unexpected listing %+v", home)
	}

	limited, err := f.svc.ListSnippets(ctx, ListOptions{Limit: 1})
	if err != nil {
		t.Fatalf("ListSnippets: %v", err)
	}
	if limited.Count != 1 {
		t.Fatalf("limit ignored: %d", limited.Count)
	}

	none, err := f.svc.ListSnippets(ctx, ListOptions{Text: "nothing like this"})
	if err != nil {
		t.Fatalf("ListSnippets: %v", err)
	}
	if none.Message != "No snippets match your search." || none.Snippets == nil {
		t.Fatalf("unexpected empty listing %+v", none)
	}
}

func TestServicePreviewIsShortened(t *testing.T) {
	f := newFixture(t)
	sn := f.srv.AddSnippet(f.user.ID, snippet.Snippet{Content: strings.Repeat("z", 300)})

	dto, err := f.svc.Snippet(context.Background(), sn.ID)
	if err != nil {
		t.Fatalf("Snippet: %v", err)
	}
	if len(dto.Content) != 300 {
		t.Fatalf("content trimmed to %d", len(dto.Content))
	}
	if dto.Preview != strings.Repeat("z", 200)+"..." {
		t.Fatalf("preview = %q", dto.Preview)
	}
	if dto.CreatedISO == "" || dto.CreatedUnix == 0 {
		t.Fatalf("timestamps missing: %+v", dto)
	}
}

func TestServiceCreateUsesSelectedDevice(t *testing.T) {
	f := newFixture(t)
	dto, err := f.svc.CreateSnippet(context.Background(), app.Draft{Content: "hello", Tags: "a, b"})
	if err != nil {
		t.Fatalf("CreateSnippet: %v", err)
	}
	if dto.DeviceID != f.device.ID {
		t.Fatalf("device = %q", dto.DeviceID)
	}
	if dto.Type != "text" || len(dto.Tags) != 2 {
		t.Fatalf("unexpected dto %+v", dto)
	}
}

func TestServiceCreateRejectsBlank(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateSnippet(context.Background(), app.Draft{Content: "  "})
	if err == nil || err.Error() != "content is required" {
		t.Fatalf("err = %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	f := newFixture(t)
	sn := f.srv.AddSnippet(f.user.ID, snippet.Snippet{Content: "x"})
	if err := f.svc.DeleteSnippet(context.Background(), sn.ID); err != nil {
		t.Fatalf("DeleteSnippet: %v", err)
	}
	err := f.svc.DeleteSnippet(context.Background(), sn.ID)
	if err == nil || err.Error() != "Snippet not found" {
		t.Fatalf("err = %v", err)
	}
}

func TestServiceDevicesMarksSelected(t *testing.T) {
	f := newFixture(t)
	f.srv.AddDevice(f.user.ID, "phone")

	devices, err := f.svc.Devices(context.Background())
	if err != nil {
		t.Fatalf("Devices: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("devices = %+v", devices)
	}
	for _, d := range devices {
		if d.Selected != (d.ID == f.device.ID) {
			t.Errorf("device %s selected = %v", d.Name, d.Selected)
		}
	}
}

func TestServiceErrorsExplainSession(t *testing.T) {
	f := newFixture(t)
	f.srv.RevokeTokens()

	_, err := f.svc.ListSnippets(context.Background(), ListOptions{})
	if err == nil || !strings.Contains(err.Error(), "session expired") {
		t.Fatalf("err = %v", err)
	}
	_, err = f.svc.ListSnippets(context.Background(), ListOptions{})
	if err == nil || !strings.Contains(err.Error(), "not signed in") {
		t.Fatalf("err = %v", err)
	}
}

func TestServiceWithoutSession(t *testing.T) {
	var s Service
	if _, err := s.ListSnippets(context.Background(), ListOptions{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestTemplateArg(t *testing.T) {
	if got := templateArg([]string{"abc"}); got != "abc" {
		t.Fatalf("got %q", got)
	}
	if got := templateArg("xyz"); got != "xyz" {
		t.Fatalf("got %q", got)
	}
	if got := templateArg(nil); got != "" {
		t.Fatalf("got %q", got)
	}
}
