package add

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/snippet"
	"tableflip.dev/syncvault/pkg/store"
	"tableflip.dev/syncvault/pkg/vaulttest"
)

func init() {
	color.NoColor = true
}

func ready(t *testing.T) (*vaulttest.Server, *app.Service, snippet.User, *snippet.Device) {
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
	return srv, svc, user, d
}

func TestAdd(t *testing.T) {
	srv, svc, user, d := ready(t)

	var out bytes.Buffer
	a := &Add{Service: svc, Content: "ls -la", Tags: "shell,  quick", Type: snippet.Code, Out: &out}
	if err := a.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	stored := srv.Snippets(user.ID)
	if len(stored) != 1 {
		t.Fatalf("stored = %v", stored)
	}
	if stored[0].DeviceID != d.ID {
		t.Errorf("device = %q, want %q", stored[0].DeviceID, d.ID)
	}
	if !strings.Contains(out.String(), "saved "+stored[0].ID+" [code] #shell #quick") {
		t.Errorf("out = %q", out.String())
	}
}

func TestAddBlankContent(t *testing.T) {
	srv, svc, user, _ := ready(t)
	if err := (&Add{Service: svc, Content: "   "}).Do(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
	if n := len(srv.Snippets(user.ID)); n != 0 {
		t.Fatalf("stored %d snippets", n)
	}
}

func TestDeleteReportsEveryFailure(t *testing.T) {
	srv, svc, user, _ := ready(t)
	keep := srv.AddSnippet(user.ID, snippet.Snippet{Content: "keep"})
	gone := srv.AddSnippet(user.ID, snippet.Snippet{Content: "gone"})

	var out bytes.Buffer
	err := (&Delete{Service: svc, IDs: []string{"missing-1", gone.ID, "missing-2"}, Out: &out}).Do(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	for _, id := range []string{"missing-1", "missing-2"} {
		if !strings.Contains(err.Error(), id) {
			t.Errorf("error %q does not mention %s", err, id)
		}
	}
	if !strings.Contains(out.String(), "deleted "+gone.ID) {
		t.Errorf("out = %q", out.String())
	}
	left := srv.Snippets(user.ID)
	if len(left) != 1 || left[0].ID != keep.ID {
		t.Fatalf("left = %v", left)
	}
}
