package mcp

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"
)

func TestParseTransport(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    Transport
		wantErr bool
	}{
		"blank":   {in: "", want: TransportHTTP},
		"http":    {in: "HTTP", want: TransportHTTP},
		"stdio":   {in: " stdio ", want: TransportStdio},
		"unknown": {in: "grpc", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseTransport(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEndpointValidate(t *testing.T) {
	if err := (Endpoint{Port: 70000}).Validate(); err == nil {
		t.Fatal("expected port error")
	}
	if err := (Endpoint{CertFile: "c.pem"}).Validate(); err == nil {
		t.Fatal("expected tls pairing error")
	}
	if err := (Endpoint{Port: 8080, CertFile: "c.pem", KeyFile: "k.pem"}).Validate(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestEndpointURL(t *testing.T) {
	bound := &net.TCPAddr{IP: net.IPv4zero, Port: 4321}
	tests := map[string]struct {
		e    Endpoint
		want string
	}{
		"defaults": {e: Endpoint{}, want: "http://127.0.0.1:4321/mcp"},
		"wildcard": {e: Endpoint{Host: "0.0.0.0", Path: "tools"}, want: "http://127.0.0.1:4321/tools"},
		"ipv6":     {e: Endpoint{Host: "::1"}, want: "http://[::1]:4321/mcp"},
		"tls":      {e: Endpoint{Host: "vault.local", CertFile: "c", KeyFile: "k"}, want: "https://vault.local:4321/mcp"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tc.e.URL(bound); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRunnerServesUntilCancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan string, 1)
	r := &Runner{
		Service:  f.svc.App,
		Endpoint: Endpoint{Port: 0},
		Ready:    func(url string) { ready <- url },
	}
	done := make(chan error, 1)
	go func() { done <- r.Do(ctx) }()

	select {
	case url := <-ready:
		if !strings.HasPrefix(url, "http://127.0.0.1:") || !strings.HasSuffix(url, "/mcp") {
			t.Fatalf("unexpected url %q", url)
		}
	case err := <-done:
		t.Fatalf("runner exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner never became ready")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop")
	}
}
