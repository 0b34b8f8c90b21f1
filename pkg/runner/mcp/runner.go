package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/syncvault/pkg/app"
)

// Transport selects how the MCP server is exposed.
type Transport string

const (
	TransportHTTP  Transport = "http"
	TransportStdio Transport = "stdio"
)

// ParseTransport accepts "http" (the default for blank input) or "stdio".
func ParseTransport(v string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(v))); t {
	case "":
		return TransportHTTP, nil
	case TransportHTTP, TransportStdio:
		return t, nil
	}
	return "", fmt.Errorf("unsupported transport %q (expected http or stdio)", v)
}

// Endpoint is where the streamable HTTP transport listens.
type Endpoint struct {
	Host     string
	Port     int
	Path     string
	CertFile string
	KeyFile  string
}

// Validate checks the port range and that TLS files come in pairs.
func (e Endpoint) Validate() error {
	if e.Port < 0 || e.Port > 65535 {
		return fmt.Errorf("invalid http-port %d", e.Port)
	}
	if (e.CertFile == "") != (e.KeyFile == "") {
		return errors.New("both http tls cert and key must be provided")
	}
	return nil
}

func (e Endpoint) host() string {
	if h := strings.TrimSpace(e.Host); h != "" {
		return h
	}
	return "127.0.0.1"
}

func (e Endpoint) path() string {
	p := strings.TrimSpace(e.Path)
	if p == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func (e Endpoint) tls() bool {
	return e.CertFile != "" && e.KeyFile != ""
}

// URL is the address clients should use once bound is listening.
// Wildcard hosts are reported as the bound IP or loopback.
func (e Endpoint) URL(bound net.Addr) string {
	host, port := e.host(), strconv.Itoa(e.Port)
	if tcp, ok := bound.(*net.TCPAddr); ok {
		port = strconv.Itoa(tcp.Port)
		if host == "0.0.0.0" || host == "::" {
			host = "127.0.0.1"
			if tcp.IP != nil && !tcp.IP.IsUnspecified() {
				host = tcp.IP.String()
			}
		}
	}
	scheme := "http"
	if e.tls() {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(host, port) + e.path()
}

// Runner serves the signed-in session to MCP clients.
type Runner struct {
	Service   *app.Service
	Version   string
	Transport Transport
	Endpoint  Endpoint
	Log       *slog.Logger
	// Ready receives the served URL once the HTTP listener is bound.
	Ready func(url string)
}

func (r *Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("mcp runner requires a session")
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}
	srv := newServer(version, NewService(r.Service))

	switch r.Transport {
	case "", TransportHTTP:
		if err := r.Endpoint.Validate(); err != nil {
			return err
		}
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		return server.ServeStdio(srv)
	}
	return fmt.Errorf("unknown MCP transport %q", r.Transport)
}

func newServer(version string, svc *Service) *server.MCPServer {
	srv := server.NewMCPServer(
		"syncvault MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Search, read, save and delete SyncVault snippets of the signed-in account. New snippets are saved from the selected device."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r *Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	mux := http.NewServeMux()
	mux.Handle(r.Endpoint.path(), server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	addr := net.JoinHostPort(r.Endpoint.host(), strconv.Itoa(r.Endpoint.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	url := r.Endpoint.URL(ln.Addr())
	if r.Log != nil {
		r.Log.Info("mcp listening", slog.String("url", url))
	}
	if r.Ready != nil {
		r.Ready(url)
	}

	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	})
	defer stop()

	if r.Endpoint.tls() {
		err = httpSrv.ServeTLS(ln, r.Endpoint.CertFile, r.Endpoint.KeyFile)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
