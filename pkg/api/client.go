// Package api is the REST binding for the SyncVault server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource supplies the bearer token for outgoing requests; an empty
// token means the request goes out without credentials.
type TokenSource interface {
	Token() string
}

// Client performs authenticated calls against a SyncVault server. It is
// safe for concurrent use.
type Client struct {
	base           *url.URL
	tokens         TokenSource
	hc             *http.Client
	log            *slog.Logger
	onUnauthorized func()
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithUnauthorizedHandler registers fn to run whenever the server answers
// 401. The error is still returned to the caller.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// New builds a client for baseURL.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: base url %q must be http or https", baseURL)
	}
	c := &Client{
		base:   u,
		tokens: tokens,
		hc:     http.DefaultClient,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// endpoint joins the base URL with an already escaped path.
func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.RawPath = strings.TrimRight(c.base.EscapedPath(), "/") + path
	if unescaped, err := url.PathUnescape(u.RawPath); err == nil {
		u.Path = unescaped
	}
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// request describes one call. A 401 on a credentials request is a rejected
// login, not a lost session; the auth endpoints set it.
type request struct {
	method      string
	path        string
	query       url.Values
	body        any
	out         any
	credentials bool
}

// do sends one request and decodes a JSON response into r.out when it is
// non-nil. No retries are attempted.
func (c *Client) do(ctx context.Context, r request) error {
	var reader io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", r.method, r.path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.endpoint(r.path, r.query), reader)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			slog.String("method", r.method),
			slog.String("path", r.path),
			slog.String("error", err.Error()))
		return &TransportError{Method: r.method, Path: r.path, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		slog.String("method", r.method),
		slog.String("path", r.path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: r.method, Path: r.path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: serverMessage(data)}
		if resp.StatusCode == http.StatusUnauthorized && !r.credentials {
			apiErr.err = ErrUnauthorized
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		}
		return fmt.Errorf("api: %s %s: %w", r.method, r.path, apiErr)
	}

	if r.out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, r.out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", r.method, r.path, err)
	}
	return nil
}

// serverMessage pulls a human message out of an error body, accepting the
// {"error": "..."} and {"message": "..."} shapes.
func serverMessage(data []byte) string {
	var body struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if msg, ok := body.Error.(string); ok && msg != "" {
		if body.Message != "" && looksLikeCode(msg) {
			return body.Message
		}
		return msg
	}
	return body.Message
}

// looksLikeCode reports machine error codes such as "not_found".
func looksLikeCode(s string) bool {
	return !strings.Contains(s, " ") && strings.Contains(s, "_")
}

func idPath(prefix, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", errors.New("api: id required")
	}
	return prefix + "/" + url.PathEscape(id), nil
}
