package api

import (
	"context"
	"net/http"

	"tableflip.dev/syncvault/pkg/snippet"
)

// Login exchanges credentials for a bearer token. A rejected login is an
// ordinary *Error, not ErrUnauthorized, since no session was lost.
func (c *Client) Login(ctx context.Context, creds snippet.Credentials) (*snippet.AuthResponse, error) {
	out := &snippet.AuthResponse{}
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: creds, out: out, credentials: true})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Signup(ctx context.Context, creds snippet.Credentials) (*snippet.AuthResponse, error) {
	out := &snippet.AuthResponse{}
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/signup", body: creds, out: out, credentials: true})
	if err != nil {
		return nil, err
	}
	return out, nil
}
