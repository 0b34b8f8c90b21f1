package api

import (
	"context"
	"net/http"

	"tableflip.dev/syncvault/pkg/query"
	"tableflip.dev/syncvault/pkg/snippet"
)

// Snippets lists snippets matching the set dimensions of f.
func (c *Client) Snippets(ctx context.Context, f query.Filters) ([]*snippet.Snippet, error) {
	out := make([]*snippet.Snippet, 0)
	if err := c.do(ctx, request{method: http.MethodGet, path: "/snippets", query: f.Values(), out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Snippet(ctx context.Context, id string) (*snippet.Snippet, error) {
	path, err := idPath("/snippets", id)
	if err != nil {
		return nil, err
	}
	out := &snippet.Snippet{}
	if err := c.do(ctx, request{method: http.MethodGet, path: path, out: out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSnippet(ctx context.Context, req snippet.CreateRequest) (*snippet.Snippet, error) {
	out := &snippet.Snippet{}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/snippets", body: req, out: out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteSnippet(ctx context.Context, id string) error {
	path, err := idPath("/snippets", id)
	if err != nil {
		return err
	}
	return c.do(ctx, request{method: http.MethodDelete, path: path})
}
