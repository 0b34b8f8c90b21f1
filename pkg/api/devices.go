package api

import (
	"context"
	"net/http"

	"tableflip.dev/syncvault/pkg/snippet"
)

// Devices lists the caller's registered devices.
func (c *Client) Devices(ctx context.Context) ([]*snippet.Device, error) {
	out := make([]*snippet.Device, 0)
	if err := c.do(ctx, request{method: http.MethodGet, path: "/devices", out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RegisterDevice(ctx context.Context, name string) (*snippet.Device, error) {
	out := &snippet.Device{}
	body := map[string]string{"name": name}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/devices/register", body: body, out: out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteDevice(ctx context.Context, id string) error {
	path, err := idPath("/devices", id)
	if err != nil {
		return err
	}
	return c.do(ctx, request{method: http.MethodDelete, path: path})
}
