package app

import (
	"context"
	"strings"

	"tableflip.dev/syncvault/pkg/apperror"
	"tableflip.dev/syncvault/pkg/query"
	"tableflip.dev/syncvault/pkg/snippet"
)

// Draft is the create form.
type Draft struct {
	Content string
	// Tags is the comma-separated string as typed.
	Tags string
	Type snippet.Type
	// DeviceID is ignored; the selected device is always used.
	DeviceID string
}

// Snippets fetches snippets matching f.
func (s *Service) Snippets(ctx context.Context, f query.Filters) ([]*snippet.Snippet, error) {
	if _, err := s.requireDevice(); err != nil {
		return nil, err
	}
	list, err := s.Backend.Snippets(ctx, f)
	return list, s.guard(err)
}

func (s *Service) Snippet(ctx context.Context, id string) (*snippet.Snippet, error) {
	if _, err := s.requireDevice(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, apperror.Required("id")
	}
	sn, err := s.Backend.Snippet(ctx, id)
	return sn, s.guard(err)
}

// CreateSnippet validates d and stores it under the selected device.
// Nothing is sent when the content is blank.
func (s *Service) CreateSnippet(ctx context.Context, d Draft) (*snippet.Snippet, error) {
	sel, err := s.requireDevice()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(d.Content) == "" {
		return nil, apperror.Required("content")
	}
	typ := d.Type
	if typ == "" {
		typ = snippet.Text
	}
	if !typ.Valid() {
		return nil, apperror.Validation("type", "type must be one of text, code or link")
	}
	sn, err := s.Backend.CreateSnippet(ctx, snippet.CreateRequest{
		Content:  d.Content,
		Tags:     d.Tags,
		DeviceID: sel.DeviceID,
		Type:     typ,
	})
	if err != nil {
		return nil, s.guard(err)
	}
	return sn, nil
}

// DeleteSnippet removes a snippet on the server.
func (s *Service) DeleteSnippet(ctx context.Context, id string) error {
	if _, err := s.requireDevice(); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return apperror.Required("id")
	}
	return s.guard(s.Backend.DeleteSnippet(ctx, id))
}
