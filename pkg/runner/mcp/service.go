// Package mcp exposes the signed-in SyncVault session over the Model
// Context Protocol.
package mcp

import (
	"context"
	"errors"

	"tableflip.dev/syncvault/pkg/api"
	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/apperror"
	"tableflip.dev/syncvault/pkg/query"
	"tableflip.dev/syncvault/pkg/snippet"
)

// Service adapts the session controller to tool-friendly shapes.
type Service struct {
	App *app.Service
}

// ListOptions narrows a listing.
type ListOptions struct {
	// Search is the search-box text; device:, tag: and type: prefixes
	// become server filters.
	Search  string
	Filters query.Filters
	// Text is matched locally against content, tags, device and type.
	Text  string
	Limit int
}

// SnippetDTO is a transport-friendly projection of a snippet.
type SnippetDTO struct {
	ID          string   `json:"id"`
	Content     string   `json:"content"`
	Preview     string   `json:"preview"`
	Tags        []string `json:"tags"`
	Type        string   `json:"type"`
	DeviceID    string   `json:"deviceId,omitempty"`
	CreatedISO  string   `json:"created"`
	UpdatedISO  string   `json:"updated"`
	CreatedUnix int64    `json:"createdUnix"`
}

// DeviceDTO describes a device and whether this client acts as it.
type DeviceDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CreatedISO string `json:"created"`
	Selected   bool   `json:"selected"`
}

// Listing is the result of ListSnippets.
type Listing struct {
	Filters  query.Filters `json:"filters"`
	Count    int           `json:"count"`
	Message  string        `json:"message"`
	Snippets []SnippetDTO  `json:"snippets"`
}

func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) ready() error {
	if s.App == nil {
		return errors.New("session is not configured")
	}
	return nil
}

// ListSnippets fetches, filters and projects snippets.
func (s *Service) ListSnippets(ctx context.Context, opts ListOptions) (*Listing, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	filters := query.Parse(opts.Search).Merge(opts.Filters)
	all, err := s.App.Snippets(ctx, filters)
	if err != nil {
		return nil, describe(err, "Failed to fetch snippets")
	}
	text := opts.Text
	visible := query.Search(all, text)
	if opts.Limit > 0 && len(visible) > opts.Limit {
		visible = visible[:opts.Limit]
	}

	l := &Listing{
		Filters:  filters,
		Count:    len(visible),
		Message:  query.CountLabel(len(visible)),
		Snippets: toDTOs(visible),
	}
	if len(visible) == 0 {
		l.Message = query.EmptyMessage(text)
	}
	return l, nil
}

func (s *Service) Snippet(ctx context.Context, id string) (*SnippetDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	sn, err := s.App.Snippet(ctx, id)
	if err != nil {
		return nil, describe(err, "Failed to fetch snippet")
	}
	dto := toDTO(sn)
	return &dto, nil
}

func (s *Service) CreateSnippet(ctx context.Context, d app.Draft) (*SnippetDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	sn, err := s.App.CreateSnippet(ctx, d)
	if err != nil {
		return nil, describe(err, "Failed to create snippet")
	}
	dto := toDTO(sn)
	return &dto, nil
}

func (s *Service) DeleteSnippet(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.App.DeleteSnippet(ctx, id); err != nil {
		return describe(err, "Failed to delete snippet")
	}
	return nil
}

func (s *Service) Devices(ctx context.Context) ([]DeviceDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	devices, err := s.App.Devices(ctx)
	if err != nil {
		return nil, describe(err, "Failed to load devices")
	}
	sel, _ := s.App.Selection()
	out := make([]DeviceDTO, 0, len(devices))
	for _, d := range devices {
		out = append(out, DeviceDTO{
			ID:         d.ID,
			Name:       d.Name,
			CreatedISO: d.CreatedAt.String(),
			Selected:   d.ID == sel.DeviceID,
		})
	}
	return out, nil
}

// describe turns err into the message a tool caller should see.
func describe(err error, fallback string) error {
	switch {
	case api.IsUnauthorized(err):
		return errors.New(`session expired, run "syncvault login"`)
	case errors.Is(err, apperror.ErrNotAuthenticated):
		return errors.New(`not signed in, run "syncvault login"`)
	case errors.Is(err, apperror.ErrNoDevice):
		return errors.New(`no device selected, run "syncvault device select"`)
	}
	return errors.New(apperror.UserMessage(err, fallback))
}

func toDTOs(list []*snippet.Snippet) []SnippetDTO {
	out := make([]SnippetDTO, 0, len(list))
	for _, s := range list {
		out = append(out, toDTO(s))
	}
	return out
}

func toDTO(s *snippet.Snippet) SnippetDTO {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	dto := SnippetDTO{
		ID:         s.ID,
		Content:    s.Content,
		Preview:    snippet.Preview(s.Content),
		Tags:       tags,
		Type:       s.Type.String(),
		DeviceID:   s.DeviceID,
		CreatedISO: s.CreatedAt.String(),
		UpdatedISO: s.UpdatedAt.String(),
	}
	if !s.CreatedAt.IsZero() {
		dto.CreatedUnix = s.CreatedAt.Unix()
	}
	return dto
}
