package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerSnippetsResource(srv, svc)
	registerSnippetTemplate(srv, svc)
}

func registerSnippetsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"syncvault://snippets",
		"Snippets",
		mcp.WithResourceDescription("Every snippet of the signed-in account, newest first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		listing, err := svc.ListSnippets(ctx, ListOptions{})
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, listing)
	})
}

func registerSnippetTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"syncvault://snippets/{id}",
		"Snippet",
		mcp.WithTemplateDescription("A single snippet with its full content."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("snippet id is required")
		}
		dto, err := svc.Snippet(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"snippet": dto})
	})
}

// templateArg unwraps a URI template variable, which arrives as a string
// or a single-element list depending on the matcher.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
