package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/query"
	"tableflip.dev/syncvault/pkg/snippet"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListSnippetsTool(srv, svc)
	registerGetSnippetTool(srv, svc)
	registerCreateSnippetTool(srv, svc)
	registerDeleteSnippetTool(srv, svc)
	registerListDevicesTool(srv, svc)
}

func typeNames() []string {
	out := make([]string, 0, len(snippet.Types()))
	for _, t := range snippet.Types() {
		out = append(out, t.String())
	}
	return out
}

func registerListSnippetsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_snippets",
		mcp.WithDescription("List snippets of the signed-in account, newest first."),
		mcp.WithString("search",
			mcp.Description("Search-box expression such as 'tag:work' or 'device:<id>'; prefixed values filter on the server."),
		),
		mcp.WithString("text",
			mcp.Description("Case-insensitive text matched against content, tags, device id and type."),
		),
		mcp.WithString("tag",
			mcp.Description("Only snippets carrying this exact tag."),
		),
		mcp.WithString("type",
			mcp.Description("Only snippets of this type."),
			mcp.Enum(typeNames()...),
		),
		mcp.WithString("device_id",
			mcp.Description("Only snippets saved from this device."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of snippets to return; 0 returns all."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Search   string `json:"search"`
			Text     string `json:"text"`
			Tag      string `json:"tag"`
			Type     string `json:"type"`
			DeviceID string `json:"device_id"`
			Limit    int    `json:"limit"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		var typ snippet.Type
		if args.Type != "" {
			var err error
			if typ, err = snippet.ParseType(args.Type); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}

		listing, err := svc.ListSnippets(ctx, ListOptions{
			Search:  args.Search,
			Filters: query.Filters{DeviceID: args.DeviceID, Tag: args.Tag, Type: typ},
			Text:    args.Text,
			Limit:   args.Limit,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(listing)
	})
}

func registerGetSnippetTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_snippet",
		mcp.WithDescription("Fetch a single snippet with its full content."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Snippet identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Snippet(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCreateSnippetTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_snippet",
		mcp.WithDescription("Save a snippet from the selected device."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Snippet body."),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags, for example 'shell, docker'."),
		),
		mcp.WithString("type",
			mcp.Description("Snippet type; defaults to text."),
			mcp.Enum(typeNames()...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := request.RequireString("content")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		typ, err := snippet.ParseType(request.GetString("type", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.CreateSnippet(ctx, app.Draft{
			Content: content,
			Tags:    request.GetString("tags", ""),
			Type:    typ,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteSnippetTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_snippet",
		mcp.WithDescription("Delete a snippet."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Snippet identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteSnippet(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"id": id, "deleted": true})
	})
}

func registerListDevicesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_devices",
		mcp.WithDescription("List the devices of the account and mark the selected one."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		devices, err := svc.Devices(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"devices": devices,
			"count":   len(devices),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
