package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerKindsResource(srv, svc)
	registerKindTemplate(srv, svc)
	registerEntityTemplate(srv, svc)
}

func registerKindsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"planner://kinds",
		"Kinds",
		mcp.WithResourceDescription("All planner entity kinds with counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summaries, err := svc.Kinds(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"kinds": summaries,
			"count": len(summaries),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerKindTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"planner://{kind}",
		"Entities of a kind",
		mcp.WithTemplateDescription("Every stored entity of one kind."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		kind := argument(request, "kind")
		if kind == "" {
			return nil, fmt.Errorf("kind is required")
		}

		entities, err := svc.ListEntities(ctx, kind, "", "")
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"kind":     kind,
			"count":    len(entities),
			"entities": entities,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerEntityTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"planner://{kind}/{id}",
		"Entity Details",
		mcp.WithTemplateDescription("Detailed information about a single entity."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		kind, id := argument(request, "kind"), argument(request, "id")
		if kind == "" || id == "" {
			return nil, fmt.Errorf("kind and id are required")
		}

		dto, err := svc.Entity(ctx, kind, id)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"entity": dto,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// argument reads a URI template variable, which the server may hand over
// as a string or a single-element list.
func argument(request mcp.ReadResourceRequest, name string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case []any:
		if len(v) > 0 {
			s, _ := v[0].(string)
			return s
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
