package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/plan"
)

func kindNames() []string {
	out := make([]string, 0, len(plan.AllKinds()))
	for _, k := range plan.AllKinds() {
		out = append(out, string(k))
	}
	return out
}

func viewNames() []string {
	out := make([]string, 0, len(calendar.AllViews()))
	for _, v := range calendar.AllViews() {
		out = append(out, string(v))
	}
	return out
}

func registerTools(srv *server.MCPServer, svc *Service) {
	registerCreateEntityTool(srv, svc)
	registerUpdateEntityTool(srv, svc)
	registerDeleteEntityTool(srv, svc)
	registerCompleteEntityTool(srv, svc)
	registerGetEntityTool(srv, svc)
	registerListEntitiesTool(srv, svc)
	registerComposeViewTool(srv, svc)
}

func kindArg() mcp.ToolOption {
	return mcp.WithString("kind",
		mcp.Required(),
		mcp.Description("Entity kind."),
		mcp.Enum(kindNames()...),
	)
}

// fieldsArg accepts the fields either as a JSON object or as a string
// holding one.
type fieldsArg struct {
	Kind   string          `json:"kind"`
	ID     string          `json:"id"`
	Fields json.RawMessage `json:"fields"`
}

func (a fieldsArg) object() ([]byte, error) {
	raw := []byte(strings.TrimSpace(string(a.Fields)))
	if len(raw) == 0 {
		return nil, fmt.Errorf("fields is required")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		raw = []byte(s)
	}
	return raw, nil
}

func registerCreateEntityTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_entity",
		mcp.WithDescription("Create a vision, goal, task, todo, word or affirmation. Dates use YYYY-MM-DD."),
		kindArg(),
		mcp.WithString("fields",
			mcp.Required(),
			mcp.Description(`JSON object of fields, e.g. {"title":"Run 10k","startDate":"2024-03-01"}. Visions, goals and tasks need a title, todos and affirmations a text, words a commitment.`),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args fieldsArg
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		fields, err := args.object()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid fields: %v", err)), nil
		}

		dto, err := svc.Create(ctx, args.Kind, fields)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateEntityTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_entity",
		mcp.WithDescription("Change fields of an entity. Fields not given are kept; a null value clears a field."),
		kindArg(),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entity identifier."),
		),
		mcp.WithString("fields",
			mcp.Required(),
			mcp.Description("JSON object of the fields to change."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args fieldsArg
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		fields, err := args.object()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid fields: %v", err)), nil
		}

		dto, err := svc.Update(ctx, args.Kind, args.ID, fields)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntityTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entity",
		mcp.WithDescription("Delete an entity permanently."),
		kindArg(),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entity identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := request.RequireString("kind")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := svc.Delete(ctx, kind, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"deleted": id, "kind": kind})
	})
}

func registerCompleteEntityTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"complete_entity",
		mcp.WithDescription("Mark a goal, task or todo completed, or a word kept."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Entity kind."),
			mcp.Enum(string(plan.KindGoal), string(plan.KindTask), string(plan.KindTodo), string(plan.KindWord)),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entity identifier to complete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := request.RequireString("kind")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.Complete(ctx, kind, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetEntityTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entity",
		mcp.WithDescription("Fetch a single entity by kind and identifier."),
		kindArg(),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entity identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := request.RequireString("kind")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.Entity(ctx, kind, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListEntitiesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entities",
		mcp.WithDescription("List entities of a kind, optionally only those active between start and end."),
		kindArg(),
		mcp.WithString("start",
			mcp.Description("First day of the window, YYYY-MM-DD. Requires end."),
		),
		mcp.WithString("end",
			mcp.Description("Last day of the window, YYYY-MM-DD. Requires start."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entities to return (default 100)."),
			mcp.Min(1),
			mcp.Max(1000),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := request.RequireString("kind")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		start := request.GetString("start", "")
		end := request.GetString("end", "")
		limit := request.GetInt("limit", 100)

		results, err := svc.ListEntities(ctx, kind, start, end)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		total := len(results)
		if limit > 0 && len(results) > limit {
			results = results[:limit]
		}
		return toJSONResult(map[string]any{
			"kind":     kind,
			"entities": results,
			"count":    len(results),
			"total":    total,
		})
	})
}

func registerComposeViewTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"compose_view",
		mcp.WithDescription("Gather everything planned for a day, week (Sunday first), month or year."),
		mcp.WithString("view",
			mcp.Required(),
			mcp.Description("Calendar view."),
			mcp.Enum(viewNames()...),
		),
		mcp.WithString("on",
			mcp.Description("Any day inside the wanted period, YYYY-MM-DD. Defaults to today."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		view, err := request.RequireString("view")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		p, err := svc.Compose(ctx, view, request.GetString("on", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(p)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
