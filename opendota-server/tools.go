package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hkaanengin/opendota-mcp-server/internal/opendota"
	"github.com/hkaanengin/opendota-mcp-server/internal/resolve"
	"github.com/hkaanengin/opendota-mcp-server/internal/shape"
)

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func addTool[T any](srv *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(srv, tool, handler)
}

// toolError converts any failure into the uniform {"error": "..."} payload.
// Resolution failures carry their suggestions in the message; nothing
// propagates as a raw protocol error.
func toolError(tool string, err error) *mcp.CallToolResult {
	logToolError(tool, err)
	body, _ := json.Marshal(map[string]string{"error": err.Error()})
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: string(body)}},
	}
}

func logToolError(tool string, err error) {
	var nf *resolve.NotFoundError
	var re *resolve.RangeError
	var se *opendota.StatusError
	var de *shape.DataError
	switch {
	case errors.As(err, &nf), errors.As(err, &re):
		slog.Warn("tool resolution failed", "tool", tool, "err", err)
	case errors.As(err, &se):
		slog.Error("tool upstream status error", "tool", tool, "status", se.Code, "err", err)
	case errors.As(err, &de):
		slog.Error("tool data error", "tool", tool, "err", err)
	default:
		slog.Error("tool failed", "tool", tool, "err", err)
	}
}

// toolJSON marshals v as the tool's success payload.
func toolJSON(tool string, v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(tool, fmt.Errorf("encode result: %w", err)), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}, nil, nil
}

// toolRaw passes an upstream JSON body through untouched.
func toolRaw(raw json.RawMessage) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}, nil, nil
}
