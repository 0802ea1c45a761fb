package main

import (
	"context"
	"net/url"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hkaanengin/opendota-mcp-server/internal/resolve"
)

type recordsArgs struct {
	Field string `json:"field" jsonschema:"Stat to list records for, e.g. kills, gpm, duration. Fuzzy matched."`
}

type scenariosArgs struct {
	LaneRole string `json:"lane_role,omitempty" jsonschema:"Lane filter: 1-4 or a name like mid, safe lane, offlane, jungle"`
	Hero     string `json:"hero,omitempty" jsonschema:"Hero filter: hero ID or name"`
}

func registerMiscTools(srv *mcp.Server, a *app, registry *[]toolInfo) {
	addTool(srv, registry, &mcp.Tool{
		Name:        "get_benchmarks",
		Description: "Statistical benchmarks (gpm, xpm, kills per minute, ...) for a hero across all skill levels.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args heroArgs) (*mcp.CallToolResult, any, error) {
		id, err := a.resolveHeroArg(ctx, args.Hero)
		if err != nil {
			return toolError("get_benchmarks", err), nil, nil
		}
		params := url.Values{}
		params.Set("hero_id", strconv.Itoa(id))
		raw, err := a.client.Get(ctx, "/benchmarks", params)
		if err != nil {
			return toolError("get_benchmarks", err), nil, nil
		}
		return toolRaw(raw)
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_records",
		Description: "The highest recorded values of a stat across recent matches.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args recordsArgs) (*mcp.CallToolResult, any, error) {
		field, err := resolve.ResolveStatField(args.Field)
		if err != nil {
			return toolError("get_records", err), nil, nil
		}
		raw, err := a.client.Get(ctx, "/records/"+field, nil)
		if err != nil {
			return toolError("get_records", err), nil, nil
		}
		return toolRaw(raw)
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_scenarios_lane_roles",
		Description: "Win rates by lane role and game-time bucket, optionally filtered by hero.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args scenariosArgs) (*mcp.CallToolResult, any, error) {
		params := url.Values{}
		if args.LaneRole != "" {
			lane, ok, err := resolve.ResolveLane(resolve.ParseRef(args.LaneRole))
			if err != nil {
				return toolError("get_scenarios_lane_roles", err), nil, nil
			}
			if ok {
				params.Set("lane_role", strconv.Itoa(lane))
			}
		}
		if args.Hero != "" {
			id, err := a.resolveHeroArg(ctx, args.Hero)
			if err != nil {
				return toolError("get_scenarios_lane_roles", err), nil, nil
			}
			params.Set("hero_id", strconv.Itoa(id))
		}
		raw, err := a.client.Get(ctx, "/scenarios/laneRoles", params)
		if err != nil {
			return toolError("get_scenarios_lane_roles", err), nil, nil
		}
		return toolRaw(raw)
	})
}
