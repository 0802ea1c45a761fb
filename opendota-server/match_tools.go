package main

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hkaanengin/opendota-mcp-server/internal/shape"
)

type matchArgs struct {
	MatchID int64 `json:"match_id" jsonschema:"Numeric match ID, e.g. 8054301932"`
}

func registerMatchTools(srv *mcp.Server, a *app, registry *[]toolInfo) {
	addTool(srv, registry, &mcp.Tool{
		Name:        "get_match_details",
		Description: "Full match breakdown split into named sections (players, teamfights, objectives, ...). Players carry hero names and team attribution.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args matchArgs) (*mcp.CallToolResult, any, error) {
		sections, err := a.fetchMatchSections(ctx, args.MatchID)
		if err != nil {
			return toolError("get_match_details", err), nil, nil
		}
		if players, err := sections.MatchPlayers(); err == nil {
			sections["players"] = shape.EnrichMatchPlayers(a.catalog, players)
		}
		return toolJSON("get_match_details", sections)
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_match_builds",
		Description: "Each player's final items, neutral item and the timings of their expensive purchases.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args matchArgs) (*mcp.CallToolResult, any, error) {
		sections, err := a.fetchMatchSections(ctx, args.MatchID)
		if err != nil {
			return toolError("get_match_builds", err), nil, nil
		}
		players, err := sections.MatchPlayers()
		if err != nil {
			return toolError("get_match_builds", err), nil, nil
		}
		type playerBuild struct {
			Hero  string            `json:"hero"`
			Team  string            `json:"team"`
			Build shape.PlayerBuild `json:"build"`
		}
		builds := make([]playerBuild, 0, len(players))
		for _, p := range players {
			enriched := shape.EnrichMatchPlayers(a.catalog, []map[string]any{p})[0]
			hero, _ := enriched["hero_name"].(string)
			if hero == "" {
				hero = fmt.Sprintf("player slot %v", p["player_slot"])
			}
			team, _ := enriched["team"].(string)
			builds = append(builds, playerBuild{
				Hero:  hero,
				Team:  team,
				Build: shape.BuildForPlayer(a.catalog, p),
			})
		}
		return toolJSON("get_match_builds", map[string]any{
			"match_id": args.MatchID,
			"builds":   builds,
		})
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_match_teamfights",
		Description: "Teamfight summary for a parsed match: timing, deaths, gold swing and who died.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args matchArgs) (*mcp.CallToolResult, any, error) {
		sections, err := a.fetchMatchSections(ctx, args.MatchID)
		if err != nil {
			return toolError("get_match_teamfights", err), nil, nil
		}
		fights, ok := sections["teamfights"].([]any)
		if !ok || len(fights) == 0 {
			return toolError("get_match_teamfights", &shape.DataError{What: "no teamfight data (match may not be parsed; try request_parse_match)"}), nil, nil
		}
		players, err := sections.MatchPlayers()
		if err != nil {
			return toolError("get_match_teamfights", err), nil, nil
		}
		return toolJSON("get_match_teamfights", map[string]any{
			"match_id":   args.MatchID,
			"teamfights": shape.FormatTeamfights(a.catalog, fights, players),
		})
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_match_objectives",
		Description: "Objective timeline for a match: first blood, towers, Roshan, Tormentor, Aegis, couriers.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args matchArgs) (*mcp.CallToolResult, any, error) {
		sections, err := a.fetchMatchSections(ctx, args.MatchID)
		if err != nil {
			return toolError("get_match_objectives", err), nil, nil
		}
		objectives, ok := sections["objectives"].([]any)
		if !ok || len(objectives) == 0 {
			return toolError("get_match_objectives", &shape.DataError{What: "no objective data (match may not be parsed; try request_parse_match)"}), nil, nil
		}
		players, err := sections.MatchPlayers()
		if err != nil {
			players = nil
		}
		return toolJSON("get_match_objectives", map[string]any{
			"match_id":   args.MatchID,
			"objectives": shape.FormatObjectives(a.catalog, objectives, players),
		})
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "request_parse_match",
		Description: "Ask OpenDota to parse a match replay so teamfight and objective data become available.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args matchArgs) (*mcp.CallToolResult, any, error) {
		raw, err := a.client.Post(ctx, fmt.Sprintf("/request/%d", args.MatchID))
		if err != nil {
			return toolError("request_parse_match", err), nil, nil
		}
		return toolRaw(raw)
	})
}
