package main

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hkaanengin/opendota-mcp-server/internal/resolve"
)

type heroNameArgs struct {
	HeroName string `json:"hero_name" jsonschema:"Hero name, e.g. Rubick. Typos and partial names are matched fuzzily."`
}

type heroIDArgs struct {
	HeroID int `json:"hero_id" jsonschema:"Numeric hero ID, e.g. 86"`
}

type heroSearchArgs struct {
	Query string `json:"query" jsonschema:"Substring to search hero names and roles for, e.g. 'mag' or 'support'"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of heroes to return (default 10)"`
}

type laneNameArgs struct {
	LaneName string `json:"lane_name" jsonschema:"Lane name or number: mid, safe lane, offlane, jungle, pos 1-5"`
}

type itemNameArgs struct {
	ItemName string `json:"item_name" jsonschema:"Item name, alias or slug, e.g. 'bkb', 'Battle Fury' or 'blink'"`
}

func registerLookupTools(srv *mcp.Server, a *app, registry *[]toolInfo) {
	addTool(srv, registry, &mcp.Tool{
		Name:        "get_hero_id_by_name",
		Description: "Resolve a hero name (fuzzy, typo-tolerant) to its numeric hero ID with a confidence rating.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args heroNameArgs) (*mcp.CallToolResult, any, error) {
		match, err := a.heroes.Match(ctx, args.HeroName)
		if err != nil {
			var nf *resolve.NotFoundError
			if errors.As(err, &nf) {
				return toolJSON("get_hero_id_by_name", map[string]any{
					"error":       nf.Error(),
					"suggestions": nf.Suggestions,
				})
			}
			return toolError("get_hero_id_by_name", err), nil, nil
		}
		return toolJSON("get_hero_id_by_name", match)
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_hero_by_id",
		Description: "Look up a hero's name, attributes and roles by numeric hero ID.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args heroIDArgs) (*mcp.CallToolResult, any, error) {
		h, ok := a.catalog.HeroByID(args.HeroID)
		if !ok && !a.catalog.HasHeroes() {
			// Degraded start without local constants: consult the API.
			if heroes, err := a.fetchHeroes(ctx); err == nil {
				for _, fh := range heroes {
					if fh.ID == args.HeroID {
						h, ok = fh, true
						break
					}
				}
			}
		}
		if !ok {
			return toolError("get_hero_by_id", &resolve.NotFoundError{Kind: "hero", Input: strconv.Itoa(args.HeroID)}), nil, nil
		}
		return toolJSON("get_hero_by_id", map[string]any{
			"id":             h.ID,
			"localized_name": h.LocalizedName,
			"primary_attr":   h.PrimaryAttr,
			"attack_type":    h.AttackType,
			"roles":          h.Roles,
		})
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "search_heroes",
		Description: "Search heroes by name or role substring. Returns matching heroes with IDs and attributes.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args heroSearchArgs) (*mcp.CallToolResult, any, error) {
		limit := args.Limit
		if limit <= 0 {
			limit = 10
		}
		heroes, err := a.heroes.Search(ctx, args.Query, limit)
		if err != nil {
			return toolError("search_heroes", err), nil, nil
		}
		type hit struct {
			ID            int      `json:"id"`
			LocalizedName string   `json:"localized_name"`
			PrimaryAttr   string   `json:"primary_attr"`
			AttackType    string   `json:"attack_type"`
			Roles         []string `json:"roles"`
		}
		hits := make([]hit, 0, len(heroes))
		for _, h := range heroes {
			hits = append(hits, hit{h.ID, h.LocalizedName, h.PrimaryAttr, h.AttackType, h.Roles})
		}
		return toolJSON("search_heroes", map[string]any{"query": args.Query, "heroes": hits})
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "convert_lane_name_to_id",
		Description: "Convert a lane name like 'mid' or 'safe lane' to its lane_role number (1-4).",
	}, func(_ context.Context, _ *mcp.CallToolRequest, args laneNameArgs) (*mcp.CallToolResult, any, error) {
		lane, ok, err := resolve.ResolveLane(resolve.ParseRef(args.LaneName))
		if err != nil {
			return toolError("convert_lane_name_to_id", err), nil, nil
		}
		if !ok {
			return toolError("convert_lane_name_to_id", &resolve.NotFoundError{Kind: "lane", Input: args.LaneName}), nil, nil
		}
		return toolJSON("convert_lane_name_to_id", map[string]any{
			"lane_role":   lane,
			"description": resolve.LaneDescriptions[lane],
		})
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_item_by_name",
		Description: "Resolve an item name, alias or slug (fuzzy) to its canonical item with cost and hints.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, args itemNameArgs) (*mcp.CallToolResult, any, error) {
		return a.itemByName(args.ItemName)
	})
}

// itemByName resolves a loose item name to its canonical record. An
// empty name is a lookup failure, not the resolver's null passthrough.
func (a *app) itemByName(name string) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(name) == "" {
		return toolError("get_item_by_name", &resolve.NotFoundError{Kind: "item", Input: name}), nil, nil
	}
	slug, err := resolve.ResolveItem(a.catalog, name)
	if err != nil {
		return toolError("get_item_by_name", err), nil, nil
	}
	out := map[string]any{
		"item":         slug,
		"display_name": resolve.FormatItemName(slug),
	}
	if item, ok := a.catalog.Item(slug); ok {
		if item.DisplayName != "" {
			out["display_name"] = item.DisplayName
		}
		out["cost"] = item.Cost
		if len(item.Hint) > 0 {
			out["hint"] = item.Hint
		}
	}
	return toolJSON("get_item_by_name", out)
}
