package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hkaanengin/opendota-mcp-server/internal/resolve"
	"github.com/hkaanengin/opendota-mcp-server/internal/shape"
)

type heroArgs struct {
	Hero string `json:"hero" jsonschema:"Hero name or numeric hero ID, e.g. 'Rubick' or '86'"`
}

type noArgs struct{}

// resolveHeroArg turns the user-facing hero field into a numeric ID,
// erroring when the field is empty.
func (a *app) resolveHeroArg(ctx context.Context, hero string) (int, error) {
	id, ok, err := a.heroes.Resolve(ctx, resolve.ParseRef(hero))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &resolve.NotFoundError{Kind: "hero", Input: hero}
	}
	return id, nil
}

func registerHeroTools(srv *mcp.Server, a *app, registry *[]toolInfo) {
	addTool(srv, registry, &mcp.Tool{
		Name:        "get_heroes",
		Description: "List all Dota 2 heroes with their IDs, attributes and roles.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, any, error) {
		raw, err := a.client.Get(ctx, "/heroes", nil)
		if err != nil {
			return toolError("get_heroes", err), nil, nil
		}
		var heroes any
		if err := json.Unmarshal(raw, &heroes); err != nil {
			return toolError("get_heroes", fmt.Errorf("decode /heroes: %w", err)), nil, nil
		}
		return toolJSON("get_heroes", shape.Strip(heroes, "name", "legs"))
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_hero_stats",
		Description: "Current meta statistics for every hero: pick/win counts per rank bracket, base stats.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, any, error) {
		raw, err := a.client.Get(ctx, "/heroStats", nil)
		if err != nil {
			return toolError("get_hero_stats", err), nil, nil
		}
		return toolRaw(raw)
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_hero_matchups",
		Description: "Win rates of a hero against every other hero, with opponent names resolved.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args heroArgs) (*mcp.CallToolResult, any, error) {
		id, err := a.resolveHeroArg(ctx, args.Hero)
		if err != nil {
			return toolError("get_hero_matchups", err), nil, nil
		}
		raw, err := a.client.Get(ctx, fmt.Sprintf("/heroes/%d/matchups", id), nil)
		if err != nil {
			return toolError("get_hero_matchups", err), nil, nil
		}
		var matchups []map[string]any
		if err := json.Unmarshal(raw, &matchups); err != nil {
			return toolError("get_hero_matchups", fmt.Errorf("decode matchups: %w", err)), nil, nil
		}
		for _, m := range matchups {
			if opp, ok := m["hero_id"].(float64); ok {
				m["hero_name"] = a.heroNameFor(int(opp))
			}
		}
		return toolJSON("get_hero_matchups", map[string]any{
			"hero":     a.heroNameFor(id),
			"hero_id":  id,
			"matchups": matchups,
		})
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_hero_item_popularity",
		Description: "Most popular items for a hero at each stage of the game.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args heroArgs) (*mcp.CallToolResult, any, error) {
		id, err := a.resolveHeroArg(ctx, args.Hero)
		if err != nil {
			return toolError("get_hero_item_popularity", err), nil, nil
		}
		raw, err := a.client.Get(ctx, fmt.Sprintf("/heroes/%d/itemPopularity", id), nil)
		if err != nil {
			return toolError("get_hero_item_popularity", err), nil, nil
		}
		return toolRaw(raw)
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_hero_lore",
		Description: "The in-game lore text for a hero.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args heroArgs) (*mcp.CallToolResult, any, error) {
		id, err := a.resolveHeroArg(ctx, args.Hero)
		if err != nil {
			return toolError("get_hero_lore", err), nil, nil
		}
		h, ok := a.catalog.HeroByID(id)
		if !ok {
			return toolError("get_hero_lore", &resolve.NotFoundError{Kind: "hero", Input: args.Hero}), nil, nil
		}
		lore, ok := a.catalog.LoreForHero(h)
		if !ok {
			return toolError("get_hero_lore", fmt.Errorf("no lore available for %s", h.LocalizedName)), nil, nil
		}
		return toolJSON("get_hero_lore", map[string]any{
			"hero": h.LocalizedName,
			"lore": lore,
		})
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_aghanim_description",
		Description: "A hero's Aghanim's Scepter and Shard upgrade descriptions.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args heroArgs) (*mcp.CallToolResult, any, error) {
		id, err := a.resolveHeroArg(ctx, args.Hero)
		if err != nil {
			return toolError("get_aghanim_description", err), nil, nil
		}
		entry, ok := a.catalog.AghanimForHero(id)
		if !ok {
			return toolError("get_aghanim_description", fmt.Errorf("no Aghanim data available for %s", a.heroNameFor(id))), nil, nil
		}
		return toolJSON("get_aghanim_description", entry)
	})
}
