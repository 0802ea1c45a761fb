package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hkaanengin/opendota-mcp-server/internal/resolve"
	"github.com/hkaanengin/opendota-mcp-server/internal/shape"
)

type playerArgs struct {
	PlayerName string `json:"player_name" jsonschema:"Player nickname or numeric account ID"`
}

type playerFilterArgs struct {
	PlayerName string `json:"player_name" jsonschema:"Player nickname or numeric account ID"`
	matchFilters
}

type histogramArgs struct {
	PlayerName string `json:"player_name" jsonschema:"Player nickname or numeric account ID"`
	Field      string `json:"field" jsonschema:"Stat to bucket by, e.g. gpm, xpm, kills, last_hits. Fuzzy matched."`
	matchFilters
}

type recentMatchesArgs struct {
	PlayerName string `json:"player_name" jsonschema:"Player nickname or numeric account ID"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Number of recent matches to return (default 10, max 20)"`
}

// resolvePlayerArg maps the user-facing player field to an account ID.
func (a *app) resolvePlayerArg(ctx context.Context, player string) (string, error) {
	if player == "" {
		return "", &resolve.NotFoundError{Kind: "player", Input: player}
	}
	if _, err := strconv.Atoi(player); err == nil {
		return player, nil
	}
	return a.players.AccountID(ctx, player)
}

func registerPlayerTools(srv *mcp.Server, a *app, registry *[]toolInfo) {
	addTool(srv, registry, &mcp.Tool{
		Name:        "get_player_info",
		Description: "A player's profile: rank, win/loss record, win rate and most played heroes.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args playerArgs) (*mcp.CallToolResult, any, error) {
		accountID, err := a.resolvePlayerArg(ctx, args.PlayerName)
		if err != nil {
			return toolError("get_player_info", err), nil, nil
		}
		summary, err := a.playerSummary(ctx, accountID)
		if err != nil {
			return toolError("get_player_info", err), nil, nil
		}
		return toolJSON("get_player_info", summary)
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_player_win_loss",
		Description: "Win/loss record for a player, optionally filtered by hero, lane, teammates or opponents.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args playerFilterArgs) (*mcp.CallToolResult, any, error) {
		accountID, err := a.resolvePlayerArg(ctx, args.PlayerName)
		if err != nil {
			return toolError("get_player_win_loss", err), nil, nil
		}
		params, err := a.queryParams(ctx, args.matchFilters)
		if err != nil {
			return toolError("get_player_win_loss", err), nil, nil
		}
		var wl struct {
			Win  int `json:"win"`
			Lose int `json:"lose"`
		}
		if err := a.client.GetJSON(ctx, "/players/"+accountID+"/wl", params, &wl); err != nil {
			return toolError("get_player_win_loss", err), nil, nil
		}
		return toolJSON("get_player_win_loss", map[string]any{
			"account_id": accountID,
			"win":        wl.Win,
			"lose":       wl.Lose,
			"win_rate":   shape.WinRate(wl.Win, wl.Lose),
		})
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_heroes_played",
		Description: "Per-hero games, wins and win rates for a player, heroes resolved to names.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args playerFilterArgs) (*mcp.CallToolResult, any, error) {
		accountID, err := a.resolvePlayerArg(ctx, args.PlayerName)
		if err != nil {
			return toolError("get_heroes_played", err), nil, nil
		}
		params, err := a.queryParams(ctx, args.matchFilters)
		if err != nil {
			return toolError("get_heroes_played", err), nil, nil
		}
		var rows []map[string]any
		if err := a.client.GetJSON(ctx, "/players/"+accountID+"/heroes", params, &rows); err != nil {
			return toolError("get_heroes_played", err), nil, nil
		}
		for _, row := range rows {
			// hero_id comes back as a string on this endpoint.
			if s, ok := row["hero_id"].(string); ok {
				if id, err := strconv.Atoi(s); err == nil {
					row["hero_name"] = a.heroNameFor(id)
				}
			} else if f, ok := row["hero_id"].(float64); ok {
				row["hero_name"] = a.heroNameFor(int(f))
			}
		}
		return toolJSON("get_heroes_played", map[string]any{
			"account_id": accountID,
			"heroes":     rows,
		})
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_player_peers",
		Description: "Players this player queues with most, with shared games and win rates.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args playerFilterArgs) (*mcp.CallToolResult, any, error) {
		accountID, err := a.resolvePlayerArg(ctx, args.PlayerName)
		if err != nil {
			return toolError("get_player_peers", err), nil, nil
		}
		params, err := a.queryParams(ctx, args.matchFilters)
		if err != nil {
			return toolError("get_player_peers", err), nil, nil
		}
		var peers []map[string]any
		if err := a.client.GetJSON(ctx, "/players/"+accountID+"/peers", params, &peers); err != nil {
			return toolError("get_player_peers", err), nil, nil
		}
		for _, p := range peers {
			if games, ok := p["games"].(float64); ok {
				if wins, ok := p["with_win"].(float64); ok {
					p["with_win_rate"] = shape.WinRate(int(wins), int(games)-int(wins))
				}
			}
		}
		return toolJSON("get_player_peers", map[string]any{
			"account_id": accountID,
			"peers":      peers,
		})
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_player_totals",
		Description: "Lifetime stat totals for a player (kills, deaths, gold, last hits, ...), with filters.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args playerFilterArgs) (*mcp.CallToolResult, any, error) {
		accountID, err := a.resolvePlayerArg(ctx, args.PlayerName)
		if err != nil {
			return toolError("get_player_totals", err), nil, nil
		}
		params, err := a.queryParams(ctx, args.matchFilters)
		if err != nil {
			return toolError("get_player_totals", err), nil, nil
		}
		var totals json.RawMessage
		if err := a.client.GetJSON(ctx, "/players/"+accountID+"/totals", params, &totals); err != nil {
			return toolError("get_player_totals", err), nil, nil
		}
		return toolJSON("get_player_totals", map[string]any{
			"account_id":    accountID,
			"player_totals": totals,
		})
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_player_histograms",
		Description: "Distribution of a single stat (gpm, kills, ...) across a player's matches.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args histogramArgs) (*mcp.CallToolResult, any, error) {
		accountID, err := a.resolvePlayerArg(ctx, args.PlayerName)
		if err != nil {
			return toolError("get_player_histograms", err), nil, nil
		}
		field, err := resolve.ResolveStatField(args.Field)
		if err != nil {
			return toolError("get_player_histograms", err), nil, nil
		}
		params, err := a.queryParams(ctx, args.matchFilters)
		if err != nil {
			return toolError("get_player_histograms", err), nil, nil
		}
		var histograms json.RawMessage
		endpoint := fmt.Sprintf("/players/%s/histograms/%s", accountID, field)
		if err := a.client.GetJSON(ctx, endpoint, params, &histograms); err != nil {
			return toolError("get_player_histograms", err), nil, nil
		}
		return toolJSON("get_player_histograms", map[string]any{
			"account_id": accountID,
			"field":      field,
			"histograms": histograms,
		})
	})

	addTool(srv, registry, &mcp.Tool{
		Name:        "get_player_recent_matches",
		Description: "A player's most recent matches with hero names, result and duration.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args recentMatchesArgs) (*mcp.CallToolResult, any, error) {
		accountID, err := a.resolvePlayerArg(ctx, args.PlayerName)
		if err != nil {
			return toolError("get_player_recent_matches", err), nil, nil
		}
		limit := args.Limit
		if limit <= 0 {
			limit = 10
		}
		if limit > 20 {
			limit = 20
		}
		var matches []map[string]any
		if err := a.client.GetJSON(ctx, "/players/"+accountID+"/recentMatches", nil, &matches); err != nil {
			return toolError("get_player_recent_matches", err), nil, nil
		}
		if len(matches) > limit {
			matches = matches[:limit]
		}
		for _, m := range matches {
			if f, ok := m["hero_id"].(float64); ok {
				m["hero_name"] = a.heroNameFor(int(f))
			}
			if d, ok := m["duration"].(float64); ok {
				m["duration_formatted"] = shape.FormatGameTime(int(d))
			}
		}
		return toolJSON("get_player_recent_matches", map[string]any{
			"account_id": accountID,
			"matches":    matches,
		})
	})
}

// playerSummary assembles the profile, win/loss record and favorite
// heroes behind get_player_info. Three upstream calls per invocation.
func (a *app) playerSummary(ctx context.Context, accountID string) (*shape.PlayerSummary, error) {
	var profile struct {
		RankTier int `json:"rank_tier"`
		Profile  struct {
			PersonaName string `json:"personaname"`
			AvatarFull  string `json:"avatarfull"`
			ProfileURL  string `json:"profileurl"`
		} `json:"profile"`
	}
	if err := a.client.GetJSON(ctx, "/players/"+accountID, nil, &profile); err != nil {
		return nil, err
	}

	var wl struct {
		Win  int `json:"win"`
		Lose int `json:"lose"`
	}
	if err := a.client.GetJSON(ctx, "/players/"+accountID+"/wl", nil, &wl); err != nil {
		return nil, err
	}

	var heroes []struct {
		HeroID string `json:"hero_id"`
		Games  int    `json:"games"`
	}
	if err := a.client.GetJSON(ctx, "/players/"+accountID+"/heroes", url.Values{"limit": []string{"5"}}, &heroes); err != nil {
		return nil, err
	}
	sort.SliceStable(heroes, func(i, j int) bool { return heroes[i].Games > heroes[j].Games })
	if len(heroes) > 5 {
		heroes = heroes[:5]
	}
	ids := make([]int, 0, len(heroes))
	for _, h := range heroes {
		if id, err := strconv.Atoi(h.HeroID); err == nil {
			ids = append(ids, id)
		}
	}

	summary := &shape.PlayerSummary{
		AccountID:   accountID,
		PersonaName: profile.Profile.PersonaName,
		AvatarFull:  profile.Profile.AvatarFull,
		ProfileURL:  profile.Profile.ProfileURL,
		Rank:        shape.FormatRankTier(profile.RankTier),
		FavHeroes:   shape.HeroNames(a.catalog, ids),
	}
	summary.SetWinLoss(wl.Win, wl.Lose)
	return summary, nil
}
