package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hkaanengin/opendota-mcp-server/internal/config"
	"github.com/hkaanengin/opendota-mcp-server/internal/opendota"
	"github.com/hkaanengin/opendota-mcp-server/internal/players"
	"github.com/hkaanengin/opendota-mcp-server/internal/refdata"
	"github.com/hkaanengin/opendota-mcp-server/internal/resolve"
	"github.com/hkaanengin/opendota-mcp-server/internal/shape"
)

// app bundles the shared dependencies every tool handler needs.
type app struct {
	cfg     *config.Config
	catalog *refdata.Catalog
	client  *opendota.Client
	heroes  *resolve.HeroResolver
	players *players.Directory
}

func newApp(cfg *config.Config, catalog *refdata.Catalog, client *opendota.Client) *app {
	a := &app{
		cfg:     cfg,
		catalog: catalog,
		client:  client,
		players: players.NewDirectory(client, cfg.PlayerCache),
	}
	a.heroes = resolve.NewHeroResolver(catalog)
	a.heroes.Fallback = a.fetchHeroes
	return a
}

// fetchHeroes backs the resolver when no local hero constants are available.
func (a *app) fetchHeroes(ctx context.Context) ([]refdata.Hero, error) {
	raw, err := a.client.Get(ctx, "/heroes", nil)
	if err != nil {
		return nil, err
	}
	var heroes []refdata.Hero
	if err := json.Unmarshal(raw, &heroes); err != nil {
		return nil, fmt.Errorf("decode /heroes: %w", err)
	}
	return heroes, nil
}

// matchFilters are the optional query filters shared by the player
// aggregate endpoints. Hero and account fields accept names as well as
// numeric IDs; everything is resolved before it reaches the wire.
type matchFilters struct {
	Limit             int      `json:"limit,omitempty" jsonschema:"Number of matches to consider (0 means all)"`
	Offset            int      `json:"offset,omitempty" jsonschema:"Number of most recent matches to skip"`
	LaneRole          string   `json:"lane_role,omitempty" jsonschema:"Lane filter: 1-4 or a name like mid, safe lane, offlane, jungle"`
	HeroID            string   `json:"hero_id,omitempty" jsonschema:"Only matches where the player played this hero (ID or name)"`
	IncludedAccountID []string `json:"included_account_id,omitempty" jsonschema:"Only matches with these players present (names or account IDs)"`
	ExcludedAccountID []string `json:"excluded_account_id,omitempty" jsonschema:"Only matches without these players (names or account IDs)"`
	WithHeroID        []string `json:"with_hero_id,omitempty" jsonschema:"Only matches with these heroes on the player's team (IDs or names)"`
	AgainstHeroID     []string `json:"against_hero_id,omitempty" jsonschema:"Only matches with these heroes on the enemy team (IDs or names)"`
	Having            int      `json:"having,omitempty" jsonschema:"Minimum number of games (for aggregations that support it)"`
}

// queryParams resolves every filter to its numeric form and builds the
// upstream query string. Multi-valued filters repeat the key.
func (a *app) queryParams(ctx context.Context, f matchFilters) (url.Values, error) {
	params := url.Values{}
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		params.Set("offset", strconv.Itoa(f.Offset))
	}
	if f.Having > 0 {
		params.Set("having", strconv.Itoa(f.Having))
	}
	if f.LaneRole != "" {
		lane, ok, err := resolve.ResolveLane(resolve.ParseRef(f.LaneRole))
		if err != nil {
			return nil, err
		}
		if ok {
			params.Set("lane_role", strconv.Itoa(lane))
		}
	}
	if f.HeroID != "" {
		id, ok, err := a.heroes.Resolve(ctx, resolve.ParseRef(f.HeroID))
		if err != nil {
			return nil, err
		}
		if ok {
			params.Set("hero_id", strconv.Itoa(id))
		}
	}
	heroLists := []struct {
		key  string
		refs []string
	}{
		{"with_hero_id", f.WithHeroID},
		{"against_hero_id", f.AgainstHeroID},
	}
	for _, hl := range heroLists {
		ids, err := a.heroes.ResolveList(ctx, resolve.ParseRefs(hl.refs))
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			params.Add(hl.key, strconv.Itoa(id))
		}
	}
	accountLists := []struct {
		key  string
		refs []string
	}{
		{"included_account_id", f.IncludedAccountID},
		{"excluded_account_id", f.ExcludedAccountID},
	}
	for _, al := range accountLists {
		ids, err := a.players.ResolveList(ctx, al.refs)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			params.Add(al.key, id)
		}
	}
	return params, nil
}

// fetchMatchSections pulls a match and splits it into its named sections.
func (a *app) fetchMatchSections(ctx context.Context, matchID int64) (shape.Sections, error) {
	raw, err := a.client.Get(ctx, fmt.Sprintf("/matches/%d", matchID), nil)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode match %d: %w", matchID, err)
	}
	return shape.ExtractSections(payload)
}

// heroNameFor maps a hero ID to its localized name, with a stable
// placeholder when the catalog has no entry.
func (a *app) heroNameFor(id int) string {
	if name := a.catalog.HeroName(id); name != "" {
		return name
	}
	return fmt.Sprintf("hero_%d", id)
}
