package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hkaanengin/opendota-mcp-server/internal/config"
	"github.com/hkaanengin/opendota-mcp-server/internal/opendota"
	"github.com/hkaanengin/opendota-mcp-server/internal/ratelimit"
	"github.com/hkaanengin/opendota-mcp-server/internal/refdata"
	"github.com/hkaanengin/opendota-mcp-server/internal/resolve"
)

func writeJSON(t *testing.T, dir, name string, v any) {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
		t.Fatal(err)
	}
}

func testCatalog(t *testing.T) *refdata.Catalog {
	t.Helper()
	dir := t.TempDir()
	writeJSON(t, dir, "heroes.json", map[string]any{
		"1":  map[string]any{"id": 1, "localized_name": "Anti-Mage", "primary_attr": "agi", "attack_type": "Melee", "roles": []string{"Carry"}},
		"86": map[string]any{"id": 86, "localized_name": "Rubick", "primary_attr": "all", "attack_type": "Ranged", "roles": []string{"Support"}},
	})
	writeJSON(t, dir, "items.json", map[string]any{
		"blink": map[string]any{"dname": "Blink Dagger", "cost": 2250},
	})
	writeJSON(t, dir, "item_ids.json", map[string]string{"1": "blink"})
	return refdata.Load(dir)
}

// testApp wires an app against a local HTTP stub standing in for the
// OpenDota API.
func testApp(t *testing.T, handler http.HandlerFunc) *app {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	cfg := &config.Config{
		BaseURL:        ts.URL,
		RateLimitRPM:   1000,
		ConnectTimeout: 2 * time.Second,
		ReadTimeout:    2 * time.Second,
	}
	client := opendota.NewClient(cfg, ratelimit.New(cfg.RateLimitRPM))
	t.Cleanup(client.Close)
	return newApp(cfg, testCatalog(t), client)
}

func textPayload(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected single content block, got %d", len(res.Content))
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", res.Content[0])
	}
	return tc.Text
}

func TestToolErrorPayload(t *testing.T) {
	res := toolError("get_hero_lore", errors.New("no lore available for Rubick"))
	if !res.IsError {
		t.Fatal("expected IsError")
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(textPayload(t, res)), &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload["error"] != "no lore available for Rubick" {
		t.Fatalf("unexpected error payload: %q", payload["error"])
	}
}

func TestToolErrorCarriesSuggestions(t *testing.T) {
	res := toolError("get_hero_id_by_name", &resolve.NotFoundError{
		Kind:        "hero",
		Input:       "ruubick",
		Suggestions: []string{"Rubick"},
	})
	var payload map[string]string
	if err := json.Unmarshal([]byte(textPayload(t, res)), &payload); err != nil {
		t.Fatal(err)
	}
	if got := payload["error"]; !strings.Contains(got, "Rubick") {
		t.Fatalf("suggestion missing from message: %q", got)
	}
}

func TestQueryParamsResolvesFilters(t *testing.T) {
	a := testApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search" {
			json.NewEncoder(w).Encode([]map[string]any{{"account_id": 111222333}})
			return
		}
		http.NotFound(w, r)
	})

	params, err := a.queryParams(context.Background(), matchFilters{
		Limit:         20,
		LaneRole:      "mid",
		HeroID:        "Rubick",
		AgainstHeroID: []string{"Anti-Mage", "86"},
		IncludedAccountID: []string{
			"somenickname",
			"70388657",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := params.Get("limit"); got != "20" {
		t.Errorf("limit = %q", got)
	}
	if got := params.Get("lane_role"); got != "2" {
		t.Errorf("lane_role = %q, want 2", got)
	}
	if got := params.Get("hero_id"); got != "86" {
		t.Errorf("hero_id = %q, want 86", got)
	}
	if got := params["against_hero_id"]; len(got) != 2 || got[0] != "1" || got[1] != "86" {
		t.Errorf("against_hero_id = %v", got)
	}
	if got := params["included_account_id"]; len(got) != 2 || got[0] != "111222333" || got[1] != "70388657" {
		t.Errorf("included_account_id = %v", got)
	}
}

func TestQueryParamsRejectsBadLane(t *testing.T) {
	a := testApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	_, err := a.queryParams(context.Background(), matchFilters{LaneRole: "6"})
	var re *resolve.RangeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RangeError, got %v", err)
	}
}

func TestResolveHeroArg(t *testing.T) {
	a := testApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	ctx := context.Background()

	id, err := a.resolveHeroArg(ctx, "rubik")
	if err != nil {
		t.Fatal(err)
	}
	if id != 86 {
		t.Fatalf("id = %d, want 86", id)
	}

	if _, err := a.resolveHeroArg(ctx, ""); err == nil {
		t.Fatal("expected error for empty hero")
	}
}

func TestPlayerSummaryAssembly(t *testing.T) {
	a := testApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/players/70388657":
			json.NewEncoder(w).Encode(map[string]any{
				"rank_tier": 63,
				"profile": map[string]any{
					"personaname": "kürlo",
					"profileurl":  "https://steamcommunity.com/id/kurlo/",
				},
			})
		case "/players/70388657/wl":
			json.NewEncoder(w).Encode(map[string]int{"win": 60, "lose": 40})
		case "/players/70388657/heroes":
			json.NewEncoder(w).Encode([]map[string]any{
				{"hero_id": "86", "games": 120},
				{"hero_id": "1", "games": 80},
			})
		default:
			http.NotFound(w, r)
		}
	})

	summary, err := a.playerSummary(context.Background(), "70388657")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Rank != "Ancient 3" {
		t.Errorf("rank = %q", summary.Rank)
	}
	if summary.WinRate != "60.00%" {
		t.Errorf("win rate = %q", summary.WinRate)
	}
	if len(summary.FavHeroes) != 2 || summary.FavHeroes[0] != "Rubick" {
		t.Errorf("fav heroes = %v", summary.FavHeroes)
	}
}

func TestItemByNameRejectsEmptyInput(t *testing.T) {
	a := testApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	for _, name := range []string{"", "   "} {
		res, _, err := a.itemByName(name)
		if err != nil {
			t.Fatal(err)
		}
		if !res.IsError {
			t.Fatalf("itemByName(%q) succeeded: %s", name, textPayload(t, res))
		}
		var payload map[string]string
		if err := json.Unmarshal([]byte(textPayload(t, res)), &payload); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(payload["error"], "not found") {
			t.Errorf("itemByName(%q) error = %q", name, payload["error"])
		}
	}
}

func TestItemByNameResolvesKnownItem(t *testing.T) {
	a := testApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	res, _, err := a.itemByName("blink dagger")
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected error: %s", textPayload(t, res))
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(textPayload(t, res)), &payload); err != nil {
		t.Fatal(err)
	}
	if payload["item"] != "blink" || payload["display_name"] != "Blink Dagger" {
		t.Errorf("payload = %v", payload)
	}
}

func TestRegistryListsEveryTool(t *testing.T) {
	a := testApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0.0.0"}, nil)
	registry := make([]toolInfo, 0, 32)
	registerHeroTools(server, a, &registry)
	registerLookupTools(server, a, &registry)
	registerPlayerTools(server, a, &registry)
	registerMatchTools(server, a, &registry)
	registerMiscTools(server, a, &registry)

	want := []string{
		"get_heroes", "get_hero_stats", "get_hero_matchups", "get_hero_item_popularity",
		"get_hero_lore", "get_aghanim_description",
		"get_hero_id_by_name", "get_hero_by_id", "search_heroes", "convert_lane_name_to_id", "get_item_by_name",
		"get_player_info", "get_player_win_loss", "get_heroes_played", "get_player_peers",
		"get_player_totals", "get_player_histograms", "get_player_recent_matches",
		"get_match_details", "get_match_builds", "get_match_teamfights", "get_match_objectives",
		"request_parse_match",
		"get_benchmarks", "get_records", "get_scenarios_lane_roles",
	}
	have := make(map[string]bool, len(registry))
	for _, ti := range registry {
		if ti.Description == "" {
			t.Errorf("tool %s has no description", ti.Name)
		}
		have[ti.Name] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("tool %s not registered", name)
		}
	}
	if len(registry) != len(want) {
		t.Errorf("registered %d tools, want %d", len(registry), len(want))
	}
}
