package shape

import (
	"testing"
)

func matchPlayersFixture() []map[string]any {
	return []map[string]any{
		{"player_slot": float64(0), "hero_id": float64(1), "personaname": "am player"},
		{"player_slot": float64(128), "hero_id": float64(86)},
	}
}

func TestFormatObjectives(t *testing.T) {
	catalog := testCatalog(t)
	players := matchPlayersFixture()

	objectives := []any{
		map[string]any{"type": "CHAT_MESSAGE_FIRSTBLOOD", "time": float64(95), "player_slot": float64(0)},
		map[string]any{"type": "CHAT_MESSAGE_ROSHAN_KILL", "time": float64(1200), "team": float64(3)},
		map[string]any{"type": "CHAT_MESSAGE_COURIER_LOST", "time": float64(600), "team": float64(2)},
		map[string]any{"type": "building_kill", "time": float64(900), "player_slot": float64(128), "key": "npc_dota_goodguys_tower1_mid"},
		map[string]any{"type": "CHAT_MESSAGE_AEGIS", "time": float64(1210), "player_slot": float64(128)},
		map[string]any{"type": "SOME_FUTURE_EVENT", "time": float64(100)},
	}

	events := FormatObjectives(catalog, objectives, players)
	if len(events) != len(objectives) {
		t.Fatalf("len(events) = %d, want %d", len(events), len(objectives))
	}

	fb := events[0]
	if fb.Team != "radiant" || fb.Time != "01:35" {
		t.Errorf("first blood = %+v", fb)
	}

	rosh := events[1]
	if rosh.Team != "dire" {
		t.Errorf("roshan team = %q, want dire (team number 3)", rosh.Team)
	}

	courier := events[2]
	if courier.Team != "radiant" {
		t.Errorf("courier loser = %q, want radiant (team number 2)", courier.Team)
	}

	tower := events[3]
	if tower.Team != "dire" {
		t.Errorf("building kill team = %q, want dire (slot 128)", tower.Team)
	}

	aegis := events[4]
	if aegis.Team != "dire" {
		t.Errorf("aegis team = %q", aegis.Team)
	}

	// Unknown types pass through generically instead of failing.
	unknown := events[5]
	if unknown.Type != "SOME_FUTURE_EVENT" || unknown.Description == "" {
		t.Errorf("unknown event = %+v", unknown)
	}
}

func TestFormatTeamfights(t *testing.T) {
	catalog := testCatalog(t)
	players := matchPlayersFixture()

	fights := []any{
		map[string]any{
			"start": float64(600), "end": float64(660), "deaths": float64(3),
			"players": []any{
				map[string]any{"gold_delta": float64(800), "deaths": float64(0)},
				map[string]any{"gold_delta": float64(-200), "deaths": float64(1)},
			},
		},
	}

	out := FormatTeamfights(catalog, fights, players)
	if len(out) != 1 {
		t.Fatalf("len = %d", len(out))
	}
	tf := out[0]
	if tf.Start != "10:00" || tf.End != "11:00" || tf.Deaths != 3 {
		t.Errorf("teamfight = %+v", tf)
	}
	// Radiant +800, dire -(-200) => swing +1000 favoring radiant.
	if tf.GoldSwing != 1000 {
		t.Errorf("GoldSwing = %d, want 1000", tf.GoldSwing)
	}
	if len(tf.DeadHeroes) != 1 || tf.DeadHeroes[0] != "Rubick" {
		t.Errorf("DeadHeroes = %v, want [Rubick]", tf.DeadHeroes)
	}
}

func TestFormatRankTier(t *testing.T) {
	cases := map[int]string{
		63: "Ancient 3",
		11: "Herald 1",
		55: "Legend 5",
		59: "Legend 5", // stars cap at 5
		80: "Immortal",
		85: "Immortal", // Immortal never shows stars
		0:  "Unranked",
		95: "Unranked",
		70: "Divine",
	}
	for tier, want := range cases {
		if got := FormatRankTier(tier); got != want {
			t.Errorf("FormatRankTier(%d) = %q, want %q", tier, got, want)
		}
	}
}

func TestWinRate(t *testing.T) {
	if got := WinRate(60, 40); got != "60.00%" {
		t.Errorf("WinRate(60,40) = %q", got)
	}
	if got := WinRate(0, 0); got != "" {
		t.Errorf("WinRate(0,0) = %q, want empty", got)
	}
	if got := WinRate(1, 2); got != "33.33%" {
		t.Errorf("WinRate(1,2) = %q", got)
	}
}
