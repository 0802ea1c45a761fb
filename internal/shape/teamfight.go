package shape

import (
	"fmt"
	"log/slog"

	"github.com/hkaanengin/opendota-mcp-server/internal/refdata"
)

// Event is one human-readable objective or teamfight moment.
type Event struct {
	Time        string `json:"time"`
	Team        string `json:"team,omitempty"` // "radiant" or "dire"
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Radiant player slots are 0-127; dire slots are 128-255.
const direSlotStart = 128

func teamForSlot(slot int) string {
	if slot < direSlotStart {
		return "radiant"
	}
	return "dire"
}

// teamForNumber maps the explicit team field some event types carry
// (2 = radiant, 3 = dire in replay data).
func teamForNumber(team int) string {
	switch team {
	case 2:
		return "radiant"
	case 3:
		return "dire"
	}
	return ""
}

// FormatObjectives turns the raw objectives section into readable events.
// Known event types get a description and team attribution; unknown types
// pass through generically rather than failing the whole match.
func FormatObjectives(catalog *refdata.Catalog, objectives []any, players []map[string]any) []Event {
	events := make([]Event, 0, len(objectives))
	for _, o := range objectives {
		obj, ok := o.(map[string]any)
		if !ok {
			continue
		}
		events = append(events, formatObjective(catalog, obj, players))
	}
	return events
}

func formatObjective(catalog *refdata.Catalog, obj map[string]any, players []map[string]any) Event {
	kind, _ := obj["type"].(string)
	ev := Event{
		Time: FormatGameTime(intField(obj, "time")),
		Type: kind,
	}

	switch kind {
	case "CHAT_MESSAGE_FIRSTBLOOD":
		slot := intField(obj, "player_slot")
		ev.Team = teamForSlot(slot)
		ev.Description = fmt.Sprintf("First blood drawn by %s", playerLabel(catalog, players, slot))
	case "CHAT_MESSAGE_COURIER_LOST":
		// team field names the loser.
		loser := teamForNumber(intField(obj, "team"))
		ev.Team = loser
		ev.Description = fmt.Sprintf("The %s courier was killed", loser)
	case "building_kill":
		slot := intField(obj, "player_slot")
		ev.Team = teamForSlot(slot)
		ev.Description = fmt.Sprintf("Building destroyed: %s", buildingName(obj))
	case "CHAT_MESSAGE_ROSHAN_KILL":
		ev.Team = teamForNumber(intField(obj, "team"))
		ev.Description = fmt.Sprintf("Roshan killed by the %s", ev.Team)
	case "CHAT_MESSAGE_MINIBOSS_KILL":
		ev.Team = teamForNumber(intField(obj, "team"))
		ev.Description = fmt.Sprintf("Tormentor killed by the %s", ev.Team)
	case "CHAT_MESSAGE_AEGIS":
		slot := intField(obj, "player_slot")
		ev.Team = teamForSlot(slot)
		ev.Description = fmt.Sprintf("Aegis picked up by %s", playerLabel(catalog, players, slot))
	case "CHAT_MESSAGE_AEGIS_STOLEN":
		slot := intField(obj, "player_slot")
		ev.Team = teamForSlot(slot)
		ev.Description = fmt.Sprintf("Aegis stolen by %s", playerLabel(catalog, players, slot))
	case "CHAT_MESSAGE_DENIED_AEGIS":
		slot := intField(obj, "player_slot")
		ev.Team = teamForSlot(slot)
		ev.Description = fmt.Sprintf("Aegis denied by %s", playerLabel(catalog, players, slot))
	default:
		slog.Warn("unknown objective type", "type", kind)
		ev.Description = fmt.Sprintf("Unrecognized event %q", kind)
		if slot, ok := obj["player_slot"]; ok {
			ev.Team = teamForSlot(intFieldAny(slot))
		}
	}
	return ev
}

func buildingName(obj map[string]any) string {
	if key, ok := obj["key"].(string); ok && key != "" {
		return key
	}
	return "unknown building"
}

// playerLabel names the player in a slot by hero, falling back to the
// slot number when the hero is unknown.
func playerLabel(catalog *refdata.Catalog, players []map[string]any, slot int) string {
	for _, p := range players {
		if intField(p, "player_slot") != slot {
			continue
		}
		if name := catalog.HeroName(intField(p, "hero_id")); name != "" {
			return name
		}
		if persona, ok := p["personaname"].(string); ok && persona != "" {
			return persona
		}
	}
	return fmt.Sprintf("player slot %d", slot)
}

// Teamfight summarizes one fight: when it ran, what it cost, who died.
type Teamfight struct {
	Start      string   `json:"start"`
	End        string   `json:"end"`
	Deaths     int      `json:"deaths"`
	GoldSwing  int      `json:"gold_swing"` // positive favors radiant
	DeadHeroes []string `json:"dead_heroes,omitempty"`
}

// FormatTeamfights reshapes the raw teamfights section. Per-player damage
// and gold deltas are summed into a single radiant-positive swing.
func FormatTeamfights(catalog *refdata.Catalog, fights []any, players []map[string]any) []Teamfight {
	out := make([]Teamfight, 0, len(fights))
	for _, f := range fights {
		fight, ok := f.(map[string]any)
		if !ok {
			continue
		}
		tf := Teamfight{
			Start:  FormatGameTime(intField(fight, "start")),
			End:    FormatGameTime(intField(fight, "end")),
			Deaths: intField(fight, "deaths"),
		}
		perPlayer, _ := fight["players"].([]any)
		for i, pp := range perPlayer {
			stats, ok := pp.(map[string]any)
			if !ok || i >= len(players) {
				continue
			}
			delta := intField(stats, "gold_delta")
			slot := intField(players[i], "player_slot")
			if teamForSlot(slot) == "radiant" {
				tf.GoldSwing += delta
			} else {
				tf.GoldSwing -= delta
			}
			if deaths := intField(stats, "deaths"); deaths > 0 {
				if name := catalog.HeroName(intField(players[i], "hero_id")); name != "" {
					tf.DeadHeroes = append(tf.DeadHeroes, name)
				}
			}
		}
		out = append(out, tf)
	}
	return out
}

func intFieldAny(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}
