package resolve

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

const statFieldCutoff = 0.6

// statFields maps every accepted spelling of a statistical field to the
// canonical name used by the histograms and records endpoints.
var statFields = map[string]string{
	// Combat.
	"kills": "kills",
	"deaths": "deaths", "death": "deaths",
	"assists": "assists", "assist": "assists",
	"kda": "kills", // closest canonical bucket

	// Damage and healing.
	"hero_damage": "hero_damage", "herodamage": "hero_damage", "damage": "hero_damage",
	"hero_healing": "hero_healing", "herohealing": "hero_healing", "healing": "hero_healing",

	// Economy.
	"gold_per_min": "gold_per_min", "gpm": "gold_per_min", "goldpermin": "gold_per_min",
	"xp_per_min": "xp_per_min", "xpm": "xp_per_min", "exppermin": "xp_per_min",
	"last_hits": "last_hits", "lasthits": "last_hits", "cs": "last_hits", "creep score": "last_hits",

	// Performance.
	"lane_efficiency_pct": "lane_efficiency_pct", "laneefficiency": "lane_efficiency_pct",
	"lane efficiency": "lane_efficiency_pct",
	"actions_per_min": "actions_per_min", "apm": "actions_per_min", "actionspermin": "actions_per_min",

	// Game stats.
	"level": "level", "lvl": "level",
	"pings": "pings", "ping": "pings",
	"duration": "duration", "game duration": "duration", "match duration": "duration",

	// Outcome types.
	"comeback": "comeback", "comebacks": "comeback",
	"stomp": "stomp", "stomps": "stomp",
	"loss": "loss", "losses": "loss", "lose": "loss",
}

// ResolveStatField maps a loosely-spelled stat field to its canonical
// name: exact lookups over three spellings of the normalized input, then
// a fuzzy closest-match pass at cutoff 0.6.
func ResolveStatField(field string) (string, error) {
	if strings.TrimSpace(field) == "" {
		return "", fmt.Errorf("stat field cannot be empty")
	}

	normalized := strings.ToLower(strings.TrimSpace(field))
	normalized = strings.ReplaceAll(normalized, "_", " ")
	normalized = strings.ReplaceAll(normalized, "-", " ")
	normalized = strings.Join(strings.Fields(normalized), " ")

	for _, key := range []string{
		strings.ReplaceAll(normalized, " ", "_"),
		strings.ReplaceAll(normalized, " ", ""),
		normalized,
	} {
		if canonical, ok := statFields[key]; ok {
			slog.Debug("resolved stat field", "input", field, "canonical", canonical)
			return canonical, nil
		}
	}

	keys := make([]string, 0, len(statFields))
	for k := range statFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if close := closestMatches(normalized, keys, statFieldCutoff, 3); len(close) > 0 {
		canonical := statFields[close[0]]
		slog.Warn("stat field fuzzy matched", "input", field, "via", close[0], "canonical", canonical)
		return canonical, nil
	}

	return "", &NotFoundError{Kind: "stat field", Input: field, Suggestions: CanonicalStatFields(10)}
}

// CanonicalStatFields returns up to n distinct canonical field names,
// sorted, for error messages and tool docs.
func CanonicalStatFields(n int) []string {
	seen := map[string]bool{}
	for _, v := range statFields {
		seen[v] = true
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
