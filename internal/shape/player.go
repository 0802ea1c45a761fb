package shape

import (
	"fmt"

	"github.com/hkaanengin/opendota-mcp-server/internal/refdata"
)

// PlayerSummary is the enriched profile a player tool returns: profile
// fields, win/loss with a computed rate, and favorite heroes by name.
type PlayerSummary struct {
	AccountID   string   `json:"account_id"`
	PersonaName string   `json:"personaname,omitempty"`
	AvatarFull  string   `json:"avatarfull,omitempty"`
	ProfileURL  string   `json:"profileurl,omitempty"`
	Rank        string   `json:"rank,omitempty"`
	WinCount    int      `json:"win_count"`
	LoseCount   int      `json:"lose_count"`
	WinRate     string   `json:"win_rate,omitempty"`
	FavHeroes   []string `json:"fav_heroes,omitempty"`
}

// SetWinLoss records the counts and derives the percentage string.
func (p *PlayerSummary) SetWinLoss(win, lose int) {
	p.WinCount = win
	p.LoseCount = lose
	p.WinRate = WinRate(win, lose)
}

// WinRate renders wins over total as a percentage with two decimals, or
// "" when no games were played.
func WinRate(win, lose int) string {
	total := win + lose
	if total == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f%%", float64(win)/float64(total)*100)
}

// HeroNames maps hero IDs to display names using the catalog, keeping the
// numeric form for IDs the catalog does not know. Pure in-memory mapping,
// no I/O.
func HeroNames(catalog *refdata.Catalog, ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name := catalog.HeroName(id); name != "" {
			names = append(names, name)
			continue
		}
		names = append(names, fmt.Sprintf("hero_%d", id))
	}
	return names
}

// EnrichMatchPlayers copies each raw player object and adds hero_name and
// team attribution; the upstream fields stay untouched.
func EnrichMatchPlayers(catalog *refdata.Catalog, players []map[string]any) []map[string]any {
	out := make([]map[string]any, 0, len(players))
	for _, p := range players {
		enriched := make(map[string]any, len(p)+2)
		for k, v := range p {
			enriched[k] = v
		}
		if name := catalog.HeroName(intField(p, "hero_id")); name != "" {
			enriched["hero_name"] = name
		}
		enriched["team"] = teamForSlot(intField(p, "player_slot"))
		out = append(out, enriched)
	}
	return out
}
