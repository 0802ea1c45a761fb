package resolve

import (
	"sort"
	"strings"

	"github.com/hkaanengin/opendota-mcp-server/internal/refdata"
)

const itemFuzzyFloor = 0.7

// itemAliases maps internal slugs to the colloquial names players actually
// type. Checked before any catalog matching; the fuzzy pass is a safety
// net, not the primary mechanism, since short abbreviations like "bkb"
// score poorly against full names.
var itemAliases = map[string][]string{
	"black_king_bar":    {"bkb", "black king bar"},
	"battle_fury":       {"bfury", "battle fury", "battle furry"},
	"monkey_king_bar":   {"mkb", "monkey king bar"},
	"ultimate_scepter":  {"aghanims scepter", "aghanim's scepter", "aghs", "scepter", "ags"},
	"aghanims_shard":    {"aghanims shard", "aghanim's shard", "shard"},
	"manta":             {"manta style", "manta"},
	"skadi":             {"eye of skadi", "skadi"},
	"greater_crit":      {"daedalus", "greater crit"},
	"lesser_crit":       {"crystalys", "lesser crit"},
	"invis_sword":       {"shadow blade", "sb"},
	"silver_edge":       {"silver edge"},
	"sphere":            {"linkens sphere", "linken's sphere", "linkens"},
	"blink":             {"blink dagger", "blink"},
	"travel_boots":      {"boots of travel", "bot", "bots", "travels"},
	"power_treads":      {"treads", "power treads"},
	"phase_boots":       {"phase", "phase boots"},
	"arcane_boots":      {"arcanes", "arcane boots"},
	"magic_wand":        {"wand", "magic wand"},
	"hand_of_midas":     {"midas", "hand of midas"},
	"radiance":          {"radiance", "rad"},
	"heart":             {"heart of tarrasque", "heart"},
	"satanic":           {"satanic"},
	"assault":           {"assault cuirass", "ac"},
	"shivas_guard":      {"shivas", "shiva's guard", "shivas guard"},
	"refresher":         {"refresher orb", "refresher"},
	"octarine_core":     {"octarine core"},
	"desolator":         {"deso", "desolator"},
	"abyssal_blade":     {"abyssal", "abyssal blade"},
	"basher":            {"skull basher", "basher"},
	"butterfly":         {"butterfly", "bfly"},
	"ethereal_blade":    {"eblade", "ethereal blade"},
	"dagon_5":           {"dagon 5", "max dagon"},
	"diffusal_blade":    {"diffusal", "diffusal blade", "diffuse"},
	"pipe":              {"pipe of insight", "pipe"},
	"crimson_guard":     {"crimson", "crimson guard"},
	"force_staff":       {"force", "force staff"},
	"hurricane_pike":    {"pike", "hurricane pike"},
	"glimmer_cape":      {"glimmer", "glimmer cape"},
	"ghost":             {"ghost scepter", "ghost"},
	"cyclone":           {"eul", "euls", "euls scepter", "eul's scepter of divinity"},
	"wind_waker":        {"wind waker", "windwaker"},
	"orchid":            {"orchid malevolence", "orchid"},
	"bloodthorn":        {"bloodthorn"},
	"sheepstick":        {"scythe of vyse", "hex", "sheepstick", "sheep"},
	"mekansm":           {"mek", "mekansm"},
	"guardian_greaves":  {"greaves", "guardian greaves"},
	"spirit_vessel":     {"vessel", "spirit vessel"},
	"urn_of_shadows":    {"urn", "urn of shadows"},
	"vladmir":           {"vlads", "vladmirs offering", "vladmir's offering"},
	"solar_crest":       {"solar", "solar crest"},
	"rod_of_atos":       {"atos", "rod of atos"},
	"gungir":            {"gleipnir", "gungir"},
	"maelstrom":         {"maelstrom"},
	"mjollnir":          {"mjollnir", "mjolnir"},
	"sange_and_yasha":   {"sny", "sange and yasha"},
	"kaya_and_sange":    {"kns", "kaya and sange"},
	"yasha_and_kaya":    {"ynk", "yasha and kaya"},
	"armlet":            {"armlet of mordiggian", "armlet"},
	"blade_mail":        {"blademail", "blade mail"},
	"lotus_orb":         {"lotus", "lotus orb"},
	"heavens_halberd":   {"halberd", "heavens halberd", "heaven's halberd"},
	"nullifier":         {"nullifier"},
	"overwhelming_blink": {"overwhelming blink"},
	"swift_blink":       {"swift blink"},
	"arcane_blink":      {"arcane blink"},
}

// ResolveItem maps a loosely-typed item name to its internal slug. The
// layers run in order with first hit winning: alias table, exact slug,
// exact display name, then fuzzy over both.
func ResolveItem(catalog *refdata.Catalog, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	query := Normalize(input)

	// Alias table.
	for slug, aliases := range itemAliases {
		for _, alias := range aliases {
			if Normalize(alias) == query {
				return slug, nil
			}
		}
	}

	items := catalog.Items()

	// Exact slug, then exact display name.
	for slug := range items {
		if Normalize(slug) == query {
			return slug, nil
		}
	}
	for slug, it := range items {
		if it.DisplayName != "" && Normalize(it.DisplayName) == query {
			return slug, nil
		}
	}

	// Fuzzy over both identifiers, best of the two per item.
	type candidate struct {
		slug  string
		score float64
	}
	var matches []candidate
	for slug, it := range items {
		s := Similarity(query, Normalize(slug))
		if it.DisplayName != "" {
			if d := Similarity(query, Normalize(it.DisplayName)); d > s {
				s = d
			}
		}
		if s >= itemFuzzyFloor {
			matches = append(matches, candidate{slug, s})
		}
	}
	if len(matches) > 0 {
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].score != matches[j].score {
				return matches[i].score > matches[j].score
			}
			return matches[i].slug < matches[j].slug
		})
		return matches[0].slug, nil
	}

	// Nothing matched; offer a handful of display names as a hint.
	var samples []string
	for _, it := range items {
		if it.DisplayName == "" {
			continue
		}
		samples = append(samples, it.DisplayName)
		if len(samples) == 5 {
			break
		}
	}
	return "", &NotFoundError{Kind: "item", Input: input, Suggestions: samples}
}

// lowercaseWords are function words kept lowercase when formatting item
// display names, unless they lead the name.
var lowercaseWords = map[string]bool{
	"of": true, "the": true, "and": true, "a": true, "an": true,
	"in": true, "on": true, "at": true, "to": true,
}

// FormatItemName renders an internal slug as a display name:
// "boots_of_travel" -> "Boots of Travel".
func FormatItemName(slug string) string {
	words := strings.Split(slug, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		if i > 0 && lowercaseWords[w] {
			words[i] = w
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
