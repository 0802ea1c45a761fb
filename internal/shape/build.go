package shape

import (
	"fmt"
	"sort"

	"github.com/hkaanengin/opendota-mcp-server/internal/refdata"
	"github.com/hkaanengin/opendota-mcp-server/internal/resolve"
)

// keyItemCost is the gold floor for a purchase to count as a key timing
// item in the reconstructed build.
const keyItemCost = 2000

// TimedItem is one key purchase from the purchase log.
type TimedItem struct {
	Item string `json:"item"`
	Time string `json:"time"` // MM:SS from game start
	Cost int    `json:"cost"`
}

// PlayerBuild is the reconstructed item picture for one match player: the
// final six slots, the neutral item, and the timing of every expensive
// purchase.
type PlayerBuild struct {
	FinalItems  []string    `json:"final_items"`
	NeutralItem string      `json:"neutral_item,omitempty"`
	KeyTimings  []TimedItem `json:"key_timings,omitempty"`
}

// BuildForPlayer reads the six item_N slots, the neutral slot, and the
// purchase log out of a raw match-player object. Empty slots (zero IDs)
// are skipped; purchase-log entries below the cost floor or bought before
// the horn (negative time) are filtered out.
func BuildForPlayer(catalog *refdata.Catalog, player map[string]any) PlayerBuild {
	var build PlayerBuild

	for i := 0; i < 6; i++ {
		id := intField(player, fmt.Sprintf("item_%d", i))
		if id == 0 {
			continue
		}
		build.FinalItems = append(build.FinalItems, itemName(catalog, id))
	}
	if id := intField(player, "item_neutral"); id != 0 {
		build.NeutralItem = itemName(catalog, id)
	}

	type timed struct {
		item TimedItem
		at   int
	}
	var timings []timed
	log, _ := player["purchase_log"].([]any)
	for _, e := range log {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		slug, _ := entry["key"].(string)
		if slug == "" {
			continue
		}
		t := intField(entry, "time")
		if t < 0 {
			continue // pre-game purchase
		}
		item, ok := catalog.Item(slug)
		if !ok || item.Cost < keyItemCost {
			continue
		}
		timings = append(timings, timed{
			item: TimedItem{Item: resolve.FormatItemName(slug), Time: FormatGameTime(t), Cost: item.Cost},
			at:   t,
		})
	}
	sort.SliceStable(timings, func(i, j int) bool { return timings[i].at < timings[j].at })
	for _, t := range timings {
		build.KeyTimings = append(build.KeyTimings, t.item)
	}
	return build
}

func itemName(catalog *refdata.Catalog, numericID int) string {
	slug, ok := catalog.ItemSlugByNumericID(numericID)
	if !ok {
		return fmt.Sprintf("item_%d", numericID)
	}
	if it, ok := catalog.Item(slug); ok && it.DisplayName != "" {
		return it.DisplayName
	}
	return resolve.FormatItemName(slug)
}

// FormatGameTime renders seconds from the horn as MM:SS.
func FormatGameTime(seconds int) string {
	neg := ""
	if seconds < 0 {
		neg = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d", neg, seconds/60, seconds%60)
}

// intField reads a numeric JSON field that may decode as float64 or int.
func intField(obj map[string]any, key string) int {
	switch v := obj[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
