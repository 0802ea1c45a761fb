package refdata

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Hero is one entry from heroes.json. Raw keeps every upstream field so
// tools can pass the full record through untouched.
type Hero struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	LocalizedName string   `json:"localized_name"`
	PrimaryAttr   string   `json:"primary_attr"`
	AttackType    string   `json:"attack_type"`
	Roles         []string `json:"roles"`
	Raw           map[string]any `json:"-"`
}

// Item is one entry from items.json, keyed by internal slug.
type Item struct {
	Slug        string
	DisplayName string `json:"dname"`
	Cost        int    `json:"cost"`
	Hint        []string `json:"hint"`
	Raw         map[string]any `json:"-"`
}

// AghanimEntry describes a hero's Scepter/Shard upgrades from aghs_desc.json.
type AghanimEntry struct {
	HeroName     string `json:"hero_name"`
	HeroID       int    `json:"hero_id"`
	ScepterDesc  string `json:"scepter_desc"`
	ScepterSkill string `json:"scepter_skill_name"`
	ShardDesc    string `json:"shard_desc"`
	ShardSkill   string `json:"shard_skill_name"`
	HasScepter   bool   `json:"has_scepter"`
	HasShard     bool   `json:"has_shard"`
}

// Catalog is the process-wide reference dataset, populated once before the
// server takes traffic and read-only afterwards. A failed load leaves the
// corresponding container empty, never nil.
type Catalog struct {
	heroes     map[string]Hero   // key: numeric hero ID as text
	items      map[string]Item   // key: internal slug
	itemSlugs  map[int]string    // numeric purchase-log ID -> slug
	heroLore   map[string]string // key: short hero slug ("antimage")
	aghanim    []AghanimEntry

	heroList []Hero // stable iteration order for matching
}

// Empty returns a catalog with every container allocated and empty.
func Empty() *Catalog {
	return &Catalog{
		heroes:    map[string]Hero{},
		items:     map[string]Item{},
		itemSlugs: map[int]string{},
		heroLore:  map[string]string{},
	}
}

// Load reads the four bundled datasets from dir. Missing or malformed
// files degrade to empty containers; resolution then falls back to live
// API lookups per request.
func Load(dir string) *Catalog {
	c := Empty()

	var heroes map[string]json.RawMessage
	if readJSON(filepath.Join(dir, "heroes.json"), &heroes) {
		for id, raw := range heroes {
			var h Hero
			if err := json.Unmarshal(raw, &h); err != nil {
				continue
			}
			var full map[string]any
			_ = json.Unmarshal(raw, &full)
			h.Raw = full
			c.heroes[id] = h
		}
	}

	var items map[string]json.RawMessage
	if readJSON(filepath.Join(dir, "items.json"), &items) {
		for slug, raw := range items {
			var it Item
			if err := json.Unmarshal(raw, &it); err != nil {
				continue
			}
			it.Slug = slug
			var full map[string]any
			_ = json.Unmarshal(raw, &full)
			it.Raw = full
			c.items[slug] = it
		}
	}

	var itemIDs map[string]string
	if readJSON(filepath.Join(dir, "item_ids.json"), &itemIDs) {
		for idText, slug := range itemIDs {
			if id, err := strconv.Atoi(idText); err == nil {
				c.itemSlugs[id] = slug
			}
		}
	}

	readJSON(filepath.Join(dir, "hero_lore.json"), &c.heroLore)
	readJSON(filepath.Join(dir, "aghs_desc.json"), &c.aghanim)

	c.buildHeroList()
	slog.Info("reference data loaded",
		"dir", dir,
		"heroes", len(c.heroes),
		"items", len(c.items),
		"item_ids", len(c.itemSlugs),
		"lore", len(c.heroLore),
		"aghanim", len(c.aghanim))
	return c
}

func readJSON(path string, out any) bool {
	b, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("reference file missing", "path", path, "err", err)
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		slog.Warn("reference file malformed", "path", path, "err", err)
		return false
	}
	return true
}

func (c *Catalog) buildHeroList() {
	c.heroList = make([]Hero, 0, len(c.heroes))
	for _, h := range c.heroes {
		c.heroList = append(c.heroList, h)
	}
	// Map iteration order is not stable across runs; candidate order must
	// be, so ties in the matcher break deterministically.
	sort.Slice(c.heroList, func(i, j int) bool { return c.heroList[i].ID < c.heroList[j].ID })
}

// Heroes returns every hero in stable ID order.
func (c *Catalog) Heroes() []Hero { return c.heroList }

// HasHeroes reports whether hero reference data was loaded.
func (c *Catalog) HasHeroes() bool { return len(c.heroes) > 0 }

// HeroByID looks up a hero by numeric ID.
func (c *Catalog) HeroByID(id int) (Hero, bool) {
	for _, h := range c.heroList {
		if h.ID == id {
			return h, true
		}
	}
	return Hero{}, false
}

// HeroName returns the display name for id, or "" when unknown.
func (c *Catalog) HeroName(id int) string {
	if h, ok := c.HeroByID(id); ok {
		return h.LocalizedName
	}
	return ""
}

// Items returns the item map keyed by internal slug.
func (c *Catalog) Items() map[string]Item { return c.items }

// Item looks up an item by its internal slug.
func (c *Catalog) Item(slug string) (Item, bool) {
	it, ok := c.items[slug]
	return it, ok
}

// ItemSlugByNumericID bridges purchase-log numeric IDs to slugs.
func (c *Catalog) ItemSlugByNumericID(id int) (string, bool) {
	slug, ok := c.itemSlugs[id]
	return slug, ok
}

// LoreForHero returns the lore text for a hero, matching on the short slug
// derived from the internal name ("npc_dota_hero_antimage" -> "antimage").
func (c *Catalog) LoreForHero(h Hero) (string, bool) {
	slug := strings.TrimPrefix(h.Name, "npc_dota_hero_")
	lore, ok := c.heroLore[slug]
	return lore, ok
}

// AghanimForHero scans the Aghanim descriptions for a hero ID. The dataset
// is small enough that a linear pass beats maintaining an index.
func (c *Catalog) AghanimForHero(heroID int) (AghanimEntry, bool) {
	for _, e := range c.aghanim {
		if e.HeroID == heroID {
			return e, true
		}
	}
	return AghanimEntry{}, false
}
