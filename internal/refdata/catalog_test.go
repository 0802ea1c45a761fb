package refdata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// writeJSON marshals v into dir/name for a catalog fixture.
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

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeJSON(t, dir, "heroes.json", map[string]any{
		"1": map[string]any{
			"id": 1, "name": "npc_dota_hero_antimage", "localized_name": "Anti-Mage",
			"primary_attr": "agi", "attack_type": "Melee", "roles": []string{"Carry", "Escape"},
		},
		"86": map[string]any{
			"id": 86, "name": "npc_dota_hero_rubick", "localized_name": "Rubick",
			"primary_attr": "int", "attack_type": "Ranged", "roles": []string{"Support"},
		},
	})
	writeJSON(t, dir, "items.json", map[string]any{
		"blink":       map[string]any{"dname": "Blink Dagger", "cost": 2250},
		"battle_fury": map[string]any{"dname": "Battle Fury", "cost": 4100},
	})
	writeJSON(t, dir, "item_ids.json", map[string]string{
		"1":  "blink",
		"65": "battle_fury",
	})
	writeJSON(t, dir, "hero_lore.json", map[string]string{
		"antimage": "The saga of the Anti-Mage...",
	})
	writeJSON(t, dir, "aghs_desc.json", []map[string]any{
		{"hero_name": "Rubick", "hero_id": 86, "scepter_desc": "Increases cast range.", "has_scepter": true},
	})
	return dir
}

func TestLoadCatalog(t *testing.T) {
	c := Load(fixtureDir(t))

	if !c.HasHeroes() {
		t.Fatal("catalog should report heroes loaded")
	}
	heroes := c.Heroes()
	if len(heroes) != 2 {
		t.Fatalf("len(Heroes()) = %d, want 2", len(heroes))
	}
	// Stable ID order.
	if heroes[0].ID != 1 || heroes[1].ID != 86 {
		t.Errorf("hero order = [%d %d], want [1 86]", heroes[0].ID, heroes[1].ID)
	}

	if got := c.HeroName(86); got != "Rubick" {
		t.Errorf("HeroName(86) = %q, want Rubick", got)
	}
	if got := c.HeroName(999); got != "" {
		t.Errorf("HeroName(999) = %q, want empty", got)
	}

	it, ok := c.Item("battle_fury")
	if !ok || it.DisplayName != "Battle Fury" || it.Cost != 4100 {
		t.Errorf("Item(battle_fury) = %+v ok=%v", it, ok)
	}
	if slug, ok := c.ItemSlugByNumericID(65); !ok || slug != "battle_fury" {
		t.Errorf("ItemSlugByNumericID(65) = %q ok=%v", slug, ok)
	}

	am, _ := c.HeroByID(1)
	if lore, ok := c.LoreForHero(am); !ok || lore == "" {
		t.Errorf("LoreForHero(Anti-Mage) = %q ok=%v", lore, ok)
	}

	if agh, ok := c.AghanimForHero(86); !ok || !agh.HasScepter {
		t.Errorf("AghanimForHero(86) = %+v ok=%v", agh, ok)
	}
	if _, ok := c.AghanimForHero(1); ok {
		t.Error("AghanimForHero(1) should miss")
	}
}

func TestLoadMissingFilesDegradeToEmpty(t *testing.T) {
	c := Load(t.TempDir())

	if c.HasHeroes() {
		t.Error("empty dir should yield no heroes")
	}
	if c.Heroes() == nil {
		t.Error("Heroes() must never be nil")
	}
	if c.Items() == nil {
		t.Error("Items() must never be nil")
	}
	if _, ok := c.ItemSlugByNumericID(1); ok {
		t.Error("empty bridge should miss")
	}
}

func TestLoadMalformedFileDegrades(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "heroes.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := Load(dir)
	if c.HasHeroes() {
		t.Error("malformed heroes.json should degrade to empty")
	}
}
