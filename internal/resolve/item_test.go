package resolve

import (
	"errors"
	"testing"
)

func TestResolveItemLayers(t *testing.T) {
	catalog := testCatalog(t)

	t.Run("AliasTable", func(t *testing.T) {
		for input, want := range map[string]string{
			"bfury":            "battle_fury",
			"bkb":              "black_king_bar",
			"aghanims scepter": "ultimate_scepter",
			"Aghanim's Scepter": "ultimate_scepter",
		} {
			got, err := ResolveItem(catalog, input)
			if err != nil || got != want {
				t.Errorf("ResolveItem(%q) = (%q, %v), want %q", input, got, err, want)
			}
		}
	})

	t.Run("ExactSlug", func(t *testing.T) {
		got, err := ResolveItem(catalog, "battle_fury")
		if err != nil || got != "battle_fury" {
			t.Errorf("got (%q, %v)", got, err)
		}
	})

	t.Run("ExactDisplayName", func(t *testing.T) {
		got, err := ResolveItem(catalog, "Battle Fury")
		if err != nil || got != "battle_fury" {
			t.Errorf("got (%q, %v)", got, err)
		}
	})

	t.Run("Fuzzy", func(t *testing.T) {
		// "octarine" is not an alias; it reaches octarine_core only through
		// the fuzzy pass.
		got, err := ResolveItem(catalog, "octarine")
		if err != nil || got != "octarine_core" {
			t.Errorf("ResolveItem(octarine) = (%q, %v), want octarine_core", got, err)
		}
	})

	t.Run("EmptyPassthrough", func(t *testing.T) {
		got, err := ResolveItem(catalog, "")
		if err != nil || got != "" {
			t.Errorf("got (%q, %v), want empty passthrough", got, err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := ResolveItem(catalog, "zzzzzzzzzz")
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("err = %v, want *NotFoundError", err)
		}
		if len(nf.Suggestions) == 0 || len(nf.Suggestions) > 5 {
			t.Errorf("suggestions = %v, want 1-5 sample names", nf.Suggestions)
		}
	})
}

func TestFormatItemName(t *testing.T) {
	cases := map[string]string{
		"ultimate_scepter": "Ultimate Scepter",
		"boots_of_travel":  "Boots of Travel",
		"blink":            "Blink",
		"hand_of_midas":    "Hand of Midas",
		"the_leveller":     "The Leveller", // leading function word stays capitalized
	}
	for slug, want := range cases {
		if got := FormatItemName(slug); got != want {
			t.Errorf("FormatItemName(%q) = %q, want %q", slug, got, want)
		}
	}
}
