package resolve

import (
	"errors"
	"testing"
)

func TestResolveStatField(t *testing.T) {
	t.Run("Exact", func(t *testing.T) {
		cases := map[string]string{
			"kills":        "kills",
			"gpm":          "gold_per_min",
			"gold_per_min": "gold_per_min",
			"gold per min": "gold_per_min",
			"GOLD-PER-MIN": "gold_per_min",
			"cs":           "last_hits",
			"creep score":  "last_hits",
			"apm":          "actions_per_min",
			"lvl":          "level",
			"damage":       "hero_damage",
			"match duration": "duration",
		}
		for input, want := range cases {
			got, err := ResolveStatField(input)
			if err != nil || got != want {
				t.Errorf("ResolveStatField(%q) = (%q, %v), want %q", input, got, err, want)
			}
		}
	})

	t.Run("FuzzyNearMiss", func(t *testing.T) {
		// One-letter swap from "gpm": either fuzzy-resolves to gold_per_min
		// or fails listing valid fields; it must not resolve elsewhere.
		got, err := ResolveStatField("gmp")
		if err != nil {
			var nf *NotFoundError
			if !errors.As(err, &nf) {
				t.Fatalf("err = %v, want *NotFoundError", err)
			}
			if len(nf.Suggestions) == 0 {
				t.Error("failure should list valid fields")
			}
			return
		}
		if got != "gold_per_min" {
			t.Errorf("ResolveStatField(gmp) = %q, want gold_per_min", got)
		}
	})

	t.Run("Unrelated", func(t *testing.T) {
		_, err := ResolveStatField("banana")
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("err = %v, want *NotFoundError", err)
		}
		if len(nf.Suggestions) == 0 || len(nf.Suggestions) > 10 {
			t.Errorf("suggestions = %d entries, want 1-10", len(nf.Suggestions))
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if _, err := ResolveStatField("   "); err == nil {
			t.Error("empty field should fail immediately")
		}
	})
}

func TestCanonicalStatFields(t *testing.T) {
	fields := CanonicalStatFields(10)
	if len(fields) == 0 || len(fields) > 10 {
		t.Fatalf("got %d fields", len(fields))
	}
	for i := 1; i < len(fields); i++ {
		if fields[i-1] >= fields[i] {
			t.Errorf("fields not sorted: %v", fields)
		}
	}
}
