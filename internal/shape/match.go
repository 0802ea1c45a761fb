package shape

import (
	"fmt"
)

// DataError reports a malformed or unexpected shape in an upstream
// response encountered while restructuring it.
type DataError struct {
	What string
}

func (e *DataError) Error() string { return "malformed match data: " + e.What }

// sectionKeys are the list/object sections split out of a raw match blob,
// in the order they appear in the output.
var sectionKeys = []string{
	"players",
	"teamfights",
	"objectives",
	"chat",
	"picks_bans",
	"radiant_gold_adv",
	"radiant_xp_adv",
	"cosmetics",
	"all_word_counts",
	"my_word_counts",
}

// Sections is a request-scoped decomposition of one match blob: the named
// list sections that were present, plus a metadata bag of every scalar
// top-level field.
type Sections map[string]any

// ExtractSections locates the match object inside raw and splits it into
// named sections. The blob may arrive bare or wrapped in an RPC envelope;
// unwrapping tries a "result" field, then "structuredContent", then the
// object itself when it carries both match_id and players.
func ExtractSections(raw map[string]any) (Sections, error) {
	match, err := unwrapMatch(raw)
	if err != nil {
		return nil, err
	}

	out := Sections{}
	claimed := map[string]bool{}
	for _, key := range sectionKeys {
		if v, ok := match[key]; ok {
			out[key] = v
			claimed[key] = true
		}
	}

	// Everything scalar at the top level lands in metadata; remaining
	// lists/objects that are not named sections are deliberately dropped.
	metadata := map[string]any{}
	for k, v := range match {
		if claimed[k] {
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			continue
		default:
			metadata[k] = v
		}
	}
	out["metadata"] = metadata
	return out, nil
}

func unwrapMatch(raw map[string]any) (map[string]any, error) {
	if raw == nil {
		return nil, &DataError{What: "empty response"}
	}
	if inner, ok := raw["result"].(map[string]any); ok {
		return unwrapMatch(inner)
	}
	if inner, ok := raw["structuredContent"].(map[string]any); ok {
		return unwrapMatch(inner)
	}
	_, hasID := raw["match_id"]
	_, hasPlayers := raw["players"]
	if hasID && hasPlayers {
		return raw, nil
	}
	return nil, &DataError{What: fmt.Sprintf("no match object found (keys: %d, match_id present: %v)", len(raw), hasID)}
}

// MatchPlayers returns the players section as a list of objects, or an
// error when it is missing or oddly shaped.
func (s Sections) MatchPlayers() ([]map[string]any, error) {
	rawPlayers, ok := s["players"].([]any)
	if !ok {
		return nil, &DataError{What: "players section missing"}
	}
	players := make([]map[string]any, 0, len(rawPlayers))
	for _, p := range rawPlayers {
		obj, ok := p.(map[string]any)
		if !ok {
			return nil, &DataError{What: "player entry is not an object"}
		}
		players = append(players, obj)
	}
	return players, nil
}
