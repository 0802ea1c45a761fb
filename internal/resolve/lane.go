package resolve

import (
	"log/slog"
	"strings"
)

// laneRoles maps the many ways players phrase a position onto the four
// lane-role buckets the OpenDota API filters by. The API has no bucket
// for position 5: hard support is folded into role 1 and soft support
// into role 3, mirroring upstream semantics exactly.
var laneRoles = map[string]int{
	// Safe lane / carry / position 1 (hard support shares the lane).
	"safe lane": 1, "safelane": 1, "safe": 1, "carry": 1,
	"pos 1": 1, "position 1": 1, "pos1": 1,
	"hard support": 1, "pos 5": 1, "position 5": 1, "pos5": 1,
	// Mid lane / position 2.
	"mid": 2, "midlane": 2, "mid lane": 2, "middle": 2,
	"pos 2": 2, "position 2": 2, "pos2": 2,
	// Off lane / position 3 (soft support shares the lane).
	"off lane": 3, "offlane": 3, "off": 3, "hard lane": 3, "hardlane": 3,
	"pos 3": 3, "position 3": 3, "pos3": 3,
	"soft support": 3, "pos 4": 3, "position 4": 3, "pos4": 3,
	// Jungle / roaming.
	"jungle": 4, "jungler": 4, "roaming": 4, "roam": 4,
}

// LaneDescriptions names each canonical lane role for tool output.
var LaneDescriptions = map[int]string{
	1: "Safe Lane (Carry/Position 1)",
	2: "Mid Lane (Position 2)",
	3: "Off Lane (Offlane/Position 3)",
	4: "Jungle/Roaming",
}

// ResolveLane maps a Ref to a lane-role ID in [1,4]. Numeric literals are
// validated against the range; names go through the synonym table with an
// exact, case-insensitive lookup (no fuzzy matching for lanes).
func ResolveLane(ref Ref) (int, bool, error) {
	if ref.IsZero() {
		return 0, false, nil
	}
	if ref.IsID() {
		if ref.ID() < 1 || ref.ID() > 4 {
			return 0, false, &RangeError{Kind: "lane role", Got: ref.ID(), Min: 1, Max: 4}
		}
		return ref.ID(), true, nil
	}
	name := strings.ToLower(strings.TrimSpace(ref.Name()))
	if role, ok := laneRoles[name]; ok {
		slog.Debug("resolved lane", "input", ref.Name(), "role", role)
		return role, true, nil
	}
	return 0, false, &NotFoundError{
		Kind:        "lane",
		Input:       ref.Name(),
		Suggestions: []string{"mid", "safe lane", "offlane", "jungle", "pos 1-5"},
	}
}
