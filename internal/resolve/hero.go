package resolve

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/hkaanengin/opendota-mcp-server/internal/refdata"
)

const (
	heroFuzzyFloor      = 0.8
	heroHighConfidence  = 0.9
	heroSuggestionFloor = 0.5
)

// HeroMatch is the outcome of a successful name match, including how the
// match was made so callers can surface confidence to the model.
type HeroMatch struct {
	HeroID        int      `json:"hero_id"`
	LocalizedName string   `json:"localized_name"`
	MatchType     string   `json:"match_type"`           // "exact" or "fuzzy"
	Confidence    string   `json:"confidence,omitempty"` // "high" or "medium" for fuzzy
	Alternatives  []string `json:"alternatives,omitempty"`
}

// HeroResolver turns hero names or numeric literals into canonical hero
// IDs using the reference catalog, falling back to a live /heroes fetch
// when the catalog came up empty at startup.
type HeroResolver struct {
	catalog *refdata.Catalog

	// Fallback supplies the hero list from the API when the catalog is
	// empty. Optional; without it an empty catalog means no string
	// resolution.
	Fallback func(ctx context.Context) ([]refdata.Hero, error)
}

func NewHeroResolver(catalog *refdata.Catalog) *HeroResolver {
	return &HeroResolver{catalog: catalog}
}

// Resolve maps a Ref to a hero ID. Absent refs return ok=false. Numeric
// literals pass through unchanged, even out-of-range ones; the upstream
// API is the authority on invalid IDs. Names go through the matcher.
func (r *HeroResolver) Resolve(ctx context.Context, ref Ref) (int, bool, error) {
	if ref.IsZero() {
		return 0, false, nil
	}
	if ref.IsID() {
		slog.Debug("hero already an ID", "id", ref.ID())
		return ref.ID(), true, nil
	}
	m, err := r.Match(ctx, ref.Name())
	if err != nil {
		return 0, false, err
	}
	slog.Info("resolved hero", "input", ref.Name(), "id", m.HeroID, "name", m.LocalizedName, "match", m.MatchType)
	return m.HeroID, true, nil
}

// ResolveList resolves a multi-valued hero filter, failing on the first
// unresolvable entry.
func (r *HeroResolver) ResolveList(ctx context.Context, refs []Ref) ([]int, error) {
	ids := make([]int, 0, len(refs))
	for _, ref := range refs {
		id, ok, err := r.Resolve(ctx, ref)
		if err != nil {
			return nil, err
		}
		if ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Match runs the layered name-matching algorithm: exact normalized scan,
// then a fuzzy pass at 0.8, then a suggestions-only pass at 0.5 feeding
// the NotFoundError.
func (r *HeroResolver) Match(ctx context.Context, name string) (HeroMatch, error) {
	heroes, err := r.candidates(ctx)
	if err != nil {
		return HeroMatch{}, err
	}

	query := Normalize(name)

	// Exact pass, short-circuiting on first hit.
	for _, h := range heroes {
		if Normalize(h.LocalizedName) == query {
			return HeroMatch{HeroID: h.ID, LocalizedName: h.LocalizedName, MatchType: "exact"}, nil
		}
	}

	// Fuzzy pass.
	type candidate struct {
		hero  refdata.Hero
		score float64
	}
	var matches []candidate
	for _, h := range heroes {
		if s := Similarity(query, Normalize(h.LocalizedName)); s >= heroFuzzyFloor {
			matches = append(matches, candidate{h, s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	if len(matches) > 0 {
		best := matches[0]
		m := HeroMatch{
			HeroID:        best.hero.ID,
			LocalizedName: best.hero.LocalizedName,
			MatchType:     "fuzzy",
			Confidence:    "high",
		}
		if best.score < heroHighConfidence {
			m.Confidence = "medium"
			for _, alt := range matches {
				m.Alternatives = append(m.Alternatives, alt.hero.LocalizedName)
				if len(m.Alternatives) == 3 {
					break
				}
			}
		}
		return m, nil
	}

	// No match: build suggestions at the lower floor.
	names := make([]string, len(heroes))
	byNormalized := make(map[string]string, len(heroes))
	for i, h := range heroes {
		n := Normalize(h.LocalizedName)
		names[i] = n
		if _, seen := byNormalized[n]; !seen {
			byNormalized[n] = h.LocalizedName
		}
	}
	var suggestions []string
	for _, n := range closestMatches(query, names, heroSuggestionFloor, 5) {
		suggestions = append(suggestions, byNormalized[n])
	}
	return HeroMatch{}, &NotFoundError{Kind: "hero", Input: name, Suggestions: suggestions}
}

// Search returns heroes whose display name or any role contains the query,
// case-insensitively, capped at limit.
func (r *HeroResolver) Search(ctx context.Context, query string, limit int) ([]refdata.Hero, error) {
	heroes, err := r.candidates(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []refdata.Hero
	for _, h := range heroes {
		if strings.Contains(strings.ToLower(h.LocalizedName), q) || roleMatches(h.Roles, q) {
			out = append(out, h)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func roleMatches(roles []string, q string) bool {
	for _, role := range roles {
		if strings.Contains(strings.ToLower(role), q) {
			return true
		}
	}
	return false
}

func (r *HeroResolver) candidates(ctx context.Context) ([]refdata.Hero, error) {
	if r.catalog.HasHeroes() {
		return r.catalog.Heroes(), nil
	}
	if r.Fallback == nil {
		return nil, nil
	}
	slog.Debug("hero catalog empty, fetching hero list from API")
	return r.Fallback(ctx)
}
