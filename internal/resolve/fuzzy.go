package resolve

import (
	"sort"
	"strings"
)

// Normalize folds a name to its comparable form: lowercase with spaces,
// hyphens, and apostrophes removed, so "Anti-Mage", "anti mage" and
// "antimage" all collapse to the same string.
func Normalize(name string) string {
	r := strings.NewReplacer(" ", "", "-", "", "'", "")
	return r.Replace(strings.ToLower(name))
}

// Similarity is a character-level ratio in [0, 1] based on the total size
// of the longest matching blocks between a and b: 2*M/T where M is the
// matched character count and T the combined length. Equivalent strings
// score 1.0.
func Similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	m := matchingTotal(a, b)
	return 2.0 * float64(m) / float64(len(a)+len(b))
}

// matchingTotal sums the lengths of matching blocks: the longest common
// substring, then recursively the regions to its left and right.
func matchingTotal(a, b string) int {
	i, j, k := longestBlock(a, b)
	if k == 0 {
		return 0
	}
	return k + matchingTotal(a[:i], b[:j]) + matchingTotal(a[i+k:], b[j+k:])
}

// longestBlock finds the first longest common substring of a and b,
// returning its start in a, start in b, and length.
func longestBlock(a, b string) (int, int, int) {
	bestI, bestJ, bestK := 0, 0, 0
	// prev[j+1] holds the length of the common suffix ending at the previous
	// row's a position and b[j].
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			if a[i] == b[j] {
				cur[j+1] = prev[j] + 1
				if cur[j+1] > bestK {
					bestK = cur[j+1]
					bestI = i - bestK + 1
					bestJ = j - bestK + 1
				}
			} else {
				cur[j+1] = 0
			}
		}
		prev, cur = cur, prev
	}
	return bestI, bestJ, bestK
}

type scored struct {
	value string
	score float64
}

// closestMatches ranks candidates by similarity to query, keeping those at
// or above cutoff, best first, up to n entries. Ties keep input order.
func closestMatches(query string, candidates []string, cutoff float64, n int) []string {
	var kept []scored
	for _, c := range candidates {
		if s := Similarity(query, c); s >= cutoff {
			kept = append(kept, scored{c, s})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].score > kept[j].score })
	if len(kept) > n {
		kept = kept[:n]
	}
	out := make([]string, len(kept))
	for i, s := range kept {
		out[i] = s.value
	}
	return out
}
