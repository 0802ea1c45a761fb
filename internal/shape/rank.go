package shape

import "fmt"

// rankBrackets indexes medal names by the tens digit of a rank tier.
var rankBrackets = [...]string{
	1: "Herald",
	2: "Guardian",
	3: "Crusader",
	4: "Archon",
	5: "Legend",
	6: "Ancient",
	7: "Divine",
	8: "Immortal",
}

const immortalBracket = 8

// FormatRankTier converts a two-digit rank tier into a display string:
// tens digit is the bracket, units digit the star count capped at 5.
// Immortal has no stars; an unknown tier renders as "Unranked".
func FormatRankTier(tier int) string {
	bracket := tier / 10
	if bracket < 1 || bracket >= len(rankBrackets) {
		return "Unranked"
	}
	name := rankBrackets[bracket]
	if bracket == immortalBracket {
		return name
	}
	stars := tier % 10
	if stars > 5 {
		stars = 5
	}
	if stars == 0 {
		return name
	}
	return fmt.Sprintf("%s %d", name, stars)
}
