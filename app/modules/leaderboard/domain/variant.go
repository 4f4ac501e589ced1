package leaderboarddomain

import "fmt"

// Variant selects how team scores are combined and how much of each round the
// leaderboard keeps.
type Variant string

const (
	// VariantDetailed ranks teams by their best three player scores and keeps
	// a per-round breakdown.
	VariantDetailed Variant = "detailed"
	// VariantOverall ranks teams by the sum of all player scores and keeps
	// only the running total.
	VariantOverall Variant = "overall"
)

// TopScoresPerTeam is the number of player scores counted per team in the
// detailed variant.
const TopScoresPerTeam = 3

// ParseVariant validates a variant name. An empty name selects VariantDetailed.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "", VariantDetailed:
		return VariantDetailed, nil
	case VariantOverall:
		return VariantOverall, nil
	default:
		return "", fmt.Errorf("unknown leaderboard variant %q", s)
	}
}

func (v Variant) keepsRounds() bool {
	return v != VariantOverall
}
