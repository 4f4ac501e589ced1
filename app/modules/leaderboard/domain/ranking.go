package leaderboarddomain

import (
	"cmp"
	"slices"
)

// RankedTeam is a team's standing within a single tournament.
type RankedTeam struct {
	Team  string `json:"team"`
	Total int    `json:"total"`
}

// RankTeams reduces every team to its comparable total and orders the teams
// best first.
//
// Detailed variant: the sum of the team's best TopScoresPerTeam scores.
// Overall variant: the sum of all scores.
// Equal totals keep the order in which the teams first appeared in the feed.
func RankTeams(set *TeamScoreSet) []RankedTeam {
	if set == nil || set.Len() == 0 {
		return nil
	}

	type candidate struct {
		RankedTeam
		firstSeen int
	}

	candidates := make([]candidate, len(set.teams))
	for i, ts := range set.teams {
		total := ts.sum
		if set.variant.keepsRounds() {
			total = topScoresTotal(ts.scores, TopScoresPerTeam)
		}
		candidates[i] = candidate{
			RankedTeam: RankedTeam{Team: ts.team, Total: total},
			firstSeen:  i,
		}
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.firstSeen, b.firstSeen)
	})

	ranked := make([]RankedTeam, len(candidates))
	for i, c := range candidates {
		ranked[i] = c.RankedTeam
	}
	return ranked
}

// topScoresTotal sums the n highest values without reordering the input.
func topScoresTotal(scores []int, n int) int {
	sorted := slices.Clone(scores)
	slices.SortFunc(sorted, func(a, b int) int { return cmp.Compare(b, a) })

	total := 0
	for _, s := range sorted[:min(n, len(sorted))] {
		total += s
	}
	return total
}
