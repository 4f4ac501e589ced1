package leaderboarddomain

// placementTable holds the points for ranks 0 through 6. Every other rank
// scores nothing.
var placementTable = [...]int{10, 8, 6, 4, 3, 2, 1}

// TeamPlacement is the placement points a team earned in one tournament.
type TeamPlacement struct {
	Team   string `json:"team"`
	Points int    `json:"points"`
}

// PlacementPoints returns the points awarded for a 0-indexed rank.
func PlacementPoints(rank int) int {
	if rank < 0 || rank >= len(placementTable) {
		return 0
	}
	return placementTable[rank]
}

// PlacementTableSize is the number of ranks that earn points.
func PlacementTableSize() int {
	return len(placementTable)
}

// AssignPlacements converts a ranking into placement points by position.
func AssignPlacements(ranked []RankedTeam) []TeamPlacement {
	if len(ranked) == 0 {
		return nil
	}

	placements := make([]TeamPlacement, len(ranked))
	for i, rt := range ranked {
		placements[i] = TeamPlacement{
			Team:   rt.Team,
			Points: PlacementPoints(i),
		}
	}
	return placements
}
