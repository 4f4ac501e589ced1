package leaderboarddomain

// NoTeam is the team name given to players who entered a tournament without one.
const NoTeam = "No team"

// PlayerResult is one line of a tournament results feed.
//
// Team and Score are optional on the wire. Downstream code never reads them
// directly; it goes through Resolve so the defaults live in one place.
type PlayerResult struct {
	Team     *string `json:"team,omitempty"`
	Score    *int    `json:"score,omitempty"`
	Rank     int     `json:"rank,omitempty"`
	Username string  `json:"username,omitempty"`
	Rating   int     `json:"rating,omitempty"`
}

// Resolve returns the team and score this record contributes, applying the
// "No team" and zero defaults.
func (p PlayerResult) Resolve() (team string, score int) {
	team = NoTeam
	if p.Team != nil && *p.Team != "" {
		team = *p.Team
	}
	if p.Score != nil {
		score = *p.Score
	}
	return team, score
}
