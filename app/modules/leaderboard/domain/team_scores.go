package leaderboarddomain

// TeamScoreSet collects the scores of one tournament per team, in the order
// teams first appear in the feed.
//
// In the detailed variant every player score is kept; in the overall variant
// only a running sum is.
type TeamScoreSet struct {
	variant Variant
	teams   []*teamScores
	index   map[string]int
}

type teamScores struct {
	team   string
	scores []int
	sum    int
}

// NewTeamScoreSet returns an empty set for the given variant.
func NewTeamScoreSet(v Variant) *TeamScoreSet {
	return &TeamScoreSet{
		variant: v,
		index:   make(map[string]int),
	}
}

// ParseResults groups a tournament's player records by team. Missing fields
// are defaulted, never rejected.
func ParseResults(records []PlayerResult, v Variant) *TeamScoreSet {
	set := NewTeamScoreSet(v)
	for _, r := range records {
		team, score := r.Resolve()
		set.Add(team, score)
	}
	return set
}

// Add records one player score for team.
func (s *TeamScoreSet) Add(team string, score int) {
	i, ok := s.index[team]
	if !ok {
		i = len(s.teams)
		s.index[team] = i
		s.teams = append(s.teams, &teamScores{team: team})
	}

	ts := s.teams[i]
	if s.variant.keepsRounds() {
		ts.scores = append(ts.scores, score)
	}
	ts.sum += score
}

// Variant reports which variant the set was built for.
func (s *TeamScoreSet) Variant() Variant {
	return s.variant
}

// Len is the number of distinct teams.
func (s *TeamScoreSet) Len() int {
	return len(s.teams)
}

// Teams returns team names in first-seen order.
func (s *TeamScoreSet) Teams() []string {
	out := make([]string, len(s.teams))
	for i, ts := range s.teams {
		out[i] = ts.team
	}
	return out
}

// Scores returns a copy of the individual scores recorded for team. It is
// empty in the overall variant.
func (s *TeamScoreSet) Scores(team string) []int {
	i, ok := s.index[team]
	if !ok {
		return nil
	}
	return append([]int(nil), s.teams[i].scores...)
}

// Sum returns the sum of every score recorded for team.
func (s *TeamScoreSet) Sum(team string) int {
	i, ok := s.index[team]
	if !ok {
		return 0
	}
	return s.teams[i].sum
}
