package leaderboarddomain

import (
	"cmp"
	"fmt"
	"slices"
)

// LeaderboardEntry is a team's accumulated placement points.
// PerRound is nil in the overall variant; a round the team did not place in
// has no key.
type LeaderboardEntry struct {
	Team     string         `json:"team"`
	Total    int            `json:"total"`
	PerRound map[string]int `json:"per_round,omitempty"`
}

// RoundPoints returns the points the team earned in the labelled round, or 0.
func (e LeaderboardEntry) RoundPoints(label string) int {
	return e.PerRound[label]
}

// Standing is one row of the rendered leaderboard.
type Standing struct {
	Rank  int    `json:"rank"`
	Team  string `json:"team"`
	Total int    `json:"total"`
	// Rounds lines up with Leaderboard.RoundLabels; empty in the overall variant.
	Rounds []int `json:"rounds,omitempty"`
}

// Leaderboard folds per-tournament placements into running team totals.
// It is not safe for concurrent use; a run owns its leaderboard.
type Leaderboard struct {
	variant Variant
	labels  []string
	entries []*LeaderboardEntry
	index   map[string]int
}

// NewLeaderboard returns an empty leaderboard.
func NewLeaderboard(v Variant) *Leaderboard {
	return &Leaderboard{
		variant: v,
		index:   make(map[string]int),
	}
}

// RoundLabel returns the positional label of the i-th (0-indexed) round.
func RoundLabel(i int) string {
	return fmt.Sprintf("R%d", i+1)
}

// AddRound folds one tournament's placements in as the next round and
// returns that round's label.
func (l *Leaderboard) AddRound(placements []TeamPlacement) string {
	label := RoundLabel(len(l.labels))
	l.labels = append(l.labels, label)

	for _, p := range placements {
		entry := l.entry(p.Team)
		if l.variant.keepsRounds() {
			entry.PerRound[label] = p.Points
		}
		entry.Total += p.Points
	}
	return label
}

func (l *Leaderboard) entry(team string) *LeaderboardEntry {
	if i, ok := l.index[team]; ok {
		return l.entries[i]
	}

	e := &LeaderboardEntry{Team: team}
	if l.variant.keepsRounds() {
		e.PerRound = make(map[string]int)
	}
	l.index[team] = len(l.entries)
	l.entries = append(l.entries, e)
	return e
}

// Variant reports the accumulation variant.
func (l *Leaderboard) Variant() Variant {
	return l.variant
}

// RoundLabels returns R1..Rn, one per round added. Empty in the overall
// variant since no per-round columns exist there.
func (l *Leaderboard) RoundLabels() []string {
	if !l.variant.keepsRounds() {
		return nil
	}
	return slices.Clone(l.labels)
}

// Rounds is the number of rounds folded in.
func (l *Leaderboard) Rounds() int {
	return len(l.labels)
}

// Entry looks up a team's entry.
func (l *Leaderboard) Entry(team string) (LeaderboardEntry, bool) {
	i, ok := l.index[team]
	if !ok {
		return LeaderboardEntry{}, false
	}
	return copyEntry(l.entries[i]), true
}

// Entries returns a copy of every entry in first-appearance order.
func (l *Leaderboard) Entries() []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = copyEntry(e)
	}
	return out
}

// Standings orders the entries by total, best first, for presentation. Equal
// totals keep first-appearance order. Ranks are 1-based row positions.
func (l *Leaderboard) Standings() []Standing {
	entries := l.Entries()
	slices.SortStableFunc(entries, func(a, b LeaderboardEntry) int {
		return cmp.Compare(b.Total, a.Total)
	})

	labels := l.RoundLabels()
	standings := make([]Standing, len(entries))
	for i, e := range entries {
		s := Standing{Rank: i + 1, Team: e.Team, Total: e.Total}
		if len(labels) > 0 {
			s.Rounds = make([]int, len(labels))
			for j, label := range labels {
				s.Rounds[j] = e.RoundPoints(label)
			}
		}
		standings[i] = s
	}
	return standings
}

func copyEntry(e *LeaderboardEntry) LeaderboardEntry {
	c := LeaderboardEntry{Team: e.Team, Total: e.Total}
	if e.PerRound != nil {
		c.PerRound = make(map[string]int, len(e.PerRound))
		for k, v := range e.PerRound {
			c.PerRound[k] = v
		}
	}
	return c
}
