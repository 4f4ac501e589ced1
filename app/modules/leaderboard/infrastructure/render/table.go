package render

import (
	"strconv"

	leaderboarddomain "github.com/Black-And-White-Club/team-leaderboard/app/modules/leaderboard/domain"
)

// Table is the column layout shared by every output format.
type Table struct {
	Headers []string
	Rows    [][]string
}

// BuildTable lays out standings as rows of cells.
//
// Detailed: Rank, Team, R1..Rn, Total. Overall: Rank, Team, Total Points.
// A round a team did not place in shows as 0. The layout follows the variant,
// so a detailed build over zero rounds still ends in Total.
func BuildTable(variant leaderboarddomain.Variant, labels []string, standings []leaderboarddomain.Standing) Table {
	if variant == leaderboarddomain.VariantOverall {
		labels = nil
	}

	headers := []string{"Rank", "Team"}
	if variant != leaderboarddomain.VariantOverall {
		headers = append(headers, labels...)
		headers = append(headers, "Total")
	} else {
		headers = append(headers, "Total Points")
	}

	rows := make([][]string, len(standings))
	for i, s := range standings {
		row := make([]string, 0, len(headers))
		row = append(row, strconv.Itoa(s.Rank), s.Team)
		for j := range labels {
			points := 0
			if j < len(s.Rounds) {
				points = s.Rounds[j]
			}
			row = append(row, strconv.Itoa(points))
		}
		row = append(row, strconv.Itoa(s.Total))
		rows[i] = row
	}

	return Table{Headers: headers, Rows: rows}
}
