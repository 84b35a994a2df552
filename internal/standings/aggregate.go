// Package standings turns weekly standings snapshots into ranked
// season-to-date tables.
package standings

import (
	"github.com/omarshaarawi/leaguestats/internal/models"
)

// Aggregate sums every snapshot up to and including week into one row per
// team. Each snapshot carries that week's results only, so rows are added,
// not replaced. Teams appear in first-seen order and Rank is left at zero.
func Aggregate(snapshots []models.WeeklySnapshot, week int) []models.CumulativeStandingsRow {
	index := make(map[string]int)
	rows := make([]models.CumulativeStandingsRow, 0)

	for _, snap := range snapshots {
		if snap.Week > week {
			continue
		}
		for _, wr := range snap.Rows {
			i, ok := index[wr.Team]
			if !ok {
				i = len(rows)
				index[wr.Team] = i
				rows = append(rows, models.CumulativeStandingsRow{Team: wr.Team})
			}
			r := &rows[i]
			r.Wins += wr.Wins
			r.Losses += wr.Losses
			r.Ties += wr.Ties
			r.PointsFor += wr.PointsFor
			r.PointsAgainst += wr.PointsAgainst
		}
	}

	for i := range rows {
		rows[i].WinPercentage = WinPercentage(rows[i].Wins, rows[i].Losses, rows[i].Ties)
	}
	return rows
}

// WinPercentage counts a tie as half a win. No games played is 0.
func WinPercentage(wins, losses, ties int) float64 {
	games := wins + losses + ties
	if games == 0 {
		return 0
	}
	return (float64(wins) + 0.5*float64(ties)) / float64(games)
}
