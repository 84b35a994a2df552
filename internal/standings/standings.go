package standings

import (
	"github.com/omarshaarawi/leaguestats/internal/models"
)

// Compute returns the ranked season-to-date table through week, with each
// row's movement against the same table through week-1.
func Compute(snapshots []models.WeeklySnapshot, games []models.Game, season, week int) []models.CumulativeStandingsRow {
	if week < 1 {
		return []models.CumulativeStandingsRow{}
	}
	current := Rank(Aggregate(snapshots, week), games, season, week)
	if week == 1 {
		return current
	}

	previous := Rank(Aggregate(snapshots, week-1), games, season, week-1)
	prevRank := make(map[string]int, len(previous))
	for _, r := range previous {
		prevRank[r.Team] = r.Rank
	}
	for i := range current {
		if r, ok := prevRank[current[i].Team]; ok {
			delta := r - current[i].Rank
			current[i].RankDelta = &delta
		}
	}
	return current
}

// LastWeek is the highest week present in the snapshots, or 0.
func LastWeek(snapshots []models.WeeklySnapshot) int {
	last := 0
	for _, s := range snapshots {
		if s.Week > last {
			last = s.Week
		}
	}
	return last
}
