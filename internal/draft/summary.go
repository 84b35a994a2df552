package draft

import (
	"github.com/omarshaarawi/leaguestats/internal/models"
)

// summarize groups rows by exact owner label in first-seen order. Rows with
// no resolved score count as picks but stay out of the average.
func summarize[T any](rows []T, owner func(T) string, season func(T) int, score func(T) (float64, bool)) []models.OwnerSummaryRow {
	index := make(map[string]int)
	out := make([]models.OwnerSummaryRow, 0)
	for _, r := range rows {
		name := owner(r)
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, models.OwnerSummaryRow{Owner: name, Season: season(r)})
		}
		sum := &out[i]
		sum.Picks++
		if s, ok := score(r); ok {
			sum.ResolvedScores++
			sum.TotalScore += s
		}
	}
	for i := range out {
		if out[i].ResolvedScores > 0 {
			avg := out[i].TotalScore / float64(out[i].ResolvedScores)
			out[i].AverageScore = &avg
		}
	}
	return out
}

// SummarizePicks totals joined picks per manager.
func SummarizePicks(rows []models.JoinedPickRow) []models.OwnerSummaryRow {
	return summarize(rows,
		func(r models.JoinedPickRow) string { return r.Pick.ManagerName },
		func(r models.JoinedPickRow) int { return r.Pick.Season },
		func(r models.JoinedPickRow) (float64, bool) {
			if r.SeasonScore == nil {
				return 0, false
			}
			return *r.SeasonScore, true
		})
}

// SummarizeScores totals score records per owner. Callers wanting one row
// per owner and season should pass a single season's records.
func SummarizeScores(records []models.ScoreRecord) []models.OwnerSummaryRow {
	return summarize(records,
		func(r models.ScoreRecord) string { return r.Owner },
		func(r models.ScoreRecord) int { return r.Season },
		func(r models.ScoreRecord) (float64, bool) { return r.SeasonScore, true })
}
