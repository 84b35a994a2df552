package draft

import (
	"sort"
	"strings"

	"github.com/omarshaarawi/leaguestats/internal/models"
)

const (
	leaderboardSize = 5
	worstPickMaxPos = 10
)

// Leaderboards are the all-time draft highlights across every season.
type Leaderboards struct {
	BestDrafts   []models.OwnerSummaryRow `json:"bestDrafts"`
	WorstDrafts  []models.OwnerSummaryRow `json:"worstDrafts"`
	BestPicks    []models.ScoreRecord     `json:"bestPicks"`
	WorstPicks   []models.ScoreRecord     `json:"worstPicks"`
	FirstOverall []models.ScoreRecord     `json:"firstOverall"`
}

// BuildLeaderboards ranks owner drafts and individual picks from the score
// file, skipping the excluded seasons.
func BuildLeaderboards(records []models.ScoreRecord, exclude []int) Leaderboards {
	skip := make(map[int]bool, len(exclude))
	for _, s := range exclude {
		skip[s] = true
	}

	var filtered []models.ScoreRecord
	var seasons []int
	bySeason := make(map[int][]models.ScoreRecord)
	for _, r := range records {
		if skip[r.Season] {
			continue
		}
		filtered = append(filtered, r)
		if _, ok := bySeason[r.Season]; !ok {
			seasons = append(seasons, r.Season)
		}
		bySeason[r.Season] = append(bySeason[r.Season], r)
	}

	var drafts []models.OwnerSummaryRow
	for _, s := range seasons {
		drafts = append(drafts, SummarizeScores(bySeason[s])...)
	}

	lb := Leaderboards{}

	best := append([]models.OwnerSummaryRow(nil), drafts...)
	sort.SliceStable(best, func(i, j int) bool { return avg(best[i]) > avg(best[j]) })
	lb.BestDrafts = head(best, leaderboardSize)

	worst := append([]models.OwnerSummaryRow(nil), drafts...)
	sort.SliceStable(worst, func(i, j int) bool { return avg(worst[i]) < avg(worst[j]) })
	lb.WorstDrafts = head(worst, leaderboardSize)

	picks := append([]models.ScoreRecord(nil), filtered...)
	sort.SliceStable(picks, func(i, j int) bool { return picks[i].SeasonScore > picks[j].SeasonScore })
	lb.BestPicks = head(picks, leaderboardSize)

	var busts []models.ScoreRecord
	for _, r := range filtered {
		if isBustCandidate(r) {
			busts = append(busts, r)
		}
	}
	sort.SliceStable(busts, func(i, j int) bool { return busts[i].SeasonScore < busts[j].SeasonScore })
	lb.WorstPicks = head(busts, leaderboardSize)

	for _, r := range filtered {
		if r.DraftPickNumber == 1 {
			lb.FirstOverall = append(lb.FirstOverall, r)
		}
	}
	return lb
}

// isBustCandidate keeps early positional picks that actually played:
// no kickers or defenses, some points scored, drafted top 10 at the position.
func isBustCandidate(r models.ScoreRecord) bool {
	pos := strings.ToUpper(r.Position)
	if pos == "K" || pos == "DST" {
		return false
	}
	if r.Points == nil || *r.Points <= 0 {
		return false
	}
	return r.DraftPosRank != nil && *r.DraftPosRank <= worstPickMaxPos
}

func avg(r models.OwnerSummaryRow) float64 {
	if r.AverageScore == nil {
		return 0
	}
	return *r.AverageScore
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
