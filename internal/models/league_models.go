package models

import (
	"sort"
	"time"
)

// League is everything loaded from the data store at one point in time.
// It is replaced wholesale on reload and never mutated after.
type League struct {
	Drafts     map[int][]DraftPick
	Scores     []ScoreRecord
	Rankings   []RankingRow
	Weekly     map[int][]WeeklySnapshot
	Games      map[int][]Game
	Waivers    []WaiverPickup
	Teams      map[int][]TeamSeason
	Finals     map[int]FinalStandings
	Medals     []MedalYear
	LoadedAt   time.Time
	LoadErrors []error
}

// Seasons returns every season that has a draft, scores or standings.
func (l *League) Seasons() []int {
	seen := make(map[int]bool)
	for s := range l.Drafts {
		seen[s] = true
	}
	for s := range l.Weekly {
		seen[s] = true
	}
	for s := range l.Teams {
		seen[s] = true
	}
	for s := range l.Finals {
		seen[s] = true
	}
	for _, r := range l.Scores {
		seen[r.Season] = true
	}
	seasons := make([]int, 0, len(seen))
	for s := range seen {
		seasons = append(seasons, s)
	}
	sort.Ints(seasons)
	return seasons
}

// Empty reports whether nothing at all was loaded.
func (l *League) Empty() bool {
	return len(l.Seasons()) == 0 && len(l.Games) == 0 && len(l.Rankings) == 0 &&
		len(l.Waivers) == 0 && len(l.Medals) == 0
}

// WeeklyStandingsRow is one team's line in a single week's snapshot.
type WeeklyStandingsRow struct {
	Team          string  `json:"team"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"pf"`
	PointsAgainst float64 `json:"pa"`
	WinPercentage float64 `json:"pct"`
	Rank          int     `json:"rank"`
}

// WeeklySnapshot holds the rows for exactly one week of one season.
type WeeklySnapshot struct {
	Week int                  `json:"week"`
	Rows []WeeklyStandingsRow `json:"rows"`
}

// CumulativeStandingsRow sums a team's weeks 1..W. RankDelta compares the
// rank to week W-1 (positive means the team climbed) and is nil for week 1
// or a team missing from the prior week.
type CumulativeStandingsRow struct {
	Team          string  `json:"team"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"pf"`
	PointsAgainst float64 `json:"pa"`
	WinPercentage float64 `json:"pct"`
	Rank          int     `json:"rank"`
	RankDelta     *int    `json:"rankDelta"`
}

// Game is one head-to-head matchup of a week.
type Game struct {
	Season  int     `json:"season"`
	Week    int     `json:"week"`
	TeamA   string  `json:"teamA"`
	PointsA float64 `json:"pointsA"`
	TeamB   string  `json:"teamB"`
	PointsB float64 `json:"pointsB"`
	Playoff bool    `json:"playoff"`
}

// Winner returns the team with more points; ties go to TeamA.
func (g Game) Winner() (winner, loser string) {
	if g.PointsA >= g.PointsB {
		return g.TeamA, g.TeamB
	}
	return g.TeamB, g.TeamA
}

func (g Game) Margin() float64 {
	if g.PointsA > g.PointsB {
		return g.PointsA - g.PointsB
	}
	return g.PointsB - g.PointsA
}

func (g Game) Combined() float64 {
	return g.PointsA + g.PointsB
}

type Trophy struct {
	Category string  `json:"category"`
	Team     string  `json:"team"`
	Value    float64 `json:"value"`
}
