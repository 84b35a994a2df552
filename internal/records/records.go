// Package records computes all-time league records and weekly trophies
// from head-to-head games and season totals.
package records

import (
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/omarshaarawi/leaguestats/internal/models"
)

const topN = 5

// TeamWeek is one team's score in one week.
type TeamWeek struct {
	Season int     `json:"season"`
	Week   int     `json:"week"`
	Team   string  `json:"team"`
	Points float64 `json:"points"`
}

type Streak struct {
	Team   string `json:"team"`
	Length int    `json:"length"`
}

type Count struct {
	Team  string `json:"team"`
	Count int    `json:"count"`
}

// SeasonPoints is a team's points for over one regular season.
type SeasonPoints struct {
	Season    int     `json:"season"`
	Team      string  `json:"team"`
	Games     int     `json:"games"`
	PointsFor float64 `json:"pf"`
	Average   float64 `json:"avg"`
}

type Report struct {
	HighestWeeks      []TeamWeek     `json:"highestWeeks"`
	LowestWeeks       []TeamWeek     `json:"lowestWeeks"`
	HighestSeasons    []SeasonPoints `json:"highestSeasons"`
	LowestSeasons     []SeasonPoints `json:"lowestSeasons"`
	Blowouts          []models.Game `json:"blowouts"`
	HighestCombined   []models.Game `json:"highestCombined"`
	LowestCombined    []models.Game `json:"lowestCombined"`
	LongestWinStreak  Streak        `json:"longestWinStreak"`
	LongestLoseStreak Streak        `json:"longestLosingStreak"`
	WeeklyHighScores  []Count       `json:"weeklyHighScores"`
	WeeklyTopThree    []Count       `json:"weeklyTopThree"`
}

// Build computes the records over games and season totals from any number
// of seasons.
func Build(games []models.Game, teams []models.TeamSeason) Report {
	ordered := append([]models.Game(nil), games...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Season != ordered[j].Season {
			return ordered[i].Season < ordered[j].Season
		}
		return ordered[i].Week < ordered[j].Week
	})

	weeks := teamWeeks(ordered)
	var r Report

	high := append([]TeamWeek(nil), weeks...)
	sort.SliceStable(high, func(i, j int) bool { return high[i].Points > high[j].Points })
	r.HighestWeeks = head(high)

	low := append([]TeamWeek(nil), weeks...)
	sort.SliceStable(low, func(i, j int) bool { return low[i].Points < low[j].Points })
	r.LowestWeeks = head(low)

	seasons := seasonPoints(teams)
	highSeason := append([]SeasonPoints(nil), seasons...)
	sort.SliceStable(highSeason, func(i, j int) bool { return highSeason[i].PointsFor > highSeason[j].PointsFor })
	r.HighestSeasons = head(highSeason)
	lowSeason := append([]SeasonPoints(nil), seasons...)
	sort.SliceStable(lowSeason, func(i, j int) bool { return lowSeason[i].PointsFor < lowSeason[j].PointsFor })
	r.LowestSeasons = head(lowSeason)

	r.Blowouts = topGames(ordered, func(a, b models.Game) bool { return a.Margin() > b.Margin() })
	r.HighestCombined = topGames(ordered, func(a, b models.Game) bool { return a.Combined() > b.Combined() })
	r.LowestCombined = topGames(ordered, func(a, b models.Game) bool { return a.Combined() < b.Combined() })

	r.LongestWinStreak, r.LongestLoseStreak = streaks(ordered)
	r.WeeklyHighScores, r.WeeklyTopThree = weeklyAwards(weeks)
	return r
}

func teamWeeks(games []models.Game) []TeamWeek {
	out := make([]TeamWeek, 0, 2*len(games))
	for _, g := range games {
		out = append(out,
			TeamWeek{Season: g.Season, Week: g.Week, Team: g.TeamA, Points: g.PointsA},
			TeamWeek{Season: g.Season, Week: g.Week, Team: g.TeamB, Points: g.PointsB},
		)
	}
	return out
}

func seasonPoints(teams []models.TeamSeason) []SeasonPoints {
	out := make([]SeasonPoints, 0, len(teams))
	for _, t := range teams {
		games := t.Games()
		out = append(out, SeasonPoints{
			Season:    t.Season,
			Team:      t.Team,
			Games:     games,
			PointsFor: t.PointsFor,
			Average:   t.PointsFor / float64(games),
		})
	}
	return out
}

func topGames(games []models.Game, less func(a, b models.Game) bool) []models.Game {
	out := append([]models.Game(nil), games...)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return head(out)
}

// streaks walks each team's results in chronological order. games must
// already be sorted by season and week.
func streaks(games []models.Game) (win, lose Streak) {
	var order []string
	byTeam := make(map[string][]bool)
	add := func(team string, won bool) {
		if _, ok := byTeam[team]; !ok {
			order = append(order, team)
		}
		byTeam[team] = append(byTeam[team], won)
	}
	for _, g := range games {
		winner, loser := g.Winner()
		add(winner, true)
		add(loser, false)
	}

	for _, team := range order {
		var curW, maxW, curL, maxL int
		for _, won := range byTeam[team] {
			if won {
				curW++
				curL = 0
				maxW = max(maxW, curW)
			} else {
				curL++
				curW = 0
				maxL = max(maxL, curL)
			}
		}
		if maxW > win.Length {
			win = Streak{Team: team, Length: maxW}
		}
		if maxL > lose.Length {
			lose = Streak{Team: team, Length: maxL}
		}
	}
	return win, lose
}

// weeklyAwards counts, per team, the weeks it had the top score (all teams
// tied at the top count) and the weeks it landed in the top three (ties at
// the third score count too).
func weeklyAwards(weeks []TeamWeek) (high, top3 []Count) {
	type key struct{ season, week int }
	var keys []key
	byWeek := make(map[key][]TeamWeek)
	for _, w := range weeks {
		k := key{w.Season, w.Week}
		if _, ok := byWeek[k]; !ok {
			keys = append(keys, k)
		}
		byWeek[k] = append(byWeek[k], w)
	}

	highCount := make(map[string]int)
	top3Count := make(map[string]int)
	for _, k := range keys {
		scores := byWeek[k]
		sort.SliceStable(scores, func(i, j int) bool { return scores[i].Points > scores[j].Points })
		if len(scores) == 0 {
			continue
		}
		for _, s := range scores {
			if s.Points != scores[0].Points {
				break
			}
			highCount[s.Team]++
		}
		cutoff := scores[min(3, len(scores))-1].Points
		for _, s := range scores {
			if s.Points < cutoff {
				break
			}
			top3Count[s.Team]++
		}
	}
	return sortedCounts(highCount), sortedCounts(top3Count)
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for team, n := range m {
		out = append(out, Count{Team: team, Count: n})
	}
	names := collate.New(language.Und)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return names.CompareString(out[i].Team, out[j].Team) < 0
	})
	return out
}

// WeeklyTrophies hands out the high score, low score, biggest win and
// closest win of one week's games.
func WeeklyTrophies(games []models.Game) []models.Trophy {
	if len(games) == 0 {
		return nil
	}

	highScore, lowScore := -math.MaxFloat64, math.MaxFloat64
	biggestWin, closestWin := -math.MaxFloat64, math.MaxFloat64
	var highScoreTeam, lowScoreTeam, biggestWinTeam, closestWinTeam string

	for _, g := range games {
		// High Score
		if g.PointsA > highScore {
			highScore, highScoreTeam = g.PointsA, g.TeamA
		}
		if g.PointsB > highScore {
			highScore, highScoreTeam = g.PointsB, g.TeamB
		}

		// Low Score
		if g.PointsA < lowScore {
			lowScore, lowScoreTeam = g.PointsA, g.TeamA
		}
		if g.PointsB < lowScore {
			lowScore, lowScoreTeam = g.PointsB, g.TeamB
		}

		winner, _ := g.Winner()
		margin := g.Margin()
		if margin > biggestWin {
			biggestWin, biggestWinTeam = margin, winner
		}
		if margin < closestWin {
			closestWin, closestWinTeam = margin, winner
		}
	}

	return []models.Trophy{
		{Category: "High Score", Team: highScoreTeam, Value: highScore},
		{Category: "Low Score", Team: lowScoreTeam, Value: lowScore},
		{Category: "Biggest Win", Team: biggestWinTeam, Value: biggestWin},
		{Category: "Closest Win", Team: closestWinTeam, Value: closestWin},
	}
}

func head[T any](s []T) []T {
	if len(s) > topN {
		return s[:topN]
	}
	return s
}
