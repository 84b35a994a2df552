package standings

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/omarshaarawi/leaguestats/internal/models"
)

// LastHeadToHeadSeason is the final season whose win ties were broken by
// head-to-head record. From 2022 on the league breaks them on points for.
const LastHeadToHeadSeason = 2021

// Rank orders rows under the season's tie-break rules and assigns ranks
// 1..N. games are that season's matchups; only regular-season games up to
// week count toward head-to-head. rows is not modified.
func Rank(rows []models.CumulativeStandingsRow, games []models.Game, season, week int) []models.CumulativeStandingsRow {
	out := append([]models.CumulativeStandingsRow(nil), rows...)
	names := collate.New(language.Und)

	if season > LastHeadToHeadSeason {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if a.Wins != b.Wins {
				return a.Wins > b.Wins
			}
			if a.PointsFor != b.PointsFor {
				return a.PointsFor > b.PointsFor
			}
			return names.CompareString(a.Team, b.Team) < 0
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Wins > out[j].Wins })
		for start := 0; start < len(out); {
			end := start + 1
			for end < len(out) && out[end].Wins == out[start].Wins {
				end++
			}
			if end-start > 1 {
				breakTiesHeadToHead(out[start:end], games, week, names)
			}
			start = end
		}
	}

	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// breakTiesHeadToHead reorders a group of teams with equal wins by wins in
// games among the group only, then points for, then name.
func breakTiesHeadToHead(group []models.CumulativeStandingsRow, games []models.Game, week int, names *collate.Collator) {
	members := make(map[string]bool, len(group))
	for _, r := range group {
		members[r.Team] = true
	}

	h2h := make(map[string]int, len(group))
	for _, g := range games {
		if g.Playoff || g.Week > week {
			continue
		}
		if !members[g.TeamA] || !members[g.TeamB] {
			continue
		}
		switch {
		case g.PointsA > g.PointsB:
			h2h[g.TeamA]++
		case g.PointsB > g.PointsA:
			h2h[g.TeamB]++
		}
	}

	sort.SliceStable(group, func(i, j int) bool {
		a, b := group[i], group[j]
		if h2h[a.Team] != h2h[b.Team] {
			return h2h[a.Team] > h2h[b.Team]
		}
		if a.PointsFor != b.PointsFor {
			return a.PointsFor > b.PointsFor
		}
		return names.CompareString(a.Team, b.Team) < 0
	})
}
