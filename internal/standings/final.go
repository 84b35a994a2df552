package standings

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/omarshaarawi/leaguestats/internal/models"
)

// Final merges a season's team totals with its regular season and playoff
// finishes. Rows are ordered by end rank, teams without one last, then by
// name. A playoff rank from the playoff table wins over one carried on the
// regular season row.
func Final(teams []models.TeamSeason, finals models.FinalStandings) []models.FinalStandingsRow {
	var order []string
	byTeam := make(map[string]*models.FinalStandingsRow)
	row := func(team string) *models.FinalStandingsRow {
		r, ok := byTeam[team]
		if !ok {
			r = &models.FinalStandingsRow{Team: team}
			byTeam[team] = r
			order = append(order, team)
		}
		return r
	}

	for _, t := range teams {
		r := row(t.Team)
		r.Wins, r.Losses, r.Ties = t.Wins, t.Losses, t.Ties
		r.PointsFor, r.PointsAgainst = t.PointsFor, t.PointsAgainst
	}
	for _, f := range finals.Regular {
		_, known := byTeam[f.Team]
		r := row(f.Team)
		r.Record = f.Record
		r.RegularRank = f.RegularRank
		r.PlayoffRank = f.PlayoffRank
		if !known {
			if f.PointsFor != nil {
				r.PointsFor = *f.PointsFor
			}
			if f.PointsAgainst != nil {
				r.PointsAgainst = *f.PointsAgainst
			}
		}
	}
	for _, p := range finals.Playoffs {
		r := row(p.Team)
		if p.PlayoffRank != nil {
			r.PlayoffRank = p.PlayoffRank
		}
		r.Seed = p.Seed
	}

	out := make([]models.FinalStandingsRow, 0, len(order))
	for _, team := range order {
		r := byTeam[team]
		r.EndRank = r.PlayoffRank
		if r.EndRank == nil {
			r.EndRank = r.RegularRank
		}
		out = append(out, *r)
	}

	names := collate.New(language.Und)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].EndRank, out[j].EndRank
		switch {
		case a != nil && b != nil && *a != *b:
			return *a < *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return names.CompareString(out[i].Team, out[j].Team) < 0
	})
	return out
}
